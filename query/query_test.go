package query

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paramsFor(t *testing.T, rawQuery string, allowed []string, defaultSort string) ListParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return ParseListParams(c, allowed, defaultSort)
}

func TestParseListParamsDefaults(t *testing.T) {
	p := paramsFor(t, "", []string{"name"}, "name")
	if p.Page != 1 || p.Limit != 10 {
		t.Fatalf("expected page=1 limit=10, got page=%d limit=%d", p.Page, p.Limit)
	}
	if p.SortField != "name" || p.Desc {
		t.Fatalf("expected ascending name sort, got %q desc=%v", p.SortField, p.Desc)
	}
}

func TestParseListParamsGarbledValues(t *testing.T) {
	cases := []string{
		"page=abc&limit=xyz",
		"page=0&limit=0",
		"page=-3&limit=-1",
		"page=&limit=",
	}
	for _, raw := range cases {
		p := paramsFor(t, raw, []string{"name"}, "name")
		if p.Page != 1 || p.Limit != 10 {
			t.Fatalf("%q: expected defaults, got page=%d limit=%d", raw, p.Page, p.Limit)
		}
		if p.Offset() != 0 {
			t.Fatalf("%q: expected zero offset, got %d", raw, p.Offset())
		}
	}
}

func TestParseListParamsSortAllowList(t *testing.T) {
	p := paramsFor(t, "sortBy=price", []string{"name", "price"}, "name")
	if p.SortField != "price" {
		t.Fatalf("expected price, got %q", p.SortField)
	}

	p = paramsFor(t, "sortBy=nonexistent", []string{"name", "price"}, "name")
	if p.SortField != "name" {
		t.Fatalf("expected fallback to name, got %q", p.SortField)
	}

	p = paramsFor(t, "sortBy=password_hash", []string{"name"}, "name")
	if p.SortField != "name" {
		t.Fatalf("expected fallback to name, got %q", p.SortField)
	}
}

func TestParseListParamsSortOrder(t *testing.T) {
	p := paramsFor(t, "sortOrder=desc", []string{"name"}, "name")
	if !p.Desc || p.OrderClause() != "name DESC" {
		t.Fatalf("expected descending clause, got %q", p.OrderClause())
	}

	for _, raw := range []string{"", "sortOrder=asc", "sortOrder=DESC", "sortOrder=anything"} {
		p := paramsFor(t, raw, []string{"name"}, "name")
		if p.Desc {
			t.Fatalf("%q: expected ascending", raw)
		}
	}
}

func TestOffset(t *testing.T) {
	p := paramsFor(t, "page=3&limit=25", []string{"name"}, "name")
	if p.Offset() != 50 {
		t.Fatalf("expected offset 50, got %d", p.Offset())
	}
	if p.Page*p.Limit < p.Offset() {
		t.Fatalf("page*limit (%d) < offset (%d)", p.Page*p.Limit, p.Offset())
	}
}

func TestNewPagination(t *testing.T) {
	p := ListParams{Page: 2, Limit: 10}
	pg := NewPagination(p, 25)
	if pg.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 25 items, got %d", pg.TotalPages)
	}
	if pg.TotalItems != 25 || pg.CurrentPage != 2 || pg.Limit != 10 {
		t.Fatalf("unexpected metadata: %+v", pg)
	}
	if !pg.HasNextPage || !pg.HasPrevPage {
		t.Fatalf("page 2 of 3 should have both neighbours: %+v", pg)
	}

	pg = NewPagination(ListParams{Page: 1, Limit: 10}, 10)
	if pg.TotalPages != 1 || pg.HasNextPage || pg.HasPrevPage {
		t.Fatalf("single exact page: %+v", pg)
	}

	pg = NewPagination(ListParams{Page: 1, Limit: 10}, 0)
	if pg.TotalPages != 0 || pg.HasNextPage || pg.HasPrevPage {
		t.Fatalf("empty result: %+v", pg)
	}
}

func TestParsePriceBound(t *testing.T) {
	if b := ParsePriceBound(""); b != nil {
		t.Fatalf("empty value should be absent, got %v", *b)
	}
	if b := ParsePriceBound("abc"); b != nil {
		t.Fatalf("garbled value should be absent, got %v", *b)
	}
	if b := ParsePriceBound("12.5"); b == nil || *b != 12.5 {
		t.Fatalf("expected 12.5, got %v", b)
	}
}
