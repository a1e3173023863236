// Package query translates listing-request parameters into validated gorm
// clauses: pagination, an allow-listed sort and optional filters, plus the
// pagination metadata returned alongside every list.
package query

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListParams is the normalized form of page/limit/sortBy/sortOrder.
type ListParams struct {
	Page      int
	Limit     int
	SortField string
	Desc      bool
}

// ParseListParams coerces the request's pagination and sort parameters.
// Non-numeric or non-positive page/limit values collapse to the defaults, a
// sort field outside the allow-list silently falls back to defaultSort, and
// only the literal "desc" flips the direction.
func ParseListParams(c *gin.Context, allowed []string, defaultSort string) ListParams {
	p := ListParams{
		Page:      positiveInt(c.Query("page"), DefaultPage),
		Limit:     positiveInt(c.Query("limit"), DefaultLimit),
		SortField: defaultSort,
		Desc:      c.Query("sortOrder") == "desc",
	}
	if sortBy := c.Query("sortBy"); sortBy != "" {
		for _, field := range allowed {
			if sortBy == field {
				p.SortField = sortBy
				break
			}
		}
	}
	return p
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Offset is the number of records to skip; never negative.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderClause renders the sort specification for gorm's Order.
func (p ListParams) OrderClause() string {
	if p.Desc {
		return p.SortField + " DESC"
	}
	return p.SortField + " ASC"
}

// Scope applies sort, skip and limit in one step.
func (p ListParams) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(p.OrderClause()).Offset(p.Offset()).Limit(p.Limit)
	}
}

// Search builds a case-insensitive substring filter OR-ed across the given
// columns. An empty term leaves the query untouched.
func Search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		var clauses []string
		var args []interface{}
		for _, col := range columns {
			clauses = append(clauses, "LOWER("+col+") LIKE ?")
			args = append(args, pattern)
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// PriceRange filters price between the supplied inclusive bounds. A nil bound
// is open; with both bounds absent no clause is added.
func PriceRange(min, max *float64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if min != nil {
			db = db.Where("price >= ?", *min)
		}
		if max != nil {
			db = db.Where("price <= ?", *max)
		}
		return db
	}
}

// ParsePriceBound reads an optional float query parameter; garbled values are
// treated as absent.
func ParsePriceBound(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Pagination is the metadata block returned by every listing endpoint.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
}

// NewPagination computes totalPages as ceil(total/limit) and the
// has-next/has-previous booleans.
func NewPagination(p ListParams, total int64) Pagination {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{
		CurrentPage: p.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNextPage: p.Page < totalPages,
		HasPrevPage: p.Page > 1,
		Limit:       p.Limit,
	}
}
