package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodexpress-api/middleware"
	"foodexpress-api/models"
	"foodexpress-api/routes"
)

const testSecret = "test-secret-key"

type testApp struct {
	db     *gorm.DB
	router *gin.Engine
	auth   *middleware.Auth
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:app_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Restaurant{}, &models.Menu{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	auth := middleware.NewAuth(testSecret, db)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	routes.Setup(r, db, auth, log)

	return &testApp{db: db, router: r, auth: auth}
}

// seedUser inserts a user with the given role and password "secret123" and
// returns it with a fresh token.
func (a *testApp) seedUser(t *testing.T, username string, role models.UserRole) (*models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{
		Username:     username,
		Email:        username + "@test.fr",
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := a.db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := a.auth.GenerateToken(&user)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return &user, token
}

func (a *testApp) seedRestaurant(t *testing.T, name, address string) *models.Restaurant {
	t.Helper()
	r := models.Restaurant{Name: name, Address: address, Phone: "0123456789", OpeningHours: "9h-22h"}
	if err := a.db.Create(&r).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return &r
}

func (a *testApp) seedMenu(t *testing.T, restaurantID uint, name string, price float64, category models.MenuCategory) *models.Menu {
	t.Helper()
	m := models.Menu{RestaurantID: restaurantID, Name: name, Description: "desc " + name, Price: price, Category: category}
	if err := a.db.Create(&m).Error; err != nil {
		t.Fatalf("seed menu: %v", err)
	}
	return &m
}

// do issues a JSON request against the app router. A non-empty token goes
// into the Authorization header.
func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decode(t, w)["message"].(string)
	return msg
}

func idPath(prefix string, id uint) string {
	return prefix + "/" + strconv.FormatUint(uint64(id), 10)
}
