package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/debasish790/backend-bill/config"
	"github.com/debasish790/backend-bill/events"
	"github.com/debasish790/backend-bill/middleware"
	"github.com/debasish790/backend-bill/models"
	"github.com/debasish790/backend-bill/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTRefreshSecret: "test-refresh-secret",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  time.Hour,
		DefaultPrefix:    "INV",
		Location:         time.UTC,
	}
}

// RecordingDispatcher keeps every dispatched event.
type RecordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *RecordingDispatcher) Dispatch(_ uint, event events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *RecordingDispatcher) Names() []events.Name {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]events.Name, 0, len(d.events))
	for _, ev := range d.events {
		names = append(names, ev.Type())
	}
	return names
}

type MockRenderer struct {
	RenderInvoiceFunc func(doc utils.InvoiceDocument) ([]byte, error)
}

func (m *MockRenderer) RenderInvoice(doc utils.InvoiceDocument) ([]byte, error) {
	return m.RenderInvoiceFunc(doc)
}

func createVendor(t *testing.T, db *gorm.DB, email, prefix string) models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleVendor,
		IsActive:     true,
		StoreName:    "Corner Shop",
		GSTIN:        "29ABCDE1234F1Z5",
		Prefix:       prefix,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCategory(t *testing.T, db *gorm.DB, vendor uint, name string) models.Category {
	t.Helper()
	category := models.Category{VendorID: vendor, Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createProduct(t *testing.T, db *gorm.DB, vendor, category uint, name string, price float64, hsn string, gst *float64) models.Product {
	t.Helper()
	product := models.Product{VendorID: vendor, CategoryID: category, Name: name, Price: price, HSN: hsn, GSTRate: gst}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func gstRate(v float64) *float64 { return &v }

// asVendor stands in for JwtAuthMiddleware.
func asVendor(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Set(middleware.RoleKey, models.RoleVendor)
		c.Next()
	}
}

func doJSON(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
