package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/debasish790/backend-bill/config"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJwtAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		JWTSecret: "test-secret",
	}

	validToken, _ := GenerateToken(1, "vendor", cfg.JWTSecret, 1*time.Hour)
	expiredToken, _ := GenerateToken(1, "vendor", cfg.JWTSecret, -1*time.Hour)
	foreignToken, _ := GenerateToken(1, "vendor", "other-secret", 1*time.Hour)
	anonymousToken, _ := GenerateToken(0, "vendor", cfg.JWTSecret, 1*time.Hour)

	tests := []struct {
		name           string
		authHeader     string
		query          string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Valid Token",
			authHeader:     "Bearer " + validToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Token In Query",
			query:          "?token=" + validToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Format",
			authHeader:     "Invalid " + validToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + expiredToken,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "ExpiredToken",
		},
		{
			name:           "Wrong Secret",
			authHeader:     "Bearer " + foreignToken,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "InvalidToken",
		},
		{
			name:           "No Vendor In Claims",
			authHeader:     "Bearer " + anonymousToken,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "InvalidToken",
		},
		{
			name:           "Invalid Token",
			authHeader:     "Bearer invalid.token.string",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "InvalidToken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(JwtAuthMiddleware(cfg))
			router.GET("/test", func(c *gin.Context) {
				id, ok := UserID(c)
				c.JSON(http.StatusOK, gin.H{"id": id, "ok": ok, "role": c.GetString(RoleKey)})
			})

			req, _ := http.NewRequest(http.MethodGet, "/test"+tt.query, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"id":1,"ok":true,"role":"vendor"}`, w.Body.String())
			}
			if tt.expectedCode != "" {
				assert.Contains(t, w.Body.String(), tt.expectedCode)
			}
		})
	}
}

func TestJwtAuthMiddlewareQueryTokenOnlyOnGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: "test-secret"}
	token, _ := GenerateToken(1, "vendor", cfg.JWTSecret, time.Hour)

	router := gin.New()
	router.Use(JwtAuthMiddleware(cfg))
	router.POST("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodPost, "/test?token="+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupContext   func(c *gin.Context)
		requiredRoles  []string
		expectedStatus int
	}{
		{
			name: "Has Required Role",
			setupContext: func(c *gin.Context) {
				c.Set(RoleKey, "vendor")
			},
			requiredRoles:  []string{"vendor"},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Has One Of Required Roles",
			setupContext: func(c *gin.Context) {
				c.Set(RoleKey, "admin")
			},
			requiredRoles:  []string{"vendor", "admin"},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Missing Required Role",
			setupContext: func(c *gin.Context) {
				c.Set(RoleKey, "customer")
			},
			requiredRoles:  []string{"vendor"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "Role Is Not A String",
			setupContext: func(c *gin.Context) {
				c.Set(RoleKey, 7)
			},
			requiredRoles:  []string{"vendor"},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "No Role In Context",
			setupContext: func(c *gin.Context) {
			},
			requiredRoles:  []string{"vendor"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				tt.setupContext(c)
				c.Next()
			})
			router.Use(RequireRole(tt.requiredRoles...))
			router.GET("/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := UserID(c)
	assert.False(t, ok)

	c.Set(UserIDKey, "1")
	_, ok = UserID(c)
	assert.False(t, ok)

	c.Set(UserIDKey, uint(0))
	_, ok = UserID(c)
	assert.False(t, ok)

	c.Set(UserIDKey, uint(42))
	id, ok := UserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	router := gin.New()
	router.Use(RequestID(), RequestLogger(log))
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	t.Run("Generates Request ID", func(t *testing.T) {
		buf.Reset()
		req, _ := http.NewRequest(http.MethodGet, "/items/3", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		id := w.Header().Get(RequestIDHeader)
		require.NotEmpty(t, id)
		assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
		assert.Contains(t, buf.String(), `"path":"/items/:id"`)
		assert.Contains(t, buf.String(), `"status":204`)
	})

	t.Run("Keeps Caller Request ID", func(t *testing.T) {
		buf.Reset()
		req, _ := http.NewRequest(http.MethodGet, "/items/3", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
	})
}
