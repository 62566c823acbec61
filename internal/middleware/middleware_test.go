package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"techplug_back_end/internal/models"
	"techplug_back_end/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthRequiredAndRequireAdmin(t *testing.T) {
	const secret = "test-secret"
	r := gin.New()
	r.GET("/admin", AuthRequired(secret), RequireAdmin, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("username"))
	})

	adminToken, err := utils.GenerateJWT(secret, "admin", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signed(t, "other", jwt.MapClaims{"sub": "admin", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, secret, jwt.MapClaims{"sub": "admin", "role": "admin", "exp": time.Now().Add(-time.Hour).Unix()}), http.StatusUnauthorized},
		{"no expiry", "Bearer " + signed(t, secret, jwt.MapClaims{"sub": "admin", "role": "admin"}), http.StatusUnauthorized},
		{"not admin", "Bearer " + signed(t, secret, jwt.MapClaims{"sub": "bob", "role": "customer", "exp": time.Now().Add(time.Hour).Unix()}), http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "admin", w.Body.String())
			}
		})
	}
}

type memCounter struct {
	mu   sync.Mutex
	hits map[string]int64
	err  error
}

func (m *memCounter) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hits == nil {
		m.hits = map[string]int64{}
	}
	m.hits[key]++
	return m.hits[key], nil
}

func TestAPIRateLimit(t *testing.T) {
	counter := &memCounter{}
	r := gin.New()
	r.Use(APIRateLimit(counter, 2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, w.Body.String(), "retry_after")
}

func TestRateLimit_Disabled(t *testing.T) {
	tests := []struct {
		name    string
		counter Counter
		max     int
	}{
		{"nil counter", nil, 1},
		{"zero max", &memCounter{}, 0},
		{"failing counter", &memCounter{err: errors.New("redis down")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CartRateLimit(tt.counter, tt.max))
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
			for i := 0; i < 3; i++ {
				assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
			}
		})
	}
}

type chanAuditor chan models.AuditLog

func (c chanAuditor) Record(_ context.Context, e models.AuditLog) error {
	c <- e
	return nil
}

func TestAuditAdminAction(t *testing.T) {
	entries := make(chanAuditor, 2)
	r := gin.New()
	r.DELETE("/products/:id", AuditAdminAction(entries, zap.NewNop(), utils.ActionProductDelete, utils.ResourceProduct),
		func(c *gin.Context) {
			if c.Param("id") == "missing" {
				c.Status(http.StatusNotFound)
				return
			}
			c.Status(http.StatusNoContent)
		})

	serve(r, httptest.NewRequest(http.MethodDelete, "/products/p1", nil))
	serve(r, httptest.NewRequest(http.MethodDelete, "/products/missing", nil))

	got := map[string]models.AuditLog{}
	for i := 0; i < 2; i++ {
		select {
		case e := <-entries:
			got[e.ResourceID] = e
		case <-time.After(2 * time.Second):
			t.Fatal("audit entry missing")
		}
	}
	assert.True(t, got["p1"].Success)
	assert.False(t, got["missing"].Success)
	assert.Equal(t, "Not Found", got["missing"].ErrorMsg)
}
