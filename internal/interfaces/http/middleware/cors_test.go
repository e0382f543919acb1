package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// corsEngine serves the public catalog behind CORSWithConfig
func corsEngine(cfg CORSConfig) *gin.Engine {
	engine := gin.New()
	engine.Use(CORSWithConfig(cfg))
	engine.GET("/api/v1/catalog", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return engine
}

func corsRequest(engine *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1/catalog", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCORSWithConfig(t *testing.T) {
	storefront := DefaultCORSConfig()
	storefront.AllowOrigins = []string{"https://vitrine.example.com", "http://localhost:5173"}

	wildcard := DefaultCORSConfig()
	wildcard.AllowOrigins = []string{"*"}

	tests := []struct {
		name            string
		cfg             CORSConfig
		method          string
		origin          string
		wantStatus      int
		wantAllowOrigin string
		wantCredentials string
	}{
		{"default config refuses cross-origin", DefaultCORSConfig(), http.MethodGet, "https://evil.example.com", http.StatusOK, "", ""},
		{"same-origin request passes", DefaultCORSConfig(), http.MethodGet, "", http.StatusOK, "", ""},
		{"listed storefront origin", storefront, http.MethodGet, "https://vitrine.example.com", http.StatusOK, "https://vitrine.example.com", "true"},
		{"second listed origin", storefront, http.MethodGet, "http://localhost:5173", http.StatusOK, "http://localhost:5173", "true"},
		{"unlisted origin", storefront, http.MethodGet, "https://evil.example.com", http.StatusOK, "", ""},
		{"preflight from listed origin", storefront, http.MethodOptions, "https://vitrine.example.com", http.StatusNoContent, "https://vitrine.example.com", "true"},
		{"preflight from unlisted origin", storefront, http.MethodOptions, "https://evil.example.com", http.StatusNoContent, "", ""},
		{"wildcard never sends credentials", wildcard, http.MethodGet, "https://any.example.com", http.StatusOK, "*", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := corsRequest(corsEngine(tt.cfg), tt.method, tt.origin)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantAllowOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, w.Header().Get("Access-Control-Allow-Credentials"))
			if tt.wantAllowOrigin == "" {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}

func TestCORSWithConfig_AllowedHeaders(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://vitrine.example.com"}
	cfg.MaxAge = 90 * time.Minute

	w := corsRequest(corsEngine(cfg), http.MethodOptions, "https://vitrine.example.com")

	assert.Equal(t, "GET, POST, PUT, DELETE, PATCH, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), RequestIDHeader)
	// seconds as a decimal string
	assert.Equal(t, "5400", w.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_DefaultRefusesCrossOrigin(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS())
	engine.GET("/api/v1/catalog", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := corsRequest(engine, http.MethodGet, "https://vitrine.example.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Empty(t, cfg.AllowOrigins)
	assert.Contains(t, cfg.AllowMethods, http.MethodPatch, "visibility toggles use PATCH")
	assert.Contains(t, cfg.AllowHeaders, "Authorization")
	assert.True(t, cfg.AllowCredentials, "the refresh cookie needs credentials")
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
}

func TestCORSWithConfig_VaryOrigin(t *testing.T) {
	listed := DefaultCORSConfig()
	listed.AllowOrigins = []string{"https://vitrine.example.com"}
	w := corsRequest(corsEngine(listed), http.MethodGet, "https://evil.example.com")
	assert.Equal(t, "Origin", w.Header().Get("Vary"), "caches must key on Origin")

	wildcard := DefaultCORSConfig()
	wildcard.AllowOrigins = []string{"*"}
	w = corsRequest(corsEngine(wildcard), http.MethodGet, "https://any.example.com")
	assert.Empty(t, w.Header().Get("Vary"))
}
