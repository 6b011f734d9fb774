package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performRequest(origins []string, method, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(New(origins))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	w := performRequest(nil, http.MethodOptions, "http://portal.example")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Authorization, Content-Type, X-Request-ID", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSAllowedOriginEchoedWithCredentials(t *testing.T) {
	w := performRequest([]string{"http://portal.example"}, http.MethodGet, "http://portal.example")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://portal.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSDisallowedOriginGetsNoAllowHeader(t *testing.T) {
	w := performRequest([]string{"http://portal.example"}, http.MethodGet, "http://evil.example")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSEmptyListAllowsAny(t *testing.T) {
	w := performRequest(nil, http.MethodGet, "http://anywhere.example")

	assert.Equal(t, "http://anywhere.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSTrailingSlashNormalised(t *testing.T) {
	w := performRequest([]string{"http://portal.example/"}, http.MethodGet, "http://portal.example")

	assert.Equal(t, "http://portal.example", w.Header().Get("Access-Control-Allow-Origin"))
}
