package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/cors"
	"github.com/stretchr/testify/assert"
	"go.morpionai.com/account/core"
)

func corsTestHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCorsMiddlewarePreflightDefaults(t *testing.T) {
	handler := CorsMiddleware(nil)(corsTestHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "https://app.morpionai.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", core.ACCESS_TOKEN_HEADER_NAME)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.morpionai.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers")), core.ACCESS_TOKEN_HEADER_NAME)
}

func TestCorsMiddlewareExposesTokenHeader(t *testing.T) {
	handler := CorsMiddleware(nil)(corsTestHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check-login", nil)
	req.Header.Set("Origin", "https://app.morpionai.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Contains(t, strings.ToLower(rec.Header().Get("Access-Control-Expose-Headers")), core.ACCESS_TOKEN_HEADER_NAME)
}

func TestCorsMiddlewareOriginOverride(t *testing.T) {
	opts := &cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return origin == "https://trusted.morpionai.com"
		},
	}
	handler := CorsMiddleware(opts)(corsTestHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check-login", nil)
	req.Header.Set("Origin", "https://evil.example")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
