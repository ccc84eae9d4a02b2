package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func preflight(t *testing.T, origin string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Use(CORS())
	r.OPTIONS("/api/login", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowsLocalDevOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)

	origins := []string{
		"http://localhost:5174",
		"http://127.0.0.1:5174",
	}

	for _, origin := range origins {
		rec := preflight(t, origin)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("%s: unexpected status: got=%d want=%d", origin, rec.Code, http.StatusNoContent)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Fatalf("%s: unexpected allow-origin header: got=%q", origin, got)
		}
	}
}

func TestCORSEnvOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const extra = "https://judge.example.com"
	t.Setenv("CORS_ALLOWED_ORIGINS", extra+" , ")

	rec := preflight(t, extra)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != extra {
		t.Fatalf("env origin not allowed: got=%q want=%q", got, extra)
	}

	rec = preflight(t, "https://other.example.com")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unlisted origin allowed: got=%q", got)
	}
}
