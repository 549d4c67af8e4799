package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prasetyadi/volley-club/internal/platform/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowAll(t *testing.T) {
	handler := CORS([]string{"*"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/players", nil)
	req.Header.Set("Origin", "https://club.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want %q", got, "*")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCORSAllowedOriginEchoed(t *testing.T) {
	handler := CORS([]string{"https://club.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/players", nil)
	req.Header.Set("Origin", "https://club.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://club.example.com" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Fatalf("Vary = %q, want Origin", got)
	}
}

func TestCORSDisallowedOriginGetsNoHeaders(t *testing.T) {
	handler := CORS([]string{"https://club.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/players", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want empty", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	called := false
	handler := CORS([]string{"*"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/players", nil)
	req.Header.Set("Origin", "https://club.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if called {
		t.Fatal("next handler should not run on preflight")
	}
}

func TestCORSNoOriginPassesThrough(t *testing.T) {
	handler := CORS([]string{"https://club.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/players", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want empty", got)
	}
}

func TestRecoverPanicReturnsInternalError(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/players", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api/health", false},
		{"/healthz", false},
		{"/readyz", false},
		{"/api/players", true},
		{"/", true},
	}
	for _, tt := range tests {
		if got := shouldTraceRequest(tt.path); got != tt.want {
			t.Fatalf("shouldTraceRequest(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
