package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://wicketwatch.vercel.app"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/standings", nil)
	req.Header.Set("Origin", "https://wicketwatch.vercel.app")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://wicketwatch.vercel.app" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"*"}, next)

	req := httptest.NewRequest(http.MethodOptions, "/v1/standings", nil)
	req.Header.Set("Origin", "https://wicketwatch.vercel.app")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://allowed.example.com"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/standings", nil)
	req.Header.Set("Origin", "https://not-allowed.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected empty Access-Control-Allow-Origin, got %q", got)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects missing token", func(t *testing.T) {
		handler := RequireInternalJobToken("secret", next)
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("rejects unconfigured token", func(t *testing.T) {
		handler := RequireInternalJobToken("", next)
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh", nil)
		req.Header.Set("X-Internal-Job-Token", "anything")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status 503, got %d", rec.Code)
		}
	})

	t.Run("accepts matching token", func(t *testing.T) {
		handler := RequireInternalJobToken("secret", next)
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh", nil)
		req.Header.Set("X-Internal-Job-Token", "secret")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})
}
