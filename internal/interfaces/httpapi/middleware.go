package httpapi

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
	"github.com/wicketwatch/wicketwatch/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// RequireInternalJobToken gates job endpoints behind the X-Internal-Job-Token
// header. An unconfigured token disables the endpoint rather than opening it.
func RequireInternalJobToken(token string, next http.Handler) http.Handler {
	expected := strings.TrimSpace(token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequireInternalJobToken")
		defer span.End()

		if expected == "" {
			writeError(ctx, w, fmt.Errorf("%w: internal job token is not configured", usecase.ErrDependencyUnavailable))
			return
		}

		provided := strings.TrimSpace(r.Header.Get("X-Internal-Job-Token"))
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			writeError(ctx, w, fmt.Errorf("%w: invalid internal job token", usecase.ErrUnauthorized))
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func RequestLogging(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequestLogging")
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(started).Milliseconds(),
		}
		if spanContext := trace.SpanContextFromContext(ctx); spanContext.IsValid() {
			fields = append(fields,
				"trace_id", spanContext.TraceID().String(),
				"span_id", spanContext.SpanID().String(),
			)
		}
		logger.InfoContext(ctx, "http request", fields...)
	})
}

func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "wicketwatch-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "/healthz", "/health", "/livez", "/readyz":
		return false
	default:
		return true
	}
}

// originPolicy is the compiled form of the CORS_ALLOWED_ORIGINS setting.
type originPolicy struct {
	allowAny bool
	origins  map[string]struct{}
}

func compileOriginPolicy(allowedOrigins []string) originPolicy {
	policy := originPolicy{origins: make(map[string]struct{}, len(allowedOrigins))}
	for _, origin := range allowedOrigins {
		switch candidate := strings.TrimSpace(origin); candidate {
		case "":
		case "*":
			policy.allowAny = true
		default:
			policy.origins[candidate] = struct{}{}
		}
	}
	return policy
}

func (p originPolicy) allows(origin string) bool {
	if p.allowAny {
		return true
	}
	_, ok := p.origins[origin]
	return ok
}

func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	policy := compileOriginPolicy(allowedOrigins)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.CORS")
		defer span.End()

		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if policy.allows(origin) {
			if policy.allowAny {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Accept,X-Internal-Job-Token")
			w.Header().Set("Access-Control-Max-Age", "600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
