package httpapi

import "testing"

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.GetStandings", want: true},
		{name: "middleware span", in: "httpapi.RequestLogging", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldCreateHTTPAPISpan(tt.in)
			if got != tt.want {
				t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

func TestShouldTraceRequest_HealthPaths(t *testing.T) {
	paths := []string{"/healthz", "/health", "/livez", "/readyz", " /healthz "}
	for _, path := range paths {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
}

func TestShouldTraceRequest_NonHealthPaths(t *testing.T) {
	paths := []string{"/v1/standings", "/v1/matches", "/", "/v1/metadata"}
	for _, path := range paths {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}
