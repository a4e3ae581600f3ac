package observability

import (
	"context"
	"testing"

	"github.com/wicketwatch/wicketwatch/internal/config"
	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "wicketwatch-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	cfg := config.Config{PyroscopeEnabled: false}

	stop, err := InitPyroscope(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}
