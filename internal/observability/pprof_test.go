package observability

import (
	"context"
	"testing"

	"github.com/wicketwatch/wicketwatch/internal/config"
	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
)

func TestInitPprof_Disabled(t *testing.T) {
	cfg := config.Config{PprofEnabled: false}

	stop, err := InitPprof(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init pprof: %v", err)
	}
	if err := stop(context.Background()); err != nil {
		t.Fatalf("stop pprof: %v", err)
	}
}

func TestInitPprof_BindsEagerly(t *testing.T) {
	cfg := config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}

	stop, err := InitPprof(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init pprof: %v", err)
	}
	if err := stop(context.Background()); err != nil {
		t.Fatalf("stop pprof: %v", err)
	}

	if _, err := InitPprof(config.Config{PprofEnabled: true, PprofAddr: "not-an-addr"}, logging.NewNop()); err == nil {
		t.Fatal("expected an unparseable address to fail at init")
	}
}
