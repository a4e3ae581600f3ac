package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/wicketwatch/wicketwatch/internal/config"
	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
)

// InitPprof serves the runtime profiling handlers on their own listener so
// the debug surface never shares a port with the public API. The listener is
// bound eagerly, so a bad PPROF_ADDR fails startup instead of surfacing as a
// background log line. The returned function shuts the server down; it is a
// no-op when pprof is disabled.
func InitPprof(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.PprofEnabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return func(context.Context) error { return nil }, nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("pprof server starting", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()

	return func(ctx context.Context) error {
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
		logger.Info("pprof server stopped")
		return nil
	}, nil
}
