package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"
	"github.com/wicketwatch/wicketwatch/internal/config"
	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
)

func noopShutdown(context.Context) error { return nil }

// InitUptrace configures the global OpenTelemetry providers to export to
// Uptrace. The returned function flushes and shuts the exporters down.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	switch {
	case !cfg.UptraceEnabled:
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return noopShutdown, nil
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
	)

	return uptrace.Shutdown, nil
}
