package observability

import (
	"github.com/grafana/pyroscope-go"
	"github.com/wicketwatch/wicketwatch/internal/config"
	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
)

// profileTypes is everything the agent can collect; the refresh pipeline's
// worker pools make the mutex and block profiles worth having.
var profileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseObjects,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexCount,
	pyroscope.ProfileMutexDuration,
	pyroscope.ProfileBlockCount,
	pyroscope.ProfileBlockDuration,
}

// InitPyroscope starts continuous profiling when enabled. The returned
// function stops the profiler.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
		},
		ProfileTypes: profileTypes,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
	)

	return profiler.Stop, nil
}
