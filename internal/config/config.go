package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	HTTPAddr                      string
	DBURL                         string
	DBDisablePreparedBinary       bool
	CacheEnabled                  bool
	CacheTTL                      time.Duration
	CORSAllowedOrigins            []string
	ReadTimeout                   time.Duration
	WriteTimeout                  time.Duration
	PprofEnabled                  bool
	PprofAddr                     string
	UptraceEnabled                bool
	UptraceDSN                    string
	PyroscopeEnabled              bool
	PyroscopeServerAddress        string
	PyroscopeAppName              string
	PyroscopeAuthToken            string
	PyroscopeBasicAuthUser        string
	PyroscopeBasicAuthPassword    string
	PyroscopeUploadRate           time.Duration
	SourceBaseURL                 string
	SourceUserAgent               string
	SourceTimeout                 time.Duration
	SourceMaxRetries              int
	SourceFetchFixtureDetails     bool
	SourceCircuitEnabled          bool
	SourceCircuitFailureCount     int
	SourceCircuitOpenTimeout      time.Duration
	SourceCircuitHalfOpenMaxReq   int
	RefreshSchedule               string
	RefreshOnStart                bool
	LedgerStalenessWindow         time.Duration
	ScoringWorkers                int
	InternalJobToken              string
	LogLevel                      logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofAddr == "" {
		pprofAddr = ":6060"
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	sourceTimeout, err := time.ParseDuration(getEnv("SOURCE_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_TIMEOUT: %w", err)
	}
	if sourceTimeout <= 0 {
		return Config{}, fmt.Errorf("SOURCE_TIMEOUT must be > 0")
	}
	sourceMaxRetries, err := getEnvAsInt("SOURCE_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_MAX_RETRIES: %w", err)
	}
	if sourceMaxRetries < 0 {
		return Config{}, fmt.Errorf("SOURCE_MAX_RETRIES must be >= 0")
	}
	sourceFetchFixtureDetails, err := strconv.ParseBool(getEnv("SOURCE_FETCH_FIXTURE_DETAILS", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_FETCH_FIXTURE_DETAILS: %w", err)
	}
	sourceCircuitEnabled, err := strconv.ParseBool(getEnv("SOURCE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_CIRCUIT_ENABLED: %w", err)
	}
	sourceCircuitFailureCount, err := getEnvAsInt("SOURCE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if sourceCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SOURCE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	sourceCircuitOpenTimeout, err := time.ParseDuration(getEnv("SOURCE_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if sourceCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SOURCE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	sourceCircuitHalfOpenMaxReq, err := getEnvAsInt("SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if sourceCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	refreshSchedule := strings.TrimSpace(getEnv("REFRESH_SCHEDULE", "@every 15m"))
	if refreshSchedule == "" {
		return Config{}, fmt.Errorf("REFRESH_SCHEDULE cannot be empty")
	}
	refreshOnStart, err := strconv.ParseBool(getEnv("REFRESH_ON_START", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_ON_START: %w", err)
	}
	ledgerStalenessWindow, err := time.ParseDuration(getEnv("LEDGER_STALENESS_WINDOW", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEDGER_STALENESS_WINDOW: %w", err)
	}
	if ledgerStalenessWindow <= 0 {
		return Config{}, fmt.Errorf("LEDGER_STALENESS_WINDOW must be > 0")
	}
	scoringWorkers, err := getEnvAsInt("SCORING_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_WORKERS: %w", err)
	}
	if scoringWorkers < 1 {
		return Config{}, fmt.Errorf("SCORING_WORKERS must be >= 1")
	}

	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 getEnv("APP_SERVICE_NAME", "wicketwatch-api"),
		ServiceVersion:              getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                    getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                       strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   pprofAddr,
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeAuthToken:          strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:      strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:         pyroscopeUploadRate,
		SourceBaseURL:               strings.TrimSpace(getEnv("SOURCE_BASE_URL", "https://timesofindia.indiatimes.com")),
		SourceUserAgent:             strings.TrimSpace(getEnv("SOURCE_USER_AGENT", "")),
		SourceTimeout:               sourceTimeout,
		SourceMaxRetries:            sourceMaxRetries,
		SourceFetchFixtureDetails:   sourceFetchFixtureDetails,
		SourceCircuitEnabled:        sourceCircuitEnabled,
		SourceCircuitFailureCount:   sourceCircuitFailureCount,
		SourceCircuitOpenTimeout:    sourceCircuitOpenTimeout,
		SourceCircuitHalfOpenMaxReq: sourceCircuitHalfOpenMaxReq,
		RefreshSchedule:             refreshSchedule,
		RefreshOnStart:              refreshOnStart,
		LedgerStalenessWindow:       ledgerStalenessWindow,
		ScoringWorkers:              scoringWorkers,
		InternalJobToken:            strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.SourceBaseURL == "" {
		return Config{}, fmt.Errorf("SOURCE_BASE_URL cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
