package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/wicketwatch/wicketwatch/external/toisports"
	"github.com/wicketwatch/wicketwatch/internal/config"
	"github.com/wicketwatch/wicketwatch/internal/domain/ledger"
	"github.com/wicketwatch/wicketwatch/internal/domain/prediction"
	"github.com/wicketwatch/wicketwatch/internal/domain/standings"
	"github.com/wicketwatch/wicketwatch/internal/domain/team"
	"github.com/wicketwatch/wicketwatch/internal/infrastructure/docstore"
	"github.com/wicketwatch/wicketwatch/internal/infrastructure/docstore/memory"
	"github.com/wicketwatch/wicketwatch/internal/infrastructure/docstore/postgres"
	"github.com/wicketwatch/wicketwatch/internal/infrastructure/repository"
	cacherepo "github.com/wicketwatch/wicketwatch/internal/infrastructure/repository/cache"
	"github.com/wicketwatch/wicketwatch/internal/interfaces/httpapi"
	basecache "github.com/wicketwatch/wicketwatch/internal/platform/cache"
	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
	"github.com/wicketwatch/wicketwatch/internal/platform/resilience"
	"github.com/wicketwatch/wicketwatch/internal/usecase"
)

const refreshJobTimeout = 5 * time.Minute

// App bundles the HTTP server with the background refresh schedule and the
// resources both share.
type App struct {
	Server *http.Server

	cron           *cron.Cron
	db             *sqlx.DB
	refreshService *usecase.RefreshService
	refreshOnStart bool
	logger         *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var (
		store docstore.Store
		db    *sqlx.DB
	)
	if cfg.DBURL == "" {
		logger.Info("docstore backend", "driver", "memory")
		store = memory.NewStore()
	} else {
		conn, err := sqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("docstore backend", "driver", "postgres", "database", dbNameFromURL(cfg.DBURL))
		db = conn
		store = postgres.NewStore(conn)
	}

	var repo ledger.Repository = repository.NewLedgerRepository(store)
	if cfg.CacheEnabled {
		repo = cacherepo.NewLedgerRepository(repo, basecache.NewStore(cfg.CacheTTL))
	}

	resolver := team.NewResolver(team.ResolverConfig{Logger: logger})
	aggregator := standings.NewAggregator(resolver, logger)
	model := prediction.NewWinProbabilityModel(resolver, logger)

	source := toisports.NewClient(toisports.ClientConfig{
		BaseURL:             cfg.SourceBaseURL,
		UserAgent:           cfg.SourceUserAgent,
		Timeout:             cfg.SourceTimeout,
		MaxRetries:          cfg.SourceMaxRetries,
		FetchFixtureDetails: cfg.SourceFetchFixtureDetails,
		Logger:              logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SourceCircuitEnabled,
			FailureThreshold: cfg.SourceCircuitFailureCount,
			OpenTimeout:      cfg.SourceCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SourceCircuitHalfOpenMaxReq,
		},
	})

	refreshService := usecase.NewRefreshService(repo, source, resolver, aggregator, model, usecase.RefreshConfig{
		StalenessWindow: cfg.LedgerStalenessWindow,
		ScoringWorkers:  cfg.ScoringWorkers,
	}, logger.Named("refresh"))
	ledgerService := usecase.NewLedgerService(repo)

	handler := httpapi.NewHandler(ledgerService, refreshService, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	application := &App{
		Server:         server,
		cron:           cron.New(),
		db:             db,
		refreshService: refreshService,
		refreshOnStart: cfg.RefreshOnStart,
		logger:         logger,
	}

	if _, err := application.cron.AddFunc(cfg.RefreshSchedule, application.runScheduledRefresh); err != nil {
		return nil, fmt.Errorf("parse REFRESH_SCHEDULE %q: %w", cfg.RefreshSchedule, err)
	}

	return application, nil
}

// Start launches the refresh schedule; the caller owns Server.ListenAndServe.
func (a *App) Start() {
	a.cron.Start()
	if a.refreshOnStart {
		go a.runScheduledRefresh()
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	cronCtx := a.cron.Stop()
	select {
	case <-cronCtx.Done():
	case <-ctx.Done():
		a.logger.Warn("refresh job still running at shutdown deadline")
	}

	if err := a.Server.Shutdown(ctx); err != nil {
		return err
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return err
		}
	}

	return nil
}

func (a *App) runScheduledRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshJobTimeout)
	defer cancel()

	result, err := a.refreshService.Refresh(ctx, false)
	if err != nil {
		a.logger.ErrorContext(ctx, "scheduled refresh failed", "error", err)
		return
	}

	a.logger.InfoContext(ctx, "scheduled refresh finished",
		"forced", result.Forced,
		"past_inserted", result.PastInserted,
		"fixtures_inserted", result.FixturesInserted,
		"fixtures_promoted", result.FixturesPromoted,
		"standings_replaced", result.StandingsReplaced,
	)
}
