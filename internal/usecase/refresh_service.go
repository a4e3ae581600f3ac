package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/wicketwatch/wicketwatch/internal/domain/ledger"
	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/domain/prediction"
	"github.com/wicketwatch/wicketwatch/internal/domain/standings"
	"github.com/wicketwatch/wicketwatch/internal/domain/team"
	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
)

const (
	defaultStalenessWindow = 24 * time.Hour
	defaultScoringWorkers  = 4
)

// RawInningsEntry is one team's line on the results page, untouched text.
type RawInningsEntry struct {
	Name  string `validate:"required"`
	Score string
	Overs string
}

// RawMatchRecord is one finished match as scraped from the results page.
type RawMatchRecord struct {
	DateTime string `validate:"required"`
	Venue    string
	Location string
	Label    string
	Team1    RawInningsEntry
	Team2    RawInningsEntry
	Outcome  string
}

// RawFixtureRecord is one schedule entry, possibly already decided.
type RawFixtureRecord struct {
	DateTime   string `validate:"required"`
	Venue      string
	Label      string
	Team1      string `validate:"required"`
	Team2      string `validate:"required"`
	Outcome    string
	HeadToHead match.HeadToHead
	// LastSeason is keyed by the raw team label as scraped; identities are
	// resolved during normalization.
	LastSeason map[string]match.SeasonRecord
}

// AcquisitionClient reads the upstream results and schedule pages. A nil
// since means fetch everything; otherwise only records strictly newer than
// since are returned.
type AcquisitionClient interface {
	FetchResults(ctx context.Context, since *time.Time) ([]RawMatchRecord, error)
	FetchSchedule(ctx context.Context, since *time.Time) ([]RawFixtureRecord, error)
}

type RefreshConfig struct {
	// StalenessWindow forces a full refetch once the last successful
	// refresh is older than this.
	StalenessWindow time.Duration
	ScoringWorkers  int
}

type RefreshResult struct {
	Forced            bool      `json:"forced"`
	PastInserted      int       `json:"past_inserted"`
	FixturesInserted  int       `json:"fixtures_inserted"`
	FixturesPromoted  int       `json:"fixtures_promoted"`
	RecordsSkipped    int       `json:"records_skipped"`
	StandingsReplaced bool      `json:"standings_replaced"`
	RefreshedAt       time.Time `json:"refreshed_at"`
}

// RefreshService runs one acquisition-derivation-merge cycle. A cycle is
// idempotent: re-running against identical upstream data changes nothing in
// the ledger.
type RefreshService struct {
	repo       ledger.Repository
	source     AcquisitionClient
	resolver   *team.Resolver
	aggregator *standings.Aggregator
	model      *prediction.WinProbabilityModel
	validate   *validator.Validate
	logger     *logging.Logger

	stalenessWindow time.Duration
	scoringWorkers  int

	// mu keeps cycles strictly sequential; the cron trigger and the manual
	// job endpoint can otherwise overlap.
	mu  sync.Mutex
	now func() time.Time
}

func NewRefreshService(
	repo ledger.Repository,
	source AcquisitionClient,
	resolver *team.Resolver,
	aggregator *standings.Aggregator,
	model *prediction.WinProbabilityModel,
	cfg RefreshConfig,
	logger *logging.Logger,
) *RefreshService {
	if resolver == nil {
		resolver = team.NewResolver(team.ResolverConfig{Logger: logger})
	}
	if aggregator == nil {
		aggregator = standings.NewAggregator(resolver, logger)
	}
	if model == nil {
		model = prediction.NewWinProbabilityModel(resolver, logger)
	}
	if cfg.StalenessWindow <= 0 {
		cfg.StalenessWindow = defaultStalenessWindow
	}
	if cfg.ScoringWorkers <= 0 {
		cfg.ScoringWorkers = defaultScoringWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &RefreshService{
		repo:            repo,
		source:          source,
		resolver:        resolver,
		aggregator:      aggregator,
		model:           model,
		validate:        validator.New(),
		logger:          logger,
		stalenessWindow: cfg.StalenessWindow,
		scoringWorkers:  cfg.ScoringWorkers,
		now:             time.Now,
	}
}

// Refresh runs one full cycle: fetch, normalize, score, merge, persist.
// force discards the incremental fetch window and re-reads everything; it is
// also implied when the last successful refresh is older than the staleness
// window. An acquisition failure aborts before any write, so the ledger
// keeps serving its last merged state.
func (s *RefreshService) Refresh(ctx context.Context, force bool) (RefreshResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.Refresh")
	defer span.End()

	now := s.now()

	meta, metaFound, err := s.repo.Metadata(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("read ledger metadata: %w", err)
	}
	if metaFound && now.Sub(meta.LastRefreshed) > s.stalenessWindow {
		force = true
	}

	var sincePast, sinceFuture *time.Time
	if metaFound && !force {
		past, future := meta.LastPastMatch, meta.LastFutureMatch
		sincePast, sinceFuture = &past, &future
	}

	var rawMatches []RawMatchRecord
	var rawFixtures []RawFixtureRecord
	fetch := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	fetch.Go(func(ctx context.Context) error {
		records, err := s.source.FetchResults(ctx, sincePast)
		if err != nil {
			return fmt.Errorf("%w: results: %v", ErrAcquisitionFailed, err)
		}
		rawMatches = records
		return nil
	})
	fetch.Go(func(ctx context.Context) error {
		records, err := s.source.FetchSchedule(ctx, sinceFuture)
		if err != nil {
			return fmt.Errorf("%w: schedule: %v", ErrAcquisitionFailed, err)
		}
		rawFixtures = records
		return nil
	})
	if err := fetch.Wait(); err != nil {
		return RefreshResult{}, err
	}

	result := RefreshResult{Forced: force, RefreshedAt: now}

	facts, skippedFacts := s.normalizeFacts(rawMatches)
	fixtures, skippedFixtures := s.normalizeFixtures(rawFixtures)
	result.RecordsSkipped = skippedFacts + skippedFixtures

	mutated, err := s.mergePast(ctx, facts, &result)
	if err != nil {
		return RefreshResult{}, err
	}

	// Scoring and standings always work from the full season, not the
	// incremental window, so fetch the complete results set when the cycle
	// was bounded.
	var table []standings.TeamStanding
	if len(fixtures) > 0 || mutated || force {
		seasonFacts := facts
		if sincePast != nil {
			all, err := s.source.FetchResults(ctx, nil)
			if err != nil {
				return RefreshResult{}, fmt.Errorf("%w: full results: %v", ErrAcquisitionFailed, err)
			}
			seasonFacts, _ = s.normalizeFacts(all)
		}
		table = s.aggregator.Aggregate(seasonFacts)
		if err := s.scoreFixtures(fixtures, table, seasonFacts); err != nil {
			return RefreshResult{}, err
		}
	}

	upcomingMutated, err := s.mergeUpcoming(ctx, fixtures, now, &result)
	if err != nil {
		return RefreshResult{}, err
	}
	mutated = mutated || upcomingMutated

	if (len(table) > 0 && mutated) || force {
		if err := s.repo.ReplaceStandings(ctx, table); err != nil {
			return RefreshResult{}, fmt.Errorf("persist standings: %w", err)
		}
		result.StandingsReplaced = true
	}

	if mutated || force {
		if !metaFound {
			meta = ledger.Metadata{}
		}
		if latest, ok := latestDateTime(facts); ok {
			meta.LastPastMatch = latest
		}
		if latest, ok := latestFixtureDateTime(fixtures); ok {
			meta.LastFutureMatch = latest
		}
		if err := s.repo.PutMetadata(ctx, meta); err != nil {
			return RefreshResult{}, fmt.Errorf("persist ledger metadata: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "refresh cycle complete",
		"forced", result.Forced,
		"past_inserted", result.PastInserted,
		"fixtures_inserted", result.FixturesInserted,
		"fixtures_promoted", result.FixturesPromoted,
		"records_skipped", result.RecordsSkipped,
		"standings_replaced", result.StandingsReplaced,
	)
	return result, nil
}

// normalizeFacts turns raw results-page records into match facts. A record
// that fails validation, date parsing or innings resolution is skipped with
// a diagnostic; one bad row never aborts the cycle.
func (s *RefreshService) normalizeFacts(records []RawMatchRecord) ([]match.Fact, int) {
	facts := make([]match.Fact, 0, len(records))
	skipped := 0

	for _, record := range records {
		if err := s.validate.Struct(record); err != nil {
			s.logger.Warn("skipping invalid match record", "error", err)
			skipped++
			continue
		}

		when, err := dateparse.ParseAny(record.DateTime)
		if err != nil {
			s.logger.Warn("skipping match with unparseable date",
				"date_time", record.DateTime,
				"error", err,
			)
			skipped++
			continue
		}

		innings1, err := s.normalizeInnings(record.Team1)
		if err != nil {
			s.logger.Warn("skipping match with malformed innings",
				"team", record.Team1.Name,
				"error", err,
			)
			skipped++
			continue
		}
		innings2, err := s.normalizeInnings(record.Team2)
		if err != nil {
			s.logger.Warn("skipping match with malformed innings",
				"team", record.Team2.Name,
				"error", err,
			)
			skipped++
			continue
		}

		facts = append(facts, match.Fact{
			DateTime:    when,
			DateTimeRaw: record.DateTime,
			Venue:       record.Venue,
			Location:    record.Location,
			Label:       record.Label,
			Team1:       innings1,
			Team2:       innings2,
			Outcome:     record.Outcome,
		})
	}
	return facts, skipped
}

func (s *RefreshService) normalizeInnings(entry RawInningsEntry) (match.Innings, error) {
	identity, _ := s.resolver.Resolve(entry.Name)

	runs, faced, bowled, err := match.ResolveInnings(entry.Score, entry.Overs)
	if err != nil {
		return match.Innings{}, err
	}

	return match.Innings{
		Team:        identity,
		Runs:        runs,
		OversFaced:  faced,
		OversBowled: bowled,
		Score:       entry.Score,
		Overs:       entry.Overs,
	}, nil
}

func (s *RefreshService) normalizeFixtures(records []RawFixtureRecord) ([]*match.Fixture, int) {
	fixtures := make([]*match.Fixture, 0, len(records))
	skipped := 0

	for _, record := range records {
		if err := s.validate.Struct(record); err != nil {
			s.logger.Warn("skipping invalid fixture record", "error", err)
			skipped++
			continue
		}

		when, err := dateparse.ParseAny(record.DateTime)
		if err != nil {
			s.logger.Warn("skipping fixture with unparseable date",
				"date_time", record.DateTime,
				"error", err,
			)
			skipped++
			continue
		}

		team1, _ := s.resolver.Resolve(record.Team1)
		team2, _ := s.resolver.Resolve(record.Team2)

		var lastSeason map[team.Identity]match.SeasonRecord
		if len(record.LastSeason) > 0 {
			lastSeason = make(map[team.Identity]match.SeasonRecord, len(record.LastSeason))
			for label, perf := range record.LastSeason {
				identity, _ := s.resolver.Resolve(label)
				lastSeason[identity] = perf
			}
		}

		fixtures = append(fixtures, &match.Fixture{
			DateTime:    when,
			DateTimeRaw: record.DateTime,
			Venue:       record.Venue,
			Label:       record.Label,
			Team1:       team1,
			Team2:       team2,
			Outcome:     record.Outcome,
			HeadToHead:  record.HeadToHead,
			LastSeason:  lastSeason,
		})
	}
	return fixtures, skipped
}

// scoreFixtures attaches win probabilities, fanning fixtures out across a
// bounded worker pool. The graph and standings index are shared read-only.
func (s *RefreshService) scoreFixtures(fixtures []*match.Fixture, table []standings.TeamStanding, facts []match.Fact) error {
	if len(fixtures) == 0 {
		return nil
	}

	rg := prediction.BuildResultGraph(facts, s.resolver, s.logger)
	rows := make(map[team.Identity]standings.TeamStanding, len(table))
	for _, row := range table {
		rows[row.Team] = row
	}

	workers, err := ants.NewPool(s.scoringWorkers)
	if err != nil {
		return fmt.Errorf("create scoring pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for _, fixture := range fixtures {
		fixture := fixture
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			s.model.ScoreFixture(fixture, rows, rg)
		}); err != nil {
			wg.Done()
			return fmt.Errorf("submit fixture to scoring pool: %w", err)
		}
	}
	wg.Wait()
	return nil
}

// mergePast inserts new facts keyed by fingerprint. First write wins;
// results never change once recorded, so an existing fingerprint is left
// untouched.
func (s *RefreshService) mergePast(ctx context.Context, facts []match.Fact, result *RefreshResult) (bool, error) {
	mutated := false
	for _, fact := range facts {
		fingerprint := fact.Fingerprint()
		_, exists, err := s.repo.PastMatch(ctx, fingerprint)
		if err != nil {
			return mutated, fmt.Errorf("check past match %s: %w", fingerprint, err)
		}
		if exists {
			continue
		}
		if err := s.repo.PutPastMatch(ctx, fingerprint, fact); err != nil {
			return mutated, fmt.Errorf("insert past match %s: %w", fingerprint, err)
		}
		result.PastInserted++
		mutated = true
	}
	return mutated, nil
}

// mergeUpcoming inserts fresh fixtures and promotes concluded ones. A
// fixture whose time has passed or that already carries an outcome moves to
// the past set under the same fingerprint and leaves the upcoming set;
// every step checks current state first so a retried cycle repeats none of
// the writes.
func (s *RefreshService) mergeUpcoming(ctx context.Context, fixtures []*match.Fixture, now time.Time, result *RefreshResult) (bool, error) {
	mutated := false
	for _, fixture := range fixtures {
		fingerprint := fixture.Fingerprint()

		if fixture.DateTime.Before(now) || fixture.Outcome != "" {
			promoted := false
			_, pastExists, err := s.repo.PastMatch(ctx, fingerprint)
			if err != nil {
				return mutated, fmt.Errorf("check promoted match %s: %w", fingerprint, err)
			}
			if !pastExists {
				if err := s.repo.PutPastMatch(ctx, fingerprint, fixture.ToFact()); err != nil {
					return mutated, fmt.Errorf("promote fixture %s: %w", fingerprint, err)
				}
				promoted = true
			}
			_, upcomingExists, err := s.repo.UpcomingFixture(ctx, fingerprint)
			if err != nil {
				return mutated, fmt.Errorf("check upcoming fixture %s: %w", fingerprint, err)
			}
			if upcomingExists {
				if err := s.repo.DeleteUpcomingFixture(ctx, fingerprint); err != nil {
					return mutated, fmt.Errorf("retire promoted fixture %s: %w", fingerprint, err)
				}
				promoted = true
			}
			if promoted {
				result.FixturesPromoted++
				mutated = true
			}
			continue
		}

		_, exists, err := s.repo.UpcomingFixture(ctx, fingerprint)
		if err != nil {
			return mutated, fmt.Errorf("check upcoming fixture %s: %w", fingerprint, err)
		}
		if exists {
			continue
		}
		if err := s.repo.PutUpcomingFixture(ctx, fingerprint, *fixture); err != nil {
			return mutated, fmt.Errorf("insert upcoming fixture %s: %w", fingerprint, err)
		}
		result.FixturesInserted++
		mutated = true
	}
	return mutated, nil
}

func latestDateTime(facts []match.Fact) (time.Time, bool) {
	var latest time.Time
	for _, fact := range facts {
		if fact.DateTime.After(latest) {
			latest = fact.DateTime
		}
	}
	return latest, !latest.IsZero()
}

func latestFixtureDateTime(fixtures []*match.Fixture) (time.Time, bool) {
	var latest time.Time
	for _, fixture := range fixtures {
		if fixture.DateTime.After(latest) {
			latest = fixture.DateTime
		}
	}
	return latest, !latest.IsZero()
}
