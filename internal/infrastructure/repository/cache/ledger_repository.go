package cache

import (
	"context"

	"github.com/wicketwatch/wicketwatch/internal/domain/ledger"
	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/domain/standings"
	basecache "github.com/wicketwatch/wicketwatch/internal/platform/cache"
)

const (
	keyStandings    = "ledger:standings"
	keyPastList     = "ledger:past:list"
	keyPastPrefix   = "ledger:past:item:"
	keyUpcomingList = "ledger:upcoming:list"
	keyUpcomingItem = "ledger:upcoming:item:"
	keyMetadata     = "ledger:metadata"
)

// LedgerRepository decorates another ledger repository with read-through
// caching. Writes invalidate the affected keys so readers never see a stale
// entry past the write that changed it.
type LedgerRepository struct {
	next  ledger.Repository
	cache *basecache.Store
}

func NewLedgerRepository(next ledger.Repository, cache *basecache.Store) *LedgerRepository {
	return &LedgerRepository{next: next, cache: cache}
}

var _ ledger.Repository = (*LedgerRepository)(nil)

type cachedStandings struct {
	table []standings.TeamStanding
	found bool
}

func (r *LedgerRepository) Standings(ctx context.Context) ([]standings.TeamStanding, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, keyStandings, func(ctx context.Context) (any, error) {
		table, found, err := r.next.Standings(ctx)
		if err != nil {
			return nil, err
		}
		return cachedStandings{table: append([]standings.TeamStanding(nil), table...), found: found}, nil
	})
	if err != nil {
		return nil, false, err
	}

	cached, _ := v.(cachedStandings)
	return append([]standings.TeamStanding(nil), cached.table...), cached.found, nil
}

func (r *LedgerRepository) ReplaceStandings(ctx context.Context, table []standings.TeamStanding) error {
	if err := r.next.ReplaceStandings(ctx, table); err != nil {
		return err
	}
	r.cache.Delete(ctx, keyStandings)
	return nil
}

type cachedFact struct {
	fact  match.Fact
	found bool
}

func (r *LedgerRepository) PastMatch(ctx context.Context, fingerprint string) (match.Fact, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, keyPastPrefix+fingerprint, func(ctx context.Context) (any, error) {
		fact, found, err := r.next.PastMatch(ctx, fingerprint)
		if err != nil {
			return nil, err
		}
		return cachedFact{fact: fact, found: found}, nil
	})
	if err != nil {
		return match.Fact{}, false, err
	}

	cached, _ := v.(cachedFact)
	return cached.fact, cached.found, nil
}

func (r *LedgerRepository) PutPastMatch(ctx context.Context, fingerprint string, fact match.Fact) error {
	if err := r.next.PutPastMatch(ctx, fingerprint, fact); err != nil {
		return err
	}
	r.cache.Delete(ctx, keyPastPrefix+fingerprint)
	r.cache.Delete(ctx, keyPastList)
	return nil
}

func (r *LedgerRepository) PastMatches(ctx context.Context) ([]match.Fact, error) {
	v, err := r.cache.GetOrLoad(ctx, keyPastList, func(ctx context.Context) (any, error) {
		facts, err := r.next.PastMatches(ctx)
		if err != nil {
			return nil, err
		}
		return append([]match.Fact(nil), facts...), nil
	})
	if err != nil {
		return nil, err
	}

	facts, _ := v.([]match.Fact)
	return append([]match.Fact(nil), facts...), nil
}

type cachedFixture struct {
	fixture match.Fixture
	found   bool
}

func (r *LedgerRepository) UpcomingFixture(ctx context.Context, fingerprint string) (match.Fixture, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, keyUpcomingItem+fingerprint, func(ctx context.Context) (any, error) {
		fixture, found, err := r.next.UpcomingFixture(ctx, fingerprint)
		if err != nil {
			return nil, err
		}
		return cachedFixture{fixture: fixture, found: found}, nil
	})
	if err != nil {
		return match.Fixture{}, false, err
	}

	cached, _ := v.(cachedFixture)
	return cached.fixture, cached.found, nil
}

func (r *LedgerRepository) PutUpcomingFixture(ctx context.Context, fingerprint string, fixture match.Fixture) error {
	if err := r.next.PutUpcomingFixture(ctx, fingerprint, fixture); err != nil {
		return err
	}
	r.cache.Delete(ctx, keyUpcomingItem+fingerprint)
	r.cache.Delete(ctx, keyUpcomingList)
	return nil
}

func (r *LedgerRepository) DeleteUpcomingFixture(ctx context.Context, fingerprint string) error {
	if err := r.next.DeleteUpcomingFixture(ctx, fingerprint); err != nil {
		return err
	}
	r.cache.Delete(ctx, keyUpcomingItem+fingerprint)
	r.cache.Delete(ctx, keyUpcomingList)
	return nil
}

func (r *LedgerRepository) UpcomingFixtures(ctx context.Context) ([]match.Fixture, error) {
	v, err := r.cache.GetOrLoad(ctx, keyUpcomingList, func(ctx context.Context) (any, error) {
		fixtures, err := r.next.UpcomingFixtures(ctx)
		if err != nil {
			return nil, err
		}
		return append([]match.Fixture(nil), fixtures...), nil
	})
	if err != nil {
		return nil, err
	}

	fixtures, _ := v.([]match.Fixture)
	return append([]match.Fixture(nil), fixtures...), nil
}

type cachedMetadata struct {
	meta  ledger.Metadata
	found bool
}

func (r *LedgerRepository) Metadata(ctx context.Context) (ledger.Metadata, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, keyMetadata, func(ctx context.Context) (any, error) {
		meta, found, err := r.next.Metadata(ctx)
		if err != nil {
			return nil, err
		}
		return cachedMetadata{meta: meta, found: found}, nil
	})
	if err != nil {
		return ledger.Metadata{}, false, err
	}

	cached, _ := v.(cachedMetadata)
	return cached.meta, cached.found, nil
}

func (r *LedgerRepository) PutMetadata(ctx context.Context, meta ledger.Metadata) error {
	if err := r.next.PutMetadata(ctx, meta); err != nil {
		return err
	}
	r.cache.Delete(ctx, keyMetadata)
	return nil
}
