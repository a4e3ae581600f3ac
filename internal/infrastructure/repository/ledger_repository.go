// Package repository adapts the document store to the ledger's domain
// repository interface.
package repository

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/wicketwatch/wicketwatch/internal/domain/ledger"
	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/domain/standings"
	"github.com/wicketwatch/wicketwatch/internal/infrastructure/docstore"
)

// Snapshot keys inside docstore.CollectionSnapshots.
const (
	keyStandings = "standings"
	keyMetadata  = "metadata"
)

type LedgerRepository struct {
	store docstore.Store
}

func NewLedgerRepository(store docstore.Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

func (r *LedgerRepository) Standings(ctx context.Context) ([]standings.TeamStanding, bool, error) {
	var table []standings.TeamStanding
	_, found, err := r.store.Get(ctx, docstore.CollectionSnapshots, keyStandings, &table)
	if err != nil {
		return nil, false, fmt.Errorf("get standings snapshot: %w", err)
	}
	return table, found, nil
}

func (r *LedgerRepository) ReplaceStandings(ctx context.Context, table []standings.TeamStanding) error {
	if _, err := r.store.Set(ctx, docstore.CollectionSnapshots, keyStandings, table); err != nil {
		return fmt.Errorf("replace standings snapshot: %w", err)
	}
	return nil
}

func (r *LedgerRepository) PastMatch(ctx context.Context, fingerprint string) (match.Fact, bool, error) {
	var fact match.Fact
	_, found, err := r.store.Get(ctx, docstore.CollectionPastMatches, fingerprint, &fact)
	if err != nil {
		return match.Fact{}, false, fmt.Errorf("get past match %s: %w", fingerprint, err)
	}
	return fact, found, nil
}

func (r *LedgerRepository) PutPastMatch(ctx context.Context, fingerprint string, fact match.Fact) error {
	if _, err := r.store.Set(ctx, docstore.CollectionPastMatches, fingerprint, fact); err != nil {
		return fmt.Errorf("put past match %s: %w", fingerprint, err)
	}
	return nil
}

func (r *LedgerRepository) PastMatches(ctx context.Context) ([]match.Fact, error) {
	var facts []match.Fact
	err := r.store.Stream(ctx, docstore.CollectionPastMatches, func(key string, raw []byte) error {
		var fact match.Fact
		if err := sonic.Unmarshal(raw, &fact); err != nil {
			return fmt.Errorf("unmarshal past match %s: %w", key, err)
		}
		facts = append(facts, fact)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("stream past matches: %w", err)
	}
	return facts, nil
}

func (r *LedgerRepository) UpcomingFixture(ctx context.Context, fingerprint string) (match.Fixture, bool, error) {
	var fixture match.Fixture
	_, found, err := r.store.Get(ctx, docstore.CollectionUpcomingMatches, fingerprint, &fixture)
	if err != nil {
		return match.Fixture{}, false, fmt.Errorf("get upcoming fixture %s: %w", fingerprint, err)
	}
	return fixture, found, nil
}

func (r *LedgerRepository) PutUpcomingFixture(ctx context.Context, fingerprint string, fixture match.Fixture) error {
	if _, err := r.store.Set(ctx, docstore.CollectionUpcomingMatches, fingerprint, fixture); err != nil {
		return fmt.Errorf("put upcoming fixture %s: %w", fingerprint, err)
	}
	return nil
}

func (r *LedgerRepository) DeleteUpcomingFixture(ctx context.Context, fingerprint string) error {
	if err := r.store.Delete(ctx, docstore.CollectionUpcomingMatches, fingerprint); err != nil {
		return fmt.Errorf("delete upcoming fixture %s: %w", fingerprint, err)
	}
	return nil
}

func (r *LedgerRepository) UpcomingFixtures(ctx context.Context) ([]match.Fixture, error) {
	var fixtures []match.Fixture
	err := r.store.Stream(ctx, docstore.CollectionUpcomingMatches, func(key string, raw []byte) error {
		var fixture match.Fixture
		if err := sonic.Unmarshal(raw, &fixture); err != nil {
			return fmt.Errorf("unmarshal upcoming fixture %s: %w", key, err)
		}
		fixtures = append(fixtures, fixture)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("stream upcoming fixtures: %w", err)
	}
	return fixtures, nil
}

// Metadata stamps LastRefreshed from the stored document's write time, so
// freshness reflects the last successful persist rather than an in-process
// clock.
func (r *LedgerRepository) Metadata(ctx context.Context) (ledger.Metadata, bool, error) {
	var meta ledger.Metadata
	updatedAt, found, err := r.store.Get(ctx, docstore.CollectionSnapshots, keyMetadata, &meta)
	if err != nil {
		return ledger.Metadata{}, false, fmt.Errorf("get ledger metadata: %w", err)
	}
	if !found {
		return ledger.Metadata{}, false, nil
	}
	meta.LastRefreshed = updatedAt
	return meta, true, nil
}

func (r *LedgerRepository) PutMetadata(ctx context.Context, meta ledger.Metadata) error {
	if _, err := r.store.Set(ctx, docstore.CollectionSnapshots, keyMetadata, meta); err != nil {
		return fmt.Errorf("put ledger metadata: %w", err)
	}
	return nil
}

var _ ledger.Repository = (*LedgerRepository)(nil)
