package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/wicketwatch/wicketwatch/internal/domain/ledger"
	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/domain/standings"
)

// LedgerService serves reads from the last successfully merged ledger state.
// It never triggers acquisition; a failed refresh leaves these answers
// stale but valid.
type LedgerService struct {
	repo ledger.Repository
}

func NewLedgerService(repo ledger.Repository) *LedgerService {
	return &LedgerService{repo: repo}
}

func (s *LedgerService) Standings(ctx context.Context) ([]standings.TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.Standings")
	defer span.End()

	table, found, err := s.repo.Standings(ctx)
	if err != nil {
		return nil, fmt.Errorf("read standings: %w", err)
	}
	if !found {
		return []standings.TeamStanding{}, nil
	}
	return table, nil
}

// PastMatches returns decided matches, most recent first.
func (s *LedgerService) PastMatches(ctx context.Context) ([]match.Fact, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.PastMatches")
	defer span.End()

	facts, err := s.repo.PastMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("read past matches: %w", err)
	}
	sort.SliceStable(facts, func(i, j int) bool {
		return facts[i].DateTime.After(facts[j].DateTime)
	})
	return facts, nil
}

// UpcomingMatches returns unplayed fixtures, soonest first.
func (s *LedgerService) UpcomingMatches(ctx context.Context) ([]match.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.UpcomingMatches")
	defer span.End()

	fixtures, err := s.repo.UpcomingFixtures(ctx)
	if err != nil {
		return nil, fmt.Errorf("read upcoming fixtures: %w", err)
	}
	sort.SliceStable(fixtures, func(i, j int) bool {
		return fixtures[i].DateTime.Before(fixtures[j].DateTime)
	})
	return fixtures, nil
}

func (s *LedgerService) Metadata(ctx context.Context) (ledger.Metadata, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.Metadata")
	defer span.End()

	meta, found, err := s.repo.Metadata(ctx)
	if err != nil {
		return ledger.Metadata{}, fmt.Errorf("read ledger metadata: %w", err)
	}
	if !found {
		return ledger.Metadata{}, fmt.Errorf("%w: ledger metadata", ErrNotFound)
	}
	return meta, nil
}
