package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wicketwatch/wicketwatch/internal/domain/ledger"
	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/domain/team"
	"github.com/wicketwatch/wicketwatch/internal/infrastructure/docstore/memory"
	"github.com/wicketwatch/wicketwatch/internal/infrastructure/repository"
)

func newTestLedgerService(t *testing.T) (*LedgerService, ledger.Repository) {
	t.Helper()
	repo := repository.NewLedgerRepository(memory.NewStore())
	return NewLedgerService(repo), repo
}

func TestLedgerService_StandingsEmptyWithoutSnapshot(t *testing.T) {
	svc, _ := newTestLedgerService(t)

	table, err := svc.Standings(context.Background())
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if table == nil || len(table) != 0 {
		t.Fatalf("table = %v, want empty non-nil slice", table)
	}
}

func TestLedgerService_PastMatchesMostRecentFirst(t *testing.T) {
	svc, repo := newTestLedgerService(t)
	ctx := context.Background()

	days := []int{12, 10, 14}
	for _, day := range days {
		fact := match.Fact{
			DateTime:    time.Date(2026, 4, day, 19, 30, 0, 0, time.UTC),
			DateTimeRaw: time.Date(2026, 4, day, 19, 30, 0, 0, time.UTC).Format(time.RFC3339),
			Team1:       match.Innings{Team: team.ChennaiSuperKings},
			Team2:       match.Innings{Team: team.MumbaiIndians},
		}
		if err := repo.PutPastMatch(ctx, fact.Fingerprint(), fact); err != nil {
			t.Fatalf("PutPastMatch: %v", err)
		}
	}

	facts, err := svc.PastMatches(ctx)
	if err != nil {
		t.Fatalf("PastMatches: %v", err)
	}
	if len(facts) != 3 {
		t.Fatalf("len = %d, want 3", len(facts))
	}
	for i := 1; i < len(facts); i++ {
		if facts[i].DateTime.After(facts[i-1].DateTime) {
			t.Fatalf("facts out of order at %d: %v after %v", i, facts[i].DateTime, facts[i-1].DateTime)
		}
	}
}

func TestLedgerService_UpcomingMatchesSoonestFirst(t *testing.T) {
	svc, repo := newTestLedgerService(t)
	ctx := context.Background()

	days := []int{22, 18, 20}
	for _, day := range days {
		fixture := match.Fixture{
			DateTime:    time.Date(2026, 5, day, 19, 30, 0, 0, time.UTC),
			DateTimeRaw: time.Date(2026, 5, day, 19, 30, 0, 0, time.UTC).Format(time.RFC3339),
			Team1:       team.RajasthanRoyals,
			Team2:       team.GujaratTitans,
		}
		if err := repo.PutUpcomingFixture(ctx, fixture.Fingerprint(), fixture); err != nil {
			t.Fatalf("PutUpcomingFixture: %v", err)
		}
	}

	fixtures, err := svc.UpcomingMatches(ctx)
	if err != nil {
		t.Fatalf("UpcomingMatches: %v", err)
	}
	if len(fixtures) != 3 {
		t.Fatalf("len = %d, want 3", len(fixtures))
	}
	for i := 1; i < len(fixtures); i++ {
		if fixtures[i].DateTime.Before(fixtures[i-1].DateTime) {
			t.Fatalf("fixtures out of order at %d", i)
		}
	}
}

func TestLedgerService_MetadataNotFound(t *testing.T) {
	svc, repo := newTestLedgerService(t)
	ctx := context.Background()

	if _, err := svc.Metadata(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	want := ledger.Metadata{LastPastMatch: time.Date(2026, 4, 14, 19, 30, 0, 0, time.UTC)}
	if err := repo.PutMetadata(ctx, want); err != nil {
		t.Fatalf("PutMetadata: %v", err)
	}

	got, err := svc.Metadata(ctx)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if !got.LastPastMatch.Equal(want.LastPastMatch) {
		t.Fatalf("LastPastMatch = %v", got.LastPastMatch)
	}
	if got.LastRefreshed.IsZero() {
		t.Fatal("LastRefreshed not stamped from the stored document")
	}
}
