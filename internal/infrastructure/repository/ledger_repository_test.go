package repository

import (
	"context"
	"testing"
	"time"

	"github.com/wicketwatch/wicketwatch/internal/domain/ledger"
	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/domain/standings"
	"github.com/wicketwatch/wicketwatch/internal/domain/team"
	"github.com/wicketwatch/wicketwatch/internal/infrastructure/docstore/memory"
)

func TestLedgerRepository_StandingsRoundTrip(t *testing.T) {
	repo := NewLedgerRepository(memory.NewStore())
	ctx := context.Background()

	if _, found, err := repo.Standings(ctx); err != nil || found {
		t.Fatalf("Standings on empty store: found=%v err=%v", found, err)
	}

	table := []standings.TeamStanding{
		{Position: 1, Team: team.GujaratTitans, Played: 3, Wins: 3, Points: 6, NetRunRate: 1.204},
		{Position: 2, Team: team.ChennaiSuperKings, Played: 3, Wins: 2, Losses: 1, Points: 4},
	}
	if err := repo.ReplaceStandings(ctx, table); err != nil {
		t.Fatalf("ReplaceStandings: %v", err)
	}

	got, found, err := repo.Standings(ctx)
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if !found {
		t.Fatal("standings snapshot missing after replace")
	}
	if len(got) != 2 || got[0].Team != team.GujaratTitans || got[0].NetRunRate != 1.204 {
		t.Fatalf("got %+v", got)
	}
}

func TestLedgerRepository_PastMatchByFingerprint(t *testing.T) {
	repo := NewLedgerRepository(memory.NewStore())
	ctx := context.Background()

	fact := match.Fact{
		DateTimeRaw: "Apr 12, Sat, 7:30 PM",
		Venue:       "Wankhede Stadium",
		Team1:       match.Innings{Team: team.MumbaiIndians, Runs: 185, Score: "185/6", Overs: "20.0 ov"},
		Team2:       match.Innings{Team: team.DelhiCapitals, Runs: 170, Score: "170/9", Overs: "20.0 ov"},
		Outcome:     "Mumbai Indians beat Delhi Capitals by 15 runs",
	}
	fp := fact.Fingerprint()

	if _, found, err := repo.PastMatch(ctx, fp); err != nil || found {
		t.Fatalf("PastMatch before put: found=%v err=%v", found, err)
	}
	if err := repo.PutPastMatch(ctx, fp, fact); err != nil {
		t.Fatalf("PutPastMatch: %v", err)
	}

	got, found, err := repo.PastMatch(ctx, fp)
	if err != nil {
		t.Fatalf("PastMatch: %v", err)
	}
	if !found || got.Outcome != fact.Outcome || got.Team1.Runs != 185 {
		t.Fatalf("got found=%v %+v", found, got)
	}

	all, err := repo.PastMatches(ctx)
	if err != nil {
		t.Fatalf("PastMatches: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("PastMatches len = %d", len(all))
	}
}

func TestLedgerRepository_UpcomingFixtureLifecycle(t *testing.T) {
	repo := NewLedgerRepository(memory.NewStore())
	ctx := context.Background()

	fixture := match.Fixture{
		DateTime:    time.Date(2026, 4, 20, 19, 30, 0, 0, time.UTC),
		DateTimeRaw: "Apr 20, Mon, 7:30 PM",
		Venue:       "Eden Gardens",
		Team1:       team.KolkataKnightRiders,
		Team2:       team.RajasthanRoyals,
		HeadToHead:  match.HeadToHead{Played: 2, Team1Wins: 1, Team2Wins: 1},
	}
	fp := fixture.Fingerprint()

	if err := repo.PutUpcomingFixture(ctx, fp, fixture); err != nil {
		t.Fatalf("PutUpcomingFixture: %v", err)
	}

	got, found, err := repo.UpcomingFixture(ctx, fp)
	if err != nil || !found {
		t.Fatalf("UpcomingFixture: found=%v err=%v", found, err)
	}
	if got.Team1 != team.KolkataKnightRiders || got.HeadToHead.Played != 2 {
		t.Fatalf("got %+v", got)
	}
	if !got.DateTime.Equal(fixture.DateTime) {
		t.Fatalf("DateTime = %v, want %v", got.DateTime, fixture.DateTime)
	}

	if err := repo.DeleteUpcomingFixture(ctx, fp); err != nil {
		t.Fatalf("DeleteUpcomingFixture: %v", err)
	}
	if _, found, err := repo.UpcomingFixture(ctx, fp); err != nil || found {
		t.Fatalf("fixture still present after delete: found=%v err=%v", found, err)
	}

	// Deleting again must stay silent; the merge retries promotions.
	if err := repo.DeleteUpcomingFixture(ctx, fp); err != nil {
		t.Fatalf("repeat DeleteUpcomingFixture: %v", err)
	}
}

func TestLedgerRepository_MetadataCarriesWriteTime(t *testing.T) {
	repo := NewLedgerRepository(memory.NewStore())
	ctx := context.Background()

	if _, found, err := repo.Metadata(ctx); err != nil || found {
		t.Fatalf("Metadata on empty store: found=%v err=%v", found, err)
	}

	meta := ledger.Metadata{
		LastPastMatch:   time.Date(2026, 4, 18, 22, 0, 0, 0, time.UTC),
		LastFutureMatch: time.Date(2026, 5, 25, 19, 30, 0, 0, time.UTC),
	}
	before := time.Now()
	if err := repo.PutMetadata(ctx, meta); err != nil {
		t.Fatalf("PutMetadata: %v", err)
	}

	got, found, err := repo.Metadata(ctx)
	if err != nil || !found {
		t.Fatalf("Metadata: found=%v err=%v", found, err)
	}
	if !got.LastPastMatch.Equal(meta.LastPastMatch) || !got.LastFutureMatch.Equal(meta.LastFutureMatch) {
		t.Fatalf("got %+v", got)
	}
	if got.LastRefreshed.Before(before) {
		t.Fatalf("LastRefreshed = %v, want stamped at write time", got.LastRefreshed)
	}
}
