package standings

import (
	"testing"
	"time"

	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/domain/team"
)

func fact(day int, t1 team.Identity, r1 int, o1 float64, t2 team.Identity, r2 int, o2 float64, outcome string) match.Fact {
	return match.Fact{
		DateTime: time.Date(2026, 4, day, 19, 30, 0, 0, time.UTC),
		Team1:    match.Innings{Team: t1, Runs: r1, OversFaced: o1, OversBowled: o1},
		Team2:    match.Innings{Team: t2, Runs: r2, OversFaced: o2, OversBowled: o2},
		Outcome:  outcome,
	}
}

func TestAggregate_CountersAndInvariants(t *testing.T) {
	agg := NewAggregator(nil, nil)

	facts := []match.Fact{
		fact(1, team.MumbaiIndians, 180, 20, team.ChennaiSuperKings, 175, 20, "Mumbai beat Chennai by 5 runs"),
		fact(2, team.ChennaiSuperKings, 190, 20, team.MumbaiIndians, 160, 20, "Chennai beat Mumbai by 30 runs"),
		fact(3, team.MumbaiIndians, 100, 12, team.RajasthanRoyals, 40, 6, "Match abandoned due to rain"),
	}

	table := agg.Aggregate(facts)
	if len(table) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table))
	}

	for _, row := range table {
		if row.Wins+row.Losses+row.NoResults != row.Played {
			t.Fatalf("row %s breaks W+L+NR == P: %+v", row.Team, row)
		}
		if row.Points != 2*row.Wins {
			t.Fatalf("row %s breaks PTS == 2W: %+v", row.Team, row)
		}
	}

	for i := 1; i < len(table); i++ {
		prev, cur := table[i-1], table[i]
		if cur.Points > prev.Points {
			t.Fatalf("points not non-increasing at row %d", i)
		}
		if cur.Points == prev.Points && cur.NetRunRate > prev.NetRunRate {
			t.Fatalf("NRR not non-increasing within equal points at row %d", i)
		}
		if table[i-1].Position != i || cur.Position != i+1 {
			t.Fatalf("positions must be 1-based and sequential")
		}
	}
}

func TestAggregate_OutcomeAttribution(t *testing.T) {
	agg := NewAggregator(nil, nil)

	table := agg.Aggregate([]match.Fact{
		fact(1, team.MumbaiIndians, 180, 20, team.ChennaiSuperKings, 175, 20, "Mumbai beat Chennai by 6 wickets"),
	})

	byTeam := map[team.Identity]TeamStanding{}
	for _, row := range table {
		byTeam[row.Team] = row
	}

	mi := byTeam[team.MumbaiIndians]
	csk := byTeam[team.ChennaiSuperKings]
	if mi.Wins != 1 || mi.Losses != 0 {
		t.Fatalf("Mumbai should have the win: %+v", mi)
	}
	if csk.Losses != 1 || csk.Wins != 0 {
		t.Fatalf("Chennai should have the loss: %+v", csk)
	}
	if mi.RecentForm[len(mi.RecentForm)-1] != FormWin {
		t.Fatalf("Mumbai recent form should end in W")
	}
}

func TestAggregate_SuperOverWinner(t *testing.T) {
	agg := NewAggregator(nil, nil)

	table := agg.Aggregate([]match.Fact{
		fact(1, team.DelhiCapitals, 170, 20, team.RajasthanRoyals, 170, 20,
			"Delhi Capitals tied with Rajasthan Royals (Delhi Capitals win Super Over)"),
	})

	for _, row := range table {
		switch row.Team {
		case team.DelhiCapitals:
			if row.Wins != 1 {
				t.Fatalf("Super Over winner must get the win: %+v", row)
			}
		case team.RajasthanRoyals:
			if row.Losses != 1 {
				t.Fatalf("Super Over loser must get the loss: %+v", row)
			}
		}
	}
}

func TestAggregate_NoResultIncrementsBoth(t *testing.T) {
	agg := NewAggregator(nil, nil)

	table := agg.Aggregate([]match.Fact{
		fact(1, team.GujaratTitans, 50, 8, team.LucknowSuperGiants, 0, 0, ""),
	})

	for _, row := range table {
		if row.NoResults != 1 {
			t.Fatalf("both teams must record NR: %+v", row)
		}
		if row.RecentForm[0] != FormNoResult {
			t.Fatalf("recent form must record NR: %+v", row)
		}
	}
}

func TestAggregate_NRRZeroWhenNoOvers(t *testing.T) {
	agg := NewAggregator(nil, nil)

	table := agg.Aggregate([]match.Fact{
		fact(1, team.GujaratTitans, 0, 0, team.LucknowSuperGiants, 0, 0, ""),
	})
	for _, row := range table {
		if row.NetRunRate != 0 {
			t.Fatalf("NRR must default to 0 with zero denominators: %+v", row)
		}
	}
}

func TestAggregate_RecentFormKeepsLastFive(t *testing.T) {
	agg := NewAggregator(nil, nil)

	var facts []match.Fact
	for day := 1; day <= 7; day++ {
		facts = append(facts, fact(day, team.MumbaiIndians, 180, 20, team.ChennaiSuperKings, 150, 20,
			"Mumbai beat Chennai by 30 runs"))
	}

	table := agg.Aggregate(facts)
	for _, row := range table {
		if len(row.RecentForm) != 5 {
			t.Fatalf("recent form must truncate to 5, got %d", len(row.RecentForm))
		}
		if row.Played != 7 {
			t.Fatalf("full counters must never truncate: %+v", row)
		}
	}
}

func TestStandingDisplays(t *testing.T) {
	row := TeamStanding{RunsScored: 700, OversFaced: 78.5, RunsConceded: 650, OversBowled: 80}
	if got := row.ForDisplay(); got != "700/78.3" {
		t.Fatalf("ForDisplay = %q", got)
	}
	if got := row.AgainstDisplay(); got != "650/80.0" {
		t.Fatalf("AgainstDisplay = %q", got)
	}
}
