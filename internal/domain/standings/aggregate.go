package standings

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/domain/team"
	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
)

// Aggregator folds completed matches into a ranked league table.
type Aggregator struct {
	resolver *team.Resolver
	logger   *logging.Logger
}

func NewAggregator(resolver *team.Resolver, logger *logging.Logger) *Aggregator {
	if resolver == nil {
		resolver = team.NewResolver(team.ResolverConfig{})
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Aggregator{resolver: resolver, logger: logger}
}

type teamTally struct {
	played       int
	wins         int
	losses       int
	noResults    int
	runsScored   int
	oversFaced   float64
	runsConceded int
	oversBowled  float64
	form         []string
}

// Aggregate folds the given facts into per-team cumulative statistics and
// returns the table sorted by (points desc, net run rate desc). Teams tied on
// both keys keep their first-appearance order.
func (a *Aggregator) Aggregate(facts []match.Fact) []TeamStanding {
	tallies := make(map[team.Identity]*teamTally, 10)
	var order []team.Identity

	tallyFor := func(id team.Identity) *teamTally {
		if t, ok := tallies[id]; ok {
			return t
		}
		t := &teamTally{}
		tallies[id] = t
		order = append(order, id)
		return t
	}

	for _, fact := range facts {
		t1 := tallyFor(fact.Team1.Team)
		t2 := tallyFor(fact.Team2.Team)

		t1.played++
		t1.runsScored += fact.Team1.Runs
		t1.oversFaced += fact.Team1.OversFaced
		t1.runsConceded += fact.Team2.Runs
		t1.oversBowled += fact.Team2.OversBowled

		t2.played++
		t2.runsScored += fact.Team2.Runs
		t2.oversFaced += fact.Team2.OversFaced
		t2.runsConceded += fact.Team1.Runs
		t2.oversBowled += fact.Team1.OversBowled

		switch a.winnerOf(fact) {
		case fact.Team1.Team:
			t1.wins++
			t1.form = append(t1.form, FormWin)
			t2.losses++
			t2.form = append(t2.form, FormLoss)
		case fact.Team2.Team:
			t2.wins++
			t2.form = append(t2.form, FormWin)
			t1.losses++
			t1.form = append(t1.form, FormLoss)
		default:
			t1.noResults++
			t2.noResults++
			t1.form = append(t1.form, FormNoResult)
			t2.form = append(t2.form, FormNoResult)
		}
	}

	table := make([]TeamStanding, 0, len(order))
	for _, id := range order {
		t := tallies[id]
		table = append(table, TeamStanding{
			Team:         id,
			Played:       t.played,
			Wins:         t.wins,
			Losses:       t.losses,
			NoResults:    t.noResults,
			RunsScored:   t.runsScored,
			OversFaced:   t.oversFaced,
			RunsConceded: t.runsConceded,
			OversBowled:  t.oversBowled,
			NetRunRate:   netRunRate(t),
			Points:       t.wins * 2,
			RecentForm:   lastN(t.form, recentFormWindow),
		})
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		return table[i].NetRunRate > table[j].NetRunRate
	})
	for i := range table {
		table[i].Position = i + 1
	}

	return table
}

// winnerOf attributes the match to a canonical identity, or "" for a
// no-result. An outcome naming neither side is treated as a no-result rather
// than guessed.
func (a *Aggregator) winnerOf(fact match.Fact) team.Identity {
	label, ok := match.WinnerLabel(fact.Outcome)
	if !ok {
		return ""
	}
	winner, _ := a.resolver.Resolve(label)
	if winner != fact.Team1.Team && winner != fact.Team2.Team {
		a.logger.Warn("outcome winner matches neither side, counting as no-result",
			"outcome", fact.Outcome,
			"winner", winner.String(),
		)
		return ""
	}
	return winner
}

// netRunRate is (runs scored / overs faced) - (runs conceded / overs bowled),
// rounded to three decimals; 0 when either denominator is zero.
func netRunRate(t *teamTally) float64 {
	if t.oversFaced == 0 || t.oversBowled == 0 {
		return 0
	}
	nrr := float64(t.runsScored)/t.oversFaced - float64(t.runsConceded)/t.oversBowled
	rounded, _ := decimal.NewFromFloat(nrr).Round(3).Float64()
	return rounded
}

func lastN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
