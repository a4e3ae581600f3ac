package prediction

import (
	"math"

	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/domain/standings"
	"github.com/wicketwatch/wicketwatch/internal/domain/team"
	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
)

// Signal weights. They sum to 1 so the weighted total stays in the logistic
// transform's useful range.
const (
	weightHeadToHead = 0.4
	weightForm       = 0.2
	weightNetRunRate = 0.1
	weightSchedule   = 0.1
	weightLastSeason = 0.2
)

const (
	logisticSteepness = 3.0
	probabilityFloor  = 0.05
	probabilityCeil   = 0.95
	neutralWinPct     = 50.0
)

// WinProbabilityModel derives a percentage win split for unplayed fixtures
// from the season's decided results and current standings.
type WinProbabilityModel struct {
	resolver *team.Resolver
	logger   *logging.Logger
}

func NewWinProbabilityModel(resolver *team.Resolver, logger *logging.Logger) *WinProbabilityModel {
	if resolver == nil {
		resolver = team.NewResolver(team.ResolverConfig{})
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WinProbabilityModel{resolver: resolver, logger: logger}
}

// Score attaches a Probability to every fixture in place. The result graph
// and standings index are built once and shared across fixtures, so scoring a
// full schedule is one pass over the past results.
func (m *WinProbabilityModel) Score(fixtures []*match.Fixture, table []standings.TeamStanding, facts []match.Fact) {
	rg := BuildResultGraph(facts, m.resolver, m.logger)

	rows := make(map[team.Identity]standings.TeamStanding, len(table))
	for _, row := range table {
		rows[row.Team] = row
	}

	for _, fixture := range fixtures {
		m.ScoreFixture(fixture, rows, rg)
	}
}

// ScoreFixture combines the five signals into a weighted total, pushes it
// through a logistic transform and clamps the split so neither side is ever
// shown as certain.
func (m *WinProbabilityModel) ScoreFixture(fixture *match.Fixture, rows map[team.Identity]standings.TeamStanding, rg *ResultGraph) {
	headToHead := headToHeadScore(fixture.HeadToHead)

	row1, ok1 := rows[fixture.Team1]
	row2, ok2 := rows[fixture.Team2]

	var form, netRunRate float64
	if ok1 && ok2 {
		// Each side's form value lives in [-1, 1], so the raw differential
		// can reach ±2; clamp it back so a runaway streak pairing cannot
		// outweigh the other signals.
		form = formValue(row1.RecentForm) - formValue(row2.RecentForm)
		form = math.Max(-1, math.Min(1, form))
		netRunRate = math.Tanh((row1.NetRunRate - row2.NetRunRate) / 2)
	}

	schedule, _, _ := rg.ScheduleStrength(fixture.Team1, fixture.Team2)
	lastSeason := lastSeasonScore(fixture)

	total := weightHeadToHead*headToHead +
		weightForm*form +
		weightNetRunRate*netRunRate +
		weightSchedule*schedule +
		weightLastSeason*lastSeason

	p := 1 / (1 + math.Exp(-total*logisticSteepness))
	p = math.Max(probabilityFloor, math.Min(probabilityCeil, p))

	fixture.Probability = &match.Probability{
		Team1Pct: roundPct(p * 100),
		Team2Pct: roundPct((1 - p) * 100),
	}
}

// headToHeadScore is the win-share differential over the pairing's history,
// 0 when the sides have never met.
func headToHeadScore(h match.HeadToHead) float64 {
	if h.Played <= 0 {
		return 0
	}
	return float64(h.Team1Wins-h.Team2Wins) / float64(h.Played)
}

// formValue weighs a team's recent outcomes with the most recent result at
// full weight and each older one discounted by 0.1, normalized by the window
// length so the value stays in [-1, 1]. The form sequence is stored oldest
// first.
func formValue(form []string) float64 {
	n := len(form)
	if n == 0 {
		return 0
	}

	points := 0.0
	for step := 0; step < n; step++ {
		weight := 1 - float64(step)*0.1
		switch form[n-1-step] {
		case standings.FormWin:
			points += weight
		case standings.FormLoss:
			points -= weight
		}
	}
	return points / float64(n)
}

// lastSeasonScore compares the sides' prior-year win percentages. A team with
// no prior-year record is treated as an even 50%.
func lastSeasonScore(fixture *match.Fixture) float64 {
	pct := func(id team.Identity) float64 {
		record, ok := fixture.LastSeason[id]
		if !ok {
			return neutralWinPct
		}
		return record.WinPct
	}
	return (pct(fixture.Team1) - pct(fixture.Team2)) / 100
}

func roundPct(v float64) float64 {
	return math.Round(v*100) / 100
}
