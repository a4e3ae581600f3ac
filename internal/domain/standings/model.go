package standings

import (
	"fmt"

	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/domain/team"
)

// Outcome codes recorded in a team's recent-form sequence.
const (
	FormWin      = "W"
	FormLoss     = "L"
	FormNoResult = "NR"
)

const recentFormWindow = 5

// TeamStanding is one league-table row. Position, NetRunRate and Points are
// derived during aggregation; the counters are cumulative and never
// truncated.
type TeamStanding struct {
	Position     int           `json:"position"`
	Team         team.Identity `json:"team"`
	Played       int           `json:"played"`
	Wins         int           `json:"wins"`
	Losses       int           `json:"losses"`
	NoResults    int           `json:"noResults"`
	RunsScored   int           `json:"runsScored"`
	OversFaced   float64       `json:"oversFaced"`
	RunsConceded int           `json:"runsConceded"`
	OversBowled  float64       `json:"oversBowled"`
	NetRunRate   float64       `json:"netRunRate"`
	Points       int           `json:"points"`
	// RecentForm holds at most the team's last five outcome codes, oldest
	// first.
	RecentForm []string `json:"recentForm"`
}

// ForDisplay renders the "runs scored / overs faced" column.
func (s TeamStanding) ForDisplay() string {
	return fmt.Sprintf("%d/%s", s.RunsScored, match.DecimalToOvers(s.OversFaced))
}

// AgainstDisplay renders the "runs conceded / overs bowled" column.
func (s TeamStanding) AgainstDisplay() string {
	return fmt.Sprintf("%d/%s", s.RunsConceded, match.DecimalToOvers(s.OversBowled))
}
