package match

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/wicketwatch/wicketwatch/internal/domain/team"
)

// Innings is one side's resolved contribution to a completed match.
type Innings struct {
	Team        team.Identity `json:"team"`
	Runs        int           `json:"runs"`
	OversFaced  float64       `json:"oversFaced"`
	OversBowled float64       `json:"oversBowled"`
	Score       string        `json:"score"`
	Overs       string        `json:"overs"`
}

// Fact is a completed match derived from a raw record. It is immutable once
// built; re-derivation replaces the whole value.
type Fact struct {
	DateTime    time.Time `json:"dateTime"`
	DateTimeRaw string    `json:"dateTimeRaw"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Label       string    `json:"label"`
	Team1       Innings   `json:"team1"`
	Team2       Innings   `json:"team2"`
	Outcome     string    `json:"outcome"`
}

// Team1Display renders the side the way the source lists it, score included.
func (f Fact) Team1Display() string {
	return inningsDisplay(f.Team1)
}

func (f Fact) Team2Display() string {
	return inningsDisplay(f.Team2)
}

func inningsDisplay(in Innings) string {
	if in.Score == "" && in.Overs == "" {
		return in.Team.String()
	}
	return fmt.Sprintf("%s - %s (%s)", in.Team, in.Score, in.Overs)
}

// Fingerprint keys the fact in the ledger's past set.
func (f Fact) Fingerprint() string {
	return Fingerprint(f.DateTimeRaw, f.Team1Display(), f.Team2Display())
}

// HeadToHead is the historical record between a fixture's two teams.
type HeadToHead struct {
	Played    int `json:"played"`
	Team1Wins int `json:"team1Wins"`
	Team2Wins int `json:"team2Wins"`
}

// SeasonRecord is one team's prior-year performance.
type SeasonRecord struct {
	Played int     `json:"played"`
	Won    int     `json:"won"`
	WinPct float64 `json:"winPct"`
}

// Probability is the derived win split for an unplayed fixture, in percent.
type Probability struct {
	Team1Pct float64 `json:"team1"`
	Team2Pct float64 `json:"team2"`
}

// Fixture is a scheduled, unplayed match. It is mutated only to attach the
// derived Probability; once its outcome is known it is promoted into a Fact
// and the fixture record retires.
type Fixture struct {
	DateTime    time.Time                      `json:"dateTime"`
	DateTimeRaw string                         `json:"dateTimeRaw"`
	Venue       string                         `json:"venue"`
	Label       string                         `json:"label"`
	Team1       team.Identity                  `json:"team1"`
	Team2       team.Identity                  `json:"team2"`
	Outcome     string                         `json:"outcome,omitempty"`
	HeadToHead  HeadToHead                     `json:"headToHead"`
	LastSeason  map[team.Identity]SeasonRecord `json:"lastSeason,omitempty"`
	Probability *Probability                   `json:"probability,omitempty"`
}

// Fingerprint keys the fixture in the ledger's upcoming set. The same key is
// reused when the fixture is promoted into the past set, which is what makes
// promotion exactly-once.
func (f Fixture) Fingerprint() string {
	return Fingerprint(f.DateTimeRaw, f.Team1.String(), f.Team2.String())
}

// ToFact converts a concluded fixture for promotion into the past set. The
// innings carry no scores; the source never republishes them on the schedule
// page.
func (f Fixture) ToFact() Fact {
	return Fact{
		DateTime:    f.DateTime,
		DateTimeRaw: f.DateTimeRaw,
		Venue:       f.Venue,
		Location:    f.Venue,
		Label:       f.Label,
		Team1:       Innings{Team: f.Team1},
		Team2:       Innings{Team: f.Team2},
		Outcome:     f.Outcome,
	}
}

// Fingerprint derives the stable content key for one match: a hash over the
// raw date-time text and the two team displays. Collision-tolerant in
// practice because the input space is league-sized.
func Fingerprint(dateTime, team1Display, team2Display string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%s_%s", dateTime, team1Display, team2Display)))
	return hex.EncodeToString(sum[:])
}
