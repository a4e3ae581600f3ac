package ledger

import (
	"context"

	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/domain/standings"
)

// Repository describes ledger persistence needs from use cases. Matches are
// keyed by their fingerprint; a fingerprint moves from the upcoming set to
// the past set exactly once, when the result is known.
type Repository interface {
	Standings(ctx context.Context) ([]standings.TeamStanding, bool, error)
	ReplaceStandings(ctx context.Context, table []standings.TeamStanding) error

	PastMatch(ctx context.Context, fingerprint string) (match.Fact, bool, error)
	PutPastMatch(ctx context.Context, fingerprint string, fact match.Fact) error
	PastMatches(ctx context.Context) ([]match.Fact, error)

	UpcomingFixture(ctx context.Context, fingerprint string) (match.Fixture, bool, error)
	PutUpcomingFixture(ctx context.Context, fingerprint string, fixture match.Fixture) error
	DeleteUpcomingFixture(ctx context.Context, fingerprint string) error
	UpcomingFixtures(ctx context.Context) ([]match.Fixture, error)

	Metadata(ctx context.Context) (Metadata, bool, error)
	PutMetadata(ctx context.Context, meta Metadata) error
}
