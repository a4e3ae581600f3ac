package prediction

import (
	"errors"
	"sync"

	"github.com/dominikbraun/graph"

	"github.com/wicketwatch/wicketwatch/internal/domain/match"
	"github.com/wicketwatch/wicketwatch/internal/domain/team"
	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
)

// Schedule-strength bounds: a decisive transitive edge is worth the full
// +-0.3 tilt, anything subtler stays inside it.
const dominanceScore = 0.3

// ResultGraph is a directed who-beat-whom graph over canonical identities.
// It is rebuilt from the current past-match set each refresh cycle and owned
// by that cycle; it is never shared mutable state.
type ResultGraph struct {
	// mu serializes queries; the graph store makes no promise about
	// concurrent reads and scoring fans out across a worker pool.
	mu     sync.Mutex
	g      graph.Graph[string, string]
	logger *logging.Logger
}

// BuildResultGraph adds one winner->loser edge per decided match. Ties,
// no-results and outcomes naming neither side add no edge. A repeat pairing
// keeps the existing edge; reachability and hop counts stay consistent with
// the "number of wins" reading either way.
func BuildResultGraph(facts []match.Fact, resolver *team.Resolver, logger *logging.Logger) *ResultGraph {
	if resolver == nil {
		resolver = team.NewResolver(team.ResolverConfig{})
	}
	if logger == nil {
		logger = logging.Default()
	}

	g := graph.New(graph.StringHash, graph.Directed())

	for _, fact := range facts {
		t1 := fact.Team1.Team
		t2 := fact.Team2.Team
		_ = g.AddVertex(t1.String())
		_ = g.AddVertex(t2.String())

		label, ok := match.WinnerLabel(fact.Outcome)
		if !ok {
			continue
		}
		winner, _ := resolver.Resolve(label)

		var loser team.Identity
		switch winner {
		case t1:
			loser = t2
		case t2:
			loser = t1
		default:
			continue
		}

		if err := g.AddEdge(winner.String(), loser.String(), graph.EdgeWeight(1)); err != nil &&
			!errors.Is(err, graph.ErrEdgeAlreadyExists) {
			logger.Warn("failed to add result edge",
				"winner", winner.String(),
				"loser", loser.String(),
				"error", err,
			)
		}
	}

	return &ResultGraph{g: g, logger: logger}
}

// ScheduleStrength scores the relative schedule difficulty between two teams
// in [-0.3, 0.3], positive favoring team A. It also returns both transitive
// reachable sets (each including the team itself). Any graph query failure
// degrades the score to 0; it never propagates.
func (rg *ResultGraph) ScheduleStrength(a, b team.Identity) (float64, map[team.Identity]struct{}, map[team.Identity]struct{}) {
	reachA, errA := rg.descendants(a)
	reachB, errB := rg.descendants(b)
	if errA != nil || errB != nil {
		rg.logger.Debug("schedule strength degraded to 0",
			"team_a", a.String(),
			"team_b", b.String(),
			"error_a", errA,
			"error_b", errB,
		)
		return 0, reachA, reachB
	}

	_, bReachableFromA := reachA[b]
	_, aReachableFromB := reachB[a]
	switch {
	case bReachableFromA && !aReachableFromB:
		return dominanceScore, reachA, reachB
	case aReachableFromB && !bReachableFromA:
		return -dominanceScore, reachA, reachB
	}

	meanA, errA := rg.meanDistance(a, reachA)
	meanB, errB := rg.meanDistance(b, reachB)
	if errA != nil || errB != nil {
		rg.logger.Debug("schedule strength degraded to 0",
			"team_a", a.String(),
			"team_b", b.String(),
			"error_a", errA,
			"error_b", errB,
		)
		return 0, reachA, reachB
	}

	// A larger mean distance to the teams one has beaten, transitively, reads
	// as having beaten weaker opposition: tilt toward the other side. The
	// denominator stays max(1, meanA+meanB) even though it produces
	// asymmetric magnitudes for very different set sizes: the floor keeps the
	// early-season case, where both means sit below one, from inflating a
	// few results into a signal larger than outright graph dominance.
	denominator := meanA + meanB
	if denominator < 1 {
		denominator = 1
	}
	return (meanB - meanA) / denominator, reachA, reachB
}

// descendants returns every team reachable from start along win->loss edges,
// including start itself.
func (rg *ResultGraph) descendants(start team.Identity) (map[team.Identity]struct{}, error) {
	rg.mu.Lock()
	adjacency, err := rg.g.AdjacencyMap()
	rg.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if _, ok := adjacency[start.String()]; !ok {
		return nil, graph.ErrVertexNotFound
	}

	reach := map[team.Identity]struct{}{start: {}}
	queue := []string{start.String()}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for next := range adjacency[current] {
			id := team.Identity(next)
			if _, seen := reach[id]; seen {
				continue
			}
			reach[id] = struct{}{}
			queue = append(queue, next)
		}
	}
	return reach, nil
}

// meanDistance is the average shortest-path hop count from start to every
// other member of its reachable set.
func (rg *ResultGraph) meanDistance(start team.Identity, reach map[team.Identity]struct{}) (float64, error) {
	total := 0.0
	for other := range reach {
		if other == start {
			continue
		}
		rg.mu.Lock()
		path, err := graph.ShortestPath(rg.g, start.String(), other.String())
		rg.mu.Unlock()
		if err != nil {
			return 0, err
		}
		total += float64(len(path) - 1)
	}

	count := len(reach) - 1
	if count < 1 {
		count = 1
	}
	return total / float64(count), nil
}
