package team

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
)

const defaultFuzzyThreshold = 80

// Resolver maps arbitrary raw team labels onto canonical identities. The
// alias table and canonical roster are injected at construction so resolvers
// stay independently testable; nothing here is process-wide state.
type Resolver struct {
	aliases   map[string]Identity
	canonical []Identity
	threshold int
	logger    *logging.Logger
}

type ResolverConfig struct {
	Aliases   map[string]Identity
	Canonical []Identity
	// Threshold is the minimum 0-100 similarity a fuzzy match must reach.
	Threshold int
	Logger    *logging.Logger
}

func NewResolver(cfg ResolverConfig) *Resolver {
	aliases := cfg.Aliases
	if aliases == nil {
		aliases = DefaultAliases()
	}
	canonical := cfg.Canonical
	if len(canonical) == 0 {
		canonical = CanonicalTeams()
	}
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = defaultFuzzyThreshold
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	lowered := make(map[string]Identity, len(aliases))
	for alias, identity := range aliases {
		lowered[strings.ToLower(strings.TrimSpace(alias))] = identity
	}

	return &Resolver{
		aliases:   lowered,
		canonical: canonical,
		threshold: threshold,
		logger:    logger,
	}
}

// Resolve returns the canonical identity for a raw label. Unresolvable input
// is returned unchanged with ok=false; it is a valid observable state, never
// an error.
func (r *Resolver) Resolve(raw string) (Identity, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return Identity(raw), false
	}

	if identity, ok := r.aliases[strings.ToLower(cleaned)]; ok {
		return identity, true
	}

	best, score := r.closestCanonical(cleaned)
	if score > r.threshold {
		r.logger.Info("fuzzy matched team label",
			"label", raw,
			"identity", best.String(),
			"score", score,
		)
		return best, true
	}

	r.logger.Warn("no match found for team label",
		"label", raw,
		"best_candidate", best.String(),
		"score", score,
	)
	return Identity(raw), false
}

func (r *Resolver) closestCanonical(label string) (Identity, int) {
	var best Identity
	bestScore := -1
	for _, candidate := range r.canonical {
		score := tokenSortRatio(label, candidate.String())
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best, bestScore
}

// tokenSortRatio scores similarity after sorting the tokens of both inputs,
// so word-order differences ("Bangalore Royal Challengers") do not penalize
// the match.
func tokenSortRatio(a, b string) int {
	sa := sortTokens(a)
	sb := sortTokens(b)
	if sa == sb {
		return 100
	}

	longest := len(sa)
	if len(sb) > longest {
		longest = len(sb)
	}
	if longest == 0 {
		return 0
	}

	distance := levenshtein.ComputeDistance(sa, sb)
	return (longest - distance) * 100 / longest
}

func sortTokens(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
