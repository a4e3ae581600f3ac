package match

import (
	"regexp"
	"strings"
)

var superOverPattern = regexp.MustCompile(`(.+?) tied with (.+?) \((.+?) win Super Over`)

// WinnerLabel extracts the winning team's raw label from a free-text outcome.
// Two shapes are recognized: a Super Over tie ("A tied with B (C win Super
// Over)") naming the tiebreak winner, and the plain "X beat Y ..." form.
// Anything else is a no-result.
func WinnerLabel(outcome string) (string, bool) {
	if m := superOverPattern.FindStringSubmatch(outcome); m != nil {
		return strings.TrimSpace(m[3]), true
	}
	if before, _, found := strings.Cut(outcome, "beat"); found {
		winner := strings.TrimSpace(before)
		if winner != "" {
			return winner, true
		}
	}
	return "", false
}
