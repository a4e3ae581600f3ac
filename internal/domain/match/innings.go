package match

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FullQuotaOvers is the full over quota of the modeled T20 format. A side
// that is bowled out is charged the full quota for run-rate purposes.
const FullQuotaOvers = 20.0

const wicketsAllOut = 10

// ErrMalformedScore marks score or overs text that cannot be parsed. Callers
// skip the offending record and continue; one bad record must never abort a
// whole aggregation cycle.
var ErrMalformedScore = errors.New("malformed score text")

// OversToDecimal converts cricket overs notation to a decimal over count.
// "19.4" means 19 whole overs and 4 balls, i.e. 19 + 4/6. Text without a
// ball component, or with a non-integer fraction, is read as a plain decimal.
func OversToDecimal(text string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, " ov", ""))
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty overs text", ErrMalformedScore)
	}

	if whole, balls, found := strings.Cut(cleaned, "."); found {
		w, errW := strconv.Atoi(whole)
		b, errB := strconv.Atoi(balls)
		if errW == nil && errB == nil {
			return float64(w) + float64(b)/6, nil
		}
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: overs %q", ErrMalformedScore, text)
	}
	return value, nil
}

// DecimalToOvers renders a decimal over count back to "W.B" notation. A ball
// value that rounds to 6 carries into the next whole over.
func DecimalToOvers(value float64) string {
	whole := int(value)
	balls := int((value-float64(whole))*6 + 0.5)
	if balls == 6 {
		whole++
		balls = 0
	}
	return fmt.Sprintf("%d.%d", whole, balls)
}

// ResolveInnings parses one side's score and overs text into runs and the
// overs charged for run-rate purposes. A fully dismissed side ("180/10"), or
// a score with no wickets separator at all, is charged the full over quota
// regardless of the overs actually faced.
func ResolveInnings(scoreText, oversText string) (runs int, oversFaced, oversBowled float64, err error) {
	actualOvers, err := OversToDecimal(oversText)
	if err != nil {
		return 0, 0, 0, err
	}

	cleaned := strings.TrimSpace(scoreText)
	if runsPart, wicketsPart, found := strings.Cut(cleaned, "/"); found {
		runs, err = strconv.Atoi(strings.TrimSpace(runsPart))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: score %q", ErrMalformedScore, scoreText)
		}
		wickets, err := strconv.Atoi(strings.TrimSpace(wicketsPart))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: score %q", ErrMalformedScore, scoreText)
		}
		if wickets == wicketsAllOut {
			return runs, FullQuotaOvers, FullQuotaOvers, nil
		}
		return runs, actualOvers, actualOvers, nil
	}

	runs, err = strconv.Atoi(cleaned)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: score %q", ErrMalformedScore, scoreText)
	}
	return runs, FullQuotaOvers, FullQuotaOvers, nil
}
