package scoring

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fmuoria/recruiter-dashboard/internal/models"
)

// Tier is the badge band a match percentage falls into
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

const (
	// HighThreshold is the lowest percentage in the high tier
	HighThreshold = 80.0
	// MediumThreshold is the lowest percentage in the medium tier
	MediumThreshold = 60.0
)

// leadingNumber matches the prefix a browser's parseFloat would consume
var leadingNumber = regexp.MustCompile(`^[\t\n\v\f\r ]*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParsePercentage reads the leading number of s, so "85%" and "85.5 %" both parse.
// ok is false when s has no numeric prefix.
func ParsePercentage(s string) (p float64, ok bool) {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimLeft(m, " \t\n\v\f\r"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// TierFor maps a percentage to its tier. Lower bounds are inclusive.
func TierFor(p float64) Tier {
	switch {
	case p >= HighThreshold:
		return TierHigh
	case p >= MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// TierOf tiers a raw match string; anything unparsable counts as 0
func TierOf(raw string) Tier {
	p, _ := ParsePercentage(raw)
	return TierFor(p)
}

// CandidatePercentage returns the candidate's match percentage, preferring the
// match result over the bare match_percentage field.
func CandidatePercentage(c models.Candidate) (float64, bool) {
	if c.MatchResult != nil {
		if p, ok := ParsePercentage(string(c.MatchResult.JDMatch)); ok {
			return p, true
		}
	}
	if c.MatchPercentage != nil {
		return *c.MatchPercentage, true
	}
	return 0, false
}

// CandidateTier is TierFor applied to CandidatePercentage
func CandidateTier(c models.Candidate) Tier {
	p, _ := CandidatePercentage(c)
	return TierFor(p)
}
