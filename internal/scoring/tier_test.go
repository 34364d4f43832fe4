package scoring

import (
	"testing"

	"github.com/fmuoria/recruiter-dashboard/internal/models"
)

func TestTierForBoundaries(t *testing.T) {
	tests := []struct {
		p    float64
		want Tier
	}{
		{p: 79.9, want: TierMedium},
		{p: 80, want: TierHigh},
		{p: 80.1, want: TierHigh},
		{p: 59.9, want: TierLow},
		{p: 60, want: TierMedium},
		{p: 100, want: TierHigh},
		{p: 0, want: TierLow},
		{p: -5, want: TierLow},
	}

	for _, tt := range tests {
		if got := TierFor(tt.p); got != tt.want {
			t.Errorf("TierFor(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestParsePercentage(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{name: "With percent sign", input: "85%", want: 85, wantOK: true},
		{name: "Decimal", input: "72.5%", want: 72.5, wantOK: true},
		{name: "Leading whitespace", input: "  60 %", want: 60, wantOK: true},
		{name: "Leading dot", input: ".5", want: 0.5, wantOK: true},
		{name: "Exponent", input: "1e2", want: 100, wantOK: true},
		{name: "Not a number", input: "N/A", wantOK: false},
		{name: "Empty", input: "", wantOK: false},
		{name: "Trailing number only", input: "about 90%", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePercentage(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParsePercentage(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParsePercentage(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTierOfUnparsableIsLow(t *testing.T) {
	for _, raw := range []string{"", "N/A", "unknown"} {
		if got := TierOf(raw); got != TierLow {
			t.Errorf("TierOf(%q) = %v, want %v", raw, got, TierLow)
		}
	}
}

func TestCandidateTier(t *testing.T) {
	pct := 65.0
	tests := []struct {
		name      string
		candidate models.Candidate
		want      Tier
	}{
		{
			name:      "Match result wins",
			candidate: models.Candidate{MatchResult: &models.MatchResult{JDMatch: "90%"}, MatchPercentage: &pct},
			want:      TierHigh,
		},
		{
			name:      "Falls back to match_percentage",
			candidate: models.Candidate{MatchResult: &models.MatchResult{JDMatch: "N/A"}, MatchPercentage: &pct},
			want:      TierMedium,
		},
		{
			name:      "No match data",
			candidate: models.Candidate{},
			want:      TierLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CandidateTier(tt.candidate); got != tt.want {
				t.Errorf("CandidateTier() = %v, want %v", got, tt.want)
			}
		})
	}
}
