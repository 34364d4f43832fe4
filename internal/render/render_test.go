package render

import (
	"testing"

	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/fmuoria/recruiter-dashboard/internal/scoring"
)

func sampleCandidates() []models.Candidate {
	return []models.Candidate{
		{ID: "1", Name: "Ann Lee", Email: "ann@x.io", CurrentJobTitle: "Data Analyst", Skills: []string{"SQL", "Python"}},
		{ID: "2", Name: "Bob Stone", Email: "bob@x.io", CurrentJobTitle: "Engineer", Skills: []string{"Go"}},
	}
}

func TestFilterCandidates(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{name: "Skill match", term: "python", wantIDs: []string{"1"}},
		{name: "Name case-insensitive", term: "BOB", wantIDs: []string{"2"}},
		{name: "Email", term: "ann@", wantIDs: []string{"1"}},
		{name: "Title", term: "engineer", wantIDs: []string{"2"}},
		{name: "Shared substring", term: "x.io", wantIDs: []string{"1", "2"}},
		{name: "No match", term: "rust", wantIDs: nil},
		{name: "Empty term", term: "", wantIDs: []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCandidates(sampleCandidates(), tt.term)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("FilterCandidates(%q) returned %d candidates, want %d", tt.term, len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("FilterCandidates(%q)[%d].ID = %q, want %q", tt.term, i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilterEmptyTermReturnsSameSlice(t *testing.T) {
	in := sampleCandidates()
	out := FilterCandidates(in, "")
	if &out[0] != &in[0] {
		t.Error("Expected empty term to return the input slice unchanged")
	}
}

func TestViewModeToggle(t *testing.T) {
	m := ViewGrid
	if m = m.Toggle(); m != ViewTable {
		t.Errorf("Toggle() = %v, want table", m)
	}
	if m = m.Toggle(); m != ViewGrid {
		t.Errorf("Toggle() = %v, want grid", m)
	}
}

func TestFormatEducation(t *testing.T) {
	tests := []struct {
		name  string
		input models.Education
		want  string
	}{
		{name: "Text", input: models.TextEducation("BSc Computer Science"), want: "BSc Computer Science"},
		{name: "Empty text", input: models.TextEducation(""), want: "Not specified"},
		{
			name: "List uses first entry",
			input: models.ListEducation(
				models.EducationEntry{Degree: "BSc", Major: "CS", University: "MIT"},
				models.EducationEntry{Degree: "MSc", Major: "AI", University: "CMU"},
			),
			want: "BSc in CS from MIT",
		},
		{name: "List with gaps", input: models.ListEducation(models.EducationEntry{}), want: "Degree in N/A from Unknown University"},
		{name: "Empty list", input: models.ListEducation(), want: "Degree in N/A from Unknown University"},
		{
			name:  "Record",
			input: models.RecordEducation(models.EducationEntry{Degree: "PhD", Major: "Physics"}),
			want:  "PhD in Physics from Unknown University",
		},
		{name: "None", input: models.Education{}, want: "Not specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatEducation(tt.input); got != tt.want {
				t.Errorf("FormatEducation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSkillBadges(t *testing.T) {
	skills := []string{"a", "b", "c", "d", "e", "f", "g"}
	shown, more := SkillBadges(skills)
	if len(shown) != 5 {
		t.Errorf("len(shown) = %d, want 5", len(shown))
	}
	if more != "+2 more" {
		t.Errorf("more = %q, want %q", more, "+2 more")
	}

	if got := SkillsSummary(nil); got != NoSkills {
		t.Errorf("SkillsSummary(nil) = %q, want %q", got, NoSkills)
	}
	if got := SkillsSummary([]string{"Go", "SQL"}); got != "Go, SQL" {
		t.Errorf("SkillsSummary() = %q, want %q", got, "Go, SQL")
	}
}

func TestNewCardPlaceholders(t *testing.T) {
	card := NewCard(models.Candidate{ID: "x"})

	checks := map[string][2]string{
		"Name":            {card.Name, UnnamedCandidate},
		"FirstName":       {card.FirstName, UnnamedCandidate},
		"Position":        {card.Position, NoPosition},
		"Education":       {card.Education, NotSpecified},
		"Match":           {card.Match, NoMatch},
		"SkillsSummary":   {card.SkillsSummary, NoSkills},
		"MissingKeywords": {card.MissingKeywords, NoMissingKeywords},
		"ProfileSummary":  {card.ProfileSummary, NoProfileSummary},
	}
	for field, pair := range checks {
		if pair[0] != pair[1] {
			t.Errorf("%s = %q, want %q", field, pair[0], pair[1])
		}
	}
	if card.Tier != scoring.TierLow {
		t.Errorf("Tier = %v, want %v", card.Tier, scoring.TierLow)
	}
}

func TestNewCardWithMatch(t *testing.T) {
	card := NewCard(models.Candidate{
		Name:        "Grace Hopper",
		MatchResult: &models.MatchResult{JDMatch: "85%", MissingKeywords: []string{"Docker", "K8s"}},
	})

	if card.FirstName != "Grace" {
		t.Errorf("FirstName = %q, want %q", card.FirstName, "Grace")
	}
	if card.Match != "85%" {
		t.Errorf("Match = %q, want %q", card.Match, "85%")
	}
	if card.Tier != scoring.TierHigh {
		t.Errorf("Tier = %v, want %v", card.Tier, scoring.TierHigh)
	}
	if card.MissingKeywords != "Docker, K8s" {
		t.Errorf("MissingKeywords = %q, want %q", card.MissingKeywords, "Docker, K8s")
	}
}

func TestDisplayLocation(t *testing.T) {
	if got := DisplayLocation(""); got != "Not Specified" {
		t.Errorf("DisplayLocation(\"\") = %q, want %q", got, "Not Specified")
	}
	if got := DisplayLocation("Nairobi"); got != "Nairobi" {
		t.Errorf("DisplayLocation() = %q, want %q", got, "Nairobi")
	}
}
