package render

import (
	"fmt"
	"strings"

	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/fmuoria/recruiter-dashboard/internal/scoring"
)

// Placeholders shown when a field is missing
const (
	NotSpecified      = "Not specified"
	UnnamedCandidate  = "Unnamed Candidate"
	NoPosition        = "Position not specified"
	NoLocation        = "Not Specified"
	NoMatch           = "N/A"
	NoSkills          = "No skills listed"
	NoMissingKeywords = "No missing keywords detected"
	NoProfileSummary  = "No profile summary available"
	defaultDegree     = "Degree"
	defaultMajor      = "N/A"
	defaultUniversity = "Unknown University"
)

// MaxSkillBadges is how many skills a card shows before collapsing the rest
const MaxSkillBadges = 5

// FormatEducation renders the education field for display
func FormatEducation(e models.Education) string {
	switch e.Kind {
	case models.EducationText:
		return formatText(e.Text)
	case models.EducationList, models.EducationRecord:
		return formatFirst(e.Entries)
	default:
		return NotSpecified
	}
}

func formatText(s string) string {
	if s == "" {
		return NotSpecified
	}
	return s
}

// formatFirst renders the first entry. An empty list gets the placeholder entry.
func formatFirst(entries []models.EducationEntry) string {
	if len(entries) == 0 {
		return formatEntry(models.EducationEntry{})
	}
	return formatEntry(entries[0])
}

func formatEntry(e models.EducationEntry) string {
	return fmt.Sprintf("%s in %s from %s",
		orDefault(e.Degree, defaultDegree),
		orDefault(e.Major, defaultMajor),
		orDefault(e.University, defaultUniversity))
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// SkillBadges returns up to MaxSkillBadges skills and the "+N more" overflow label,
// which is empty when nothing was cut.
func SkillBadges(skills []string) ([]string, string) {
	if len(skills) == 0 {
		return nil, ""
	}
	if len(skills) <= MaxSkillBadges {
		return skills, ""
	}
	return skills[:MaxSkillBadges], fmt.Sprintf("+%d more", len(skills)-MaxSkillBadges)
}

// SkillsSummary joins the visible badges with the overflow label
func SkillsSummary(skills []string) string {
	shown, more := SkillBadges(skills)
	if len(shown) == 0 {
		return NoSkills
	}
	s := strings.Join(shown, ", ")
	if more != "" {
		s += " " + more
	}
	return s
}

// FirstName is the first word of name, or the placeholder when name is blank
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return UnnamedCandidate
	}
	return fields[0]
}

// DisplayName returns name or the unnamed placeholder
func DisplayName(name string) string {
	return orDefault(name, UnnamedCandidate)
}

// DisplayPosition returns the job title or its placeholder
func DisplayPosition(title string) string {
	return orDefault(title, NoPosition)
}

// DisplayLocation returns the location or its placeholder
func DisplayLocation(location string) string {
	return orDefault(location, NoLocation)
}

// MatchLabel formats a candidate's match as shown on badges
func MatchLabel(c models.Candidate) string {
	p, ok := scoring.CandidatePercentage(c)
	if !ok {
		return NoMatch
	}
	return fmt.Sprintf("%g%%", p)
}

// MissingKeywords joins the missing keywords or returns the placeholder
func MissingKeywords(c models.Candidate) string {
	if c.MatchResult == nil || len(c.MatchResult.MissingKeywords) == 0 {
		return NoMissingKeywords
	}
	return strings.Join(c.MatchResult.MissingKeywords, ", ")
}

// ProfileSummary returns the match summary or its placeholder
func ProfileSummary(c models.Candidate) string {
	if c.MatchResult == nil {
		return NoProfileSummary
	}
	return orDefault(c.MatchResult.ProfileSummary, NoProfileSummary)
}
