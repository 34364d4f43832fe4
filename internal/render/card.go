package render

import (
	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/fmuoria/recruiter-dashboard/internal/scoring"
)

// Card is everything the grid and table views show for one candidate
type Card struct {
	ID              string
	Name            string
	FirstName       string
	Email           string
	Position        string
	Education       string
	Skills          []string
	MoreSkills      string
	SkillsSummary   string
	Match           string
	Tier            scoring.Tier
	MissingKeywords string
	ProfileSummary  string
	ResumeURL       string
}

// NewCard projects a candidate into display strings
func NewCard(c models.Candidate) Card {
	shown, more := SkillBadges(c.Skills)
	return Card{
		ID:              c.ID,
		Name:            DisplayName(c.Name),
		FirstName:       FirstName(c.Name),
		Email:           c.Email,
		Position:        DisplayPosition(c.CurrentJobTitle),
		Education:       FormatEducation(c.Education),
		Skills:          shown,
		MoreSkills:      more,
		SkillsSummary:   SkillsSummary(c.Skills),
		Match:           MatchLabel(c),
		Tier:            scoring.CandidateTier(c),
		MissingKeywords: MissingKeywords(c),
		ProfileSummary:  ProfileSummary(c),
		ResumeURL:       c.ResumeURL,
	}
}

// Cards projects a slice of candidates, keeping order
func Cards(candidates []models.Candidate) []Card {
	cards := make([]Card, 0, len(candidates))
	for _, c := range candidates {
		cards = append(cards, NewCard(c))
	}
	return cards
}
