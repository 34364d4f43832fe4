package render

import (
	"strings"

	"github.com/fmuoria/recruiter-dashboard/internal/models"
)

// FilterCandidates keeps candidates whose name, email, current job title or any
// skill contains term, ignoring case. An empty term returns the input unchanged.
func FilterCandidates(candidates []models.Candidate, term string) []models.Candidate {
	if term == "" {
		return candidates
	}

	needle := strings.ToLower(term)
	filtered := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if matches(c, needle) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func matches(c models.Candidate, needle string) bool {
	if contains(c.Name, needle) || contains(c.Email, needle) || contains(c.CurrentJobTitle, needle) {
		return true
	}
	for _, skill := range c.Skills {
		if contains(skill, needle) {
			return true
		}
	}
	return false
}

func contains(field, needle string) bool {
	return strings.Contains(strings.ToLower(field), needle)
}

// ViewMode selects how the candidate directory is laid out
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewTable
)

func (m ViewMode) String() string {
	if m == ViewTable {
		return "table"
	}
	return "grid"
}

// Toggle flips between grid and table
func (m ViewMode) Toggle() ViewMode {
	if m == ViewGrid {
		return ViewTable
	}
	return ViewGrid
}
