package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Job represents a job posting as served by the backend
type Job struct {
	ID              string      `json:"_id"`
	Title           string      `json:"title"`
	Department      string      `json:"department"`
	Location        string      `json:"location,omitempty"`
	Description     string      `json:"description"`
	RequiredSkills  []string    `json:"required_skills"`
	ExperienceLevel string      `json:"experience_level"`
	MinExperience   Years       `json:"min_experience"`
	MaxExperience   Years       `json:"max_experience"`
	Status          string      `json:"status,omitempty"`
	Company         string      `json:"company,omitempty"`
	CreatedAt       string      `json:"created_at,omitempty"`
	Candidates      []Candidate `json:"candidates,omitempty"`
}

// timestampLayouts are the forms the backend has been seen to emit for created_at
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	time.RFC1123,
	time.RFC1123Z,
}

// Created parses CreatedAt. The second return is false when the field is empty or unparsable.
func (j Job) Created() (time.Time, bool) {
	s := strings.TrimSpace(j.CreatedAt)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CandidateIDs returns the identifiers of the embedded candidates in order
func (j Job) CandidateIDs() []string {
	ids := make([]string, 0, len(j.Candidates))
	for _, c := range j.Candidates {
		ids = append(ids, c.ID)
	}
	return ids
}

// Candidate is a resume that was uploaded against a job and matched by the backend
type Candidate struct {
	ID              string       `json:"_id"`
	JobID           string       `json:"job_id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone,omitempty"`
	CurrentJobTitle string       `json:"current_job_title"`
	Education       Education    `json:"education"`
	Skills          []string     `json:"skills,omitempty"`
	ResumeURL       string       `json:"resume_url,omitempty"`
	MatchResult     *MatchResult `json:"match_result,omitempty"`
	MatchPercentage *float64     `json:"match_percentage,omitempty"`
	UploadedAt      string       `json:"uploaded_at,omitempty"`

	// Optional interview details; the email dispatch falls back to placeholders
	InterviewDate     string `json:"interview_date,omitempty"`
	InterviewTime     string `json:"interview_time,omitempty"`
	InterviewLocation string `json:"interview_location,omitempty"`
	Message           string `json:"message,omitempty"`
}

// MatchResult holds the matching engine's verdict for a candidate
type MatchResult struct {
	JDMatch         Percentage `json:"JD_Match"`
	MissingKeywords []string   `json:"MissingKeywords"`
	ProfileSummary  string     `json:"Profile_Summary"`
}

// Percentage is the raw match value. Upstream sends "85%" but bare numbers also occur.
type Percentage string

// UnmarshalJSON accepts a JSON string or number. Any other value decodes to ""
// instead of failing the whole candidate.
func (p *Percentage) UnmarshalJSON(data []byte) error {
	*p = ""
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}

	switch c := trimmed[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Percentage(s)
	case c == '-' || (c >= '0' && c <= '9'):
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*p = Percentage(strconv.FormatFloat(f, 'f', -1, 64) + "%")
	}
	return nil
}

// Years is an experience bound. The job form posts whatever the input held, so
// the backend hands back numbers and numeric strings alike.
type Years int

// UnmarshalJSON accepts a number or a numeric string. Blank, null and
// non-numeric values decode to zero.
func (y *Years) UnmarshalJSON(data []byte) error {
	*y = 0
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}

	switch c := trimmed[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		trimmed = strings.TrimSpace(s)
	case c != '-' && (c < '0' || c > '9'):
		return nil
	}

	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	*y = Years(f)
	return nil
}

// JobDraft is the payload for creating a job. Field names follow what the backend reads.
type JobDraft struct {
	Title           string   `json:"title" validate:"required"`
	Department      string   `json:"department" validate:"required"`
	Location        string   `json:"location"`
	Description     string   `json:"description" validate:"required"`
	RequiredSkills  []string `json:"requiredSkills"`
	ExperienceLevel string   `json:"experienceLevel"`
	MinExperience   Years    `json:"minExperience" validate:"gte=0"`
	MaxExperience   Years    `json:"maxExperience" validate:"gte=0"`
}

// CreateJobResponse is returned by the backend after a job is stored
type CreateJobResponse struct {
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

// UploadResult is the backend's answer to a resume upload
type UploadResult struct {
	Message          string      `json:"message"`
	UploadedResumes  []string    `json:"uploaded_resumes"`
	CandidateDetails []Candidate `json:"candidate_details"`
}

// Count returns the number of accepted resumes
func (u UploadResult) Count() int {
	return len(u.UploadedResumes)
}
