package stubapi

import (
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/google/uuid"
)

// isoLayout matches the timestamps the real backend emits on detail endpoints
const isoLayout = "2006-01-02T15:04:05.000000"

type storedJob struct {
	job     models.Job
	created time.Time
}

type storedFile struct {
	name string
	data []byte
}

// Store is an in-memory job and candidate store
type Store struct {
	mu         sync.RWMutex
	jobs       map[string]*storedJob
	jobOrder   []string
	candidates map[string]models.Candidate
	candOrder  []string
	files      map[string]storedFile
	now        func() time.Time
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		jobs:       make(map[string]*storedJob),
		candidates: make(map[string]models.Candidate),
		files:      make(map[string]storedFile),
		now:        time.Now,
	}
}

// CreateJob stores an active job built from draft and returns its id
func (s *Store) CreateJob(draft models.JobDraft) string {
	return s.AddJob(models.Job{
		Title:           draft.Title,
		Department:      draft.Department,
		Location:        draft.Location,
		Description:     draft.Description,
		RequiredSkills:  append([]string{}, draft.RequiredSkills...),
		ExperienceLevel: draft.ExperienceLevel,
		MinExperience:   draft.MinExperience,
		MaxExperience:   draft.MaxExperience,
		Status:          "active",
	})
}

// AddJob stores job as given, assigning an id when it has none
func (s *Store) AddJob(job models.Job) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = "active"
	}
	if job.RequiredSkills == nil {
		job.RequiredSkills = []string{}
	}
	job.Candidates = nil
	if _, exists := s.jobs[job.ID]; !exists {
		s.jobOrder = append(s.jobOrder, job.ID)
	}
	s.jobs[job.ID] = &storedJob{job: job, created: s.now().UTC()}
	return job.ID
}

// ListJobs returns active jobs in creation order. created_at uses the HTTP date format.
func (s *Store) ListJobs() []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]models.Job, 0, len(s.jobOrder))
	for _, id := range s.jobOrder {
		sj := s.jobs[id]
		if sj.job.Status != "active" {
			continue
		}
		job := sj.job
		job.CreatedAt = sj.created.Format(http.TimeFormat)
		jobs = append(jobs, job)
	}
	return jobs
}

// GetJob returns a job with its candidates, best match first
func (s *Store) GetJob(id string) (models.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sj, ok := s.jobs[id]
	if !ok {
		return models.Job{}, false
	}
	job := sj.job
	job.CreatedAt = sj.created.Format(isoLayout)
	job.Candidates = s.jobCandidatesLocked(id)
	return job, true
}

// JobCandidates returns the candidates of one job, best match first
func (s *Store) JobCandidates(jobID string) []models.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobCandidatesLocked(jobID)
}

func (s *Store) jobCandidatesLocked(jobID string) []models.Candidate {
	out := []models.Candidate{}
	for _, id := range s.candOrder {
		if c := s.candidates[id]; c.JobID == jobID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return matchValue(out[i]) > matchValue(out[j])
	})
	return out
}

func matchValue(c models.Candidate) float64 {
	if c.MatchPercentage == nil {
		return -1
	}
	return *c.MatchPercentage
}

// AddCandidate stores c, assigning an id and upload time when missing
func (s *Store) AddCandidate(c models.Candidate) models.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.UploadedAt == "" {
		c.UploadedAt = s.now().UTC().Format(isoLayout)
	}
	if _, exists := s.candidates[c.ID]; !exists {
		s.candOrder = append(s.candOrder, c.ID)
	}
	s.candidates[c.ID] = c
	return c
}

// AddResume records an uploaded resume against jobID. The candidate is named
// after the file and left unscored; fileURL builds its resume link from the file id.
func (s *Store) AddResume(jobID, filename string, data []byte, fileURL func(fileID string) string) models.Candidate {
	fileID := uuid.NewString()
	s.mu.Lock()
	s.files[fileID] = storedFile{name: filepath.Base(filename), data: data}
	s.mu.Unlock()

	return s.AddCandidate(models.Candidate{
		JobID:     jobID,
		Name:      nameFromFile(filename),
		Skills:    []string{},
		ResumeURL: fileURL(fileID),
	})
}

// File returns a stored resume
func (s *Store) File(id string) (name string, data []byte, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[id]
	return f.name, f.data, ok
}

// HasJob reports whether a job exists
func (s *Store) HasJob(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.jobs[id]
	return ok
}

// ListCandidates returns every candidate in upload order
func (s *Store) ListCandidates() []models.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Candidate, 0, len(s.candOrder))
	for _, id := range s.candOrder {
		out = append(out, s.candidates[id])
	}
	return out
}

// GetCandidate returns one candidate
func (s *Store) GetCandidate(id string) (models.Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.candidates[id]
	return c, ok
}

// nameFromFile turns "jane_doe-cv.pdf" into "jane doe cv"
func nameFromFile(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}
