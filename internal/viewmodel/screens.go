package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/fmuoria/recruiter-dashboard/internal/bulk"
	"github.com/fmuoria/recruiter-dashboard/internal/email"
	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/fmuoria/recruiter-dashboard/internal/notify"
	"github.com/fmuoria/recruiter-dashboard/internal/render"
	"github.com/fmuoria/recruiter-dashboard/internal/upload"
)

// Screen names, used to tag notices
const (
	ScreenJobs             = "jobs"
	ScreenJobDetail        = "job_detail"
	ScreenCandidates       = "candidates"
	ScreenCandidateProfile = "candidate_profile"
	ScreenCreateJob        = "create_job"
)

// Error texts shown by each screen
const (
	MsgJobsFailed       = "Failed to load jobs"
	MsgJobDetailFailed  = "Failed to load job details"
	MsgCandidatesPrefix = "Failed to fetch candidates: "
	MsgProfileFailed    = "Failed to load candidate profile"
)

var errJobNotLoaded = errors.New("job not loaded")

// JobLister lists job postings
type JobLister interface {
	ListJobs(ctx context.Context) ([]models.Job, error)
}

// JobGetter fetches one job with its candidates
type JobGetter interface {
	GetJob(ctx context.Context, id string) (*models.Job, error)
}

// CandidateLister lists every candidate
type CandidateLister interface {
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
}

// CandidateGetter fetches one candidate
type CandidateGetter interface {
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
}

// JobDetailAPI is what the job detail screen needs from the backend
type JobDetailAPI interface {
	JobGetter
	upload.Uploader
}

func constMessage(msg string) func(error) string {
	return func(error) string { return msg }
}

// NewJobList creates the job listings screen
func NewJobList(api JobLister, notifier notify.Notifier) *Screen[[]models.Job] {
	return NewScreen(api.ListJobs, notifier, Options[[]models.Job]{
		Name:         ScreenJobs,
		ErrorMessage: constMessage(MsgJobsFailed),
	})
}

// NewCandidateProfile creates the profile screen for one candidate
func NewCandidateProfile(api CandidateGetter, candidateID string, notifier notify.Notifier) *Screen[models.Candidate] {
	fetch := func(ctx context.Context) (models.Candidate, error) {
		c, err := api.GetCandidate(ctx, candidateID)
		if err != nil {
			return models.Candidate{}, err
		}
		return *c, nil
	}
	return NewScreen(fetch, notifier, Options[models.Candidate]{
		Name:         ScreenCandidateProfile,
		ErrorMessage: constMessage(MsgProfileFailed),
	})
}

// JobDetail is one job with its candidates, the candidate selection, the bulk
// email action and the resume upload batch.
type JobDetail struct {
	*Screen[models.Job]
	JobID     string
	Selection *bulk.Selection
	Bulk      *bulk.Coordinator
	Upload    *upload.Coordinator
}

// NewJobDetail wires the job detail screen
func NewJobDetail(api JobDetailAPI, jobID string, sender email.Sender, settings email.Settings, notifier notify.Notifier) *JobDetail {
	d := &JobDetail{
		JobID:     jobID,
		Selection: bulk.NewSelection(),
	}

	fetch := func(ctx context.Context) (models.Job, error) {
		job, err := api.GetJob(ctx, jobID)
		if err != nil {
			return models.Job{}, err
		}
		return *job, nil
	}

	d.Screen = NewScreen(fetch, notifier, Options[models.Job]{
		Name:         ScreenJobDetail,
		ErrorMessage: constMessage(MsgJobDetailFailed),
		Toast:        true,
		OnLoaded: func(job models.Job) {
			d.Selection.Prune(job.CandidateIDs())
		},
	})
	d.Bulk = bulk.NewCoordinator(d.Selection, sender, settings, notifier, ScreenJobDetail)
	d.Upload = upload.NewCoordinator(jobID, api, notifier, ScreenJobDetail, func(ctx context.Context) {
		d.Load(ctx)
	})
	return d
}

// Job returns the loaded job, if any
func (d *JobDetail) Job() (models.Job, bool) {
	st := d.State()
	if st.Data == nil {
		return models.Job{}, false
	}
	return *st.Data, true
}

// ToggleCandidate flips one candidate's selection
func (d *JobDetail) ToggleCandidate(id string) {
	d.Selection.Toggle(id)
}

// SelectAll selects every candidate of the job, or clears a full selection
func (d *JobDetail) SelectAll() {
	job, ok := d.Job()
	if !ok {
		return
	}
	d.Selection.SelectAll(job.CandidateIDs())
}

// SendEmails emails every selected candidate
func (d *JobDetail) SendEmails(ctx context.Context) (bulk.Report, error) {
	job, ok := d.Job()
	if !ok {
		return bulk.Report{}, errJobNotLoaded
	}
	return d.Bulk.Send(ctx, job)
}

// CandidateDirectory lists every candidate with a search term and layout
type CandidateDirectory struct {
	*Screen[[]models.Candidate]

	mu   sync.RWMutex
	term string
	mode render.ViewMode
}

// NewCandidateDirectory creates the candidate directory screen
func NewCandidateDirectory(api CandidateLister, notifier notify.Notifier) *CandidateDirectory {
	return &CandidateDirectory{
		Screen: NewScreen(api.ListCandidates, notifier, Options[[]models.Candidate]{
			Name: ScreenCandidates,
			ErrorMessage: func(err error) string {
				return MsgCandidatesPrefix + err.Error()
			},
		}),
		mode: render.ViewGrid,
	}
}

// SetSearch replaces the search term
func (d *CandidateDirectory) SetSearch(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.term = term
}

// Search returns the current search term
func (d *CandidateDirectory) Search() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.term
}

// ToggleView flips between grid and table and returns the new mode
func (d *CandidateDirectory) ToggleView() render.ViewMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mode = d.mode.Toggle()
	return d.mode
}

// View returns the current layout
func (d *CandidateDirectory) View() render.ViewMode {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mode
}

// Visible returns the loaded candidates that match the search term
func (d *CandidateDirectory) Visible() []models.Candidate {
	st := d.State()
	if st.Data == nil {
		return nil
	}
	return render.FilterCandidates(*st.Data, d.Search())
}
