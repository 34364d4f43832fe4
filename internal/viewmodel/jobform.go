package viewmodel

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/fmuoria/recruiter-dashboard/internal/client"
	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/fmuoria/recruiter-dashboard/internal/notify"
)

// Job form notice texts
const (
	MsgJobCreated      = "Job created successfully!"
	MsgJobCreateFailed = "Failed to create job"
	MsgJobCreateError  = "An error occurred while creating the job"
)

// JobCreator posts a new job
type JobCreator interface {
	CreateJob(ctx context.Context, draft models.JobDraft) (string, error)
}

// JobForm backs the create-job form
type JobForm struct {
	mu       sync.Mutex
	draft    models.JobDraft
	creator  JobCreator
	notifier notify.Notifier
	onCreate func(jobID string)
}

// NewJobForm creates an empty form. onCreate may be nil.
func NewJobForm(creator JobCreator, notifier notify.Notifier, onCreate func(jobID string)) *JobForm {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &JobForm{creator: creator, notifier: notifier, onCreate: onCreate}
}

// Draft returns a copy of the form contents
func (f *JobForm) Draft() models.JobDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.draft
	d.RequiredSkills = append([]string(nil), f.draft.RequiredSkills...)
	return d
}

// Update edits the draft in place
func (f *JobForm) Update(fn func(d *models.JobDraft)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.draft)
}

// AddSkill appends a trimmed skill unless it is empty or already listed
func (f *JobForm) AddSkill(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.draft.RequiredSkills {
		if s == skill {
			return false
		}
	}
	f.draft.RequiredSkills = append(f.draft.RequiredSkills, skill)
	return true
}

// RemoveSkill drops skill from the list
func (f *JobForm) RemoveSkill(skill string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.draft.RequiredSkills[:0]
	for _, s := range f.draft.RequiredSkills {
		if s != skill {
			kept = append(kept, s)
		}
	}
	f.draft.RequiredSkills = kept
}

// Reset clears the form
func (f *JobForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = models.JobDraft{}
}

// Submit creates the job. The form is reset on success.
func (f *JobForm) Submit(ctx context.Context) (string, error) {
	draft := f.Draft()

	id, err := f.creator.CreateJob(ctx, draft)
	if err != nil {
		log.Printf("[JobForm] Error creating job: %v", err)
		f.notifier.Notify(notify.New(submitLevel(err), ScreenCreateJob, submitMessage(err)))
		return "", err
	}

	f.Reset()
	f.notifier.Notify(notify.New(notify.LevelSuccess, ScreenCreateJob, MsgJobCreated))
	if f.onCreate != nil {
		f.onCreate(id)
	}
	return id, nil
}

func submitMessage(err error) string {
	var vErr *client.ValidationError
	if errors.As(err, &vErr) {
		if vErr.StatusCode == 0 {
			return vErr.Message
		}
		return MsgJobCreateFailed
	}
	return MsgJobCreateError
}

func submitLevel(err error) notify.Level {
	var vErr *client.ValidationError
	if errors.As(err, &vErr) && vErr.StatusCode == 0 {
		return notify.LevelWarning
	}
	return notify.LevelError
}
