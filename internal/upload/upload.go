package upload

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/fmuoria/recruiter-dashboard/internal/client"
	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/fmuoria/recruiter-dashboard/internal/notify"
)

// Status and notice texts
const (
	MsgEmptyBatch   = "Please select files to upload"
	MsgUploadFailed = "Failed to upload resumes"
	StatusUploading = "Uploading..."
	StatusFailed    = "Upload failed"
)

var ErrEmptyBatch = errors.New("no files selected")

// Uploader posts a batch of resume files for a job
type Uploader interface {
	UploadResumes(ctx context.Context, jobID string, paths []string) (*models.UploadResult, error)
}

// Coordinator holds the resume batch for one job and submits it
type Coordinator struct {
	mu       sync.Mutex
	jobID    string
	files    []string
	status   string
	uploader Uploader
	notifier notify.Notifier
	screen   string
	refresh  func(ctx context.Context)
}

// NewCoordinator creates a coordinator for jobID. refresh runs after a
// successful upload and may be nil.
func NewCoordinator(jobID string, uploader Uploader, notifier notify.Notifier, screen string, refresh func(ctx context.Context)) *Coordinator {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Coordinator{
		jobID:    jobID,
		uploader: uploader,
		notifier: notifier,
		screen:   screen,
		refresh:  refresh,
	}
}

// Select replaces the batch with paths
func (c *Coordinator) Select(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = append([]string(nil), paths...)
}

// Add appends one file to the batch
func (c *Coordinator) Add(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = append(c.files, path)
}

// Files returns the current batch
func (c *Coordinator) Files() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.files...)
}

// Status returns the last upload status line
func (c *Coordinator) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Begin marks a non-empty batch as uploading and returns the status to show
// while Submit runs.
func (c *Coordinator) Begin() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.files) > 0 {
		c.status = StatusUploading
	}
	return c.status
}

// Submit uploads the batch. On success the batch is cleared and the job is
// refreshed; on failure the batch is kept for another attempt.
func (c *Coordinator) Submit(ctx context.Context) (*models.UploadResult, error) {
	files := c.Files()
	if len(files) == 0 {
		c.notify(notify.LevelWarning, MsgEmptyBatch)
		return nil, ErrEmptyBatch
	}

	c.setStatus(StatusUploading)
	log.Printf("[Upload] Submitting %d file(s) for job %s", len(files), c.jobID)

	result, err := c.uploader.UploadResumes(ctx, c.jobID, files)
	if err != nil {
		c.setStatus(StatusFailed)
		c.notify(notify.LevelError, failureMessage(err))
		return nil, fmt.Errorf("upload resumes for job %s: %w", c.jobID, err)
	}

	count := result.Count()
	c.notify(notify.LevelSuccess, fmt.Sprintf("Successfully uploaded %d resumes", count))

	c.mu.Lock()
	c.status = fmt.Sprintf("Uploaded %d resumes", count)
	c.files = nil
	c.mu.Unlock()

	if c.refresh != nil {
		c.refresh(ctx)
	}
	return result, nil
}

func (c *Coordinator) setStatus(s string) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

func (c *Coordinator) notify(level notify.Level, msg string) {
	c.notifier.Notify(notify.New(level, c.screen, msg))
}

// failureMessage prefers the server's own text
func failureMessage(err error) string {
	var upErr *client.UploadError
	if errors.As(err, &upErr) && upErr.Message != "" {
		return upErr.Message
	}
	return MsgUploadFailed
}
