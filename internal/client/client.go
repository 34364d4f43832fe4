package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is where the backend listens in local development
const DefaultBaseURL = "http://127.0.0.1:5000"

// Client talks to the recruiting backend. Requests are sent once, with no retry.
type Client struct {
	http     *resty.Client
	validate *validator.Validate
}

// New creates a client for the backend at baseURL
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, nil)
}

// NewWithHTTPClient lets callers supply the underlying http.Client
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	var rc *resty.Client
	if hc != nil {
		rc = resty.NewWithClient(hc)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")

	return &Client{
		http:     rc,
		validate: validator.New(),
	}
}

// BaseURL returns the backend address requests are sent to
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// ListJobs fetches the active job postings
func (c *Client) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := c.getList(ctx, "list jobs", "/api/jobs", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob fetches one job with its candidates embedded
func (c *Client) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := c.getOne(ctx, "job", id, "/api/jobs/{id}", &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobCandidates fetches the candidates matched against one job
func (c *Client) ListJobCandidates(ctx context.Context, jobID string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	path := "/api/jobs/" + url.PathEscape(jobID) + "/candidates"
	if err := c.getList(ctx, "list job candidates", path, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// ListCandidates fetches every candidate across jobs
func (c *Client) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := c.getList(ctx, "list candidates", "/api/candidates", &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// GetCandidate fetches one candidate profile
func (c *Client) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := c.getOne(ctx, "candidate", id, "/api/candidates/{id}", &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// CreateJob validates the draft, posts it and returns the new job id
func (c *Client) CreateJob(ctx context.Context, draft models.JobDraft) (string, error) {
	if err := c.validate.Struct(draft); err != nil {
		return "", &ValidationError{Message: describeValidation(err)}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(draft).
		Post("/api/jobs/create")
	if err != nil {
		return "", &NetworkError{Op: "create job", Err: err}
	}
	if resp.IsError() {
		return "", &ValidationError{StatusCode: resp.StatusCode(), Message: errorText(resp.Body())}
	}

	var created models.CreateJobResponse
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		return "", &NetworkError{Op: "create job", Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return created.JobID, nil
}

// UploadResumes posts the files as one multipart request, one "resumes" part per
// file in the order given.
func (c *Client) UploadResumes(ctx context.Context, jobID string, paths []string) (*models.UploadResult, error) {
	req := c.http.R().SetContext(ctx)

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, &UploadError{Err: fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)}
		}
		defer f.Close()
		req.SetFileReader("resumes", filepath.Base(path), f)
	}

	log.Printf("[Client] Uploading %d resume(s) for job %s", len(paths), jobID)
	resp, err := req.Post("/api/jobs/" + url.PathEscape(jobID) + "/upload-resumes")
	if err != nil {
		return nil, &UploadError{Err: err}
	}
	if resp.IsError() {
		return nil, &UploadError{StatusCode: resp.StatusCode(), Message: strings.TrimSpace(resp.String())}
	}

	var result models.UploadResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &UploadError{StatusCode: resp.StatusCode(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &result, nil
}

func (c *Client) getList(ctx context.Context, op, path string, out any) error {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	if resp.IsError() {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode()}
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) getOne(ctx context.Context, resource, id, pattern string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Get(pattern)
	if err != nil {
		return &NetworkError{Op: "get " + resource, Err: err}
	}
	if resp.IsError() {
		return &NotFoundError{Resource: resource, ID: id, StatusCode: resp.StatusCode()}
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &NetworkError{Op: "get " + resource, StatusCode: resp.StatusCode(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// errorText pulls the "error" field out of a JSON error body, falling back to the raw text
func errorText(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}

func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s is required", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}
