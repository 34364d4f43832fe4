package stubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fmuoria/recruiter-dashboard/internal/client"
	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *Server {
	return NewServer(NewStore())
}

func do(t *testing.T, h http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer().Router(), http.MethodGet, "/health", nil, "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCreateJob_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing title", `{"description":"d","department":"x"}`, "title is required"},
		{"missing description", `{"title":"t","department":"x"}`, "description is required"},
		{"missing department", `{"title":"t","description":"d"}`, "department is required"},
		{"all missing", `{}`, "title is required"},
	}

	router := newTestServer().Router()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/jobs/create", strings.NewReader(tt.body), "application/json")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if got := errorBody(t, rec); got != tt.want {
				t.Errorf("error = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateJob_InvalidJSON(t *testing.T) {
	rec := do(t, newTestServer().Router(), http.MethodPost, "/api/jobs/create", strings.NewReader("{"), "application/json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestListJobs_ActiveOnlyWithHTTPDate(t *testing.T) {
	srv := newTestServer()
	srv.Store().AddJob(models.Job{ID: "open", Title: "Open", Status: "active"})
	srv.Store().AddJob(models.Job{ID: "closed", Title: "Closed", Status: "closed"})

	rec := do(t, srv.Router(), http.MethodGet, "/api/jobs", nil, "")
	var jobs []models.Job
	if err := json.Unmarshal(rec.Body.Bytes(), &jobs); err != nil {
		t.Fatalf("Failed to decode jobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "open" {
		t.Fatalf("jobs = %+v, want only the active job", jobs)
	}
	if _, err := time.Parse(http.TimeFormat, jobs[0].CreatedAt); err != nil {
		t.Errorf("created_at %q is not an HTTP date: %v", jobs[0].CreatedAt, err)
	}
}

func TestGetJob_NotFound(t *testing.T) {
	rec := do(t, newTestServer().Router(), http.MethodGet, "/api/jobs/missing", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got := errorBody(t, rec); got != "Job not found" {
		t.Errorf("error = %q, want %q", got, "Job not found")
	}
}

func TestGetJob_CandidatesBestFirst(t *testing.T) {
	srv := newTestServer()
	id := srv.Store().AddJob(models.Job{Title: "Analyst", Status: "active"})
	low, high := 40.0, 95.0
	srv.Store().AddCandidate(models.Candidate{ID: "low", JobID: id, MatchPercentage: &low})
	srv.Store().AddCandidate(models.Candidate{ID: "high", JobID: id, MatchPercentage: &high})
	srv.Store().AddCandidate(models.Candidate{ID: "none", JobID: id})

	rec := do(t, srv.Router(), http.MethodGet, "/api/jobs/"+id, nil, "")
	var job models.Job
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatalf("Failed to decode job: %v", err)
	}

	got := job.CandidateIDs()
	want := []string{"high", "low", "none"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("candidate order = %v, want %v", got, want)
	}
	if _, ok := job.Created(); !ok {
		t.Errorf("created_at %q did not parse", job.CreatedAt)
	}
}

func TestUploadResumes_NoFiles(t *testing.T) {
	srv := newTestServer()
	id := srv.Store().AddJob(models.Job{Title: "Analyst", Status: "active"})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("other", "value")
	w.Close()

	rec := do(t, srv.Router(), http.MethodPost, "/api/jobs/"+id+"/upload-resumes", &buf, w.FormDataContentType())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if got := errorBody(t, rec); got != "No files uploaded" {
		t.Errorf("error = %q, want %q", got, "No files uploaded")
	}
}

func TestUploadResumes_UnknownJob(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, _ := w.CreateFormFile("resumes", "cv.pdf")
	part.Write([]byte("%PDF"))
	w.Close()

	rec := do(t, newTestServer().Router(), http.MethodPost, "/api/jobs/nope/upload-resumes", &buf, w.FormDataContentType())
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetCandidate_NotFound(t *testing.T) {
	rec := do(t, newTestServer().Router(), http.MethodGet, "/api/candidates/missing", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got := errorBody(t, rec); got != "Candidate not found" {
		t.Errorf("error = %q, want %q", got, "Candidate not found")
	}
}

func TestClientRoundTrip(t *testing.T) {
	srv := newTestServer()
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	ctx := context.Background()
	c := client.New(ts.URL)

	jobID, err := c.CreateJob(ctx, models.JobDraft{
		Title:          "Data Analyst",
		Department:     "Analytics",
		Description:    "Crunch numbers",
		RequiredSkills: []string{"SQL"},
	})
	if err != nil {
		t.Fatalf("CreateJob() error = %v", err)
	}

	jobs, err := c.ListJobs(ctx)
	if err != nil {
		t.Fatalf("ListJobs() error = %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != jobID || jobs[0].Title != "Data Analyst" {
		t.Fatalf("ListJobs() = %+v, want the created job", jobs)
	}
	if jobs[0].Department != "Analytics" || strings.Join(jobs[0].RequiredSkills, ",") != "SQL" {
		t.Errorf("ListJobs() department/skills = %q/%v, want Analytics/[SQL]", jobs[0].Department, jobs[0].RequiredSkills)
	}

	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "jane_doe.pdf"), filepath.Join(dir, "john-smith.docx")}
	for _, p := range paths {
		if err := os.WriteFile(p, []byte("resume "+filepath.Base(p)), 0644); err != nil {
			t.Fatal(err)
		}
	}

	result, err := c.UploadResumes(ctx, jobID, paths)
	if err != nil {
		t.Fatalf("UploadResumes() error = %v", err)
	}
	if result.Count() != 2 {
		t.Fatalf("uploaded = %d, want 2", result.Count())
	}
	if result.CandidateDetails[0].Name != "jane doe" {
		t.Errorf("first candidate name = %q, want %q", result.CandidateDetails[0].Name, "jane doe")
	}

	job, err := c.GetJob(ctx, jobID)
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if len(job.Candidates) != 2 {
		t.Errorf("job candidates = %d, want 2", len(job.Candidates))
	}

	cands, err := c.ListJobCandidates(ctx, jobID)
	if err != nil {
		t.Fatalf("ListJobCandidates() error = %v", err)
	}
	if len(cands) != 2 {
		t.Errorf("ListJobCandidates() = %d, want 2", len(cands))
	}

	resp, err := http.Get(result.UploadedResumes[0])
	if err != nil {
		t.Fatalf("GET resume error = %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if string(data) != "resume jane_doe.pdf" {
		t.Errorf("resume body = %q, want %q", data, "resume jane_doe.pdf")
	}

	cand, err := c.GetCandidate(ctx, result.CandidateDetails[1].ID)
	if err != nil {
		t.Fatalf("GetCandidate() error = %v", err)
	}
	if cand.JobID != jobID {
		t.Errorf("candidate job = %q, want %q", cand.JobID, jobID)
	}

	if _, err := c.GetCandidate(ctx, "missing"); !client.IsNotFound(err) {
		t.Errorf("GetCandidate(missing) error = %v, want not found", err)
	}
}

func TestClientCreateJob_BackendRejects(t *testing.T) {
	ts := httptest.NewServer(newTestServer().Router())
	defer ts.Close()

	// Whitespace passes the local required check but not the backend's
	_, err := client.New(ts.URL).CreateJob(context.Background(), models.JobDraft{
		Title: "Analyst", Description: "d", Department: "   ",
	})
	var vErr *client.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("CreateJob() error = %v, want ValidationError", err)
	}
	if vErr.StatusCode != http.StatusBadRequest || vErr.Message != "department is required" {
		t.Errorf("ValidationError = %+v, want 400 department is required", vErr)
	}
}

func TestSeed(t *testing.T) {
	store := NewStore()
	jobID := Seed(store)

	job, ok := store.GetJob(jobID)
	if !ok {
		t.Fatalf("GetJob(%s) not found", jobID)
	}
	if len(job.Candidates) != 3 {
		t.Fatalf("seeded candidates = %d, want 3", len(job.Candidates))
	}
	if job.Candidates[0].Name != "Amina Otieno" {
		t.Errorf("best candidate = %q, want %q", job.Candidates[0].Name, "Amina Otieno")
	}
}
