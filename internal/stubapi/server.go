package stubapi

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server serves the recruiting REST API from an in-memory store
type Server struct {
	store *Store
}

// NewServer creates a server over store
func NewServer(store *Store) *Server {
	return &Server{
		store: store,
	}
}

// Store returns the backing store
func (s *Server) Store() *Store {
	return s.store
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.loggingMiddleware())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	r.GET("/files/:fileId", s.handleFile)

	api := r.Group("/api")
	{
		api.GET("/jobs", s.handleListJobs)
		api.POST("/jobs/create", s.handleCreateJob)
		api.GET("/jobs/:jobId", s.handleGetJob)
		api.POST("/jobs/:jobId/upload-resumes", s.handleUploadResumes)
		api.GET("/jobs/:jobId/candidates", s.handleJobCandidates)
		api.GET("/candidates", s.handleListCandidates)
		api.GET("/candidates/:candidateId", s.handleGetCandidate)
	}

	return r
}

// handleRoot provides API information
func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Recruiter Dashboard stub backend",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"GET /api/jobs":                        "List active jobs",
			"POST /api/jobs/create":                "Create a job",
			"GET /api/jobs/{jobId}":                "Job with candidates",
			"POST /api/jobs/{jobId}/upload-resumes": "Upload resumes",
			"GET /api/jobs/{jobId}/candidates":     "Candidates of a job",
			"GET /api/candidates":                  "List candidates",
			"GET /api/candidates/{candidateId}":    "Candidate profile",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListJobs())
}

func (s *Server) handleCreateJob(c *gin.Context) {
	var draft models.JobDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		s.respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %v", err))
		return
	}

	required := []struct {
		field, value string
	}{
		{"title", draft.Title},
		{"description", draft.Description},
		{"department", draft.Department},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			s.respondError(c, http.StatusBadRequest, fmt.Sprintf("%s is required", r.field))
			return
		}
	}

	id := s.store.CreateJob(draft)
	log.Printf("[StubAPI] Created job %s (%s)", id, draft.Title)
	c.JSON(http.StatusCreated, models.CreateJobResponse{
		Message: "Job created successfully",
		JobID:   id,
	})
}

func (s *Server) handleGetJob(c *gin.Context) {
	job, ok := s.store.GetJob(c.Param("jobId"))
	if !ok {
		s.respondError(c, http.StatusNotFound, "Job not found")
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) handleJobCandidates(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.JobCandidates(c.Param("jobId")))
}

func (s *Server) handleUploadResumes(c *gin.Context) {
	jobID := c.Param("jobId")

	form, err := c.MultipartForm()
	if err != nil || len(form.File["resumes"]) == 0 {
		s.respondError(c, http.StatusBadRequest, "No files uploaded")
		return
	}
	if !s.store.HasJob(jobID) {
		s.respondError(c, http.StatusNotFound, "Job not found")
		return
	}

	base := "http://" + c.Request.Host
	fileURL := func(fileID string) string { return base + "/files/" + fileID }

	uploaded := []string{}
	details := []models.Candidate{}
	for _, fh := range form.File["resumes"] {
		f, err := fh.Open()
		if err != nil {
			s.respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to read %s", fh.Filename))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to read %s", fh.Filename))
			return
		}

		cand := s.store.AddResume(jobID, fh.Filename, data, fileURL)
		uploaded = append(uploaded, cand.ResumeURL)
		details = append(details, cand)
		log.Printf("[StubAPI] Stored resume %s for job %s", fh.Filename, jobID)
	}

	c.JSON(http.StatusCreated, models.UploadResult{
		Message:          "Resumes uploaded successfully",
		UploadedResumes:  uploaded,
		CandidateDetails: details,
	})
}

func (s *Server) handleListCandidates(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListCandidates())
}

func (s *Server) handleGetCandidate(c *gin.Context) {
	cand, ok := s.store.GetCandidate(c.Param("candidateId"))
	if !ok {
		s.respondError(c, http.StatusNotFound, "Candidate not found")
		return
	}
	c.JSON(http.StatusOK, cand)
}

func (s *Server) handleFile(c *gin.Context) {
	name, data, ok := s.store.File(c.Param("fileId"))
	if !ok {
		s.respondError(c, http.StatusNotFound, "File not found")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// respondError sends an error response
func (s *Server) respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": message,
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Printf("%s %s %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
		c.Next()
	}
}
