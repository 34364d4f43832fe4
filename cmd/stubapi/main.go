package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fmuoria/recruiter-dashboard/internal/stubapi"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	store := stubapi.NewStore()
	if os.Getenv("STUB_SEED") != "" {
		jobID := stubapi.Seed(store)
		log.Printf("Seeded sample job %s", jobID)
	}

	server := stubapi.NewServer(store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      server.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Println("server shutdown:", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("Stub backend listening on :%s", port)
	log.Printf("Endpoints:")
	log.Printf("  GET  /api/jobs")
	log.Printf("  POST /api/jobs/create")
	log.Printf("  GET  /api/jobs/{jobId}")
	log.Printf("  POST /api/jobs/{jobId}/upload-resumes")
	log.Printf("  GET  /api/candidates")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed to start: %v", err)
	}

	<-idleConnsClosed
}
