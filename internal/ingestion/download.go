package ingestion

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Downloader fetches candidate resumes by URL into a local folder
type Downloader struct {
	http  *resty.Client
	files *FileHandler
}

// NewDownloader saves downloads into dir
func NewDownloader(dir string) *Downloader {
	return &Downloader{
		http:  resty.New(),
		files: NewFileHandler(dir),
	}
}

// Download fetches resumeURL and returns the local path
func (d *Downloader) Download(ctx context.Context, resumeURL string) (string, error) {
	name, err := fileNameFromURL(resumeURL)
	if err != nil {
		return "", err
	}

	resp, err := d.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(resumeURL)
	if err != nil {
		return "", fmt.Errorf("failed to download resume: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return "", fmt.Errorf("failed to download resume: status %d", resp.StatusCode())
	}

	saved, err := d.files.SaveResume(name, body)
	if err != nil {
		return "", err
	}
	log.Printf("[Download] Saved %s", saved)
	return saved, nil
}

// Preview downloads resumeURL and extracts its text
func (d *Downloader) Preview(ctx context.Context, resumeURL string) (path, text string, err error) {
	path, err = d.Download(ctx, resumeURL)
	if err != nil {
		return "", "", err
	}
	text, err = ExtractText(path)
	if err != nil {
		return path, "", err
	}
	if IsBinaryData(text) {
		return path, "", fmt.Errorf("%s: %w", filepath.Base(path), ErrBinaryContent)
	}
	return path, text, nil
}

// Clear deletes every downloaded resume
func (d *Downloader) Clear() error {
	if err := d.files.Clear(); err != nil {
		return err
	}
	log.Printf("[Download] Cleared %s", d.files.dir)
	return nil
}

func fileNameFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid resume url: %q", raw)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || strings.TrimSpace(name) == "" {
		name = "resume"
	}
	if path.Ext(name) == "" {
		name += ".pdf"
	}
	return name, nil
}
