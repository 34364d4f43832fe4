package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResumeExtensions are the file types offered by the resume picker
var ResumeExtensions = []string{".pdf", ".doc", ".docx"}

// IsResume reports whether name has one of the picker's extensions
func IsResume(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ResumeExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FileHandler manages the local resume folder
type FileHandler struct {
	dir string
}

// NewFileHandler creates a handler rooted at dir
func NewFileHandler(dir string) *FileHandler {
	return &FileHandler{
		dir: dir,
	}
}

// Dir returns the folder the handler works in
func (fh *FileHandler) Dir() string {
	return fh.dir
}

// SaveResume writes content into the folder under filename
func (fh *FileHandler) SaveResume(filename string, content io.Reader) (string, error) {
	if err := os.MkdirAll(fh.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	filePath := filepath.Join(fh.dir, filepath.Base(filename))
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filePath, nil
}

// ListResumes returns the resume files in the folder, sorted by name
func (fh *FileHandler) ListResumes() ([]string, error) {
	return ListResumes(fh.dir)
}

// ListResumes returns the resume files directly inside dir, sorted by name.
// A missing directory yields an empty list.
func ListResumes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsResume(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Clear removes every file from the folder
func (fh *FileHandler) Clear() error {
	if err := os.RemoveAll(fh.dir); err != nil {
		return fmt.Errorf("failed to clear directory: %w", err)
	}
	return os.MkdirAll(fh.dir, 0755)
}
