package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsResume(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "cv.pdf", want: true},
		{name: "CV.PDF", want: true},
		{name: "cv.doc", want: true},
		{name: "cv.docx", want: true},
		{name: "cv.txt", want: false},
		{name: "notes", want: false},
	}

	for _, tt := range tests {
		if got := IsResume(tt.name); got != tt.want {
			t.Errorf("IsResume(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSaveResume(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	fh := NewFileHandler(dir)

	path, err := fh.SaveResume("../escape/cv.pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("SaveResume() error = %v", err)
	}
	if path != filepath.Join(dir, "cv.pdf") {
		t.Errorf("SaveResume() path = %s, want file inside %s", path, dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("content = %q, want %q", data, "content")
	}
}

func TestListResumes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.docx", "a.pdf", "notes.txt", "c.doc"} {
		os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644)
	}
	os.Mkdir(filepath.Join(dir, "nested.pdf"), 0755)

	got, err := ListResumes(dir)
	if err != nil {
		t.Fatalf("ListResumes() error = %v", err)
	}

	want := []string{"a.pdf", "b.docx", "c.doc"}
	if len(got) != len(want) {
		t.Fatalf("ListResumes() = %v, want %v", got, want)
	}
	for i, name := range want {
		if filepath.Base(got[i]) != name {
			t.Errorf("ListResumes()[%d] = %s, want %s", i, got[i], name)
		}
	}
}

func TestListResumesMissingDir(t *testing.T) {
	got, err := ListResumes(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("ListResumes() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListResumes() = %v, want empty", got)
	}
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("x"), 0644)

	fh := NewFileHandler(dir)
	if err := fh.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read directory: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty directory, got %d entries", len(entries))
	}
}
