package ingestion

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsBinaryData(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{name: "Simple text", content: "This is a plain text CV with normal content.", want: false},
		{name: "Tabs and newlines", content: "Name:\tJohn\nTitle:\tEngineer\nYears:\t5", want: false},
		{name: "Empty string", content: "", want: false},
		{name: "Few control chars", content: "John Doe\x00\nExperience: 5 years\nEducation: BS Computer Science", want: false},
		{name: "PDF header", content: "%PDF-1.7\n%%EOF", want: true},
		{name: "ZIP magic number", content: "PK\x03\x04\x14\x00", want: true},
		{name: "Mostly control chars", content: strings.Repeat("\x01", 400) + strings.Repeat("x", 600), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBinaryData(tt.content); got != tt.want {
				t.Errorf("IsBinaryData() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractText_TXT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	os.WriteFile(path, []byte("Jane Doe\nGo developer"), 0644)

	got, err := ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if got != "Jane Doe\nGo developer" {
		t.Errorf("ExtractText() = %q", got)
	}
}

func TestExtractText_Unsupported(t *testing.T) {
	for _, name := range []string{"resume.doc", "photo.jpg", "sheet.xlsx"} {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractText(name)
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ExtractText(%q) error = %v, want ErrUnsupportedFormat", name, err)
			}
		})
	}
}

func TestExtractText_MissingFile(t *testing.T) {
	if _, err := ExtractText(filepath.Join(t.TempDir(), "gone.pdf")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestExtractBytes_InvalidPDF(t *testing.T) {
	if _, err := ExtractBytes("cv.pdf", []byte("not a pdf")); err == nil {
		t.Error("Expected error for invalid pdf content")
	}
}

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
		w.Write([]byte(content))
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractBytes_DOCX(t *testing.T) {
	data := buildDocx(t, `<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Go developer</w:t></w:r></w:p>`)

	got, err := ExtractBytes("cv.docx", data)
	if err != nil {
		t.Fatalf("ExtractBytes() error = %v", err)
	}
	if !strings.Contains(got, "Jane Doe") || !strings.Contains(got, "Go developer") {
		t.Errorf("ExtractBytes() = %q, want both paragraphs", got)
	}
	if strings.Contains(got, "<w:") {
		t.Errorf("ExtractBytes() kept markup: %q", got)
	}
}

func TestStripTags(t *testing.T) {
	got := stripTags(`<w:p><w:t>One</w:t></w:p><w:p><w:t>Two</w:t><w:br/><w:t>Three</w:t></w:p>`)
	if got != "One\nTwo\nThree" {
		t.Errorf("stripTags() = %q, want %q", got, "One\nTwo\nThree")
	}
}
