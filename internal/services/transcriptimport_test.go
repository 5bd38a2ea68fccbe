package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImportText_CleansSubtitleResidue(t *testing.T) {
	pasted := "WEBVTT\n\n00:00:00.000 --> 00:00:02.000\nwelcome everyone\n\n00:00:02.000 --> 00:00:04.000\nto this lecture\n"

	got, err := NewTranscriptImportService().ImportText(pasted)
	if err != nil {
		t.Fatalf("ImportText failed: %v", err)
	}
	if got != "welcome everyone to this lecture" {
		t.Errorf("Expected cleaned transcript, got %q", got)
	}
}

func TestImportText_PlainTextKept(t *testing.T) {
	got, err := NewTranscriptImportService().ImportText("just a normal transcript paragraph")
	if err != nil {
		t.Fatalf("ImportText failed: %v", err)
	}
	if got != "just a normal transcript paragraph" {
		t.Errorf("Expected text unchanged, got %q", got)
	}
}

func TestImportText_Empty(t *testing.T) {
	if _, err := NewTranscriptImportService().ImportText("   \n\n  "); err == nil {
		t.Error("Expected error for empty text")
	}
}

func TestImportFromFile_TXT(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.txt")
	content := "line one\r\nline two\r\n\r\n\r\nline three\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewTranscriptImportService().ImportFromFile(path)
	if err != nil {
		t.Fatalf("ImportFromFile failed: %v", err)
	}
	for _, want := range []string{"line one", "line two", "line three"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in imported text, got %q", want, got)
		}
	}
}

func TestImportFromFile_SRT(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "captions.srt")
	content := "1\n00:00:00,000 --> 00:00:02,000\nfirst cue\n\n2\n00:00:02,000 --> 00:00:04,000\nsecond cue\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewTranscriptImportService().ImportFromFile(path)
	if err != nil {
		t.Fatalf("ImportFromFile failed: %v", err)
	}
	if got != "first cue second cue" {
		t.Errorf("Expected cue text only, got %q", got)
	}
}

func TestImportFromFile_UnsupportedType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(path, []byte("not really a video"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewTranscriptImportService().ImportFromFile(path); err == nil {
		t.Error("Expected error for unsupported file type")
	}
}

func TestStripDOCXML(t *testing.T) {
	xml := `<w:document><w:body><w:p><w:r><w:t>Hello</w:t></w:r></w:p><w:p><w:r><w:t>World &amp; more</w:t></w:r></w:p></w:body></w:document>`

	got := stripDOCXML([]byte(xml))
	if !strings.Contains(got, "Hello") || !strings.Contains(got, "World & more") {
		t.Errorf("Unexpected stripped text: %q", got)
	}
}
