package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c360studio/chatmode/artifact"
)

func testDescriptor(relPath string) *artifact.Descriptor {
	return &artifact.Descriptor{
		Body:         "# Test\n\n_Generated with GitHub Copilot as directed by User_",
		RelativePath: relPath,
		MimeKind:     artifact.MimeMarkdown,
		GeneratedAt:  time.Now(),
	}
}

func TestWriter_Write(t *testing.T) {
	tmpDir := t.TempDir()
	w := NewWriter(tmpDir)

	path, err := w.Write(testDescriptor("docs/doc_20260314_150926.md"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := filepath.Join(tmpDir, "docs", "doc_20260314_150926.md")
	if path != want {
		t.Errorf("Write() path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written artifact: %v", err)
	}
	if string(data) != testDescriptor("").Body {
		t.Error("written body does not match descriptor body")
	}
}

func TestWriter_WriteCreatesNestedDirs(t *testing.T) {
	tmpDir := t.TempDir()
	w := NewWriter(tmpDir)

	path, err := w.Write(testDescriptor("docs/diagrams/sequence_20260314_150926.mmd"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("written file missing: %v", err)
	}
}

func TestWriter_Overwrite(t *testing.T) {
	// Same-second collisions overwrite; last writer wins.
	tmpDir := t.TempDir()
	w := NewWriter(tmpDir)

	desc := testDescriptor("docs/doc_20260314_150926.md")
	if _, err := w.Write(desc); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}

	desc2 := *desc
	desc2.Body = "replacement"
	path, err := w.Write(&desc2)
	if err != nil {
		t.Fatalf("second Write() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "replacement" {
		t.Error("second write did not overwrite the first")
	}
}

func TestWriter_EnsureDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	w := NewWriter(tmpDir)

	if err := w.EnsureDirectories("docs"); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}

	for _, dir := range []string{"docs", filepath.Join("docs", "diagrams")} {
		info, err := os.Stat(filepath.Join(tmpDir, dir))
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s not created", dir)
		}
	}
}
