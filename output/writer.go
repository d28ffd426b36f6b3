// Package output persists generated artifact descriptors under the
// workspace. It is the only place the generation pipeline touches the
// filesystem; path computation stays in the artifact package.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/c360studio/chatmode/artifact"
)

// Writer writes artifacts relative to a workspace root.
type Writer struct {
	workspace string
}

// NewWriter creates a writer rooted at the given workspace path.
func NewWriter(workspace string) *Writer {
	if workspace == "" {
		workspace = artifact.DefaultWorkspace
	}
	return &Writer{workspace: workspace}
}

// Workspace returns the workspace root this writer operates on.
func (w *Writer) Workspace() string {
	return w.workspace
}

// Path returns the absolute destination for a descriptor.
func (w *Writer) Path(desc *artifact.Descriptor) string {
	return filepath.Join(w.workspace, desc.RelativePath)
}

// EnsureDirectories creates the output directory and its diagrams
// subdirectory under the workspace.
func (w *Writer) EnsureDirectories(outputDir string) error {
	if outputDir == "" {
		outputDir = artifact.DefaultOutputDir
	}

	dirs := []string{
		filepath.Join(w.workspace, outputDir),
		filepath.Join(w.workspace, outputDir, artifact.DiagramsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Write persists the descriptor body at its resolved path, creating parent
// directories as needed, and returns the absolute path written. Same-second
// collisions overwrite silently; deduplication is out of scope.
func (w *Writer) Write(desc *artifact.Descriptor) (string, error) {
	path := w.Path(desc)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(desc.Body), 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	return path, nil
}
