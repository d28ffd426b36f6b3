package artifact

import (
	"fmt"
	"path/filepath"
	"time"
)

// Filename and directory constants for generated artifacts.
const (
	// TimestampLayout is the fixed filename timestamp format
	// (one-second resolution; collisions within a second overwrite).
	TimestampLayout = "20060102_150405"

	// DiagramsDir is the subdirectory under the output directory that
	// holds diagram files.
	DiagramsDir = "diagrams"

	DocumentExt = ".md"
	DiagramExt  = ".mmd"
)

// NamingContext carries the fields that determine an artifact's output
// location. It is derived per generation, never stored.
type NamingContext struct {
	ArtifactType ArtifactType
	DiagramType  DiagramType
	Timestamp    time.Time
}

// Filename returns the artifact filename: <diagramType>_<ts>.mmd for
// diagrams, <artifactType>_<ts>.md otherwise.
func (n NamingContext) Filename() string {
	ts := n.Timestamp.Format(TimestampLayout)
	if n.ArtifactType == TypeDiagram {
		return fmt.Sprintf("%s_%s%s", n.DiagramType, ts, DiagramExt)
	}
	return fmt.Sprintf("%s_%s%s", n.ArtifactType, ts, DocumentExt)
}

// RelativePath returns the artifact path relative to the workspace root.
// Diagrams land in a diagrams/ subdirectory of the output directory.
func (n NamingContext) RelativePath(outputDir string) string {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if n.ArtifactType == TypeDiagram {
		return filepath.Join(outputDir, DiagramsDir, n.Filename())
	}
	return filepath.Join(outputDir, n.Filename())
}

// MimeKind returns the content kind produced for this naming context.
func (n NamingContext) MimeKind() MimeKind {
	if n.ArtifactType == TypeDiagram {
		return MimeMermaid
	}
	return MimeMarkdown
}
