// Package artifact implements the artifact generation pipeline: request
// validation, output path resolution, builder dispatch and content assembly
// for architecture documents and mermaid diagrams.
package artifact

import (
	"strings"
	"time"
)

// ArtifactType identifies the kind of artifact to generate.
type ArtifactType string

const (
	TypeDoc       ArtifactType = "doc"
	TypeDiagram   ArtifactType = "diagram"
	TypeTestCases ArtifactType = "testcases"
	TypeGapScan   ArtifactType = "gapscan"
	TypeUseCases  ArtifactType = "usecases"
)

// ArtifactTypes returns all recognized artifact types in display order.
func ArtifactTypes() []ArtifactType {
	return []ArtifactType{TypeDoc, TypeDiagram, TypeTestCases, TypeGapScan, TypeUseCases}
}

// IsValid reports whether the artifact type is one of the recognized values.
func (t ArtifactType) IsValid() bool {
	switch t {
	case TypeDoc, TypeDiagram, TypeTestCases, TypeGapScan, TypeUseCases:
		return true
	default:
		return false
	}
}

func (t ArtifactType) String() string {
	return string(t)
}

// DiagramType identifies the diagram kind for diagram artifacts.
type DiagramType string

const (
	DiagramSequence  DiagramType = "sequence"
	DiagramFlowchart DiagramType = "flowchart"
	DiagramClass     DiagramType = "class"
	DiagramER        DiagramType = "er"
	DiagramState     DiagramType = "state"
)

// DiagramTypes returns all recognized diagram types in display order.
func DiagramTypes() []DiagramType {
	return []DiagramType{DiagramSequence, DiagramFlowchart, DiagramClass, DiagramER, DiagramState}
}

// IsValid reports whether the diagram type is one of the recognized values.
func (d DiagramType) IsValid() bool {
	switch d {
	case DiagramSequence, DiagramFlowchart, DiagramClass, DiagramER, DiagramState:
		return true
	default:
		return false
	}
}

func (d DiagramType) String() string {
	return string(d)
}

// Depth controls the level of detail of document artifacts.
type Depth string

const (
	DepthOverview      Depth = "overview"
	DepthSubsystem     Depth = "subsystem"
	DepthInterfaceOnly Depth = "interface-only"
)

// Depths returns all recognized depth levels in display order.
func Depths() []Depth {
	return []Depth{DepthOverview, DepthSubsystem, DepthInterfaceOnly}
}

// IsValid reports whether the depth is one of the recognized values.
func (d Depth) IsValid() bool {
	switch d {
	case DepthOverview, DepthSubsystem, DepthInterfaceOnly:
		return true
	default:
		return false
	}
}

// Format selects the output markup for document artifacts.
type Format string

const (
	FormatMarkdown   Format = "markdown"
	FormatConfluence Format = "confluence"
)

// Formats returns all recognized output formats in display order.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatConfluence}
}

// IsValid reports whether the format is one of the recognized values.
func (f Format) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatConfluence:
		return true
	default:
		return false
	}
}

// MimeKind identifies the content kind of a generated body.
type MimeKind string

const (
	MimeMarkdown MimeKind = "markdown"
	MimeMermaid  MimeKind = "mermaid"
)

// Defaults applied during validation when optional fields are unset.
const (
	DefaultDepth     = DepthOverview
	DefaultFormat    = FormatMarkdown
	DefaultOutputDir = "docs"
	DefaultUserName  = "User"
	DefaultWorkspace = "."
)

// Request describes a single generation invocation. Targets is the raw
// comma-delimited list as supplied by the caller; Validate splits it.
type Request struct {
	Prompt       string       `json:"prompt"`
	Targets      string       `json:"targets"`
	ArtifactType ArtifactType `json:"artifactType"`
	Depth        Depth        `json:"depth,omitempty"`
	DiagramType  DiagramType  `json:"diagramType,omitempty"`
	OutputDir    string       `json:"outputDir,omitempty"`
	Format       Format       `json:"format,omitempty"`
	UserName     string       `json:"userName,omitempty"`
	Workspace    string       `json:"workspace,omitempty"`
}

// ValidatedRequest is a Request that passed Validate, with defaults applied
// and targets split into components.
type ValidatedRequest struct {
	Request

	// TargetList holds the comma-split, individually trimmed target
	// components. Blank components are preserved verbatim.
	TargetList []string
}

// JoinedTargets returns the target components joined for display in titles.
func (v *ValidatedRequest) JoinedTargets() string {
	return strings.Join(v.TargetList, ", ")
}

// Descriptor is the immutable result of a generation: the artifact body and
// where the file writer should put it, relative to the workspace.
type Descriptor struct {
	Body         string    `json:"body"`
	RelativePath string    `json:"relativePath"`
	MimeKind     MimeKind  `json:"mimeKind"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

// SplitTargets splits a comma-delimited targets string into trimmed
// components. Components that trim to empty are kept so callers can decide
// how to treat them.
func SplitTargets(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	targets := make([]string, len(parts))
	for i, p := range parts {
		targets[i] = strings.TrimSpace(p)
	}
	return targets
}
