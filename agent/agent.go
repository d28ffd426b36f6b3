// Package agent exposes the artifact generator through the pluggable agent
// boundary used by workflow orchestrators: a Process call taking a free-form
// input string plus a parameter map, returning the generated artifact and
// where it was written.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/c360studio/chatmode/artifact"
	"github.com/c360studio/chatmode/config"
	"github.com/c360studio/chatmode/output"
	"github.com/c360studio/chatmode/scan"
)

// Parameter keys accepted in the Process context map.
const (
	KeyPrompt       = "prompt"
	KeyTargets      = "targets"
	KeyArtifactType = "artifactType"
	KeyDepth        = "depth"
	KeyDiagramType  = "diagramType"
	KeyOutputDir    = "outputDir"
	KeyFormat       = "format"
	KeyUserName     = "user_name"
	KeyWorkspace    = "workspace"
)

// Architect generates architecture documentation artifacts on request.
type Architect struct {
	id        string
	defaults  config.GenerateConfig
	workspace string
	generator *artifact.Generator
	logger    *slog.Logger
}

// Result is returned for every successful Process call.
type Result struct {
	AgentID    string               `json:"agent_id"`
	RequestID  string               `json:"request_id"`
	Descriptor *artifact.Descriptor `json:"descriptor"`
	// Request is the effective request after defaults were applied.
	Request artifact.Request `json:"request"`
	// Path is the absolute path the artifact was written to.
	Path string `json:"path"`
	// Targets reports workspace files related to each requested target.
	Targets []scan.Match `json:"targets,omitempty"`
}

// New creates an architect agent. An empty id gets a generated one. The
// config supplies per-agent defaults for unset request fields.
func New(id string, cfg *config.Config, logger *slog.Logger) *Architect {
	if id == "" {
		id = "architect-" + uuid.New().String()[:8]
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Architect{
		id:        id,
		defaults:  cfg.Generate,
		workspace: cfg.Workspace.Path,
		generator: artifact.NewGenerator(),
		logger:    logger,
	}
}

// ID returns the agent identifier.
func (a *Architect) ID() string {
	return a.id
}

// Process handles a single generation request. Parameters come from the
// params map; key=value lines in input override them, and a bare input
// string becomes the prompt when none is set. The artifact is generated,
// written under the workspace, and described in the result. Validation
// failures are terminal for the invocation.
func (a *Architect) Process(ctx context.Context, input string, params map[string]string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := parseInput(input, params)
	req := a.buildRequest(merged)

	desc, err := a.generator.Generate(req)
	if err != nil {
		return nil, err
	}

	writer := output.NewWriter(req.Workspace)
	path, err := writer.Write(desc)
	if err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}

	result := &Result{
		AgentID:    a.id,
		RequestID:  uuid.New().String(),
		Descriptor: desc,
		Request:    req,
		Path:       path,
	}

	// Target scanning is advisory; a failure never voids the artifact.
	matches, err := scan.NewScanner(req.Workspace).Scan(artifact.SplitTargets(req.Targets))
	if err != nil {
		a.logger.Warn("Target scan failed",
			slog.String("agent_id", a.id),
			slog.String("error", err.Error()))
	} else {
		result.Targets = matches
	}

	a.logger.Info("Generated artifact",
		slog.String("agent_id", a.id),
		slog.String("request_id", result.RequestID),
		slog.String("artifact_type", string(req.ArtifactType)),
		slog.String("path", path))

	return result, nil
}

// buildRequest maps the merged parameters onto a generation request,
// applying agent-level defaults for unset optional fields.
func (a *Architect) buildRequest(params map[string]string) artifact.Request {
	req := artifact.Request{
		Prompt:       params[KeyPrompt],
		Targets:      params[KeyTargets],
		ArtifactType: artifact.ArtifactType(params[KeyArtifactType]),
		Depth:        artifact.Depth(params[KeyDepth]),
		DiagramType:  artifact.DiagramType(params[KeyDiagramType]),
		OutputDir:    params[KeyOutputDir],
		Format:       artifact.Format(params[KeyFormat]),
		UserName:     params[KeyUserName],
		Workspace:    params[KeyWorkspace],
	}

	if req.Depth == "" {
		req.Depth = artifact.Depth(a.defaults.Depth)
	}
	if req.Format == "" {
		req.Format = artifact.Format(a.defaults.Format)
	}
	if req.OutputDir == "" {
		req.OutputDir = a.defaults.OutputDir
	}
	if req.UserName == "" {
		req.UserName = a.defaults.UserName
	}
	if req.Workspace == "" {
		req.Workspace = a.workspace
	}

	return req
}

// parseInput merges the params map with key=value lines found in the input
// string; input lines win. Input without any key=value structure is treated
// as the prompt when the map does not already carry one.
func parseInput(input string, params map[string]string) map[string]string {
	merged := make(map[string]string, len(params)+1)
	for k, v := range params {
		merged[k] = v
	}

	if strings.Contains(input, "=") {
		for _, line := range strings.Split(input, "\n") {
			line = strings.TrimSpace(line)
			key, value, found := strings.Cut(line, "=")
			if !found {
				continue
			}
			merged[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
		return merged
	}

	if input != "" && merged[KeyPrompt] == "" {
		merged[KeyPrompt] = input
	}
	return merged
}
