package agent

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/chatmode/artifact"
	"github.com/c360studio/chatmode/config"
)

func testAgent(t *testing.T) (*Architect, string) {
	t.Helper()
	workspace := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Workspace.Path = workspace
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return New("architect-test", cfg, logger), workspace
}

func TestArchitect_ProcessDoc(t *testing.T) {
	a, workspace := testAgent(t)

	result, err := a.Process(context.Background(), "Document auth", map[string]string{
		KeyTargets:      "AuthService,UserManager",
		KeyArtifactType: "doc",
		KeyUserName:     "QA",
	})
	require.NoError(t, err)

	assert.Equal(t, "architect-test", result.AgentID)
	assert.NotEmpty(t, result.RequestID)
	assert.True(t, strings.HasPrefix(result.Path, workspace), "artifact must land under the workspace")
	assert.Equal(t, artifact.MimeMarkdown, result.Descriptor.MimeKind)
	assert.True(t, strings.HasSuffix(result.Descriptor.Body,
		"_Generated with GitHub Copilot as directed by QA_"))

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, result.Descriptor.Body, string(data))
}

func TestArchitect_ProcessDiagram(t *testing.T) {
	a, workspace := testAgent(t)

	result, err := a.Process(context.Background(), "Show the login flow", map[string]string{
		KeyTargets:      "AuthService",
		KeyArtifactType: "diagram",
		KeyDiagramType:  "sequence",
	})
	require.NoError(t, err)

	assert.Contains(t, result.Path, filepath.Join(workspace, "docs", "diagrams"))
	assert.True(t, strings.HasSuffix(result.Path, ".mmd"))
	assert.Equal(t, artifact.MimeMermaid, result.Descriptor.MimeKind)
}

func TestArchitect_ProcessStructuredInput(t *testing.T) {
	a, _ := testAgent(t)

	input := "prompt=Document auth\ntargets=AuthService\nartifactType=gapscan"
	result, err := a.Process(context.Background(), input, nil)
	require.NoError(t, err)

	assert.Contains(t, result.Descriptor.Body, "# Gap Analysis for AuthService")
}

func TestArchitect_ProcessValidationErrors(t *testing.T) {
	a, _ := testAgent(t)

	tests := []struct {
		name   string
		input  string
		params map[string]string
	}{
		{
			name:   "missing prompt",
			input:  "",
			params: map[string]string{KeyTargets: "A", KeyArtifactType: "doc"},
		},
		{
			name:   "missing targets",
			input:  "Document it",
			params: map[string]string{KeyArtifactType: "doc"},
		},
		{
			name:   "diagram without diagram type",
			input:  "Draw it",
			params: map[string]string{KeyTargets: "A", KeyArtifactType: "diagram"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := a.Process(context.Background(), tt.input, tt.params)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, artifact.IsValidationError(err), "expected a validation error, got %v", err)
		})
	}
}

func TestArchitect_ProcessCancelledContext(t *testing.T) {
	a, _ := testAgent(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Process(ctx, "Document auth", map[string]string{
		KeyTargets:      "A",
		KeyArtifactType: "doc",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestArchitect_DefaultsFromConfig(t *testing.T) {
	workspace := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Workspace.Path = workspace
	cfg.Generate.UserName = "Platform Team"
	cfg.Generate.OutputDir = "handbook"

	a := New("", cfg, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	assert.True(t, strings.HasPrefix(a.ID(), "architect-"))

	result, err := a.Process(context.Background(), "Document auth", map[string]string{
		KeyTargets:      "AuthService",
		KeyArtifactType: "doc",
	})
	require.NoError(t, err)

	assert.Contains(t, result.Path, filepath.Join(workspace, "handbook"))
	assert.True(t, strings.HasSuffix(result.Descriptor.Body,
		"_Generated with GitHub Copilot as directed by Platform Team_"))
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		params map[string]string
		want   map[string]string
	}{
		{
			name:  "bare input becomes prompt",
			input: "Document auth",
			want:  map[string]string{KeyPrompt: "Document auth"},
		},
		{
			name:   "existing prompt wins over bare input",
			input:  "ignored",
			params: map[string]string{KeyPrompt: "kept"},
			want:   map[string]string{KeyPrompt: "kept"},
		},
		{
			name:  "structured input overrides params",
			input: "prompt=From input",
			params: map[string]string{
				KeyPrompt:  "From params",
				KeyTargets: "A",
			},
			want: map[string]string{
				KeyPrompt:  "From input",
				KeyTargets: "A",
			},
		},
		{
			name:  "values may contain equals signs",
			input: "prompt=a=b",
			want:  map[string]string{KeyPrompt: "a=b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseInput(tt.input, tt.params)
			for k, v := range tt.want {
				assert.Equal(t, v, got[k], "key %s", k)
			}
		})
	}
}
