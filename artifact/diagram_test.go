package artifact

import (
	"strings"
	"testing"
)

func diagramRequest(t *testing.T, diagramType DiagramType) *ValidatedRequest {
	t.Helper()
	return mustValidate(t, Request{
		Prompt:       "Show the login flow",
		Targets:      "AuthService,UserManager",
		ArtifactType: TypeDiagram,
		DiagramType:  diagramType,
		UserName:     "QA",
	})
}

func TestDiagramBuilders_SingleFencedBlock(t *testing.T) {
	tests := []struct {
		diagramType DiagramType
		header      string
	}{
		{DiagramSequence, "sequenceDiagram"},
		{DiagramFlowchart, "flowchart TD"},
		{DiagramClass, "classDiagram"},
		{DiagramER, "erDiagram"},
		{DiagramState, "stateDiagram-v2"},
	}

	for _, tt := range tests {
		t.Run(string(tt.diagramType), func(t *testing.T) {
			builder, err := SelectBuilder(TypeDiagram, tt.diagramType)
			if err != nil {
				t.Fatalf("SelectBuilder() error = %v", err)
			}

			body := builder(diagramRequest(t, tt.diagramType))

			if !strings.HasPrefix(body, "```mermaid\n"+tt.header+"\n") {
				t.Errorf("body does not open a %s fence; head = %q", tt.header, head(body, 50))
			}
			if got := strings.Count(body, "```"); got != 2 {
				t.Errorf("fence markers = %d, want exactly 2 (a single block)", got)
			}
			if !strings.HasSuffix(body, "_Generated with GitHub Copilot as directed by QA_") {
				t.Errorf("footer missing; tail = %q", tail(body, 60))
			}
		})
	}
}

func TestBuildSequenceDiagram_ParticipantsFromTargets(t *testing.T) {
	body := buildSequenceDiagram(diagramRequest(t, DiagramSequence))

	for _, participant := range []string{"AuthService", "UserManager"} {
		if !strings.Contains(body, "    participant "+participant+"\n") {
			t.Errorf("missing participant %s", participant)
		}
	}
	if strings.Contains(body, "->>") {
		t.Error("skeleton must not contain interactions")
	}
}

func TestMermaidID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AuthService", "AuthService"},
		{"Auth Service", "Auth_Service"},
		{"auth-service/v2", "auth_service_v2"},
		{"  spaced  ", "spaced"},
		{"", "T"},
		{"---", "T"},
	}

	for _, tt := range tests {
		if got := mermaidID(tt.in); got != tt.want {
			t.Errorf("mermaidID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
