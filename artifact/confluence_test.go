package artifact

import (
	"strings"
	"testing"
)

func TestToConfluence_Substitutions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "h1 heading",
			in:   "# Title",
			want: "h1. Title",
		},
		{
			name: "h2 heading",
			in:   "## Section",
			want: "h2. Section",
		},
		{
			name: "h3 heading",
			in:   "### Subsection",
			want: "h3. Subsection",
		},
		{
			name: "bold emphasis",
			in:   "some **bold** text",
			want: "some *bold* text",
		},
		{
			name: "list marker",
			in:   "- item one",
			want: "* item one",
		},
		{
			name: "plain text unchanged",
			in:   "just a paragraph",
			want: "just a paragraph",
		},
		{
			name: "footer unchanged",
			in:   "_Generated with GitHub Copilot as directed by QA_",
			want: "_Generated with GitHub Copilot as directed by QA_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToConfluence(tt.in); got != tt.want {
				t.Errorf("ToConfluence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToConfluence_FencedBlock(t *testing.T) {
	in := "```mermaid\nsequenceDiagram\n    participant A\n```"
	want := "{code:mermaid}\nsequenceDiagram\n    participant A\n{code}"

	if got := ToConfluence(in); got != want {
		t.Errorf("ToConfluence() = %q, want %q", got, want)
	}
}

func TestToConfluence_FenceContentUntouched(t *testing.T) {
	// Lines inside a fence must not be rewritten even if they look like
	// markdown.
	in := "```\n# not a heading\n- not a list\n```"
	got := ToConfluence(in)

	if !strings.Contains(got, "# not a heading") {
		t.Error("heading-like line inside fence was rewritten")
	}
	if !strings.Contains(got, "- not a list") {
		t.Error("list-like line inside fence was rewritten")
	}
}

func TestToConfluence_PreservesStructure(t *testing.T) {
	validated := mustValidate(t, Request{
		Prompt:       "Document auth",
		Targets:      "AuthService",
		ArtifactType: TypeDoc,
		Depth:        DepthSubsystem,
		UserName:     "QA",
	})

	body := ToConfluence(buildDoc(validated))

	if !strings.HasPrefix(body, "h1. Architecture Documentation for AuthService") {
		t.Errorf("converted title wrong; head = %q", head(body, 60))
	}
	if !strings.Contains(body, "h2. Summary") {
		t.Error("summary heading not converted")
	}
	if !strings.Contains(body, "h3. AuthService") {
		t.Error("subsection heading not converted")
	}
	if !strings.HasSuffix(body, "_Generated with GitHub Copilot as directed by QA_") {
		t.Errorf("footer altered; tail = %q", tail(body, 60))
	}
}
