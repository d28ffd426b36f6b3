package artifact

import (
	"fmt"
	"regexp"
	"strings"
)

// Diagram builders emit a single fenced mermaid block holding a
// syntactically valid skeleton: targets become actors/nodes/entities, with
// no interactions filled in. Semantic completeness is the caller's job.

var nonIdentRE = regexp.MustCompile(`[^A-Za-z0-9_]`)

// mermaidID converts a target name to an identifier safe for mermaid
// grammar positions that do not allow spaces or punctuation.
func mermaidID(target string) string {
	id := nonIdentRE.ReplaceAllString(strings.TrimSpace(target), "_")
	id = strings.Trim(id, "_")
	if id == "" {
		return "T"
	}
	return id
}

// fenceMermaid wraps diagram source in a fenced block and appends the
// attribution footer.
func fenceMermaid(source string, userName string) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString(source)
	sb.WriteString("```\n\n")
	sb.WriteString(Footer(userName))
	return sb.String()
}

func buildSequenceDiagram(req *ValidatedRequest) string {
	var src strings.Builder
	src.WriteString("sequenceDiagram\n")
	for _, target := range req.TargetList {
		src.WriteString(fmt.Sprintf("    participant %s\n", mermaidID(target)))
	}
	return fenceMermaid(src.String(), req.UserName)
}

func buildFlowchartDiagram(req *ValidatedRequest) string {
	var src strings.Builder
	src.WriteString("flowchart TD\n")
	for i, target := range req.TargetList {
		src.WriteString(fmt.Sprintf("    n%d[%q]\n", i, target))
	}
	return fenceMermaid(src.String(), req.UserName)
}

func buildClassDiagram(req *ValidatedRequest) string {
	var src strings.Builder
	src.WriteString("classDiagram\n")
	for _, target := range req.TargetList {
		src.WriteString(fmt.Sprintf("    class %s\n", mermaidID(target)))
	}
	return fenceMermaid(src.String(), req.UserName)
}

func buildERDiagram(req *ValidatedRequest) string {
	var src strings.Builder
	src.WriteString("erDiagram\n")
	for _, target := range req.TargetList {
		src.WriteString(fmt.Sprintf("    %s {\n        string id PK\n    }\n", mermaidID(target)))
	}
	return fenceMermaid(src.String(), req.UserName)
}

func buildStateDiagram(req *ValidatedRequest) string {
	var src strings.Builder
	src.WriteString("stateDiagram-v2\n")
	for i, target := range req.TargetList {
		src.WriteString(fmt.Sprintf("    s%d : %s\n", i, strings.TrimSpace(target)))
	}
	return fenceMermaid(src.String(), req.UserName)
}
