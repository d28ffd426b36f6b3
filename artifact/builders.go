package artifact

import (
	"fmt"
	"strings"
)

// footerTemplate is the required attribution suffix for every generated
// body. Downstream tooling depends on the exact text.
const footerTemplate = "_Generated with GitHub Copilot as directed by %s_"

// Footer returns the attribution line appended to every artifact body.
func Footer(userName string) string {
	return fmt.Sprintf(footerTemplate, userName)
}

// BuilderFunc assembles an artifact body from a validated request. Builders
// are pure: no filesystem access and no clock reads.
type BuilderFunc func(req *ValidatedRequest) string

// SelectBuilder maps an artifact type (and diagram type, for diagrams) to its
// content builder. The sets are closed; a miss returns
// ErrUnsupportedArtifact and should be impossible for validated requests.
func SelectBuilder(artifactType ArtifactType, diagramType DiagramType) (BuilderFunc, error) {
	switch artifactType {
	case TypeDoc:
		return buildDoc, nil
	case TypeTestCases:
		return buildTestCases, nil
	case TypeGapScan:
		return buildGapScan, nil
	case TypeUseCases:
		return buildUseCases, nil
	case TypeDiagram:
		switch diagramType {
		case DiagramSequence:
			return buildSequenceDiagram, nil
		case DiagramFlowchart:
			return buildFlowchartDiagram, nil
		case DiagramClass:
			return buildClassDiagram, nil
		case DiagramER:
			return buildERDiagram, nil
		case DiagramState:
			return buildStateDiagram, nil
		default:
			return nil, fmt.Errorf("%w: diagram/%s", ErrUnsupportedArtifact, diagramType)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedArtifact, artifactType)
	}
}

// buildDoc generates an architecture documentation body.
func buildDoc(req *ValidatedRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Architecture Documentation for %s\n\n", req.JoinedTargets()))

	writeDepthSections(&sb, req,
		fmt.Sprintf(`This document provides %s level documentation for: %s

Focus areas:

- Interfaces, contracts and data flows
- Major components and integration points
- Reliability behaviors and error surfaces
`, req.Depth, req.Prompt),
		func(target string) string {
			return fmt.Sprintf(`Responsibilities, dependencies and integration points of %s.

- Role within the system
- Upstream and downstream dependencies
- Error surface and recovery behavior
`, target)
		})

	sb.WriteString(Footer(req.UserName))
	return sb.String()
}

// buildTestCases generates a test case catalogue body.
func buildTestCases(req *ValidatedRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Test Cases for %s\n\n", req.JoinedTargets()))

	writeDepthSections(&sb, req,
		fmt.Sprintf(`Test cases generated for: %s

Categories:

- Unit: component functionality, input validation, error handling
- Integration: system wiring, endpoint behavior, data flow
- Performance: load, stress and scalability checks
`, req.Prompt),
		func(target string) string {
			return fmt.Sprintf(`Cases covering %s.

- Verify primary function against expected output
- Verify rejection of invalid input with a clear error
- Verify recovery after a dependency failure
`, target)
		})

	sb.WriteString(Footer(req.UserName))
	return sb.String()
}

// buildGapScan generates a gap analysis body.
func buildGapScan(req *ValidatedRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Gap Analysis for %s\n\n", req.JoinedTargets()))

	writeDepthSections(&sb, req,
		fmt.Sprintf(`Gap analysis conducted for: %s

Areas assessed:

- Documentation coverage and currency
- Test coverage and missing integration checks
- Component boundaries and error handling
- Security and data protection controls
`, req.Prompt),
		func(target string) string {
			return fmt.Sprintf(`Observed gaps in %s.

- Undocumented interfaces or contracts
- Untested failure paths
- Unclear ownership of shared state
`, target)
		})

	sb.WriteString(Footer(req.UserName))
	return sb.String()
}

// buildUseCases generates a use case catalogue body.
func buildUseCases(req *ValidatedRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Use Cases for %s\n\n", req.JoinedTargets()))

	writeDepthSections(&sb, req,
		fmt.Sprintf(`Use cases defined for: %s

Actors:

- Primary user
- System administrator
- External system
`, req.Prompt),
		func(target string) string {
			return fmt.Sprintf(`Primary interactions with %s.

- Main flow: actor invokes %s and receives a result
- Alternative flow: invalid input is rejected with an error
- Postcondition: the request is fully processed or fully refused
`, target, target)
		})

	sb.WriteString(Footer(req.UserName))
	return sb.String()
}

// writeDepthSections appends the depth-controlled section structure shared
// by all document builders:
//
//   - overview: a single summary section
//   - subsystem: the summary plus one subsection per target
//   - interface-only: only an Interfaces & Contracts section per target
func writeDepthSections(sb *strings.Builder, req *ValidatedRequest, summary string, subsection func(target string) string) {
	if req.Depth == DepthInterfaceOnly {
		for _, target := range req.TargetList {
			sb.WriteString(fmt.Sprintf("## Interfaces & Contracts: %s\n\n", target))
			sb.WriteString(fmt.Sprintf(`- Exposed operations and their inputs/outputs
- Consumed contracts and upstream dependencies
- Error surface: failure modes visible to callers of %s
`, target))
			sb.WriteString("\n")
		}
		return
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString(summary)
	sb.WriteString("\n")

	if req.Depth == DepthSubsystem {
		for _, target := range req.TargetList {
			sb.WriteString(fmt.Sprintf("### %s\n\n", target))
			sb.WriteString(subsection(target))
			sb.WriteString("\n")
		}
	}
}
