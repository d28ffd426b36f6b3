package artifact

import "time"

// Generator coordinates a single generation: validate, capture the
// timestamp, resolve the output path, dispatch to a builder and assemble the
// descriptor. It performs no I/O and keeps no state between calls, so one
// Generator is safe for concurrent use.
type Generator struct {
	now func() time.Time
}

// NewGenerator returns a Generator using the wall clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorAt returns a Generator with a fixed clock, for callers that
// need reproducible filenames.
func NewGeneratorAt(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Generate produces a complete artifact descriptor for the request, or a
// validation error before any building occurs. Partial artifacts are never
// returned and nothing is retried.
func (g *Generator) Generate(req Request) (*Descriptor, error) {
	validated, err := Validate(req)
	if err != nil {
		return nil, err
	}

	// The generation instant determines the filename. Calls within the
	// same second resolve to the same path; the last writer wins.
	now := g.now()

	naming := NamingContext{
		ArtifactType: validated.ArtifactType,
		DiagramType:  validated.DiagramType,
		Timestamp:    now,
	}

	builder, err := SelectBuilder(validated.ArtifactType, validated.DiagramType)
	if err != nil {
		return nil, err
	}

	body := builder(validated)
	// Confluence substitutions apply to markdown document bodies only. A
	// diagram body is mermaid source for .mmd tooling; rewriting its fence
	// into a {code} macro would make it invalid.
	if validated.Format == FormatConfluence && validated.ArtifactType != TypeDiagram {
		body = ToConfluence(body)
	}

	return &Descriptor{
		Body:         body,
		RelativePath: naming.RelativePath(validated.OutputDir),
		MimeKind:     naming.MimeKind(),
		GeneratedAt:  now,
	}, nil
}
