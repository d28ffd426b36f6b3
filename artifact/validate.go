package artifact

import "strings"

// Validate checks a request against the parameter contract and returns a
// normalized copy with defaults applied and targets split. Checks run in a
// fixed order: prompt, targets, artifactType, diagramType (diagram artifacts
// only), depth, format. The first failure wins. Validate has no side effects.
func Validate(req Request) (*ValidatedRequest, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, &MissingParameterError{Name: "prompt"}
	}

	targets := SplitTargets(req.Targets)
	if !hasNonBlank(targets) {
		return nil, &MissingParameterError{Name: "targets"}
	}

	if !req.ArtifactType.IsValid() {
		return nil, &InvalidEnumError{
			Name:    "artifactType",
			Value:   string(req.ArtifactType),
			Allowed: artifactTypeNames(),
		}
	}

	// diagramType is meaningful only for diagram artifacts; any value
	// supplied for other artifact types is ignored.
	if req.ArtifactType == TypeDiagram {
		if req.DiagramType == "" {
			return nil, &MissingParameterError{Name: "diagramType"}
		}
		if !req.DiagramType.IsValid() {
			return nil, &InvalidEnumError{
				Name:    "diagramType",
				Value:   string(req.DiagramType),
				Allowed: diagramTypeNames(),
			}
		}
	}

	if req.Depth == "" {
		req.Depth = DefaultDepth
	} else if !req.Depth.IsValid() {
		return nil, &InvalidEnumError{
			Name:    "depth",
			Value:   string(req.Depth),
			Allowed: depthNames(),
		}
	}

	if req.Format == "" {
		req.Format = DefaultFormat
	} else if !req.Format.IsValid() {
		return nil, &InvalidEnumError{
			Name:    "format",
			Value:   string(req.Format),
			Allowed: formatNames(),
		}
	}

	if req.OutputDir == "" {
		req.OutputDir = DefaultOutputDir
	}
	if req.UserName == "" {
		req.UserName = DefaultUserName
	}
	if req.Workspace == "" {
		req.Workspace = DefaultWorkspace
	}

	return &ValidatedRequest{Request: req, TargetList: targets}, nil
}

// hasNonBlank reports whether at least one component is non-empty. Blank
// components themselves are preserved for the builders.
func hasNonBlank(targets []string) bool {
	for _, t := range targets {
		if t != "" {
			return true
		}
	}
	return false
}

func artifactTypeNames() []string {
	types := ArtifactTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

func diagramTypeNames() []string {
	types := DiagramTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

func depthNames() []string {
	depths := Depths()
	names := make([]string, len(depths))
	for i, d := range depths {
		names[i] = string(d)
	}
	return names
}

func formatNames() []string {
	formats := Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}
