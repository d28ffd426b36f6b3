// Package scan locates workspace files related to named targets. The agent
// uses the results for logging and response metadata; content builders never
// read the filesystem.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match reports the workspace files whose names mention a target.
type Match struct {
	Target string   `json:"target"`
	Files  []string `json:"files,omitempty"`
	Count  int      `json:"count"`
}

// Scanner globs a workspace for files related to targets.
type Scanner struct {
	workspace string

	// maxFiles caps the files retained per target; counts stay exact.
	maxFiles int
}

// NewScanner creates a scanner rooted at the workspace path.
func NewScanner(workspace string) *Scanner {
	if workspace == "" {
		workspace = "."
	}
	return &Scanner{workspace: workspace, maxFiles: 20}
}

// Scan resolves each target to matching workspace files using a recursive
// glob. Blank targets yield an empty match. A missing workspace is an error;
// a target with no matches is not.
func (s *Scanner) Scan(targets []string) ([]Match, error) {
	if _, err := os.Stat(s.workspace); err != nil {
		return nil, fmt.Errorf("stat workspace: %w", err)
	}

	fsys := os.DirFS(s.workspace)
	matches := make([]Match, 0, len(targets))

	for _, target := range targets {
		name := strings.TrimSpace(target)
		if name == "" {
			matches = append(matches, Match{Target: target})
			continue
		}

		files, err := globTarget(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("scan target %q: %w", name, err)
		}

		match := Match{Target: name, Count: len(files)}
		if len(files) > s.maxFiles {
			files = files[:s.maxFiles]
		}
		match.Files = files
		matches = append(matches, match)
	}

	return matches, nil
}

// globTarget matches files whose base name contains the target, in any
// directory. Both the literal target and its lowercased form are tried so
// CamelCase component names also find lowercase files.
func globTarget(fsys fs.FS, name string) ([]string, error) {
	patterns := []string{
		fmt.Sprintf("**/*%s*", name),
	}
	if lower := strings.ToLower(name); lower != name {
		patterns = append(patterns, fmt.Sprintf("**/*%s*", lower))
	}

	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		found, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}
		for _, f := range found {
			if seen[f] {
				continue
			}
			info, err := fs.Stat(fsys, f)
			if err != nil || info.IsDir() {
				continue // Skip directories and unreadable entries
			}
			seen[f] = true
			files = append(files, f)
		}
	}

	sort.Strings(files)
	return files, nil
}
