package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
)

// previewPage wraps rendered markdown in a minimal standalone HTML page.
const previewPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; }
</style>
</head>
<body>
%s</body>
</html>
`

func previewCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "preview <artifact.md>",
		Short: "Render a generated markdown artifact to HTML",
		Long: `Preview converts a generated markdown artifact into a standalone
HTML page for review in a browser. Mermaid sources are shown as code
blocks. By default the page is written next to the artifact with an
.html extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			md, err := os.ReadFile(src)
			if err != nil {
				return fmt.Errorf("read artifact: %w", err)
			}

			var body bytes.Buffer
			if err := goldmark.Convert(md, &body); err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}

			title := filepath.Base(src)
			page := fmt.Sprintf(previewPage, title, body.String())

			if outPath == "" {
				outPath = strings.TrimSuffix(src, filepath.Ext(src)) + ".html"
			}
			if err := os.WriteFile(outPath, []byte(page), 0644); err != nil {
				return fmt.Errorf("write preview: %w", err)
			}

			fmt.Printf("✓ Preview written to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output HTML path (default: alongside the artifact)")

	return cmd
}
