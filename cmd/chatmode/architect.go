package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/c360studio/chatmode/agent"
	"github.com/c360studio/chatmode/config"
)

func architectCmd() *cobra.Command {
	var (
		artifactType string
		depth        string
		diagramType  string
		outputDir    string
		format       string
		userName     string
		workspace    string
	)

	cmd := &cobra.Command{
		Use:   "architect <prompt> <targets>",
		Short: "Generate architectural documentation and diagrams",
		Long: `Generate an architecture artifact from a prompt.

The prompt describes what to document; targets is a comma-separated
list of components or systems to cover. Flags not given fall back to
the project configuration, then to built-in defaults.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader(slog.Default()).Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			params := map[string]string{
				agent.KeyPrompt:       args[0],
				agent.KeyTargets:      args[1],
				agent.KeyArtifactType: artifactType,
			}
			if diagramType != "" {
				params[agent.KeyDiagramType] = diagramType
			}

			// These flags shade config defaults only when given explicitly.
			configBacked := []struct {
				flag  string
				key   string
				value string
			}{
				{"depth", agent.KeyDepth, depth},
				{"output-dir", agent.KeyOutputDir, outputDir},
				{"format", agent.KeyFormat, format},
				{"user-name", agent.KeyUserName, userName},
				{"workspace", agent.KeyWorkspace, workspace},
			}
			for _, f := range configBacked {
				if cmd.Flags().Changed(f.flag) {
					params[f.key] = f.value
				}
			}

			architect := agent.New("", cfg, slog.Default())
			result, err := architect.Process(cmd.Context(), "", params)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Generated %s artifact\n", result.Request.ArtifactType)
			fmt.Printf("  Path: %s\n", result.Path)
			for _, match := range result.Targets {
				if match.Count == 0 {
					continue
				}
				fmt.Printf("  Related to %s: %d file(s)\n", match.Target, match.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&artifactType, "artifact-type", "doc", "Type of artifact to generate (doc, diagram, testcases, gapscan, usecases)")
	cmd.Flags().StringVar(&depth, "depth", "overview", "Level of detail (overview, subsystem, interface-only)")
	cmd.Flags().StringVar(&diagramType, "diagram-type", "", "Type of diagram for diagram artifacts (sequence, flowchart, class, er, state)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "docs", "Output directory for generated files")
	cmd.Flags().StringVar(&format, "format", "markdown", "Output format for documents (markdown, confluence)")
	cmd.Flags().StringVar(&userName, "user-name", "User", "User name for the generated footer")
	cmd.Flags().StringVar(&workspace, "workspace", ".", "Workspace path for analysis")

	return cmd
}
