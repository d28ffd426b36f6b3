package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/chatmode/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader(slog.Default()).Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	})

	var user bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user {
				return config.NewLoader(slog.Default()).EnsureUserConfig()
			}
			if _, err := os.Stat(config.ProjectConfigFile); err == nil {
				return fmt.Errorf("%s already exists", config.ProjectConfigFile)
			}
			if err := config.DefaultConfig().SaveToFile(config.ProjectConfigFile); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Printf("✓ Wrote %s\n", config.ProjectConfigFile)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&user, "user", false, "Write the user-level config instead of the project file")
	cmd.AddCommand(initCmd)

	return cmd
}
