package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/chatmode/config"
	"github.com/c360studio/chatmode/server"
)

func serveCmd() *cobra.Command {
	var (
		natsURL     string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the architect agent as a NATS service",
		Long: `Serve starts a long-running service that handles generation
requests over NATS and records every generation in JetStream KV.

With no --nats-url an embedded NATS server is started. Prometheus
metrics are exposed on the metrics address, and the project config
file is watched for changes to generation defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader(slog.Default()).Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("nats-url") {
				cfg.NATS.URL = natsURL
				cfg.NATS.Embedded = natsURL == ""
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Server.MetricsAddr = metricsAddr
			}

			srv := server.New(cfg, slog.Default())
			if err := srv.Start(cmd.Context()); err != nil {
				return err
			}

			fmt.Printf("Listening on %s (NATS %s)\n", cfg.Server.Subject, srv.ClientURL())
			fmt.Println("Press Ctrl+C to stop")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			srv.Shutdown(10 * time.Second)
			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "External NATS server URL (empty = embedded server)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Prometheus metrics listen address")

	return cmd
}
