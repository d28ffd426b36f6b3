package main

import (
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/cobra"

	"github.com/c360studio/chatmode/config"
	"github.com/c360studio/chatmode/storage"
)

func historyCmd() *cobra.Command {
	var natsURL string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded generations",
		Long: `History lists the generation records kept by serve mode in
JetStream KV, newest first. It needs a reachable NATS server: pass
--nats-url or set nats.url in the configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader(slog.Default()).Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			url := cfg.NATS.URL
			if cmd.Flags().Changed("nats-url") {
				url = natsURL
			}
			if url == "" {
				return fmt.Errorf("no NATS server configured; pass --nats-url or set nats.url")
			}

			conn, err := nats.Connect(url)
			if err != nil {
				return fmt.Errorf("connect to NATS: %w", err)
			}
			defer conn.Close()

			js, err := jetstream.New(conn)
			if err != nil {
				return fmt.Errorf("create JetStream context: %w", err)
			}

			store, err := storage.NewStore(cmd.Context(), js)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}

			records, err := store.ListRecords(cmd.Context())
			if err != nil {
				return fmt.Errorf("list records: %w", err)
			}
			if len(records) == 0 {
				fmt.Println("No generations recorded")
				return nil
			}

			for _, record := range records {
				kind := string(record.ArtifactType)
				if record.DiagramType != "" {
					kind = fmt.Sprintf("%s/%s", kind, record.DiagramType)
				}
				fmt.Printf("%s  %-18s %-40s %s\n",
					record.CreatedAt.Format("2006-01-02 15:04:05"),
					kind,
					record.RelativePath,
					record.Prompt)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL")

	return cmd
}
