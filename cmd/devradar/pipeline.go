package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/devradar/devradar"
	"github.com/devradar/devradar/internal/config"
	"github.com/devradar/devradar/internal/log"
)

func pipelineCmd() *cobra.Command {
	var (
		envFile   string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run the enrichment pipeline until the backlog is empty",
		Long: `Drain the raw-posting backlog: classify each posting, normalize its
salary, generate its embedding, and publish it to the classified corpus.
The run stops when the backlog is empty, on interrupt, or after repeated
consecutive classification failures.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(envFile, batchSize)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Raw records per batch (default: 1000)")

	return cmd
}

func runPipeline(envFile string, batchSize int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if batchSize > 0 {
		cfg = cfg.Apply(config.WithBatchSize(batchSize))
	}

	logger := log.NewLogger(cfg)
	logger.Info("starting pipeline run", "version", version, "batch_size", cfg.BatchSize())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := devradar.New(ctx, devradar.WithConfig(cfg), devradar.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("close client", "error", err)
		}
	}()

	stats, err := client.Pipeline().Run(ctx)
	logger.Info("pipeline run finished",
		"batches", stats.Batches,
		"processed", stats.Processed,
		"published", stats.Published,
		"discarded", stats.Discarded,
		"failed", stats.Failed,
	)
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}
	return nil
}
