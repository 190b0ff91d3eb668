package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/devradar/devradar"
	"github.com/devradar/devradar/infrastructure/api"
	"github.com/devradar/devradar/internal/config"
	"github.com/devradar/devradar/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables (prefix DEVRADAR_):
  HOST                       Server host to bind to (default: 0.0.0.0)
  PORT                       Server port to listen on (default: 8080)
  DB_URL                     Database URL (default: sqlite:///devradar.db)
  REDIS_URL                  Redis URL for chat history (optional)
  LOG_LEVEL                  Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                 Log format: text, json (default: text)
  SEARCH_LIMIT               Default retrieval result count (default: 10)
  SIMILARITY_THRESHOLD       Minimum cosine similarity (default: 0.27)
  CHAT_HISTORY_WINDOW        Exchanges of chat memory per session (default: 5)
  EMBEDDING_DIMENSION        Vector length requested from the embedding model (default: 1536)
  FAIL_OPEN_GATES            Interactive gates pass on classifier outage (default: true)

  CLASSIFIER_ENDPOINT_*      LLM classification service configuration
    BASE_URL                 Base URL (e.g., https://api.openai.com/v1)
    MODEL                    Model identifier (e.g., gpt-4o-mini)
    API_KEY                  API key for authentication
    TIMEOUT                  Request timeout in seconds (default: 60)
    MAX_RETRIES              Retry attempts (default: 5)

  EMBEDDING_ENDPOINT_*       Embedding service configuration
    (same fields as CLASSIFIER_ENDPOINT)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	var overrides []config.AppConfigOption
	if host != "" {
		overrides = append(overrides, config.WithHost(host))
	}
	if port != 0 {
		overrides = append(overrides, config.WithPort(port))
	}
	cfg = cfg.Apply(overrides...)

	logger := log.NewLogger(cfg)
	logger.Info("starting devradar", "version", version, "addr", cfg.Addr())

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

	server := api.NewServer(cfg.Addr(), logger)
	api.MountRoutes(server, api.Dependencies{
		Intake:    client.Intake(),
		Retrieval: client.Retrieval(),
		Chat:      client.Chat(),
		Postings:  client.Postings(),
		Logger:    logger,
	})

	group, ctx := errgroup.WithContext(ctx)
	group.Go(server.Start)
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
