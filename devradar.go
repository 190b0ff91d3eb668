// Package devradar wires the job-market pipeline and retrieval services into
// a single client.
package devradar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/devradar/devradar/application/service"
	"github.com/devradar/devradar/domain/chat"
	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/infrastructure/classifier"
	"github.com/devradar/devradar/infrastructure/embedder"
	"github.com/devradar/devradar/infrastructure/history"
	"github.com/devradar/devradar/infrastructure/persistence"
	"github.com/devradar/devradar/infrastructure/provider"
	"github.com/devradar/devradar/infrastructure/search"
	"github.com/devradar/devradar/internal/config"
	"github.com/devradar/devradar/internal/database"
)

// Client is the assembled application: stores, providers, and the use-case
// services built on them.
type Client struct {
	cfg    config.AppConfig
	logger *slog.Logger

	db          database.Database
	redisClient *redis.Client

	intake     *service.IntakeService
	pipeline   *service.PipelineService
	retrieval  *service.RetrievalService
	chat       *service.ChatService
	classified posting.ClassifiedStore
	raws       posting.RawStore
}

// New creates a Client from options and runs migrations.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	options := &clientOptions{cfg: config.NewAppConfig()}
	for _, opt := range opts {
		opt(options)
	}
	cfg := options.cfg

	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := database.NewDatabase(ctx, cfg.DBURL())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := persistence.AutoMigrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	rawStore := persistence.NewRawStore(db)
	classifiedStore := persistence.NewClassifiedStore(db)

	textProvider := options.textProvider
	if textProvider == nil {
		textProvider = providerFromEndpoint(cfg.ClassifierEndpoint(), true)
	}
	embeddingProvider := options.embeddingProvider
	if embeddingProvider == nil {
		embeddingProvider = providerFromEndpoint(cfg.EmbeddingEndpoint(), false)
	}

	cls := classifier.New(textProvider, classifier.FailClosed, logger)
	gatePolicy := classifier.FailClosed
	if cfg.FailOpenGates() {
		gatePolicy = classifier.FailOpen
	}
	gate := classifier.NewIntentGate(textProvider, gatePolicy, logger)
	emb := embedder.New(embeddingProvider, logger, embedder.WithDimension(cfg.EmbeddingDimension()))

	var redisClient *redis.Client
	var historyStore chat.HistoryStore = options.history
	if historyStore == nil {
		memory := history.NewMemoryHistory()
		if cfg.RedisURL() != "" {
			redisOpts, err := redis.ParseURL(cfg.RedisURL())
			if err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("parse redis url: %w", err)
			}
			redisClient = redis.NewClient(redisOpts)
			historyStore = history.NewFallbackHistory(
				history.NewRedisHistory(redisClient, config.DefaultChatHistoryTTL),
				memory,
				logger,
			)
		} else {
			historyStore = memory
		}
	}

	searcher := search.NewStoreSearcher(classifiedStore)

	retrieval := service.NewRetrievalService(emb, searcher, classifiedStore, service.RetrievalOptions{
		Threshold: cfg.SimilarityThreshold(),
		Limit:     cfg.SearchLimit(),
	}, logger)

	return &Client{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
		intake:      service.NewIntakeService(rawStore, logger),
		pipeline: service.NewPipelineService(rawStore, classifiedStore, cls, emb, service.PipelineOptions{
			BatchSize:       cfg.BatchSize(),
			RecordDelay:     cfg.RecordDelay(),
			OutageThreshold: cfg.OutageThreshold(),
		}, logger),
		retrieval:  retrieval,
		chat: service.NewChatService(gate, emb, retrieval, textProvider, historyStore, service.ChatOptions{
			HistoryWindow: cfg.ChatHistoryWindow(),
		}, logger),
		classified: classifiedStore,
		raws:       rawStore,
	}, nil
}

// Close releases the client's connections.
func (c *Client) Close() error {
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			c.logger.Warn("close redis", "error", err)
		}
	}
	return c.db.Close()
}

// Config returns the resolved configuration.
func (c *Client) Config() config.AppConfig { return c.cfg }

// Logger returns the client logger.
func (c *Client) Logger() *slog.Logger { return c.logger }

// Intake returns the intake service.
func (c *Client) Intake() *service.IntakeService { return c.intake }

// Pipeline returns the pipeline service.
func (c *Client) Pipeline() *service.PipelineService { return c.pipeline }

// Retrieval returns the retrieval service.
func (c *Client) Retrieval() *service.RetrievalService { return c.retrieval }

// Chat returns the chat service.
func (c *Client) Chat() *service.ChatService { return c.chat }

// Postings returns the classified posting store.
func (c *Client) Postings() posting.ClassifiedStore { return c.classified }

// RawPostings returns the raw posting store.
func (c *Client) RawPostings() posting.RawStore { return c.raws }

func providerFromEndpoint(ep config.Endpoint, chatModel bool) *provider.OpenAIProvider {
	cfg := provider.OpenAIConfig{
		APIKey:        ep.APIKey(),
		BaseURL:       ep.BaseURL(),
		Timeout:       ep.Timeout(),
		MaxRetries:    ep.MaxRetries(),
		InitialDelay:  ep.InitialDelay(),
		BackoffFactor: ep.BackoffFactor(),
	}
	if chatModel {
		cfg.ChatModel = ep.Model()
	} else {
		cfg.EmbeddingModel = ep.Model()
	}
	return provider.NewOpenAIProvider(cfg)
}
