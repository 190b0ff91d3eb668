package devradar

import (
	"log/slog"

	"github.com/devradar/devradar/domain/chat"
	"github.com/devradar/devradar/infrastructure/provider"
	"github.com/devradar/devradar/internal/config"
)

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	cfg               config.AppConfig
	logger            *slog.Logger
	textProvider      provider.TextGenerator
	embeddingProvider provider.Embedder
	history           chat.HistoryStore
}

// WithConfig sets the application configuration.
func WithConfig(cfg config.AppConfig) Option {
	return func(o *clientOptions) { o.cfg = cfg }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

// WithTextProvider sets the text generation provider. When unset, one is
// built from the classifier endpoint configuration.
func WithTextProvider(p provider.TextGenerator) Option {
	return func(o *clientOptions) { o.textProvider = p }
}

// WithEmbeddingProvider sets the embedding provider. When unset, one is
// built from the embedding endpoint configuration.
func WithEmbeddingProvider(p provider.Embedder) Option {
	return func(o *clientOptions) { o.embeddingProvider = p }
}

// WithHistoryStore sets the chat history store. When unset, Redis is used if
// configured, with an in-memory fallback.
func WithHistoryStore(s chat.HistoryStore) Option {
	return func(o *clientOptions) { o.history = s }
}
