// Package config provides application configuration.
package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	DefaultHost                = "0.0.0.0"
	DefaultPort                = 8080
	DefaultLogLevel            = "INFO"
	DefaultBatchSize           = 1000
	DefaultSearchLimit         = 10
	DefaultSimilarityThreshold = 0.27
	DefaultRecordDelay         = 1 * time.Second
	DefaultOutageThreshold     = 3
	DefaultChatHistoryWindow   = 5
	DefaultChatHistoryTTL      = 24 * time.Hour
	DefaultEndpointTimeout     = 60 * time.Second
	DefaultEndpointMaxRetries  = 5
	DefaultEndpointDelay       = 2 * time.Second
	DefaultEndpointBackoff     = 2.0
	DefaultEmbeddingDimension  = 1536
	DefaultDescriptionBudget   = 2000
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Endpoint configures an AI service endpoint.
type Endpoint struct {
	baseURL    string
	model      string
	apiKey     string
	timeout    time.Duration
	maxRetries int
	delay      time.Duration
	backoff    float64
}

// NewEndpoint creates a new Endpoint with defaults.
func NewEndpoint() Endpoint {
	return Endpoint{
		timeout:    DefaultEndpointTimeout,
		maxRetries: DefaultEndpointMaxRetries,
		delay:      DefaultEndpointDelay,
		backoff:    DefaultEndpointBackoff,
	}
}

// BaseURL returns the base URL for the endpoint.
func (e Endpoint) BaseURL() string { return e.baseURL }

// Model returns the model identifier.
func (e Endpoint) Model() string { return e.model }

// APIKey returns the API key.
func (e Endpoint) APIKey() string { return e.apiKey }

// Timeout returns the request timeout.
func (e Endpoint) Timeout() time.Duration { return e.timeout }

// MaxRetries returns the maximum retry count.
func (e Endpoint) MaxRetries() int { return e.maxRetries }

// InitialDelay returns the initial retry delay.
func (e Endpoint) InitialDelay() time.Duration { return e.delay }

// BackoffFactor returns the retry backoff multiplier.
func (e Endpoint) BackoffFactor() float64 { return e.backoff }

// IsConfigured returns true if the endpoint has the required fields set.
func (e Endpoint) IsConfigured() bool {
	return e.apiKey != "" || e.baseURL != ""
}

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	host                string
	port                int
	dbURL               string
	redisURL            string
	logLevel            string
	logFormat           LogFormat
	batchSize           int
	searchLimit         int
	similarityThreshold float64
	recordDelay         time.Duration
	outageThreshold     int
	embeddingDimension  int
	chatHistoryWindow   int
	classifierEndpoint  Endpoint
	embeddingEndpoint   Endpoint
	failOpenGates       bool
}

// NewAppConfig creates an AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:                DefaultHost,
		port:                DefaultPort,
		logLevel:            DefaultLogLevel,
		logFormat:           LogFormatText,
		batchSize:           DefaultBatchSize,
		searchLimit:         DefaultSearchLimit,
		similarityThreshold: DefaultSimilarityThreshold,
		recordDelay:         DefaultRecordDelay,
		outageThreshold:     DefaultOutageThreshold,
		embeddingDimension:  DefaultEmbeddingDimension,
		chatHistoryWindow:   DefaultChatHistoryWindow,
		classifierEndpoint:  NewEndpoint(),
		embeddingEndpoint:   NewEndpoint(),
		failOpenGates:       true,
	}
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns host:port for the HTTP server.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// RedisURL returns the Redis connection URL, empty when Redis is disabled.
func (c AppConfig) RedisURL() string { return c.redisURL }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// BatchSize returns the maximum raw records pulled per pipeline batch.
func (c AppConfig) BatchSize() int { return c.batchSize }

// SearchLimit returns the default search result limit.
func (c AppConfig) SearchLimit() int { return c.searchLimit }

// SimilarityThreshold returns the minimum cosine similarity for a match.
func (c AppConfig) SimilarityThreshold() float64 { return c.similarityThreshold }

// RecordDelay returns the pause between external calls for consecutive records.
func (c AppConfig) RecordDelay() time.Duration { return c.recordDelay }

// OutageThreshold returns how many consecutive provider failures abort a run.
func (c AppConfig) OutageThreshold() int { return c.outageThreshold }

// EmbeddingDimension returns the expected embedding vector dimension.
func (c AppConfig) EmbeddingDimension() int { return c.embeddingDimension }

// ChatHistoryWindow returns the number of recent exchanges kept per session.
func (c AppConfig) ChatHistoryWindow() int { return c.chatHistoryWindow }

// ClassifierEndpoint returns the LLM classification endpoint configuration.
func (c AppConfig) ClassifierEndpoint() Endpoint { return c.classifierEndpoint }

// EmbeddingEndpoint returns the embedding endpoint configuration.
func (c AppConfig) EmbeddingEndpoint() Endpoint { return c.embeddingEndpoint }

// FailOpenGates returns whether interactive gates fail open on classifier outage.
func (c AppConfig) FailOpenGates() bool { return c.failOpenGates }

// AppConfigOption mutates an AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithSimilarityThreshold overrides the retrieval similarity threshold.
func WithSimilarityThreshold(t float64) AppConfigOption {
	return func(c *AppConfig) { c.similarityThreshold = t }
}

// WithBatchSize overrides the pipeline batch size.
func WithBatchSize(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// Apply returns a copy of the config with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
