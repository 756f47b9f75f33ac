// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Default configuration values.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultLogLevel        = "INFO"
	DefaultEndpointTimeout = 60 * time.Second
	DefaultBatchSize       = 10
	DefaultInterBatchDelay = time.Second
	DefaultDiffMaxTokens   = 200
	DefaultDiffTemperature = 0.2
	DefaultEmbeddingModel  = "text-embedding-3-small"
	DefaultCompletionModel = "gpt-4o-mini"
)

// ErrMissingAPIKey indicates no credential is configured for a remote
// endpoint. The run cannot start without one.
var ErrMissingAPIKey = errors.New("missing API key")

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// Endpoint configures a remote AI service endpoint.
type Endpoint struct {
	baseURL     string
	model       string
	apiKey      string
	timeout     time.Duration
	maxTokens   int
	temperature float64
}

// NewEndpoint creates an Endpoint with defaults.
func NewEndpoint() Endpoint {
	return Endpoint{
		timeout:     DefaultEndpointTimeout,
		maxTokens:   DefaultDiffMaxTokens,
		temperature: DefaultDiffTemperature,
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

// MaxTokens returns the maximum completion token limit.
func (e Endpoint) MaxTokens() int { return e.maxTokens }

// Temperature returns the sampling temperature.
func (e Endpoint) Temperature() float64 { return e.temperature }

// EndpointOption is a functional option for Endpoint.
type EndpointOption func(*Endpoint)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) EndpointOption {
	return func(e *Endpoint) { e.baseURL = url }
}

// WithModel sets the model.
func WithModel(model string) EndpointOption {
	return func(e *Endpoint) { e.model = model }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) EndpointOption {
	return func(e *Endpoint) { e.apiKey = key }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) EndpointOption {
	return func(e *Endpoint) { e.timeout = d }
}

// WithMaxTokens sets the maximum completion token limit.
func WithMaxTokens(n int) EndpointOption {
	return func(e *Endpoint) { e.maxTokens = n }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) EndpointOption {
	return func(e *Endpoint) { e.temperature = t }
}

// NewEndpointWithOptions creates an Endpoint with functional options.
func NewEndpointWithOptions(opts ...EndpointOption) Endpoint {
	e := NewEndpoint()
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host               string
	port               int
	dbURL              string
	logLevel           string
	logFormat          LogFormat
	embeddingEndpoint  Endpoint
	completionEndpoint Endpoint
	batchSize          int
	interBatchDelay    time.Duration
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:      DefaultHost,
		port:      DefaultPort,
		logLevel:  DefaultLogLevel,
		logFormat: LogFormatPretty,
		embeddingEndpoint: NewEndpointWithOptions(
			WithModel(DefaultEmbeddingModel),
		),
		completionEndpoint: NewEndpointWithOptions(
			WithModel(DefaultCompletionModel),
		),
		batchSize:       DefaultBatchSize,
		interBatchDelay: DefaultInterBatchDelay,
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DBURL returns the report archive database URL, or empty when archiving
// is disabled.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// EmbeddingEndpoint returns the embedding service endpoint config.
func (c AppConfig) EmbeddingEndpoint() Endpoint { return c.embeddingEndpoint }

// CompletionEndpoint returns the completion service endpoint config.
func (c AppConfig) CompletionEndpoint() Endpoint { return c.completionEndpoint }

// BatchSize returns the number of concurrent requests per batch.
func (c AppConfig) BatchSize() int { return c.batchSize }

// InterBatchDelay returns the pause between batches.
func (c AppConfig) InterBatchDelay() time.Duration { return c.interBatchDelay }

// ArchiveEnabled returns true when a report archive database is configured.
func (c AppConfig) ArchiveEnabled() bool { return c.dbURL != "" }

// Validate checks that the configuration can support a run. A missing
// credential for either remote endpoint is a fatal startup error.
func (c AppConfig) Validate() error {
	if c.embeddingEndpoint.APIKey() == "" {
		return fmt.Errorf("embedding endpoint: %w", ErrMissingAPIKey)
	}
	if c.completionEndpoint.APIKey() == "" {
		return fmt.Errorf("completion endpoint: %w", ErrMissingAPIKey)
	}
	return nil
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDBURL sets the report archive database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithEmbeddingEndpoint sets the embedding endpoint.
func WithEmbeddingEndpoint(e Endpoint) AppConfigOption {
	return func(c *AppConfig) { c.embeddingEndpoint = e }
}

// WithCompletionEndpoint sets the completion endpoint.
func WithCompletionEndpoint(e Endpoint) AppConfigOption {
	return func(c *AppConfig) { c.completionEndpoint = e }
}

// WithBatchSize sets the batch size.
func WithBatchSize(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithInterBatchDelay sets the inter-batch delay.
func WithInterBatchDelay(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d >= 0 {
			c.interBatchDelay = d
		}
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// API keys are never included.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("log_level", c.logLevel),
		slog.String("embedding_model", c.embeddingEndpoint.Model()),
		slog.String("embedding_base_url", maskedBaseURL(c.embeddingEndpoint)),
		slog.String("completion_model", c.completionEndpoint.Model()),
		slog.String("completion_base_url", maskedBaseURL(c.completionEndpoint)),
		slog.Int("batch_size", c.batchSize),
		slog.Duration("inter_batch_delay", c.interBatchDelay),
		slog.Bool("archive_enabled", c.ArchiveEnabled()),
	}
}

func maskedBaseURL(e Endpoint) string {
	if e.BaseURL() == "" {
		return "(default)"
	}
	return e.BaseURL()
}
