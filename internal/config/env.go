package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DBURL is the report archive database URL. Archiving is disabled
	// when unset.
	// Env: DB_URL
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// OpenAIAPIKey is the shared credential for both remote endpoints.
	// Per-endpoint keys override it.
	// Env: OPENAI_API_KEY
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	// EmbeddingEndpoint configures the embedding service.
	EmbeddingEndpoint EndpointEnv `envconfig:"EMBEDDING_ENDPOINT"`

	// CompletionEndpoint configures the completion service.
	CompletionEndpoint EndpointEnv `envconfig:"COMPLETION_ENDPOINT"`

	// BatchSize is the number of concurrent requests per batch.
	// Env: BATCH_SIZE (default: 10)
	BatchSize int `envconfig:"BATCH_SIZE" default:"10"`

	// BatchDelaySeconds is the pause between batches in seconds.
	// Env: BATCH_DELAY_SECONDS (default: 1.0)
	BatchDelaySeconds float64 `envconfig:"BATCH_DELAY_SECONDS" default:"1.0"`
}

// EndpointEnv holds environment configuration for a remote endpoint.
type EndpointEnv struct {
	// BaseURL is the base URL for the endpoint.
	// Env: *_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Model is the model identifier.
	// Env: *_MODEL
	Model string `envconfig:"MODEL"`

	// APIKey is the API key for authentication.
	// Env: *_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// Timeout is the request timeout in seconds.
	// Env: *_TIMEOUT (default: 60)
	Timeout float64 `envconfig:"TIMEOUT" default:"60"`

	// MaxTokens is the maximum completion token limit.
	// Env: *_MAX_TOKENS (default: 200)
	MaxTokens int `envconfig:"MAX_TOKENS" default:"200"`

	// Temperature is the sampling temperature.
	// Env: *_TEMPERATURE (default: 0.2)
	Temperature float64 `envconfig:"TEMPERATURE" default:"0.2"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	opts := []AppConfigOption{
		WithHost(e.Host),
		WithPort(e.Port),
		WithLogLevel(e.LogLevel),
		WithLogFormat(parseLogFormat(e.LogFormat)),
		WithBatchSize(e.BatchSize),
		WithInterBatchDelay(time.Duration(e.BatchDelaySeconds * float64(time.Second))),
		WithEmbeddingEndpoint(e.EmbeddingEndpoint.ToEndpoint(DefaultEmbeddingModel, e.OpenAIAPIKey)),
		WithCompletionEndpoint(e.CompletionEndpoint.ToEndpoint(DefaultCompletionModel, e.OpenAIAPIKey)),
	}

	if e.DBURL != "" {
		opts = append(opts, WithDBURL(e.DBURL))
	}

	return NewAppConfigWithOptions(opts...)
}

// ToEndpoint converts EndpointEnv to Endpoint. defaultModel is used when
// no model is configured; fallbackKey is used when no per-endpoint key is
// configured.
func (e EndpointEnv) ToEndpoint(defaultModel, fallbackKey string) Endpoint {
	model := e.Model
	if model == "" {
		model = defaultModel
	}

	apiKey := e.APIKey
	if apiKey == "" {
		apiKey = fallbackKey
	}

	opts := []EndpointOption{
		WithModel(model),
		WithAPIKey(apiKey),
		WithTimeout(time.Duration(e.Timeout * float64(time.Second))),
		WithMaxTokens(e.MaxTokens),
		WithTemperature(e.Temperature),
	}

	if e.BaseURL != "" {
		opts = append(opts, WithBaseURL(e.BaseURL))
	}

	return NewEndpointWithOptions(opts...)
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
