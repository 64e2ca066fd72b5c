package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm" validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLM providers understood by the platform packages.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Default models per provider, used when llm.model is unset.
const (
	DefaultOpenAIModel = "gpt-3.5-turbo"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// LLMConfig contains all LLM integration related settings.
//
// APIKey is deliberately optional here: a missing credential is reported per
// request rather than preventing startup.
type LLMConfig struct {
	Provider              string  `mapstructure:"provider" validate:"required,oneof=openai gemini"`
	APIKey                string  `mapstructure:"api_key"`
	Model                 string  `mapstructure:"model" validate:"required"`
	BaseURL               string  `mapstructure:"base_url" validate:"omitempty,url"`
	Temperature           float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens             int     `mapstructure:"max_tokens" validate:"gt=0"`
	RequestTimeoutSeconds int     `mapstructure:"request_timeout_seconds" validate:"gte=0"`
}

// RequestTimeout returns the per-call upstream deadline; zero disables it.
func (c LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// GenerationConfig tunes the chunking and batching pipeline.
type GenerationConfig struct {
	MaxChunkLength int `mapstructure:"max_chunk_length" validate:"gt=50"`
	BatchSize      int `mapstructure:"batch_size" validate:"gt=0,lte=32"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL disables deck persistence.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// PersistenceEnabled reports whether a database is configured.
func (c DatabaseConfig) PersistenceEnabled() bool {
	return c.URL != ""
}
