package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/medcards/internal/config"
	"github.com/phrazzld/medcards/internal/generation"
	"github.com/phrazzld/medcards/internal/platform/gemini"
	"github.com/phrazzld/medcards/internal/platform/openai"
)

// providerDisplayName is the provider name shown in credential errors.
func providerDisplayName(provider string) string {
	switch provider {
	case config.ProviderGemini:
		return "Gemini"
	default:
		return "OpenAI"
	}
}

// newCompleter builds the upstream client for the configured provider.
// It returns a nil Completer when no API key is configured.
func newCompleter(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Completer, error) {
	if cfg.APIKey == "" {
		logger.Warn("language model API key not configured, generation requests will fail",
			"provider", cfg.Provider,
			"env_var", config.CredentialEnvVar(cfg.Provider))
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		c, err := openai.NewCompleter(openai.Options{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderGemini:
		c, err := gemini.NewCompleter(ctx, gemini.Options{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}
