package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/medcards/internal/config"
	"github.com/phrazzld/medcards/internal/platform/logger"
)

// loadAppConfig loads configuration from the environment and optional config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// setupAppLogger installs the JSON logger and records the effective configuration.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.Model,
		"batch_size", cfg.Generation.BatchSize,
		"max_chunk_length", cfg.Generation.MaxChunkLength)
	l.Debug("credential configuration",
		"api_key_present", cfg.LLM.APIKey != "",
		"database_url_present", cfg.Database.URL != "")

	return l, nil
}
