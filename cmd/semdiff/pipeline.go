package main

import (
	"log/slog"

	"github.com/semdiff/semdiff/application/service"
	"github.com/semdiff/semdiff/infrastructure/provider"
	"github.com/semdiff/semdiff/internal/batch"
	"github.com/semdiff/semdiff/internal/config"
)

// buildComparison wires the providers and pipeline stages from validated
// configuration.
func buildComparison(cfg config.AppConfig, logger *slog.Logger) *service.Comparison {
	batchCfg := batch.NewConfig(cfg.BatchSize(), cfg.InterBatchDelay())

	embEndpoint := cfg.EmbeddingEndpoint()
	embedder := provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey:         embEndpoint.APIKey(),
		BaseURL:        embEndpoint.BaseURL(),
		EmbeddingModel: embEndpoint.Model(),
		Timeout:        embEndpoint.Timeout(),
	})

	compEndpoint := cfg.CompletionEndpoint()
	generator := provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey:    compEndpoint.APIKey(),
		BaseURL:   compEndpoint.BaseURL(),
		ChatModel: compEndpoint.Model(),
		Timeout:   compEndpoint.Timeout(),
	})

	embedStage := service.NewEmbeddingStage(embedder, batchCfg, logger)
	diffStage := service.NewDiffStage(generator, batchCfg, compEndpoint.MaxTokens(), compEndpoint.Temperature(), logger)

	return service.NewComparison(embedStage, diffStage, logger)
}
