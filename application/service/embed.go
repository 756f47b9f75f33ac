// Package service wires the pipeline stages: embedding, matching, diff
// summarization, and report assembly.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/semdiff/semdiff/domain/dataset"
	"github.com/semdiff/semdiff/infrastructure/provider"
	"github.com/semdiff/semdiff/internal/batch"
)

// EmbeddingStage converts dataset entries into embedded entries via the
// remote embedding service, one request per entry, paced by the batch
// scheduler.
type EmbeddingStage struct {
	embedder provider.Embedder
	cfg      batch.Config
	logger   *slog.Logger
}

// NewEmbeddingStage creates a new EmbeddingStage.
func NewEmbeddingStage(embedder provider.Embedder, cfg batch.Config, logger *slog.Logger) *EmbeddingStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmbeddingStage{
		embedder: embedder,
		cfg:      cfg,
		logger:   logger,
	}
}

// EmbedAll embeds every entry and returns embedded entries in input order.
// Any remote failure aborts the stage: a partial embedding set is not
// useful downstream, so errors are not caught here.
func (s *EmbeddingStage) EmbedAll(ctx context.Context, label string, entries []dataset.Entry, opts ...batch.Option) ([]dataset.EmbeddedEntry, error) {
	if len(entries) == 0 {
		return []dataset.EmbeddedEntry{}, nil
	}

	s.logger.Info("embedding dataset",
		"dataset", label,
		"entries", len(entries),
		"batch_size", s.cfg.BatchSize(),
	)

	opts = append(opts, batch.WithProgress(func(completed, total int) {
		s.logger.Info("embedding progress", "dataset", label, "completed", completed, "total", total)
	}))

	embedded, err := batch.Process(ctx, entries, s.cfg, s.embedOne, opts...)
	if err != nil {
		return nil, fmt.Errorf("embed dataset %s: %w", label, err)
	}

	return embedded, nil
}

func (s *EmbeddingStage) embedOne(ctx context.Context, entry dataset.Entry) (dataset.EmbeddedEntry, error) {
	req := provider.NewEmbeddingRequest([]string{entry.EmbeddingText()})

	resp, err := s.embedder.Embed(ctx, req)
	if err != nil {
		return dataset.EmbeddedEntry{}, fmt.Errorf("embed entry %d: %w", entry.ID(), err)
	}

	vectors := resp.Embeddings()
	if len(vectors) != 1 {
		return dataset.EmbeddedEntry{}, fmt.Errorf("embed entry %d: expected 1 vector, got %d", entry.ID(), len(vectors))
	}

	return dataset.NewEmbeddedEntry(entry, vectors[0]), nil
}
