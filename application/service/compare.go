package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/semdiff/semdiff/domain/dataset"
	"github.com/semdiff/semdiff/domain/match"
	"github.com/semdiff/semdiff/domain/report"
	"github.com/semdiff/semdiff/internal/batch"
)

// Comparison orchestrates the full pipeline: embed both datasets, match
// source entries against targets, summarize differences, assemble the
// report.
type Comparison struct {
	embedStage *EmbeddingStage
	diffStage  *DiffStage
	logger     *slog.Logger
	now        func() time.Time
}

// NewComparison creates a new Comparison service.
func NewComparison(embedStage *EmbeddingStage, diffStage *DiffStage, logger *slog.Logger) *Comparison {
	if logger == nil {
		logger = slog.Default()
	}
	return &Comparison{
		embedStage: embedStage,
		diffStage:  diffStage,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the report timestamp source. Tests use this for a
// fixed generation time.
func (c *Comparison) WithClock(now func() time.Time) *Comparison {
	c.now = now
	return c
}

// Run executes the pipeline over a source and target dataset. Result order
// mirrors the source dataset's entry order. Embedding or matching failures
// abort the run; diff summarization failures degrade per pair.
func (c *Comparison) Run(ctx context.Context, source, target []dataset.Entry, opts ...batch.Option) (report.Report, error) {
	embeddedSource, err := c.embedStage.EmbedAll(ctx, "source", source, opts...)
	if err != nil {
		return report.Report{}, err
	}

	embeddedTarget, err := c.embedStage.EmbedAll(ctx, "target", target, opts...)
	if err != nil {
		return report.Report{}, err
	}

	matches := make([]match.Match, len(embeddedSource))
	for i, entry := range embeddedSource {
		m, err := match.Best(entry, embeddedTarget)
		if err != nil {
			return report.Report{}, fmt.Errorf("match entry %d: %w", entry.Entry().ID(), err)
		}
		matches[i] = m
	}

	c.logger.Info("matched entries", "count", len(matches))

	results, err := c.diffStage.SummarizeAll(ctx, matches, opts...)
	if err != nil {
		return report.Report{}, err
	}

	rep := report.New(c.now().UTC(), results)
	c.logger.Info("comparison complete", "total_comparisons", rep.Count())
	return rep, nil
}
