package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/semdiff/semdiff/domain/match"
	"github.com/semdiff/semdiff/domain/report"
	"github.com/semdiff/semdiff/infrastructure/provider"
	"github.com/semdiff/semdiff/internal/batch"
)

// Fixed summary texts.
const (
	// NoDifferences is emitted when the similarity score is exactly the
	// identity score; the completion service is not called for such pairs.
	NoDifferences = "No differences"

	// DiffUnavailable substitutes the summary when the completion service
	// fails for a pair. A missing summary does not invalidate the match,
	// so the run continues.
	DiffUnavailable = "Error generating diff summary"
)

// identityScore is the cosine similarity of identical vectors.
const identityScore = 1.0

// DiffStage generates a natural-language diff summary for each matched pair
// via the remote completion service, paced by the batch scheduler. Unlike
// the embedding stage, a per-pair remote failure degrades that pair's
// summary instead of aborting the run.
type DiffStage struct {
	generator   provider.TextGenerator
	cfg         batch.Config
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

// NewDiffStage creates a new DiffStage. maxTokens bounds the summary length
// and temperature should be low to favor deterministic output.
func NewDiffStage(generator provider.TextGenerator, cfg batch.Config, maxTokens int, temperature float64, logger *slog.Logger) *DiffStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiffStage{
		generator:   generator,
		cfg:         cfg,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// SummarizeAll produces one ComparisonResult per match, in input order.
func (s *DiffStage) SummarizeAll(ctx context.Context, matches []match.Match, opts ...batch.Option) ([]report.ComparisonResult, error) {
	if len(matches) == 0 {
		return []report.ComparisonResult{}, nil
	}

	s.logger.Info("summarizing differences",
		"pairs", len(matches),
		"batch_size", s.cfg.BatchSize(),
	)

	opts = append(opts, batch.WithProgress(func(completed, total int) {
		s.logger.Info("summarization progress", "completed", completed, "total", total)
	}))

	results, err := batch.Process(ctx, matches, s.cfg, s.summarizeOne, opts...)
	if err != nil {
		// Only context cancellation reaches here; remote failures are
		// converted to substitute summaries inside summarizeOne.
		return nil, fmt.Errorf("summarize differences: %w", err)
	}

	return results, nil
}

func (s *DiffStage) summarizeOne(ctx context.Context, m match.Match) (report.ComparisonResult, error) {
	source := m.Source().Entry()
	matched := m.Target().Entry()

	if m.Score() == identityScore {
		return report.NewComparisonResult(source, matched, m.Score(), NoDifferences), nil
	}

	req := provider.NewChatCompletionRequest([]provider.Message{
		provider.UserMessage(diffPrompt(m)),
	}).WithMaxTokens(s.maxTokens).WithTemperature(s.temperature)

	resp, err := s.generator.ChatCompletion(ctx, req)
	if err != nil {
		s.logger.Warn("diff summary generation failed",
			"source_id", source.ID(),
			"matched_id", matched.ID(),
			"error", err,
		)
		return report.NewComparisonResult(source, matched, m.Score(), DiffUnavailable), nil
	}

	summary := strings.TrimSpace(resp.Content())
	if summary == "" {
		summary = DiffUnavailable
	}

	return report.NewComparisonResult(source, matched, m.Score(), summary), nil
}

// diffPrompt builds the comparison prompt for a matched pair.
func diffPrompt(m match.Match) string {
	var b strings.Builder
	b.WriteString("Compare the following two profiles and describe their key differences in one short paragraph.\n\n")
	b.WriteString("Profile A:\n")
	b.WriteString(m.Source().Entry().EmbeddingText())
	b.WriteString("\n\nProfile B:\n")
	b.WriteString(m.Target().Entry().EmbeddingText())
	b.WriteString("\n\nFocus on differences in title, summary, and skills.")
	return b.String()
}
