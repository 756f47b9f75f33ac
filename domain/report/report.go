// Package report holds the domain model for comparison reports.
package report

import (
	"time"

	"github.com/semdiff/semdiff/domain/dataset"
)

// ComparisonResult pairs a source entry with its matched target entry, the
// similarity score, and the diff summary text. Embeddings are not carried;
// only the underlying entries appear in the report.
type ComparisonResult struct {
	source  dataset.Entry
	matched dataset.Entry
	score   float64
	summary string
}

// NewComparisonResult creates a new ComparisonResult.
func NewComparisonResult(source, matched dataset.Entry, score float64, summary string) ComparisonResult {
	return ComparisonResult{
		source:  source,
		matched: matched,
		score:   score,
		summary: summary,
	}
}

// Source returns the source-side entry.
func (r ComparisonResult) Source() dataset.Entry { return r.source }

// Matched returns the matched target-side entry.
func (r ComparisonResult) Matched() dataset.Entry { return r.matched }

// Score returns the similarity score.
func (r ComparisonResult) Score() float64 { return r.score }

// Summary returns the diff summary text.
func (r ComparisonResult) Summary() string { return r.summary }

// Report is the final, write-once output of a comparison run. Result order
// mirrors the source dataset's entry order.
type Report struct {
	generatedAt time.Time
	results     []ComparisonResult
}

// New creates a new Report.
func New(generatedAt time.Time, results []ComparisonResult) Report {
	rs := make([]ComparisonResult, len(results))
	copy(rs, results)
	return Report{
		generatedAt: generatedAt,
		results:     rs,
	}
}

// GeneratedAt returns the report generation timestamp.
func (r Report) GeneratedAt() time.Time { return r.generatedAt }

// Count returns the total number of comparisons.
func (r Report) Count() int { return len(r.results) }

// Results returns the ordered comparison results (copy).
func (r Report) Results() []ComparisonResult {
	rs := make([]ComparisonResult, len(r.results))
	copy(rs, r.results)
	return rs
}
