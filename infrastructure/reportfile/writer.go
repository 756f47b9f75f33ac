// Package reportfile serializes comparison reports to JSON.
package reportfile

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/semdiff/semdiff/domain/dataset"
	"github.com/semdiff/semdiff/domain/report"
)

// EntryDocument is the JSON shape of a dataset entry in the report, without
// the embedding.
type EntryDocument struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Skills  []string `json:"skills"`
}

// ResultDocument is the JSON shape of a single comparison result.
type ResultDocument struct {
	Source          EntryDocument `json:"source"`
	Matched         EntryDocument `json:"matched"`
	SimilarityScore float64       `json:"similarityScore"`
	DiffSummary     string        `json:"diffSummary"`
}

// Document is the JSON shape of the full report.
type Document struct {
	ComparisonDate   string           `json:"comparisonDate"`
	TotalComparisons int              `json:"totalComparisons"`
	Results          []ResultDocument `json:"results"`
}

// NewDocument converts a domain report into its JSON document form.
func NewDocument(rep report.Report) Document {
	results := rep.Results()
	docs := make([]ResultDocument, len(results))
	for i, r := range results {
		docs[i] = ResultDocument{
			Source:          newEntryDocument(r.Source()),
			Matched:         newEntryDocument(r.Matched()),
			SimilarityScore: r.Score(),
			DiffSummary:     r.Summary(),
		}
	}

	return Document{
		ComparisonDate:   rep.GeneratedAt().Format(time.RFC3339),
		TotalComparisons: rep.Count(),
		Results:          docs,
	}
}

func newEntryDocument(e dataset.Entry) EntryDocument {
	return EntryDocument{
		ID:      e.ID(),
		Name:    e.Name(),
		Title:   e.Title(),
		Summary: e.Summary(),
		Skills:  e.Skills(),
	}
}

// Write serializes the report to an indented JSON file at path.
func Write(path string, rep report.Report) error {
	data, err := json.MarshalIndent(NewDocument(rep), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}
