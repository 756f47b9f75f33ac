package match

import (
	"errors"
	"fmt"
	"math"

	"github.com/semdiff/semdiff/domain/dataset"
)

// ErrNoCandidates indicates the target dataset was empty. An unmatched
// source entry has no product meaning, so this is a hard error rather than
// a degraded result.
var ErrNoCandidates = errors.New("no candidate entries to match against")

// Match associates a source entry with its best-scoring target entry.
type Match struct {
	source dataset.EmbeddedEntry
	target dataset.EmbeddedEntry
	score  float64
}

// NewMatch creates a new Match.
func NewMatch(source, target dataset.EmbeddedEntry, score float64) Match {
	return Match{
		source: source,
		target: target,
		score:  score,
	}
}

// Source returns the source-side entry.
func (m Match) Source() dataset.EmbeddedEntry { return m.source }

// Target returns the matched target-side entry.
func (m Match) Target() dataset.EmbeddedEntry { return m.target }

// Score returns the cosine similarity between source and target.
func (m Match) Score() float64 { return m.score }

// Best scans all targets linearly and returns the one with the highest
// cosine similarity to source. Ties resolve to the first-encountered target;
// only a strictly greater score replaces the current best.
func Best(source dataset.EmbeddedEntry, targets []dataset.EmbeddedEntry) (Match, error) {
	if len(targets) == 0 {
		return Match{}, ErrNoCandidates
	}

	sourceVec := source.Embedding()

	best := Match{}
	bestScore := math.Inf(-1)
	found := false

	for _, target := range targets {
		score, err := CosineSimilarity(sourceVec, target.Embedding())
		if err != nil {
			return Match{}, fmt.Errorf("score entry %d against %d: %w",
				source.Entry().ID(), target.Entry().ID(), err)
		}
		if score > bestScore {
			bestScore = score
			best = NewMatch(source, target, score)
			found = true
		}
	}

	if !found {
		// Unreachable with a non-empty target list: any finite score beats -Inf.
		return Match{}, ErrNoCandidates
	}

	return best, nil
}
