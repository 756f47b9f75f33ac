package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semdiff/semdiff/domain/dataset"
)

func embedded(id int64, vec []float64) dataset.EmbeddedEntry {
	entry := dataset.NewEntry(id, "name", "title", "summary", nil)
	return dataset.NewEmbeddedEntry(entry, vec)
}

func TestBest_EmptyTargets(t *testing.T) {
	source := embedded(1, []float64{1, 0})

	_, err := Best(source, nil)
	require.ErrorIs(t, err, ErrNoCandidates)

	_, err = Best(source, []dataset.EmbeddedEntry{})
	require.ErrorIs(t, err, ErrNoCandidates)
}

func TestBest_SingleTargetAlwaysMatches(t *testing.T) {
	source := embedded(1, []float64{1, 0})
	// Opposite direction: lowest possible similarity, still the best match.
	target := embedded(2, []float64{-1, 0})

	m, err := Best(source, []dataset.EmbeddedEntry{target})
	require.NoError(t, err)
	assert.Equal(t, int64(2), m.Target().Entry().ID())
	assert.InDelta(t, -1.0, m.Score(), 1e-12)
}

func TestBest_PicksHighestScore(t *testing.T) {
	source := embedded(1, []float64{1, 0})
	targets := []dataset.EmbeddedEntry{
		embedded(10, []float64{0, 1}),
		embedded(11, []float64{1, 0.1}),
		embedded(12, []float64{-1, 0}),
	}

	m, err := Best(source, targets)
	require.NoError(t, err)
	assert.Equal(t, int64(11), m.Target().Entry().ID())
	assert.Equal(t, int64(1), m.Source().Entry().ID())
}

func TestBest_TieKeepsFirstEncountered(t *testing.T) {
	source := embedded(1, []float64{1, 0})
	// Both targets are colinear with the source, so both score exactly 1.
	targets := []dataset.EmbeddedEntry{
		embedded(20, []float64{2, 0}),
		embedded(21, []float64{3, 0}),
	}

	m, err := Best(source, targets)
	require.NoError(t, err)
	assert.Equal(t, int64(20), m.Target().Entry().ID())
}

func TestBest_DimensionMismatchIsHardError(t *testing.T) {
	source := embedded(1, []float64{1, 0})
	targets := []dataset.EmbeddedEntry{
		embedded(30, []float64{1, 0, 0}),
	}

	_, err := Best(source, targets)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}
