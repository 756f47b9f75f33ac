package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semdiff/semdiff/domain/dataset"
	"github.com/semdiff/semdiff/domain/match"
	"github.com/semdiff/semdiff/internal/batch"
)

func newComparison(embedder *fakeEmbedder, gen *fakeGenerator) *Comparison {
	cfg := batch.NewConfig(5, 0)
	embedStage := NewEmbeddingStage(embedder, cfg, nil)
	diffStage := NewDiffStage(gen, cfg, 200, 0.2, nil)
	return NewComparison(embedStage, diffStage, nil)
}

func TestComparison_IdenticalDatasets(t *testing.T) {
	// Every entry embeds to the same vector as its counterpart, so each
	// source matches at similarity 1 and no completion call is made.
	embedder := &fakeEmbedder{
		vecFn: func(text string) []float64 { return []float64{float64(len(text)), 1} },
	}
	gen := &fakeGenerator{content: "should never be used"}
	comparison := newComparison(embedder, gen)

	entries := testEntries(3)
	fixed := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	comparison.WithClock(func() time.Time { return fixed })

	rep, err := comparison.Run(context.Background(), entries, entries,
		batch.WithSleeper(noSleep))
	require.NoError(t, err)

	assert.Equal(t, fixed, rep.GeneratedAt())
	assert.Equal(t, 3, rep.Count())
	// One embedding request per entry across both datasets, no completions.
	assert.Len(t, embedder.requests(), 6)
	assert.Zero(t, gen.calls.Load())
	for i, r := range rep.Results() {
		assert.Equal(t, entries[i].ID(), r.Source().ID())
		assert.InDelta(t, 1.0, r.Score(), 1e-12)
		assert.Equal(t, NoDifferences, r.Summary())
	}
}

func TestComparison_ResultOrderMirrorsSource(t *testing.T) {
	embedder := &fakeEmbedder{
		vecFn: func(text string) []float64 { return []float64{float64(len(text)), 1} },
	}
	gen := &fakeGenerator{content: "differs"}
	comparison := newComparison(embedder, gen)

	source := testEntries(4)
	target := testEntries(2)

	rep, err := comparison.Run(context.Background(), source, target,
		batch.WithSleeper(noSleep))
	require.NoError(t, err)
	require.Equal(t, 4, rep.Count())
	for i, r := range rep.Results() {
		assert.Equal(t, source[i].ID(), r.Source().ID())
	}
}

func TestComparison_EmptyTargetIsHardError(t *testing.T) {
	embedder := &fakeEmbedder{}
	gen := &fakeGenerator{content: "differs"}
	comparison := newComparison(embedder, gen)

	_, err := comparison.Run(context.Background(), testEntries(2), nil,
		batch.WithSleeper(noSleep))
	require.ErrorIs(t, err, match.ErrNoCandidates)
}

func TestComparison_EmptySourceYieldsEmptyReport(t *testing.T) {
	embedder := &fakeEmbedder{}
	gen := &fakeGenerator{content: "differs"}
	comparison := newComparison(embedder, gen)

	rep, err := comparison.Run(context.Background(), nil, testEntries(2),
		batch.WithSleeper(noSleep))
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Count())
	assert.Zero(t, gen.calls.Load())
}

func TestComparison_EmbeddingFailureAborts(t *testing.T) {
	source := testEntries(2)
	embedder := &fakeEmbedder{errOn: source[0].EmbeddingText()}
	gen := &fakeGenerator{content: "differs"}
	comparison := newComparison(embedder, gen)

	_, err := comparison.Run(context.Background(), source, testEntries(2),
		batch.WithSleeper(noSleep))
	require.Error(t, err)
	assert.Zero(t, gen.calls.Load())
}

func TestComparison_AllSummariesFailingStillSucceeds(t *testing.T) {
	embedder := &fakeEmbedder{
		vecFn: func(text string) []float64 { return []float64{1, float64(len(text))} },
	}
	gen := &fakeGenerator{err: errors.New("completion down")}
	comparison := newComparison(embedder, gen)

	source := testEntries(3)
	target := []dataset.Entry{
		dataset.NewEntry(100, "Other", "Operator", "Operates.", []string{"Bash"}),
	}

	rep, err := comparison.Run(context.Background(), source, target,
		batch.WithSleeper(noSleep))
	require.NoError(t, err)
	require.Equal(t, 3, rep.Count())
	for _, r := range rep.Results() {
		assert.Equal(t, DiffUnavailable, r.Summary())
		assert.Equal(t, int64(100), r.Matched().ID())
	}
}
