package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semdiff/semdiff/domain/dataset"
	"github.com/semdiff/semdiff/domain/report"
	"github.com/semdiff/semdiff/internal/database"
)

func newTestStore(t *testing.T) *ReportStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "reports.db")
	db, err := database.NewDatabase(context.Background(), "sqlite:///"+path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	store, err := NewReportStore(db)
	require.NoError(t, err)
	return store
}

func reportAt(generatedAt time.Time, summaries ...string) report.Report {
	results := make([]report.ComparisonResult, len(summaries))
	for i, summary := range summaries {
		source := dataset.NewEntry(int64(i+1), "Source", "Engineer", "Builds.", []string{"Go", "SQL"})
		matched := dataset.NewEntry(int64(100+i), "Matched", "Manager", "Runs.", []string{})
		results[i] = report.NewComparisonResult(source, matched, 0.5+float64(i)/10, summary)
	}
	return report.New(generatedAt, results)
}

func TestReportStore_SaveAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	generatedAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, reportAt(generatedAt, "first", "second", "third")))

	reports, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	rep := reports[0]
	assert.True(t, rep.GeneratedAt().Equal(generatedAt))
	require.Equal(t, 3, rep.Count())

	results := rep.Results()
	assert.Equal(t, "first", results[0].Summary())
	assert.Equal(t, "second", results[1].Summary())
	assert.Equal(t, "third", results[2].Summary())

	assert.Equal(t, int64(1), results[0].Source().ID())
	assert.Equal(t, []string{"Go", "SQL"}, results[0].Source().Skills())
	assert.Empty(t, results[0].Matched().Skills())
	assert.Equal(t, 0.5, results[0].Score())
}

func TestReportStore_RecentOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	old := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, reportAt(mid, "mid")))
	require.NoError(t, store.Save(ctx, reportAt(recent, "recent")))
	require.NoError(t, store.Save(ctx, reportAt(old, "old")))

	reports, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.True(t, reports[0].GeneratedAt().Equal(recent))
	assert.True(t, reports[1].GeneratedAt().Equal(mid))
}

func TestReportStore_ResultsStayWithTheirReport(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, reportAt(first, "a1", "a2")))
	require.NoError(t, store.Save(ctx, reportAt(second, "b1")))

	reports, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, 1, reports[0].Count())
	assert.Equal(t, "b1", reports[0].Results()[0].Summary())
	assert.Equal(t, 2, reports[1].Count())
	assert.Equal(t, "a1", reports[1].Results()[0].Summary())
	assert.Equal(t, "a2", reports[1].Results()[1].Summary())
}

func TestReportStore_EmptyReport(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, report.New(time.Now().UTC(), nil)))

	reports, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 0, reports[0].Count())
}
