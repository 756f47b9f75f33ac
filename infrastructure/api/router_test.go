package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semdiff/semdiff/application/service"
	"github.com/semdiff/semdiff/infrastructure/provider"
	"github.com/semdiff/semdiff/infrastructure/reportfile"
	"github.com/semdiff/semdiff/internal/batch"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, req provider.EmbeddingRequest) (provider.EmbeddingResponse, error) {
	texts := req.Texts()
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = []float64{float64(len(text)), 1}
	}
	return provider.NewEmbeddingResponse(vectors), nil
}

type stubGenerator struct{}

func (stubGenerator) ChatCompletion(_ context.Context, _ provider.ChatCompletionRequest) (provider.ChatCompletionResponse, error) {
	return provider.NewChatCompletionResponse("They differ.", "stop"), nil
}

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	cfg := batch.NewConfig(5, 0)
	comparison := service.NewComparison(
		service.NewEmbeddingStage(stubEmbedder{}, cfg, nil),
		service.NewDiffStage(stubGenerator{}, cfg, 200, 0.2, nil),
		nil,
	)

	router := chi.NewRouter()
	NewHandlers(comparison, nil, nil).Mount(router)
	return router
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, rec.Body.String())
}

func TestRunComparison(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"source": [{"id": 1, "name": "Ada", "title": "Engineer", "summary": "Programs.", "skills": ["Go"]}],
		"target": [{"id": 2, "name": "Grace", "title": "Admiral", "summary": "Compilers.", "skills": ["COBOL"]}]
	}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var doc reportfile.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, 1, doc.TotalComparisons)
	require.Len(t, doc.Results, 1)
	assert.Equal(t, int64(1), doc.Results[0].Source.ID)
	assert.Equal(t, int64(2), doc.Results[0].Matched.ID)
	assert.NotEmpty(t, doc.Results[0].DiffSummary)
}

func TestRunComparison_InvalidBody(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", strings.NewReader("not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunComparison_InvalidDataset(t *testing.T) {
	router := newTestRouter(t)

	// Source entry is missing the title field.
	body := `{
		"source": [{"id": 1, "name": "Ada", "summary": "Programs.", "skills": []}],
		"target": [{"id": 2, "name": "Grace", "title": "Admiral", "summary": "Compilers.", "skills": []}]
	}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "source dataset")
}

func TestRunComparison_EmptyTarget(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"source": [{"id": 1, "name": "Ada", "title": "Engineer", "summary": "Programs.", "skills": []}],
		"target": []
	}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListReports_NotConfigured(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
