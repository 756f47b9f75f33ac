package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/semdiff/semdiff/application/service"
	"github.com/semdiff/semdiff/domain/match"
	infradataset "github.com/semdiff/semdiff/infrastructure/dataset"
	"github.com/semdiff/semdiff/infrastructure/persistence"
	"github.com/semdiff/semdiff/infrastructure/reportfile"
)

// comparisonRequest is the JSON body of a comparison run request. Each
// dataset is a JSON array in the same shape as a dataset file.
type comparisonRequest struct {
	Source json.RawMessage `json:"source"`
	Target json.RawMessage `json:"target"`
}

// Handlers holds the API route handlers and their collaborators. The
// report store is optional; when nil, the archive endpoints return 404.
type Handlers struct {
	comparison *service.Comparison
	store      *persistence.ReportStore
	logger     *slog.Logger
}

// NewHandlers creates the API handlers.
func NewHandlers(comparison *service.Comparison, store *persistence.ReportStore, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		comparison: comparison,
		store:      store,
		logger:     logger,
	}
}

// Mount registers all API routes on the router.
func (h *Handlers) Mount(router chi.Router) {
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Get("/health", h.health)
	router.Get("/healthz", h.health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/comparisons", h.runComparison)
		r.Get("/reports", h.listReports)
	})
}

func (h *Handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handlers) runComparison(w http.ResponseWriter, r *http.Request) {
	var req comparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	source, err := infradataset.ParseJSON(req.Source)
	if err != nil {
		writeError(w, http.StatusBadRequest, "source dataset: "+err.Error())
		return
	}

	target, err := infradataset.ParseJSON(req.Target)
	if err != nil {
		writeError(w, http.StatusBadRequest, "target dataset: "+err.Error())
		return
	}

	rep, err := h.comparison.Run(r.Context(), source, target)
	if err != nil {
		h.logger.Error("comparison run failed", "error", err)
		status := http.StatusBadGateway
		if errors.Is(err, match.ErrNoCandidates) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	if h.store != nil {
		if err := h.store.Save(r.Context(), rep); err != nil {
			// Archiving is best-effort over the API; the caller still
			// gets the report.
			h.logger.Warn("failed to archive report", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, reportfile.NewDocument(rep))
}

func (h *Handlers) listReports(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusNotFound, "report archive not configured")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	reports, err := h.store.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list reports", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	docs := make([]reportfile.Document, len(reports))
	for i, rep := range reports {
		docs[i] = reportfile.NewDocument(rep)
	}

	writeJSON(w, http.StatusOK, map[string]any{"reports": docs})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
