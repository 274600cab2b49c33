package processor

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jtrogers/goose-gdrive-classifier/pkg/handlers"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/routes"
)

// Handler provides the HTTP endpoint for batch classification.
type Handler struct {
	processor *Processor
	logger    *slog.Logger
}

// ClassifyRequest carries the document ids to classify and an optional batch
// size override.
type ClassifyRequest struct {
	DocumentIDs []string `json:"document_ids"`
	BatchSize   int      `json:"batch_size,omitempty"`
}

// ClassifyResponse wraps the per-document results.
type ClassifyResponse struct {
	Classifications []Result `json:"classifications"`
}

// NewHandler creates a Handler for the given processor.
func NewHandler(p *Processor, logger *slog.Logger) *Handler {
	return &Handler{
		processor: p,
		logger:    logger.With("handler", "classify"),
	}
}

// Routes returns the route group definition for classification endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/classify",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Classify},
		},
	}
}

// Classify runs batch classification for the requested document ids.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if len(req.DocumentIDs) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoDocuments)
		return
	}

	results := h.processor.Process(r.Context(), req.DocumentIDs, req.BatchSize)

	handlers.RespondJSON(w, http.StatusOK, ClassifyResponse{Classifications: results})
}
