package discovery

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jtrogers/goose-gdrive-classifier/pkg/drive"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/handlers"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/routes"
)

// Handler provides the HTTP endpoint for document discovery.
type Handler struct {
	discovery *Discovery
	logger    *slog.Logger
}

// DiscoverRequest scopes a discovery run.
type DiscoverRequest struct {
	FolderID     string   `json:"folder_id,omitempty"`
	MaxDocuments int      `json:"max_documents,omitempty"`
	FileTypes    []string `json:"file_types,omitempty"`
}

// DiscoverResponse wraps the discovered document metadata.
type DiscoverResponse struct {
	Documents []drive.File `json:"documents"`
}

// NewHandler creates a Handler for the given discovery system.
func NewHandler(d *Discovery, logger *slog.Logger) *Handler {
	return &Handler{
		discovery: d,
		logger:    logger.With("handler", "discover"),
	}
}

// Routes returns the route group definition for discovery endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/discover",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Discover},
		},
	}
}

// Discover lists documents needing classification.
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	var req DiscoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	files, err := h.discovery.Discover(r.Context(), req.FolderID, req.MaxDocuments, req.FileTypes)
	if err != nil {
		handlers.RespondError(w, h.logger, drive.MapHTTPStatus(err), err)
		return
	}

	if files == nil {
		files = []drive.File{}
	}

	handlers.RespondJSON(w, http.StatusOK, DiscoverResponse{Documents: files})
}
