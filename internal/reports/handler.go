package reports

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jtrogers/goose-gdrive-classifier/pkg/drive"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/handlers"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/routes"
)

// Handler provides HTTP endpoints for report generation and sample validation.
type Handler struct {
	aggregator    *Aggregator
	validator     *Validator
	defaultFormat Format
	logger        *slog.Logger
}

// ReportRequest selects the report format and detail level.
type ReportRequest struct {
	OutputFormat   string `json:"output_format,omitempty"`
	IncludeDetails *bool  `json:"include_details,omitempty"`
}

// ReportResponse wraps a rendered report.
type ReportResponse struct {
	Report string `json:"report"`
}

// ValidateRequest selects the audit sample size and an optional seed for
// repeatable sampling.
type ValidateRequest struct {
	SampleSize int     `json:"sample_size,omitempty"`
	Seed       *uint64 `json:"seed,omitempty"`
}

// ValidateResponse wraps a validation result.
type ValidateResponse struct {
	Validation *ValidationResult `json:"validation"`
}

// NewHandler creates a Handler with the given aggregator, validator, and
// default report format.
func NewHandler(
	aggregator *Aggregator,
	validator *Validator,
	defaultFormat Format,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		aggregator:    aggregator,
		validator:     validator,
		defaultFormat: defaultFormat,
		logger:        logger.With("handler", "reports"),
	}
}

// Routes returns the route group definitions for reporting endpoints.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix: "/reports",
			Routes: []routes.Route{
				{Method: "POST", Pattern: "", Handler: h.Generate},
			},
		},
		{
			Prefix: "/validate",
			Routes: []routes.Route{
				{Method: "POST", Pattern: "", Handler: h.Validate},
			},
		},
	}
}

// Generate renders a classification report.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	format := h.defaultFormat
	if req.OutputFormat != "" {
		format = ParseFormat(req.OutputFormat)
	}

	includeDetails := true
	if req.IncludeDetails != nil {
		includeDetails = *req.IncludeDetails
	}

	report, err := h.aggregator.Generate(r.Context(), format, includeDetails)
	if err != nil {
		handlers.RespondError(w, h.logger, drive.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ReportResponse{Report: report})
}

// Validate draws a random sample of classified documents and returns its statistics.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.validator.Validate(r.Context(), req.SampleSize, req.Seed)
	if err != nil {
		handlers.RespondError(w, h.logger, drive.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ValidateResponse{Validation: result})
}
