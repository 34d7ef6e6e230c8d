package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RealLeviticus/dahextractor/internal/config"
	"github.com/RealLeviticus/dahextractor/internal/conversion"
	"github.com/RealLeviticus/dahextractor/internal/dah"
	"github.com/RealLeviticus/dahextractor/pkg/logger"
)

// Handler handles API requests
type Handler struct {
	service *conversion.Service
	config  *config.Config
	logger  *logger.Logger
	started time.Time
}

// NewHandler creates a new API handler
func NewHandler(service *conversion.Service, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		config:  cfg,
		logger:  log.Named("api-handler"),
		started: time.Now(),
	}
}

// convertRequest is the POST /convert request body
type convertRequest struct {
	Source string `json:"source"`
	Text   string `json:"text"`
	Format string `json:"format,omitempty"`
}

// convertResponse is the POST /convert response body
type convertResponse struct {
	ID         string          `json:"id"`
	Source     string          `json:"source"`
	Format     string          `json:"format"`
	Validation interface{}     `json:"validation"`
	Output     json.RawMessage `json:"output"`
}

// detectRequest is the POST /detect request body
type detectRequest struct {
	Text string `json:"text"`
}

// errorResponse is the generic error body
type errorResponse struct {
	Error string `json:"error"`
}

// Convert handles POST /convert: one document in, one VATGlasses document
// plus validation report out
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Text == "" {
		h.respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.Source == "" {
		req.Source = "unnamed-document"
	}

	result, err := h.service.Convert(conversion.Request{
		Source:     req.Source,
		Text:       req.Text,
		FormatHint: req.Format,
	})
	if err != nil {
		var formatErr *dah.FormatError
		if errors.As(err, &formatErr) {
			h.respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.Error("Conversion failed", logger.String("source", req.Source), logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "conversion failed")
		return
	}

	h.respondJSON(w, http.StatusOK, convertResponse{
		ID:         result.Record.ID,
		Source:     result.Record.Source,
		Format:     result.Record.Format,
		Validation: result.Validation,
		Output:     result.Output,
	})
}

// Detect handles POST /detect
func (h *Handler) Detect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"format": h.service.Detect(req.Text).String(),
	})
}

// Validate handles POST /validate: the raw body is a VATGlasses JSON
// document; the response is the validation report
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.config.Server.MaxDocumentBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	h.respondJSON(w, http.StatusOK, h.service.Validate(body))
}

// ListConversions handles GET /conversions
func (h *Handler) ListConversions(w http.ResponseWriter, r *http.Request) {
	limit := h.config.Storage.ListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= h.config.Storage.ListLimit {
			limit = n
		}
	}

	records, err := h.service.List(limit)
	if err != nil {
		h.logger.Error("Failed to list conversions", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list conversions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":       len(records),
		"conversions": records,
	})
}

// GetConversion handles GET /conversions/{id}
func (h *Handler) GetConversion(w http.ResponseWriter, r *http.Request) {
	record, ok := h.lookupConversion(w, r)
	if !ok {
		return
	}
	h.respondJSON(w, http.StatusOK, record)
}

// GetConversionResult handles GET /conversions/{id}/result, returning the
// stored VATGlasses document verbatim
func (h *Handler) GetConversionResult(w http.ResponseWriter, r *http.Request) {
	record, ok := h.lookupConversion(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(record.Output)
}

// GetHealth handles GET /health
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.started).Seconds()),
	})
}

// GetConfig handles GET /config, returning the non-sensitive runtime
// configuration
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"server": map[string]interface{}{
			"max_document_bytes": h.config.Server.MaxDocumentBytes,
		},
		"converter": map[string]interface{}{
			"default_frequency": h.config.Converter.DefaultFrequency,
		},
	})
}

// lookupConversion resolves the {id} route parameter to a record, writing
// the error response itself when that fails
func (h *Handler) lookupConversion(w http.ResponseWriter, r *http.Request) (*conversion.Record, bool) {
	id := chi.URLParam(r, "id")

	record, err := h.service.Get(id)
	if errors.Is(err, conversion.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "conversion not found")
		return nil, false
	}
	if err != nil {
		h.logger.Error("Failed to load conversion", logger.String("id", id), logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to load conversion")
		return nil, false
	}

	return record, true
}

// decodeJSON decodes a size-limited JSON request body
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, h.config.Server.MaxDocumentBytes)
	return json.NewDecoder(body).Decode(dst)
}

// respondJSON writes a JSON response with the given status code
func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

// respondError writes a JSON error response
func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Error: message})
}
