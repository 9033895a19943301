// Package handler provides HTTP handlers for the Alexander Presign API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/alexander-presign/internal/keystore"
	"github.com/prn-tf/alexander-presign/internal/service"
)

// PresignHandler serves the presign API.
type PresignHandler struct {
	presign *service.PresignService
	logger  zerolog.Logger
}

// NewPresignHandler creates a PresignHandler.
func NewPresignHandler(presign *service.PresignService, logger zerolog.Logger) *PresignHandler {
	return &PresignHandler{
		presign: presign,
		logger:  logger.With().Str("handler", "presign").Logger(),
	}
}

// presignRequest is the POST /v1/presign request body.
type presignRequest struct {
	KeyName   string            `json:"key_name"`
	Anonymous bool              `json:"anonymous,omitempty"`
	Method    string            `json:"method"`
	Bucket    string            `json:"bucket"`
	Key       string            `json:"key,omitempty"`
	ExpirySec int64             `json:"expiry_seconds,omitempty"`
	Query     map[string]string `json:"query,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// HandlePresign handles POST /v1/presign.
func (h *PresignHandler) HandlePresign(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	out, err := h.presign.GeneratePresignedURL(r.Context(), service.PresignInput{
		KeyName:   req.KeyName,
		Anonymous: req.Anonymous,
		Method:    req.Method,
		Bucket:    req.Bucket,
		Key:       req.Key,
		Expiry:    time.Duration(req.ExpirySec) * time.Second,
		Query:     req.Query,
		Headers:   req.Headers,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// writeServiceError maps service errors onto HTTP status codes.
func (h *PresignHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, service.ErrMissingRequiredParams),
		errors.Is(err, service.ErrUnsupportedMethod),
		errors.Is(err, service.ErrInvalidExpiration),
		errors.Is(err, service.ErrInvalidBucket):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, keystore.ErrKeyNotFound):
		status = http.StatusNotFound
		message = err.Error()
	default:
		h.logger.Error().
			Err(err).
			Str("request_id", RequestIDFromContext(r.Context())).
			Msg("presign failed")
	}

	writeErrorWithID(w, status, message, RequestIDFromContext(r.Context()))
}

// =============================================================================
// Response Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeErrorWithID(w http.ResponseWriter, status int, message, requestID string) {
	writeJSON(w, status, errorResponse{Error: message, RequestID: requestID})
}
