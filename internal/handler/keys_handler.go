package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prn-tf/alexander-presign/internal/keystore"
)

// KeysHandler serves the signing key management API. Responses never carry
// secret material.
type KeysHandler struct {
	keys   *keystore.Keystore
	logger zerolog.Logger
}

// NewKeysHandler creates a KeysHandler.
func NewKeysHandler(keys *keystore.Keystore, logger zerolog.Logger) *KeysHandler {
	return &KeysHandler{
		keys:   keys,
		logger: logger.With().Str("handler", "keys").Logger(),
	}
}

// HandleList handles GET /v1/keys.
func (h *KeysHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	infos, err := h.keys.List(r.Context())
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("request_id", RequestIDFromContext(r.Context())).
			Msg("failed to list signing keys")
		writeErrorWithID(w, http.StatusInternalServerError, "internal server error",
			RequestIDFromContext(r.Context()))
		return
	}

	if infos == nil {
		infos = []keystore.KeyInfo{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"keys": infos})
}
