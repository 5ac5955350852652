package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/disasterwatch/backend/internal/apperrors"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondDomainError maps a domain error kind to its HTTP status code and
// sends the error body. Unclassified errors become a generic 500 and keep
// their detail out of the response.
func (h *BaseHandler) RespondDomainError(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	message := apperrors.MessageOf(err)

	var status int
	switch kind {
	case apperrors.KindConflict:
		status = http.StatusBadRequest
	case apperrors.KindUnauthorized:
		status = http.StatusUnauthorized
		w.Header().Set("WWW-Authenticate", "Bearer")
	case apperrors.KindForbidden:
		status = http.StatusForbidden
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindInvalidInput:
		status = http.StatusBadRequest
	case apperrors.KindUpstream:
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
		h.Logger.Error("unexpected error", zap.Error(err))
	}

	h.RespondError(w, status, message)
}
