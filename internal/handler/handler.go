package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Sam-Cowman/E-Commerce/internal/middleware"
	"github.com/Sam-Cowman/E-Commerce/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already out; nothing useful left to do.
		return
	}
}

// writeError writes a standardised error response. Domain errors keep their
// code; everything else is reported as an internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	code := model.ErrCodeInternalError
	message := "internal server error"
	status := http.StatusInternalServerError

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		code = domainErr.Code
		message = domainErr.Message
		status = statusForCode(domainErr.Code)
	}

	logger.Error().
		Err(err).
		Str("code", code).
		Int("status", status).
		Str("path", r.URL.Path).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.RequestIDFromContext(r.Context()),
	})
}

// writeBadRequest writes a 400 with the given code and message.
func writeBadRequest(w http.ResponseWriter, r *http.Request, code, message string, logger zerolog.Logger) {
	logger.Warn().
		Str("code", code).
		Str("path", r.URL.Path).
		Msg(message)

	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.RequestIDFromContext(r.Context()),
	})
}

// statusForCode maps a domain error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeCategoryNotFound, model.ErrCodeProductNotFound, model.ErrCodeTagNotFound:
		return http.StatusNotFound
	case model.ErrCodeValidationFailed, model.ErrCodeInvalidJSON,
		model.ErrCodeReferentialViolation, model.ErrCodeDuplicateAssociation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// pathID parses the {id} URL parameter. A non-numeric or non-positive id is
// reported as a bad request.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
