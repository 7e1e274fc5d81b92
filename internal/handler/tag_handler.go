package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Sam-Cowman/E-Commerce/internal/model"
	"github.com/Sam-Cowman/E-Commerce/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// TagHandler handles tag-related HTTP requests.
type TagHandler struct {
	service  service.TagService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(service service.TagService, logger zerolog.Logger) *TagHandler {
	return &TagHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With().Str("handler", "tag").Logger(),
	}
}

// List handles GET /api/tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tags)
}

// GetByID handles GET /api/tags/{id}.
func (h *TagHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, "invalid tag id", h.logger)
		return
	}

	tag, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tag)
}

// Create handles POST /api/tags.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.TagInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, "invalid request payload", h.logger)
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, err.Error(), h.logger)
		return
	}

	tag, err := h.service.Create(r.Context(), &input)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tag)
}

// Update handles PUT /api/tags/{id}.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, "invalid tag id", h.logger)
		return
	}

	var input model.TagInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, "invalid request payload", h.logger)
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, err.Error(), h.logger)
		return
	}

	tag, err := h.service.Update(r.Context(), id, &input)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tag)
}

// Delete handles DELETE /api/tags/{id}.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, "invalid tag id", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}
