package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Sam-Cowman/E-Commerce/internal/model"
	"github.com/Sam-Cowman/E-Commerce/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	service  service.CategoryService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With().Str("handler", "category").Logger(),
	}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// GetByID handles GET /api/categories/{id}.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, "invalid category id", h.logger)
		return
	}

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, "invalid request payload", h.logger)
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, err.Error(), h.logger)
		return
	}

	category, err := h.service.Create(r.Context(), &input)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Update handles PUT /api/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, "invalid category id", h.logger)
		return
	}

	var input model.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, "invalid request payload", h.logger)
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, err.Error(), h.logger)
		return
	}

	category, err := h.service.Update(r.Context(), id, &input)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, "invalid category id", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}
