package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Sam-Cowman/E-Commerce/internal/model"
	"github.com/Sam-Cowman/E-Commerce/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, "invalid product id", h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products. The body may carry a tagIds list; the
// created product's associations are reconciled to match it.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.ProductCreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, "invalid request payload", h.logger)
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, err.Error(), h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), &input)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Update handles PUT /api/products/{id}. Omitting tagIds leaves the
// product's tag associations untouched; an explicit empty list clears them.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, "invalid product id", h.logger)
		return
	}

	var input model.ProductUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, "invalid request payload", h.logger)
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, err.Error(), h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, &input)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, r, model.ErrCodeValidationFailed, "invalid product id", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}
