package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/akovalyov/storefront-api/internal/product"
)

type productRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Quantity    *int     `json:"quantity" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required"`
	Photo       string   `json:"photo"`
}

type ProductHandler struct {
	svc      product.Service
	validate *validator.Validate
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc, validate: validator.New()}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Post("/products", h.handleCreateProduct)
	r.Get("/products", h.handleListProducts)
	r.Get("/products/{id}", h.handleGetProduct)
	r.Put("/products/{id}", h.handleUpdateProduct)
	r.Delete("/products/{id}", h.handleDeleteProduct)
}

func (h *ProductHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (*productRequest, bool) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				fields = append(fields, fe.Field())
			}
			respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
				"message": "Missing required fields",
				"fields":  fields,
			})
			return nil, false
		}
		log.Error().Err(err).Msg("unexpected validation error type")
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return nil, false
	}
	return &req, true
}

func (r *productRequest) toInput() product.ProductInput {
	return product.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Quantity:    *r.Quantity,
		Category:    r.Category,
		Photo:       r.Photo,
	}
}

func (h *ProductHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Create(r.Context(), req.toInput())
	if err != nil {
		log.Error().Err(err).Msg("failed to create product")
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondWithJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Msg("failed to fetch product")
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondWithJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Update(r.Context(), id, req.toInput())
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Msg("failed to update product")
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondWithJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Msg("failed to delete product")
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
