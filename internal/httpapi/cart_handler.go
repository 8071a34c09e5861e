package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/davancensm/Case36-TercerEntrega/internal/cart"
	"github.com/davancensm/Case36-TercerEntrega/internal/repository"
)

type CartHandler struct {
	carts   *cart.Service
	timeout time.Duration
}

func NewCartHandler(carts *cart.Service, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, h.timeout)
	defer cancel()

	created, err := h.carts.Create(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create cart")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, h.timeout)
	defer cancel()

	cartID := chi.URLParam(r, "id")
	found, err := h.carts.Get(ctx, cartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "cart not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}

	respondJSON(w, http.StatusOK, found)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, h.timeout)
	defer cancel()

	cartID := chi.URLParam(r, "id")

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	if err := h.carts.AddProduct(ctx, cartID, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "cart not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add product")
		return
	}

	updated, err := h.carts.Get(ctx, cartID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}

	respondJSON(w, http.StatusCreated, updated)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, h.timeout)
	defer cancel()

	cartID := chi.URLParam(r, "id")

	productIDStr := chi.URLParam(r, "productID")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	if err := h.carts.RemoveProduct(ctx, cartID, productID); err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "cart not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to remove product")
		return
	}

	updated, err := h.carts.Get(ctx, cartID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func contextWithTimeout(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), timeout)
}
