package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"

	"github.com/akovalyov/storefront-api/internal/order"
)

// OrderHandler exposes the order workflow over HTTP.
type OrderHandler struct {
	svc order.Service
	dev bool
}

func NewOrderHandler(svc order.Service, dev bool) *OrderHandler {
	return &OrderHandler{svc: svc, dev: dev}
}

func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.handleCreateOrder)
	r.Get("/orders", h.handleListOrders)
	r.Get("/orders/user/{userId}", h.handleListUserOrders)
	r.Get("/orders/{orderId}", h.handleGetOrder)
	r.Patch("/orders/{orderId}/status", h.handleUpdateStatus)
	r.Delete("/orders/{orderId}", h.handleDeleteOrder)
}

func (h *OrderHandler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req order.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			writeOrderError(w, order.ErrMissingBody, "Error creating order", h.dev)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	o, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		writeOrderError(w, err, "Error creating order", h.dev)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"order":   o,
	})
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context())
	if err != nil {
		writeOrderError(w, err, "Error fetching orders", h.dev)
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) handleListUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.FromString(chi.URLParam(r, "userId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	orders, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		writeOrderError(w, err, "Error fetching orders", h.dev)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(orders),
		"orders": orders,
	})
}

func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.FromString(chi.URLParam(r, "orderId"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	o, err := h.svc.Get(r.Context(), orderID)
	if err != nil {
		writeOrderError(w, err, "Error fetching order", h.dev)
		return
	}
	respondWithJSON(w, http.StatusOK, o)
}

type updateStatusRequest struct {
	Status         string  `json:"status"`
	TrackingNumber *string `json:"trackingNumber"`
}

func (h *OrderHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.FromString(chi.URLParam(r, "orderId"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	o, err := h.svc.UpdateStatus(r.Context(), orderID, req.Status, req.TrackingNumber)
	if err != nil {
		writeOrderError(w, err, "Error updating order status", h.dev)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order status updated",
		"order":   o,
	})
}

func (h *OrderHandler) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.FromString(chi.URLParam(r, "orderId"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if err := h.svc.Delete(r.Context(), orderID); err != nil {
		writeOrderError(w, err, "Error deleting order", h.dev)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Order removed"})
}
