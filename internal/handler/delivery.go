package handler

import (
	"net/http"

	"github.com/shopinger/shopinger/internal/domain"
)

// DeliveryHandler serves delivery lifecycle endpoints.
type DeliveryHandler struct {
	deliveries domain.DeliveryService
}

// NewDeliveryHandler creates the delivery handler.
func NewDeliveryHandler(deliveries domain.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveries: deliveries}
}

// List handles GET /api/deliveries?status=pending
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.DeliveryStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.DeliveryStatus(raw)
		status = &s
	}

	deliveries, err := h.deliveries.ListDeliveries(r.Context(), status)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, deliveries)
}

// Get handles GET /api/deliveries/{id}
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	deliveryID, err := PathInt64(r, "id")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	delivery, err := h.deliveries.GetDelivery(r.Context(), deliveryID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, delivery)
}

type assignDelivererRequest struct {
	DelivererID int64 `json:"deliverer_id" validate:"required,gt=0"`
}

// Assign handles POST /api/deliveries/{id}/assign
func (h *DeliveryHandler) Assign(w http.ResponseWriter, r *http.Request) {
	deliveryID, err := PathInt64(r, "id")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	var req assignDelivererRequest
	if err := DecodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	delivery, err := h.deliveries.AssignDeliverer(r.Context(), deliveryID, req.DelivererID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, delivery)
}

type updateDeliveryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending out_for_delivery delivered"`
}

// UpdateStatus handles PUT /api/deliveries/{id}/status
func (h *DeliveryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	deliveryID, err := PathInt64(r, "id")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	var req updateDeliveryStatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	delivery, err := h.deliveries.UpdateStatus(r.Context(), deliveryID, domain.DeliveryStatus(req.Status))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, delivery)
}
