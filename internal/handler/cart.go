package handler

import (
	"log/slog"
	"net/http"

	"github.com/shopinger/shopinger/internal/domain"
)

// CartHandler serves the durable customer cart endpoints. The customer id
// rides in the path; an auth layer in front of the API is expected to have
// verified it.
type CartHandler struct {
	cart   domain.CartService
	logger *slog.Logger
}

// NewCartHandler creates the cart handler.
func NewCartHandler(cart domain.CartService, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{cart: cart, logger: logger}
}

// Get handles GET /api/cart/{customerID}
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID, err := PathInt64(r, "customerID")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	summary, err := h.cart.GetCart(r.Context(), customerID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Qty       int32  `json:"qty" validate:"required,gt=0"`
}

// AddItem handles POST /api/cart/{customerID}/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	customerID, err := PathInt64(r, "customerID")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	var req addCartItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	summary, err := h.cart.AddItem(r.Context(), customerID, req.ProductID, req.Qty)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}

type updateCartItemRequest struct {
	Qty int32 `json:"qty" validate:"gte=0"`
}

// UpdateItem handles PUT /api/cart/{customerID}/items/{productID}.
// A quantity of zero removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	customerID, err := PathInt64(r, "customerID")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	var req updateCartItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	summary, err := h.cart.UpdateItemQuantity(r.Context(), customerID, r.PathValue("productID"), req.Qty)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}

// RemoveItem handles DELETE /api/cart/{customerID}/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	customerID, err := PathInt64(r, "customerID")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	summary, err := h.cart.RemoveItem(r.Context(), customerID, r.PathValue("productID"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}

// Clear handles DELETE /api/cart/{customerID}
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	customerID, err := PathInt64(r, "customerID")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	if err := h.cart.ClearCart(r.Context(), customerID); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
