package handler

import (
	"log/slog"
	"net/http"

	"github.com/shopinger/shopinger/internal/domain"
)

// InventoryHandler serves the product ledger endpoints.
type InventoryHandler struct {
	inventory domain.InventoryService
	logger    *slog.Logger
}

// NewInventoryHandler creates the inventory handler.
func NewInventoryHandler(inventory domain.InventoryService, logger *slog.Logger) *InventoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InventoryHandler{inventory: inventory, logger: logger}
}

// List handles GET /api/inventory?q=term
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.SearchItems(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, items)
}

// Get handles GET /api/inventory/{id}
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.inventory.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, item)
}

type createInventoryRequest struct {
	ProductID      string `json:"product_id" validate:"required"`
	Name           string `json:"product_name" validate:"required"`
	Qty            int32  `json:"product_qty" validate:"gte=0"`
	UnitPriceCents int64  `json:"unit_price_cents" validate:"gte=0"`
	Description    string `json:"description"`
	Specification  string `json:"specification"`
	SupplierID     *int64 `json:"supplier_id"`
}

// Create handles POST /api/inventory
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInventoryRequest
	if err := DecodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	item, err := h.inventory.CreateItem(r.Context(), domain.CreateInventoryParams{
		ProductID:      req.ProductID,
		Name:           req.Name,
		QuantityOnHand: req.Qty,
		UnitPriceCents: req.UnitPriceCents,
		Description:    req.Description,
		Specification:  req.Specification,
		SupplierID:     req.SupplierID,
	})
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, item)
}

type updateInventoryRequest struct {
	Name           *string `json:"product_name"`
	UnitPriceCents *int64  `json:"unit_price_cents" validate:"omitempty,gte=0"`
	Description    *string `json:"description"`
	Specification  *string `json:"specification"`
	SupplierID     *int64  `json:"supplier_id"`
}

// Update handles PUT /api/inventory/{id}
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateInventoryRequest
	if err := DecodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	item, err := h.inventory.UpdateItem(r.Context(), r.PathValue("id"), domain.UpdateInventoryParams{
		Name:           req.Name,
		UnitPriceCents: req.UnitPriceCents,
		Description:    req.Description,
		Specification:  req.Specification,
		SupplierID:     req.SupplierID,
	})
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/inventory/{id}
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.inventory.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type adjustStockRequest struct {
	Delta int32 `json:"delta" validate:"required"`
}

// Adjust handles POST /api/inventory/{id}/adjust
func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustStockRequest
	if err := DecodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	item, err := h.inventory.AdjustQuantity(r.Context(), r.PathValue("id"), req.Delta)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, item)
}
