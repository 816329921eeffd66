package handler

import (
	"net/http"

	"github.com/shopinger/shopinger/internal/domain"
)

// ReceiptHandler serves the sale audit trail: receipts and sold lines.
type ReceiptHandler struct {
	receipts domain.ReceiptService
	sales    domain.SaleService
}

// NewReceiptHandler creates the receipt handler.
func NewReceiptHandler(receipts domain.ReceiptService, sales domain.SaleService) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts, sales: sales}
}

// ListReceipts handles GET /api/receipts
func (h *ReceiptHandler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.receipts.ListReceipts(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, receipts)
}

// GetReceipt handles GET /api/receipts/{id}
func (h *ReceiptHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	receiptID, err := PathInt64(r, "id")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	receipt, err := h.receipts.GetReceipt(r.Context(), receiptID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, receipt)
}

// ListSales handles GET /api/sales
func (h *ReceiptHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.sales.ListSales(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, sales)
}

// GetSale handles GET /api/sales/{id}
func (h *ReceiptHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	soldID, err := PathInt64(r, "id")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	sale, err := h.sales.GetSale(r.Context(), soldID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, sale)
}
