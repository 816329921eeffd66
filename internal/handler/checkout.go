package handler

import (
	"log/slog"
	"net/http"

	"github.com/shopinger/shopinger/internal/domain"
)

// CheckoutHandler serves the commit endpoints: online cart checkout and POS
// ticket commit. Both funnel into the same atomic commit path.
type CheckoutHandler struct {
	checkout domain.CheckoutService
	logger   *slog.Logger
}

// NewCheckoutHandler creates the checkout handler.
func NewCheckoutHandler(checkout domain.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{checkout: checkout, logger: logger}
}

// CommitCart handles POST /api/checkout/cart/{customerID}.
// On success the customer's cart has been cleared in the same transaction.
func (h *CheckoutHandler) CommitCart(w http.ResponseWriter, r *http.Request) {
	customerID, err := PathInt64(r, "customerID")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	receipt, err := h.checkout.CommitCart(r.Context(), customerID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, receipt)
}

type ticketLineRequest struct {
	ProductID      string `json:"product_id" validate:"required"`
	ProductName    string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents" validate:"gte=0"`
	Qty            int32  `json:"qty" validate:"required,gt=0"`
}

type commitTicketRequest struct {
	Lines      []ticketLineRequest `json:"lines" validate:"required,min=1,dive"`
	CustomerID *int64              `json:"customer_id"`
	TellerID   *int64              `json:"teller_id"`
}

// CommitTicket handles POST /api/checkout/ticket.
// The teller sends the full ticket; prices were snapshotted when lines were
// added at the counter. The committed receipt uses those prices verbatim.
func (h *CheckoutHandler) CommitTicket(w http.ResponseWriter, r *http.Request) {
	var req commitTicketRequest
	if err := DecodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	lines := make([]domain.LineItem, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.LineItem{
			ProductID:      l.ProductID,
			ProductName:    l.ProductName,
			UnitPriceCents: l.UnitPriceCents,
			RequestedQty:   l.Qty,
		}
	}

	refs := domain.SaleRefs{
		CustomerID: req.CustomerID,
		TellerID:   req.TellerID,
		Channel:    domain.ChannelPOS,
	}

	receipt, err := h.checkout.CommitTicket(r.Context(), lines, refs)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, receipt)
}
