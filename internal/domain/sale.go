package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Checkout domain errors.
var (
	ErrEmptyTicket     = &Error{Code: EINVALID, Message: "Ticket has no lines"}
	ErrReceiptNotFound = &Error{Code: ENOTFOUND, Message: "Receipt not found"}
	ErrSaleNotFound    = &Error{Code: ENOTFOUND, Message: "Sale not found"}
)

// SaleChannel records where a sale originated.
type SaleChannel string

const (
	ChannelPOS    SaleChannel = "pos"
	ChannelOnline SaleChannel = "online"
)

// SaleRefs carries the optional identities attached to a committed sale.
type SaleRefs struct {
	CustomerID *int64
	TellerID   *int64
	Channel    SaleChannel
}

// Receipt is the immutable record of a completed sale. TotalCents is fixed at
// commit time from the snapshotted line prices and is never recomputed.
type Receipt struct {
	ID            int64      `json:"receipt_id"`
	ReceiptNumber string     `json:"receipt_number"`
	CustomerID    *int64     `json:"customer_id,omitempty"`
	TellerID      *int64     `json:"teller_id,omitempty"`
	TotalCents    int64      `json:"total_cents"`
	Channel       SaleChannel `json:"channel"`
	Items         []SoldItem `json:"items,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SoldItem is one committed line on a receipt, with price-at-sale.
type SoldItem struct {
	ID             int64     `json:"sold_id"`
	ReceiptID      int64     `json:"receipt_id"`
	ProductID      string    `json:"product_id"`
	Qty            int32     `json:"product_qty"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	CreatedAt      time.Time `json:"created_at"`
}

// OversoldLine identifies a line whose requested quantity exceeds current
// stock at commit time, with enough detail for the caller to adjust and retry.
type OversoldLine struct {
	ProductID string `json:"product_id"`
	Requested int32  `json:"requested"`
	Available int32  `json:"available"`
}

// InsufficientStockError aborts a commit when one or more lines are oversold.
// Nothing has been written when this is returned; the caller's ticket is intact.
type InsufficientStockError struct {
	Lines []OversoldLine
}

// Error implements the error interface.
func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Lines))
	for i, l := range e.Lines {
		parts[i] = fmt.Sprintf("%s (requested %d, available %d)", l.ProductID, l.Requested, l.Available)
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}

// CheckoutService is the single authoritative transition from proposed lines
// to a durable sale. Edit-time stock checks are advisory; Commit re-validates
// against the ledger and performs the decrement-and-record step atomically.
type CheckoutService interface {
	// CommitTicket commits an ephemeral teller ticket. The caller discards
	// its ticket on success.
	CommitTicket(ctx context.Context, lines []LineItem, refs SaleRefs) (*Receipt, error)

	// CommitCart commits a customer's persisted cart and clears it in the
	// same transaction. The cart is preserved on every failure path.
	CommitCart(ctx context.Context, customerID int64) (*Receipt, error)
}

// ReceiptService reads the append-only audit trail produced by commits.
type ReceiptService interface {
	GetReceipt(ctx context.Context, receiptID int64) (*Receipt, error)
	ListReceipts(ctx context.Context) ([]Receipt, error)
}

// SaleService reads committed sale lines (audit view).
type SaleService interface {
	GetSale(ctx context.Context, soldID int64) (*SoldItem, error)
	ListSales(ctx context.Context) ([]SoldItem, error)
}
