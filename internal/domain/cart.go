package domain

import "context"

// Cart domain errors.
var (
	ErrCartNotFound       = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartItemNotFound   = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity    = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrOutOfStock         = &Error{Code: ECONFLICT, Message: "Product is out of stock"}
	ErrMaxQuantityReached = &Error{Code: ECONFLICT, Message: "Max quantity reached for this product"}
)

// CartType distinguishes the lists a customer can hold in the mart table.
type CartType string

const (
	CartTypeActive   CartType = "cart"
	CartTypeWishlist CartType = "wishlist"
)

// LineItem is one proposed purchase line: a product, the quantity requested,
// and the unit price snapshotted when the product was added. Price changes
// between add and commit do not alter an in-flight line.
type LineItem struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	RequestedQty   int32  `json:"qty"`
}

// SubtotalCents is the line's contribution to the ticket total.
func (l LineItem) SubtotalCents() int64 {
	return l.UnitPriceCents * int64(l.RequestedQty)
}

// CartSummary aggregates a customer's persisted cart with its recomputed total.
type CartSummary struct {
	CustomerID int64      `json:"customer_id"`
	Items      []LineItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
	ItemCount  int32      `json:"item_count"`
}

// CartService provides business logic for durable customer carts backed by
// the mart table. The same line-item invariants apply to teller sale tickets,
// which are ephemeral and never touch storage.
type CartService interface {
	// GetCart retrieves the customer's active cart with recomputed totals.
	// A customer with no cart rows gets an empty summary, not an error.
	GetCart(ctx context.Context, customerID int64) (*CartSummary, error)

	// AddItem adds a product to the cart, or merges into the existing line.
	// Rejects with ErrOutOfStock or ErrMaxQuantityReached when the requested
	// quantity exceeds current stock; the cart is left unchanged.
	AddItem(ctx context.Context, customerID int64, productID string, qty int32) (*CartSummary, error)

	// UpdateItemQuantity sets a line's quantity. Zero removes the line.
	UpdateItemQuantity(ctx context.Context, customerID int64, productID string, qty int32) (*CartSummary, error)

	// RemoveItem deletes the line regardless of quantity. Missing lines are a no-op.
	RemoveItem(ctx context.Context, customerID int64, productID string) (*CartSummary, error)

	// ClearCart removes all lines from the customer's active cart.
	ClearCart(ctx context.Context, customerID int64) error
}
