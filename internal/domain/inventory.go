package domain

import (
	"context"
	"time"
)

// Inventory domain errors.
var (
	ErrProductNotFound  = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrSupplierNotFound = &Error{Code: ENOTFOUND, Message: "Supplier not found"}
	ErrDuplicateProduct = &Error{Code: ECONFLICT, Message: "Product ID already exists"}
	ErrStockUnderflow   = &Error{Code: ECONFLICT, Message: "Adjustment would drive stock below zero"}
)

// InventorySnapshot is a point-in-time read of a product's sellable state.
// Edit-time checks against it are advisory; only the conditional decrement at
// commit time is authoritative.
type InventorySnapshot struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	QuantityOnHand int32  `json:"product_qty"`
}

// InventoryItem is the full stored record, including admin-only fields.
type InventoryItem struct {
	ProductID      string    `json:"product_id"`
	Name           string    `json:"product_name"`
	QuantityOnHand int32     `json:"product_qty"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Description    string    `json:"description,omitempty"`
	Specification  string    `json:"specification,omitempty"`
	SupplierID     *int64    `json:"supplier_id,omitempty"`
	SupplierName   string    `json:"supplier_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Snapshot projects the sellable view of an inventory item.
func (i InventoryItem) Snapshot() InventorySnapshot {
	return InventorySnapshot{
		ProductID:      i.ProductID,
		Name:           i.Name,
		UnitPriceCents: i.UnitPriceCents,
		QuantityOnHand: i.QuantityOnHand,
	}
}

// InventoryService is the authoritative ledger of per-product stock.
// All quantity mutations, including admin adjustments, go through
// implementations of this interface so stock can never go negative.
type InventoryService interface {
	GetItem(ctx context.Context, productID string) (*InventoryItem, error)
	ListItems(ctx context.Context) ([]InventoryItem, error)

	// SearchItems filters by case-insensitive substring match on product name.
	SearchItems(ctx context.Context, term string) ([]InventoryItem, error)

	CreateItem(ctx context.Context, params CreateInventoryParams) (*InventoryItem, error)
	UpdateItem(ctx context.Context, productID string, params UpdateInventoryParams) (*InventoryItem, error)
	DeleteItem(ctx context.Context, productID string) error

	// AdjustQuantity applies a signed stock delta. Negative deltas use the
	// same conditional decrement as checkout and fail with ErrStockUnderflow
	// rather than going below zero.
	AdjustQuantity(ctx context.Context, productID string, delta int32) (*InventoryItem, error)
}

// CreateInventoryParams contains fields for creating an inventory item.
type CreateInventoryParams struct {
	ProductID      string
	Name           string
	QuantityOnHand int32
	UnitPriceCents int64
	Description    string
	Specification  string
	SupplierID     *int64
}

// UpdateInventoryParams contains mutable fields for an inventory item.
// Quantity is deliberately absent; stock changes go through AdjustQuantity.
type UpdateInventoryParams struct {
	Name           *string
	UnitPriceCents *int64
	Description    *string
	Specification  *string
	SupplierID     *int64
}
