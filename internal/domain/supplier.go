package domain

import (
	"context"
	"time"
)

// Supplier is a source of inventory items.
type Supplier struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SupplierService manages supplier records.
type SupplierService interface {
	GetSupplier(ctx context.Context, supplierID int64) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]Supplier, error)
	CreateSupplier(ctx context.Context, params SupplierParams) (*Supplier, error)
	UpdateSupplier(ctx context.Context, supplierID int64, params SupplierParams) (*Supplier, error)
	DeleteSupplier(ctx context.Context, supplierID int64) error
}

// SupplierParams contains supplier fields for create and update.
type SupplierParams struct {
	Name         string
	ContactEmail string
	Phone        string
	Address      string
}
