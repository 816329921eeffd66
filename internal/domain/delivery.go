package domain

import (
	"context"
	"time"
)

// Delivery domain errors.
var (
	ErrDeliveryNotFound      = &Error{Code: ENOTFOUND, Message: "Delivery not found"}
	ErrInvalidStatusChange   = &Error{Code: EINVALID, Message: "Invalid delivery status transition"}
	ErrDeliveryAlreadyExists = &Error{Code: ECONFLICT, Message: "Delivery already exists for receipt"}
)

// DeliveryStatus tracks a delivery through its lifecycle.
type DeliveryStatus string

const (
	DeliveryPending        DeliveryStatus = "pending"
	DeliveryOutForDelivery DeliveryStatus = "out_for_delivery"
	DeliveryDelivered      DeliveryStatus = "delivered"
)

// CanTransitionTo reports whether the status change is allowed. Deliveries
// only move forward: pending -> out_for_delivery -> delivered.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	switch s {
	case DeliveryPending:
		return next == DeliveryOutForDelivery
	case DeliveryOutForDelivery:
		return next == DeliveryDelivered
	}
	return false
}

// Delivery links a committed online sale to a deliverer.
type Delivery struct {
	ID          int64          `json:"id"`
	ReceiptID   int64          `json:"receipt_id"`
	DelivererID *int64         `json:"deliverer_id,omitempty"`
	Status      DeliveryStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DeliveryService manages delivery records for committed sales.
type DeliveryService interface {
	// CreateForReceipt seeds a pending delivery for a committed receipt.
	// Idempotent: an existing delivery for the receipt is returned as-is.
	CreateForReceipt(ctx context.Context, receiptID int64) (*Delivery, error)

	GetDelivery(ctx context.Context, deliveryID int64) (*Delivery, error)
	ListDeliveries(ctx context.Context, status *DeliveryStatus) ([]Delivery, error)

	// AssignDeliverer attaches a deliverer to a pending delivery.
	AssignDeliverer(ctx context.Context, deliveryID, delivererID int64) (*Delivery, error)

	// UpdateStatus advances the delivery through its lifecycle.
	UpdateStatus(ctx context.Context, deliveryID int64, status DeliveryStatus) (*Delivery, error)
}
