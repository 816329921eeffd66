// Package events publishes domain events over NATS. Publishing is best-effort
// from the caller's point of view: a committed sale is durable whether or not
// its event reaches the broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectSaleCommitted carries SaleCommitted events.
const SubjectSaleCommitted = "shopinger.sale.committed"

// SaleCommitted is emitted after a sale transaction commits.
type SaleCommitted struct {
	ReceiptID  int64     `json:"receipt_id"`
	CustomerID *int64    `json:"customer_id,omitempty"`
	TellerID   *int64    `json:"teller_id,omitempty"`
	Channel    string    `json:"channel"`
	TotalCents int64     `json:"total_cents"`
	CommittedAt time.Time `json:"committed_at"`
}

// Publisher emits domain events.
type Publisher interface {
	PublishSaleCommitted(ctx context.Context, event SaleCommitted) error
}

// NATSPublisher publishes events to a NATS connection.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher wraps an established NATS connection.
func NewNATSPublisher(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{conn: conn}
}

// PublishSaleCommitted sends the event on SubjectSaleCommitted.
func (p *NATSPublisher) PublishSaleCommitted(_ context.Context, event SaleCommitted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal sale committed event: %w", err)
	}
	if err := p.conn.Publish(SubjectSaleCommitted, data); err != nil {
		return fmt.Errorf("publish sale committed event: %w", err)
	}
	return nil
}

// NoopPublisher drops all events. Used when no broker is configured.
type NoopPublisher struct{}

// PublishSaleCommitted discards the event.
func (NoopPublisher) PublishSaleCommitted(context.Context, SaleCommitted) error {
	return nil
}
