package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/shopinger/shopinger/internal/domain"
	"github.com/shopinger/shopinger/internal/events"
)

// Config holds delivery intake worker configuration.
type Config struct {
	// WorkerID uniquely identifies this worker instance in logs.
	WorkerID string

	// QueueGroup makes workers share a NATS queue so each sale event is
	// handled by exactly one instance.
	QueueGroup string

	// Buffer is the pending-message channel size.
	Buffer int
}

// DeliveryIntake consumes sale-committed events and seeds pending delivery
// records for online sales. POS sales are handed over at the counter and
// never produce a delivery.
type DeliveryIntake struct {
	config     Config
	conn       *nats.Conn
	deliveries domain.DeliveryService
	logger     *slog.Logger
}

// NewDeliveryIntake creates the intake worker.
func NewDeliveryIntake(conn *nats.Conn, deliveries domain.DeliveryService, config Config, logger *slog.Logger) *DeliveryIntake {
	if config.WorkerID == "" {
		config.WorkerID = fmt.Sprintf("intake-%s", uuid.New().String()[:8])
	}
	if config.QueueGroup == "" {
		config.QueueGroup = "delivery-intake"
	}
	if config.Buffer == 0 {
		config.Buffer = 64
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DeliveryIntake{
		config:     config,
		conn:       conn,
		deliveries: deliveries,
		logger:     logger,
	}
}

// Start subscribes and processes events until the context is cancelled.
func (w *DeliveryIntake) Start(ctx context.Context) error {
	w.logger.Info("delivery intake starting",
		"worker_id", w.config.WorkerID,
		"subject", events.SubjectSaleCommitted,
		"queue_group", w.config.QueueGroup,
	)

	msgs := make(chan *nats.Msg, w.config.Buffer)
	sub, err := w.conn.QueueSubscribeSyncWithChan(events.SubjectSaleCommitted, w.config.QueueGroup, msgs)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", events.SubjectSaleCommitted, err)
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("delivery intake shutting down", "worker_id", w.config.WorkerID)
			return ctx.Err()
		case msg := <-msgs:
			w.handle(ctx, msg)
		}
	}
}

func (w *DeliveryIntake) handle(ctx context.Context, msg *nats.Msg) {
	var event events.SaleCommitted
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		w.logger.Error("dropping malformed sale event", "error", err)
		return
	}

	if event.Channel != string(domain.ChannelOnline) {
		return
	}

	handleCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// CreateForReceipt is idempotent, so redelivered events are harmless.
	delivery, err := w.deliveries.CreateForReceipt(handleCtx, event.ReceiptID)
	if err != nil {
		w.logger.Error("failed to seed delivery",
			"receipt_id", event.ReceiptID,
			"error", err,
		)
		return
	}

	w.logger.Info("delivery seeded",
		"delivery_id", delivery.ID,
		"receipt_id", event.ReceiptID,
	)
}
