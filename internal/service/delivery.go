package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/shopinger/shopinger/internal/domain"
	"github.com/shopinger/shopinger/internal/repository"
	"github.com/shopinger/shopinger/internal/telemetry"
)

// DeliveryStore is the storage surface for delivery records.
type DeliveryStore interface {
	CreateDelivery(ctx context.Context, receiptID int64) (domain.Delivery, error)
	GetDelivery(ctx context.Context, deliveryID int64) (domain.Delivery, error)
	GetDeliveryByReceipt(ctx context.Context, receiptID int64) (domain.Delivery, error)
	ListDeliveries(ctx context.Context, status *domain.DeliveryStatus) ([]domain.Delivery, error)
	AssignDeliverer(ctx context.Context, deliveryID, delivererID int64) error
	UpdateDeliveryStatus(ctx context.Context, deliveryID int64, status domain.DeliveryStatus) error
}

type deliveryService struct {
	store   DeliveryStore
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

var _ domain.DeliveryService = (*deliveryService)(nil)

// NewDeliveryService creates the delivery service. Metrics and logger may be nil.
func NewDeliveryService(store DeliveryStore, metrics *telemetry.BusinessMetrics, logger *slog.Logger) domain.DeliveryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &deliveryService{store: store, metrics: metrics, logger: logger}
}

// CreateForReceipt seeds a pending delivery for a committed online sale.
// Replayed events land on the unique receipt constraint and return the
// existing record, so intake is safe to retry.
func (s *deliveryService) CreateForReceipt(ctx context.Context, receiptID int64) (*domain.Delivery, error) {
	const op = "delivery.create"

	delivery, err := s.store.CreateDelivery(ctx, receiptID)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			existing, getErr := s.store.GetDeliveryByReceipt(ctx, receiptID)
			if getErr != nil {
				return nil, domain.Internal(getErr, op, "failed to read existing delivery")
			}
			return &existing, nil
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, domain.Internal(err, op, "failed to create delivery")
	}

	if s.metrics != nil {
		s.metrics.DeliveriesCreated.Inc()
	}
	s.logger.Info("delivery created",
		slog.Int64("delivery_id", delivery.ID),
		slog.Int64("receipt_id", receiptID))
	return &delivery, nil
}

func (s *deliveryService) GetDelivery(ctx context.Context, deliveryID int64) (*domain.Delivery, error) {
	delivery, err := s.store.GetDelivery(ctx, deliveryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDeliveryNotFound
		}
		return nil, domain.Internal(err, "delivery.get", "failed to read delivery")
	}
	return &delivery, nil
}

func (s *deliveryService) ListDeliveries(ctx context.Context, status *domain.DeliveryStatus) ([]domain.Delivery, error) {
	deliveries, err := s.store.ListDeliveries(ctx, status)
	if err != nil {
		return nil, domain.Internal(err, "delivery.list", "failed to list deliveries")
	}
	return deliveries, nil
}

// AssignDeliverer attaches a deliverer. Only pending deliveries can be
// reassigned; once out for delivery the assignment is fixed.
func (s *deliveryService) AssignDeliverer(ctx context.Context, deliveryID, delivererID int64) (*domain.Delivery, error) {
	const op = "delivery.assign"

	delivery, err := s.GetDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if delivery.Status != domain.DeliveryPending {
		return nil, domain.Invalid(op, "deliverer can only be assigned while pending")
	}

	if err := s.store.AssignDeliverer(ctx, deliveryID, delivererID); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err, op, "failed to assign deliverer")
	}
	return s.GetDelivery(ctx, deliveryID)
}

// UpdateStatus advances the delivery lifecycle. Backward or skipping
// transitions are rejected.
func (s *deliveryService) UpdateStatus(ctx context.Context, deliveryID int64, status domain.DeliveryStatus) (*domain.Delivery, error) {
	const op = "delivery.status"

	delivery, err := s.GetDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if !delivery.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidStatusChange
	}
	if status == domain.DeliveryOutForDelivery && delivery.DelivererID == nil {
		return nil, domain.Invalid(op, "delivery needs an assigned deliverer before dispatch")
	}

	if err := s.store.UpdateDeliveryStatus(ctx, deliveryID, status); err != nil {
		return nil, domain.Internal(err, op, "failed to update delivery status")
	}

	if s.metrics != nil && status == domain.DeliveryDelivered {
		s.metrics.DeliveriesCompleted.Inc()
	}
	s.logger.Info("delivery status changed",
		slog.Int64("delivery_id", deliveryID),
		slog.String("from", string(delivery.Status)),
		slog.String("to", string(status)))
	return s.GetDelivery(ctx, deliveryID)
}
