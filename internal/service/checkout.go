package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shopinger/shopinger/internal/domain"
	"github.com/shopinger/shopinger/internal/events"
	"github.com/shopinger/shopinger/internal/repository"
	"github.com/shopinger/shopinger/internal/telemetry"
)

// CheckoutStore is the storage surface the checkout flow needs: authoritative
// stock reads, cart line loads, and the atomic commit transaction.
type CheckoutStore interface {
	GetInventoryItem(ctx context.Context, productID string) (domain.InventoryItem, error)
	GetMartLines(ctx context.Context, customerID int64, cartType domain.CartType) ([]domain.LineItem, error)
	CommitSale(ctx context.Context, params repository.CommitSaleParams) (domain.Receipt, error)
}

// checkoutService implements domain.CheckoutService.
type checkoutService struct {
	store     CheckoutStore
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
}

// Compile-time check that checkoutService implements domain.CheckoutService.
var _ domain.CheckoutService = (*checkoutService)(nil)

// NewCheckoutService creates the commit/checkout service. The publisher and
// metrics may be nil-equivalent (NoopPublisher, nil metrics) in tests.
func NewCheckoutService(store CheckoutStore, publisher events.Publisher, metrics *telemetry.BusinessMetrics, logger *slog.Logger) domain.CheckoutService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &checkoutService{
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// CommitTicket commits an ephemeral teller ticket.
func (s *checkoutService) CommitTicket(ctx context.Context, lines []domain.LineItem, refs domain.SaleRefs) (*domain.Receipt, error) {
	if refs.Channel == "" {
		refs.Channel = domain.ChannelPOS
	}
	return s.commit(ctx, lines, refs, nil)
}

// CommitCart commits a customer's persisted cart, clearing it in the same
// transaction on success.
func (s *checkoutService) CommitCart(ctx context.Context, customerID int64) (*domain.Receipt, error) {
	lines, err := s.store.GetMartLines(ctx, customerID, domain.CartTypeActive)
	if err != nil {
		return nil, domain.Internal(err, "checkout.commit_cart", "failed to load cart")
	}

	refs := domain.SaleRefs{CustomerID: &customerID, Channel: domain.ChannelOnline}
	return s.commit(ctx, lines, refs, &customerID)
}

// commit runs the full checkout: local validation, authoritative stock
// re-read, then the atomic decrement-and-record transaction. Validation
// completes entirely before any write begins. Every failure path leaves the
// caller's ticket or cart untouched.
func (s *checkoutService) commit(ctx context.Context, lines []domain.LineItem, refs domain.SaleRefs, clearCartOwner *int64) (*domain.Receipt, error) {
	if len(lines) == 0 {
		s.reject("empty_ticket")
		return nil, domain.ErrEmptyTicket
	}

	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if line.RequestedQty < 1 {
			return nil, domain.Invalid("checkout.commit", fmt.Sprintf("line %s has non-positive quantity", line.ProductID))
		}
		if seen[line.ProductID] {
			return nil, domain.Invalid("checkout.commit", fmt.Sprintf("duplicate line for product %s", line.ProductID))
		}
		seen[line.ProductID] = true
	}

	// Authoritative re-read. The snapshots the lines were built against can
	// be arbitrarily stale by now.
	var oversold []domain.OversoldLine
	for _, line := range lines {
		item, err := s.store.GetInventoryItem(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				oversold = append(oversold, domain.OversoldLine{
					ProductID: line.ProductID,
					Requested: line.RequestedQty,
					Available: 0,
				})
				continue
			}
			return nil, domain.Internal(err, "checkout.commit", "failed to re-read inventory")
		}
		if line.RequestedQty > item.QuantityOnHand {
			oversold = append(oversold, domain.OversoldLine{
				ProductID: line.ProductID,
				Requested: line.RequestedQty,
				Available: item.QuantityOnHand,
			})
		}
	}
	if len(oversold) > 0 {
		s.reject("insufficient_stock")
		return nil, &domain.InsufficientStockError{Lines: oversold}
	}

	receipt, err := s.store.CommitSale(ctx, repository.CommitSaleParams{
		ReceiptNumber:  newReceiptNumber(),
		CustomerID:     refs.CustomerID,
		TellerID:       refs.TellerID,
		Channel:        refs.Channel,
		Lines:          lines,
		ClearCartOwner: clearCartOwner,
	})
	if err != nil {
		// A conditional decrement lost a race after validation passed.
		// Report it with fresh availability so the caller can adjust.
		var conflict *repository.StockConflictError
		if errors.As(err, &conflict) {
			s.reject("insufficient_stock")
			return nil, &domain.InsufficientStockError{
				Lines: []domain.OversoldLine{s.oversoldDetail(ctx, lines, conflict.ProductID)},
			}
		}
		s.reject("persistence")
		return nil, domain.Internal(err, "checkout.commit", "failed to persist sale")
	}

	s.recordCommit(&receipt)

	event := events.SaleCommitted{
		ReceiptID:   receipt.ID,
		CustomerID:  receipt.CustomerID,
		TellerID:    receipt.TellerID,
		Channel:     string(receipt.Channel),
		TotalCents:  receipt.TotalCents,
		CommittedAt: receipt.CreatedAt,
	}
	if err := s.publisher.PublishSaleCommitted(ctx, event); err != nil {
		// The sale is durable; a lost event only delays delivery intake.
		s.logger.Error("failed to publish sale committed event",
			"receipt_id", receipt.ID, "error", err)
	}

	return &receipt, nil
}

// oversoldDetail re-reads availability for the product that lost the race.
func (s *checkoutService) oversoldDetail(ctx context.Context, lines []domain.LineItem, productID string) domain.OversoldLine {
	detail := domain.OversoldLine{ProductID: productID}
	for _, line := range lines {
		if line.ProductID == productID {
			detail.Requested = line.RequestedQty
			break
		}
	}
	if item, err := s.store.GetInventoryItem(ctx, productID); err == nil {
		detail.Available = item.QuantityOnHand
	}
	return detail
}

func (s *checkoutService) recordCommit(receipt *domain.Receipt) {
	if s.metrics == nil {
		return
	}
	channel := string(receipt.Channel)
	s.metrics.SalesCommitted.WithLabelValues(channel).Inc()
	s.metrics.SaleValue.WithLabelValues(channel).Observe(float64(receipt.TotalCents))
	s.metrics.SaleItemCount.WithLabelValues(channel).Observe(float64(len(receipt.Items)))
}

func (s *checkoutService) reject(reason string) {
	if s.metrics == nil {
		return
	}
	s.metrics.CommitRejections.WithLabelValues(reason).Inc()
}

// newReceiptNumber generates a short, unique receipt number.
func newReceiptNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
	return fmt.Sprintf("RCP-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
