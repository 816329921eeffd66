package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shopinger/shopinger/internal/domain"
	"github.com/shopinger/shopinger/internal/repository"
	"github.com/shopinger/shopinger/internal/telemetry"
)

// CartStore is the storage surface for durable customer carts.
type CartStore interface {
	GetInventoryItem(ctx context.Context, productID string) (domain.InventoryItem, error)
	GetMartLines(ctx context.Context, customerID int64, cartType domain.CartType) ([]domain.LineItem, error)
	UpsertMartLine(ctx context.Context, params repository.UpsertMartLineParams) error
	DeleteMartLine(ctx context.Context, customerID int64, productID string, cartType domain.CartType) error
	ClearMart(ctx context.Context, customerID int64, cartType domain.CartType) error
}

// cartService implements domain.CartService over the mart table. Every
// mutation is routed through a Builder loaded from storage, so the durable
// cart and the ephemeral teller ticket enforce identical line invariants.
type cartService struct {
	store   CartStore
	metrics *telemetry.BusinessMetrics
}

var _ domain.CartService = (*cartService)(nil)

// NewCartService creates a durable cart service. Metrics may be nil.
func NewCartService(store CartStore, metrics *telemetry.BusinessMetrics) domain.CartService {
	return &cartService{store: store, metrics: metrics}
}

// martLineStore adapts the repository to the Builder's LineStore for one
// customer's active cart.
type martLineStore struct {
	store      CartStore
	customerID int64
}

func (m *martLineStore) UpsertLine(ctx context.Context, item domain.LineItem) error {
	return m.store.UpsertMartLine(ctx, repository.UpsertMartLineParams{
		CustomerID:     m.customerID,
		ProductID:      item.ProductID,
		CartType:       domain.CartTypeActive,
		Qty:            item.RequestedQty,
		UnitPriceCents: item.UnitPriceCents,
	})
}

func (m *martLineStore) DeleteLine(ctx context.Context, productID string) error {
	return m.store.DeleteMartLine(ctx, m.customerID, productID, domain.CartTypeActive)
}

// loadBuilder reconstructs the customer's cart as a write-through Builder.
func (s *cartService) loadBuilder(ctx context.Context, customerID int64) (*Builder, error) {
	lines, err := s.store.GetMartLines(ctx, customerID, domain.CartTypeActive)
	if err != nil {
		return nil, domain.Internal(err, "cart.load", "failed to load cart")
	}
	b := NewDurableBuilder(&martLineStore{store: s.store, customerID: customerID})
	b.Load(lines)
	return b, nil
}

func summarize(customerID int64, b *Builder) *domain.CartSummary {
	return &domain.CartSummary{
		CustomerID: customerID,
		Items:      b.Items(),
		TotalCents: b.Total(),
		ItemCount:  b.ItemCount(),
	}
}

// GetCart retrieves the customer's active cart with recomputed totals.
func (s *cartService) GetCart(ctx context.Context, customerID int64) (*domain.CartSummary, error) {
	b, err := s.loadBuilder(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return summarize(customerID, b), nil
}

// AddItem adds a product to the cart or merges into the existing line,
// bounded by current stock. Rejections leave the stored cart unchanged.
func (s *cartService) AddItem(ctx context.Context, customerID int64, productID string, qty int32) (*domain.CartSummary, error) {
	item, err := s.getSnapshot(ctx, productID)
	if err != nil {
		return nil, err
	}

	b, err := s.loadBuilder(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := b.Add(ctx, item, qty); err != nil {
		s.recordRejection(err)
		if isSoftRejection(err) {
			return nil, err
		}
		return nil, domain.Internal(err, "cart.add", "failed to add cart item")
	}

	if s.metrics != nil {
		s.metrics.CartItemsAdded.WithLabelValues(productID).Inc()
	}
	return summarize(customerID, b), nil
}

// UpdateItemQuantity sets a line's absolute quantity; zero removes the line.
func (s *cartService) UpdateItemQuantity(ctx context.Context, customerID int64, productID string, qty int32) (*domain.CartSummary, error) {
	if qty < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	item, err := s.getSnapshot(ctx, productID)
	if err != nil {
		return nil, err
	}

	b, err := s.loadBuilder(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := b.SetQuantity(ctx, item, qty); err != nil {
		s.recordRejection(err)
		if isSoftRejection(err) {
			return nil, err
		}
		return nil, domain.Internal(err, "cart.update", "failed to update cart item")
	}
	return summarize(customerID, b), nil
}

// RemoveItem deletes the line regardless of quantity.
func (s *cartService) RemoveItem(ctx context.Context, customerID int64, productID string) (*domain.CartSummary, error) {
	b, err := s.loadBuilder(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := b.Remove(ctx, productID); err != nil {
		return nil, domain.Internal(err, "cart.remove", "failed to remove cart item")
	}

	if s.metrics != nil {
		s.metrics.CartItemsRemoved.WithLabelValues(productID).Inc()
	}
	return summarize(customerID, b), nil
}

// ClearCart removes all lines from the customer's active cart.
func (s *cartService) ClearCart(ctx context.Context, customerID int64) error {
	if err := s.store.ClearMart(ctx, customerID, domain.CartTypeActive); err != nil {
		return domain.Internal(err, "cart.clear", "failed to clear cart")
	}
	return nil
}

func (s *cartService) getSnapshot(ctx context.Context, productID string) (domain.InventorySnapshot, error) {
	item, err := s.store.GetInventoryItem(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.InventorySnapshot{}, domain.ErrProductNotFound
		}
		return domain.InventorySnapshot{}, domain.Internal(err, "cart.snapshot", "failed to read inventory")
	}
	return item.Snapshot(), nil
}

func (s *cartService) recordRejection(err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case errors.Is(err, domain.ErrOutOfStock):
		s.metrics.CartRejections.WithLabelValues("out_of_stock").Inc()
	case errors.Is(err, domain.ErrMaxQuantityReached):
		s.metrics.CartRejections.WithLabelValues("max_quantity").Inc()
	}
}

// isSoftRejection reports whether err is a user-facing guard rejection
// rather than an infrastructure failure.
func isSoftRejection(err error) bool {
	return errors.Is(err, domain.ErrOutOfStock) ||
		errors.Is(err, domain.ErrMaxQuantityReached) ||
		errors.Is(err, domain.ErrInvalidQuantity)
}
