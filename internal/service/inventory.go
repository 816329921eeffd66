package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/shopinger/shopinger/internal/domain"
	"github.com/shopinger/shopinger/internal/repository"
	"github.com/shopinger/shopinger/internal/telemetry"
)

// InventoryStore is the storage surface for product records.
type InventoryStore interface {
	GetInventoryItem(ctx context.Context, productID string) (domain.InventoryItem, error)
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	SearchInventory(ctx context.Context, term string) ([]domain.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, params repository.CreateInventoryItemParams) error
	UpdateInventoryItem(ctx context.Context, productID string, params repository.UpdateInventoryItemParams) error
	DeleteInventoryItem(ctx context.Context, productID string) error
	DecrementInventoryIfAvailable(ctx context.Context, productID string, qty int32) error
	IncrementInventory(ctx context.Context, productID string, qty int32) error
}

type inventoryService struct {
	store   InventoryStore
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

var _ domain.InventoryService = (*inventoryService)(nil)

// NewInventoryService creates the product ledger service. Metrics and logger
// may be nil.
func NewInventoryService(store InventoryStore, metrics *telemetry.BusinessMetrics, logger *slog.Logger) domain.InventoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &inventoryService{store: store, metrics: metrics, logger: logger}
}

func (s *inventoryService) GetItem(ctx context.Context, productID string) (*domain.InventoryItem, error) {
	item, err := s.store.GetInventoryItem(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "inventory.get", "failed to read product")
	}
	return &item, nil
}

func (s *inventoryService) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := s.store.ListInventory(ctx)
	if err != nil {
		return nil, domain.Internal(err, "inventory.list", "failed to list products")
	}
	return items, nil
}

func (s *inventoryService) SearchItems(ctx context.Context, term string) ([]domain.InventoryItem, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListItems(ctx)
	}
	items, err := s.store.SearchInventory(ctx, term)
	if err != nil {
		return nil, domain.Internal(err, "inventory.search", "failed to search products")
	}
	return items, nil
}

func (s *inventoryService) CreateItem(ctx context.Context, params domain.CreateInventoryParams) (*domain.InventoryItem, error) {
	const op = "inventory.create"

	if params.ProductID == "" {
		return nil, domain.Invalid(op, "product_id is required")
	}
	if params.Name == "" {
		return nil, domain.Invalid(op, "product_name is required")
	}
	if params.QuantityOnHand < 0 {
		return nil, domain.Invalid(op, "product_qty cannot be negative")
	}
	if params.UnitPriceCents < 0 {
		return nil, domain.Invalid(op, "unit_price_cents cannot be negative")
	}

	err := s.store.CreateInventoryItem(ctx, repository.CreateInventoryItemParams{
		ProductID:      params.ProductID,
		Name:           params.Name,
		QuantityOnHand: params.QuantityOnHand,
		UnitPriceCents: params.UnitPriceCents,
		Description:    params.Description,
		Specification:  params.Specification,
		SupplierID:     params.SupplierID,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateProduct
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, domain.Internal(err, op, "failed to create product")
	}

	s.logger.Info("product created",
		slog.String("product_id", params.ProductID),
		slog.Int("qty", int(params.QuantityOnHand)))
	return s.GetItem(ctx, params.ProductID)
}

func (s *inventoryService) UpdateItem(ctx context.Context, productID string, params domain.UpdateInventoryParams) (*domain.InventoryItem, error) {
	const op = "inventory.update"

	if params.UnitPriceCents != nil && *params.UnitPriceCents < 0 {
		return nil, domain.Invalid(op, "unit_price_cents cannot be negative")
	}

	err := s.store.UpdateInventoryItem(ctx, productID, repository.UpdateInventoryItemParams{
		Name:           params.Name,
		UnitPriceCents: params.UnitPriceCents,
		Description:    params.Description,
		Specification:  params.Specification,
		SupplierID:     params.SupplierID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, domain.Internal(err, op, "failed to update product")
	}
	return s.GetItem(ctx, productID)
}

func (s *inventoryService) DeleteItem(ctx context.Context, productID string) error {
	if err := s.store.DeleteInventoryItem(ctx, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		return domain.Internal(err, "inventory.delete", "failed to delete product")
	}
	s.logger.Info("product deleted", slog.String("product_id", productID))
	return nil
}

// AdjustQuantity applies a signed stock delta. Negative deltas reuse the
// checkout-path conditional decrement so stock never crosses zero even under
// concurrent adjustments.
func (s *inventoryService) AdjustQuantity(ctx context.Context, productID string, delta int32) (*domain.InventoryItem, error) {
	const op = "inventory.adjust"

	switch {
	case delta == 0:
		return nil, domain.Invalid(op, "delta cannot be zero")
	case delta > 0:
		if err := s.store.IncrementInventory(ctx, productID, delta); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrProductNotFound
			}
			return nil, domain.Internal(err, op, "failed to adjust stock")
		}
		if s.metrics != nil {
			s.metrics.StockAdjustments.WithLabelValues("up").Inc()
		}
	default:
		err := s.store.DecrementInventoryIfAvailable(ctx, productID, -delta)
		if errors.Is(err, repository.ErrNotEnoughStock) {
			// Distinguish a missing product from an underflow.
			if _, getErr := s.store.GetInventoryItem(ctx, productID); errors.Is(getErr, pgx.ErrNoRows) {
				return nil, domain.ErrProductNotFound
			}
			if s.metrics != nil {
				s.metrics.StockUnderflows.Inc()
			}
			return nil, domain.ErrStockUnderflow
		}
		if err != nil {
			return nil, domain.Internal(err, op, "failed to adjust stock")
		}
		if s.metrics != nil {
			s.metrics.StockAdjustments.WithLabelValues("down").Inc()
		}
	}

	s.logger.Info("stock adjusted",
		slog.String("product_id", productID),
		slog.Int("delta", int(delta)))
	return s.GetItem(ctx, productID)
}
