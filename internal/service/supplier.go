package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shopinger/shopinger/internal/domain"
	"github.com/shopinger/shopinger/internal/repository"
)

// SupplierStore is the storage surface for supplier records.
type SupplierStore interface {
	GetSupplier(ctx context.Context, supplierID int64) (domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	CreateSupplier(ctx context.Context, params repository.SupplierParams) (domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplierID int64, params repository.SupplierParams) error
	DeleteSupplier(ctx context.Context, supplierID int64) error
}

type supplierService struct {
	store SupplierStore
}

var _ domain.SupplierService = (*supplierService)(nil)

// NewSupplierService creates the supplier service.
func NewSupplierService(store SupplierStore) domain.SupplierService {
	return &supplierService{store: store}
}

func (s *supplierService) GetSupplier(ctx context.Context, supplierID int64) (*domain.Supplier, error) {
	supplier, err := s.store.GetSupplier(ctx, supplierID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, domain.Internal(err, "supplier.get", "failed to read supplier")
	}
	return &supplier, nil
}

func (s *supplierService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers, err := s.store.ListSuppliers(ctx)
	if err != nil {
		return nil, domain.Internal(err, "supplier.list", "failed to list suppliers")
	}
	return suppliers, nil
}

func (s *supplierService) CreateSupplier(ctx context.Context, params domain.SupplierParams) (*domain.Supplier, error) {
	const op = "supplier.create"
	if params.Name == "" {
		return nil, domain.Invalid(op, "name is required")
	}
	supplier, err := s.store.CreateSupplier(ctx, repository.SupplierParams(params))
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create supplier")
	}
	return &supplier, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, supplierID int64, params domain.SupplierParams) (*domain.Supplier, error) {
	const op = "supplier.update"
	if params.Name == "" {
		return nil, domain.Invalid(op, "name is required")
	}
	if err := s.store.UpdateSupplier(ctx, supplierID, repository.SupplierParams(params)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, domain.Internal(err, op, "failed to update supplier")
	}
	return s.GetSupplier(ctx, supplierID)
}

func (s *supplierService) DeleteSupplier(ctx context.Context, supplierID int64) error {
	if err := s.store.DeleteSupplier(ctx, supplierID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrSupplierNotFound
		}
		return domain.Internal(err, "supplier.delete", "failed to delete supplier")
	}
	return nil
}
