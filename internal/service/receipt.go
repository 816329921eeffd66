package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shopinger/shopinger/internal/domain"
)

// ReceiptStore is the read surface over the sale audit trail.
type ReceiptStore interface {
	GetReceipt(ctx context.Context, receiptID int64) (domain.Receipt, error)
	ListReceipts(ctx context.Context) ([]domain.Receipt, error)
	GetSoldItemsByReceipt(ctx context.Context, receiptID int64) ([]domain.SoldItem, error)
	GetSoldItem(ctx context.Context, soldID int64) (domain.SoldItem, error)
	ListSoldItems(ctx context.Context) ([]domain.SoldItem, error)
}

// receiptService serves both the receipt and sale-line read views. Receipts
// and sold items are append-only; there are no mutation paths here.
type receiptService struct {
	store ReceiptStore
}

var (
	_ domain.ReceiptService = (*receiptService)(nil)
	_ domain.SaleService    = (*receiptService)(nil)
)

// NewReceiptService creates the receipt read service.
func NewReceiptService(store ReceiptStore) domain.ReceiptService {
	return &receiptService{store: store}
}

// NewSaleService creates the sale-line read service over the same store.
func NewSaleService(store ReceiptStore) domain.SaleService {
	return &receiptService{store: store}
}

// GetReceipt returns a receipt with its sale lines attached.
func (s *receiptService) GetReceipt(ctx context.Context, receiptID int64) (*domain.Receipt, error) {
	receipt, err := s.store.GetReceipt(ctx, receiptID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, domain.Internal(err, "receipt.get", "failed to read receipt")
	}
	items, err := s.store.GetSoldItemsByReceipt(ctx, receiptID)
	if err != nil {
		return nil, domain.Internal(err, "receipt.get", "failed to read receipt lines")
	}
	receipt.Items = items
	return &receipt, nil
}

// ListReceipts returns receipt headers, newest first, without lines.
func (s *receiptService) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		return nil, domain.Internal(err, "receipt.list", "failed to list receipts")
	}
	return receipts, nil
}

func (s *receiptService) GetSale(ctx context.Context, soldID int64) (*domain.SoldItem, error) {
	item, err := s.store.GetSoldItem(ctx, soldID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, domain.Internal(err, "sale.get", "failed to read sale line")
	}
	return &item, nil
}

func (s *receiptService) ListSales(ctx context.Context) ([]domain.SoldItem, error) {
	items, err := s.store.ListSoldItems(ctx)
	if err != nil {
		return nil, domain.Internal(err, "sale.list", "failed to list sale lines")
	}
	return items, nil
}
