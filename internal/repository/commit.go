package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopinger/shopinger/internal/domain"
)

// StockConflictError identifies the product whose conditional decrement
// failed inside a sale transaction. The transaction has been rolled back
// when this is returned; nothing was written.
type StockConflictError struct {
	ProductID string
}

// Error implements the error interface.
func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock conflict on product %s", e.ProductID)
}

// CommitSaleParams describes the atomic decrement-and-record step of a
// checkout. Lines carry the price snapshotted at add time.
type CommitSaleParams struct {
	ReceiptNumber string
	CustomerID    *int64
	TellerID      *int64
	Channel       domain.SaleChannel
	Lines         []domain.LineItem

	// ClearCartOwner, when set, clears that customer's active cart inside
	// the same transaction, so a committed online sale and its cart cleanup
	// succeed or fail together.
	ClearCartOwner *int64
}

// CommitSale performs the write side of a checkout as one transaction:
// conditionally decrement stock for every line, insert the receipt and its
// sale lines, and optionally clear the originating cart. Any failure rolls
// the whole unit back, so inventory is never decremented without a matching
// receipt. A decrement that no longer holds (a concurrent sale won the stock)
// surfaces as *StockConflictError.
func (s *Store) CommitSale(ctx context.Context, params CommitSaleParams) (domain.Receipt, error) {
	var total int64
	for _, line := range params.Lines {
		total += line.SubtotalCents()
	}

	var receipt domain.Receipt
	err := s.ExecTx(ctx, func(q *Queries) error {
		for _, line := range params.Lines {
			if err := q.DecrementInventoryIfAvailable(ctx, line.ProductID, line.RequestedQty); err != nil {
				if errors.Is(err, ErrNotEnoughStock) {
					return &StockConflictError{ProductID: line.ProductID}
				}
				return fmt.Errorf("decrement %s: %w", line.ProductID, err)
			}
		}

		r, err := q.CreateReceipt(ctx, CreateReceiptParams{
			ReceiptNumber: params.ReceiptNumber,
			CustomerID:    params.CustomerID,
			TellerID:      params.TellerID,
			TotalCents:    total,
			Channel:       params.Channel,
		})
		if err != nil {
			return fmt.Errorf("create receipt: %w", err)
		}

		items := make([]domain.SoldItem, 0, len(params.Lines))
		for _, line := range params.Lines {
			item, err := q.CreateSoldItem(ctx, CreateSoldItemParams{
				ReceiptID:      r.ID,
				ProductID:      line.ProductID,
				Qty:            line.RequestedQty,
				UnitPriceCents: line.UnitPriceCents,
			})
			if err != nil {
				return fmt.Errorf("create sold item %s: %w", line.ProductID, err)
			}
			items = append(items, item)
		}
		r.Items = items

		if params.ClearCartOwner != nil {
			if err := q.ClearMart(ctx, *params.ClearCartOwner, domain.CartTypeActive); err != nil {
				return fmt.Errorf("clear cart: %w", err)
			}
		}

		receipt = r
		return nil
	})
	if err != nil {
		return domain.Receipt{}, err
	}
	return receipt, nil
}
