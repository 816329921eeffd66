package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/shopinger/shopinger/internal/domain"
)

// CreateReceiptParams contains fields for inserting a receipt.
type CreateReceiptParams struct {
	ReceiptNumber string
	CustomerID    *int64
	TellerID      *int64
	TotalCents    int64
	Channel       domain.SaleChannel
}

// CreateReceipt inserts the receipt header and returns the stored record.
func (q *Queries) CreateReceipt(ctx context.Context, params CreateReceiptParams) (domain.Receipt, error) {
	receipt := domain.Receipt{
		ReceiptNumber: params.ReceiptNumber,
		CustomerID:    params.CustomerID,
		TellerID:      params.TellerID,
		TotalCents:    params.TotalCents,
		Channel:       params.Channel,
	}
	err := q.db.QueryRow(ctx, `
		INSERT INTO receipts (receipt_number, customer_id, teller_id, total_cents, channel)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		params.ReceiptNumber, params.CustomerID, params.TellerID, params.TotalCents, params.Channel,
	).Scan(&receipt.ID, &receipt.CreatedAt)
	return receipt, err
}

// CreateSoldItemParams contains fields for one committed sale line.
type CreateSoldItemParams struct {
	ReceiptID      int64
	ProductID      string
	Qty            int32
	UnitPriceCents int64
}

// CreateSoldItem inserts one sale line under a receipt.
func (q *Queries) CreateSoldItem(ctx context.Context, params CreateSoldItemParams) (domain.SoldItem, error) {
	item := domain.SoldItem{
		ReceiptID:      params.ReceiptID,
		ProductID:      params.ProductID,
		Qty:            params.Qty,
		UnitPriceCents: params.UnitPriceCents,
	}
	err := q.db.QueryRow(ctx, `
		INSERT INTO sold_items (receipt_id, product_id, product_qty, unit_price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		params.ReceiptID, params.ProductID, params.Qty, params.UnitPriceCents,
	).Scan(&item.ID, &item.CreatedAt)
	return item, err
}

// GetReceipt fetches a receipt header by id.
func (q *Queries) GetReceipt(ctx context.Context, receiptID int64) (domain.Receipt, error) {
	var r domain.Receipt
	err := q.db.QueryRow(ctx, `
		SELECT id, receipt_number, customer_id, teller_id, total_cents, channel, created_at
		FROM receipts WHERE id = $1`, receiptID,
	).Scan(&r.ID, &r.ReceiptNumber, &r.CustomerID, &r.TellerID, &r.TotalCents, &r.Channel, &r.CreatedAt)
	return r, err
}

// ListReceipts returns all receipts, newest first.
func (q *Queries) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, receipt_number, customer_id, teller_id, total_cents, channel, created_at
		FROM receipts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	receipts := []domain.Receipt{}
	for rows.Next() {
		var r domain.Receipt
		if err := rows.Scan(&r.ID, &r.ReceiptNumber, &r.CustomerID, &r.TellerID, &r.TotalCents, &r.Channel, &r.CreatedAt); err != nil {
			return nil, err
		}
		receipts = append(receipts, r)
	}
	return receipts, rows.Err()
}

// GetSoldItemsByReceipt returns the sale lines belonging to a receipt.
func (q *Queries) GetSoldItemsByReceipt(ctx context.Context, receiptID int64) ([]domain.SoldItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, receipt_id, product_id, product_qty, unit_price_cents, created_at
		FROM sold_items WHERE receipt_id = $1 ORDER BY id`, receiptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSoldItems(rows)
}

// GetSoldItem fetches a single sale line.
func (q *Queries) GetSoldItem(ctx context.Context, soldID int64) (domain.SoldItem, error) {
	var item domain.SoldItem
	err := q.db.QueryRow(ctx, `
		SELECT id, receipt_id, product_id, product_qty, unit_price_cents, created_at
		FROM sold_items WHERE id = $1`, soldID,
	).Scan(&item.ID, &item.ReceiptID, &item.ProductID, &item.Qty, &item.UnitPriceCents, &item.CreatedAt)
	return item, err
}

// ListSoldItems returns all sale lines, newest first.
func (q *Queries) ListSoldItems(ctx context.Context) ([]domain.SoldItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, receipt_id, product_id, product_qty, unit_price_cents, created_at
		FROM sold_items ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSoldItems(rows)
}

func collectSoldItems(rows pgx.Rows) ([]domain.SoldItem, error) {
	items := []domain.SoldItem{}
	for rows.Next() {
		var item domain.SoldItem
		if err := rows.Scan(&item.ID, &item.ReceiptID, &item.ProductID, &item.Qty, &item.UnitPriceCents, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
