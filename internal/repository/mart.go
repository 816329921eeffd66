package repository

import (
	"context"

	"github.com/shopinger/shopinger/internal/domain"
)

// GetMartLines returns a customer's cart lines in insertion order, with the
// unit price snapshotted at add time (not the current inventory price).
func (q *Queries) GetMartLines(ctx context.Context, customerID int64, cartType domain.CartType) ([]domain.LineItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT m.product_id, COALESCE(i.product_name, ''), m.unit_price_cents, m.qty
		FROM mart m
		LEFT JOIN inventory i ON i.product_id = m.product_id
		WHERE m.customer_id = $1 AND m.cart_type = $2
		ORDER BY m.created_at, m.product_id`, customerID, cartType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.LineItem{}
	for rows.Next() {
		var line domain.LineItem
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.UnitPriceCents, &line.RequestedQty); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// UpsertMartLineParams identifies and values one cart row.
type UpsertMartLineParams struct {
	CustomerID     int64
	ProductID      string
	CartType       domain.CartType
	Qty            int32
	UnitPriceCents int64
}

// UpsertMartLine writes the absolute quantity for a cart row, inserting it if
// absent. The price snapshot is fixed on insert and not overwritten on update.
func (q *Queries) UpsertMartLine(ctx context.Context, params UpsertMartLineParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO mart (customer_id, product_id, cart_type, qty, unit_price_cents)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (customer_id, product_id, cart_type)
		DO UPDATE SET qty = EXCLUDED.qty, updated_at = now()`,
		params.CustomerID, params.ProductID, params.CartType, params.Qty, params.UnitPriceCents)
	return err
}

// DeleteMartLine removes one cart row. Missing rows are not an error.
func (q *Queries) DeleteMartLine(ctx context.Context, customerID int64, productID string, cartType domain.CartType) error {
	_, err := q.db.Exec(ctx, `
		DELETE FROM mart
		WHERE customer_id = $1 AND product_id = $2 AND cart_type = $3`,
		customerID, productID, cartType)
	return err
}

// ClearMart removes all of a customer's rows for the given list type.
func (q *Queries) ClearMart(ctx context.Context, customerID int64, cartType domain.CartType) error {
	_, err := q.db.Exec(ctx, `
		DELETE FROM mart WHERE customer_id = $1 AND cart_type = $2`,
		customerID, cartType)
	return err
}
