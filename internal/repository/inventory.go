package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shopinger/shopinger/internal/domain"
)

// ErrNotEnoughStock is returned by DecrementInventoryIfAvailable when the
// conditional update matches no row: either the product is missing or the
// remaining quantity is below the requested decrement.
var ErrNotEnoughStock = errors.New("not enough stock")

const inventoryColumns = `
	i.product_id, i.product_name, i.product_qty, i.unit_price_cents,
	COALESCE(i.description, ''), COALESCE(i.specification, ''),
	i.supplier_id, COALESCE(s.name, ''), i.created_at, i.updated_at`

func scanInventoryItem(row pgx.Row) (domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := row.Scan(
		&item.ProductID, &item.Name, &item.QuantityOnHand, &item.UnitPriceCents,
		&item.Description, &item.Specification,
		&item.SupplierID, &item.SupplierName, &item.CreatedAt, &item.UpdatedAt,
	)
	return item, err
}

// GetInventoryItem fetches a single product with its supplier name.
func (q *Queries) GetInventoryItem(ctx context.Context, productID string) (domain.InventoryItem, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory i
		LEFT JOIN suppliers s ON s.id = i.supplier_id
		WHERE i.product_id = $1`, productID)
	return scanInventoryItem(row)
}

// ListInventory returns all products ordered by name.
func (q *Queries) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory i
		LEFT JOIN suppliers s ON s.id = i.supplier_id
		ORDER BY i.product_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInventoryItems(rows)
}

// SearchInventory returns products whose name contains term, case-insensitive.
func (q *Queries) SearchInventory(ctx context.Context, term string) ([]domain.InventoryItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory i
		LEFT JOIN suppliers s ON s.id = i.supplier_id
		WHERE i.product_name ILIKE '%' || $1 || '%'
		ORDER BY i.product_name`, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInventoryItems(rows)
}

func collectInventoryItems(rows pgx.Rows) ([]domain.InventoryItem, error) {
	items := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CreateInventoryItemParams contains fields for inserting an inventory row.
type CreateInventoryItemParams struct {
	ProductID      string
	Name           string
	QuantityOnHand int32
	UnitPriceCents int64
	Description    string
	Specification  string
	SupplierID     *int64
}

// CreateInventoryItem inserts a new product.
func (q *Queries) CreateInventoryItem(ctx context.Context, params CreateInventoryItemParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO inventory (product_id, product_name, product_qty, unit_price_cents, description, specification, supplier_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)`,
		params.ProductID, params.Name, params.QuantityOnHand, params.UnitPriceCents,
		params.Description, params.Specification, params.SupplierID)
	return err
}

// UpdateInventoryItemParams contains mutable product fields. Nil pointers
// leave the stored value unchanged.
type UpdateInventoryItemParams struct {
	Name           *string
	UnitPriceCents *int64
	Description    *string
	Specification  *string
	SupplierID     *int64
}

// UpdateInventoryItem updates product metadata. Stock quantity is excluded;
// it only changes through the conditional decrement/increment queries.
func (q *Queries) UpdateInventoryItem(ctx context.Context, productID string, params UpdateInventoryItemParams) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE inventory SET
			product_name = COALESCE($2, product_name),
			unit_price_cents = COALESCE($3, unit_price_cents),
			description = COALESCE($4, description),
			specification = COALESCE($5, specification),
			supplier_id = COALESCE($6, supplier_id),
			updated_at = now()
		WHERE product_id = $1`,
		productID, params.Name, params.UnitPriceCents, params.Description, params.Specification, params.SupplierID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteInventoryItem removes a product.
func (q *Queries) DeleteInventoryItem(ctx context.Context, productID string) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM inventory WHERE product_id = $1`, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DecrementInventoryIfAvailable atomically decrements stock, failing with
// ErrNotEnoughStock when the row no longer holds the requested quantity.
// This conditional form is what prevents overselling under concurrent commits.
func (q *Queries) DecrementInventoryIfAvailable(ctx context.Context, productID string, qty int32) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE inventory
		SET product_qty = product_qty - $2, updated_at = now()
		WHERE product_id = $1 AND product_qty >= $2`, productID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotEnoughStock
	}
	return nil
}

// IncrementInventory adds stock (restock, delivery intake).
func (q *Queries) IncrementInventory(ctx context.Context, productID string, qty int32) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE inventory
		SET product_qty = product_qty + $2, updated_at = now()
		WHERE product_id = $1`, productID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
