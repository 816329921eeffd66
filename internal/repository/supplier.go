package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/shopinger/shopinger/internal/domain"
)

const supplierColumns = `
	id, name, COALESCE(contact_email, ''), COALESCE(phone, ''), COALESCE(address, ''),
	created_at, updated_at`

func scanSupplier(row pgx.Row) (domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.ContactEmail, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// GetSupplier fetches one supplier by id.
func (q *Queries) GetSupplier(ctx context.Context, supplierID int64) (domain.Supplier, error) {
	row := q.db.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, supplierID)
	return scanSupplier(row)
}

// ListSuppliers returns all suppliers ordered by name.
func (q *Queries) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := q.db.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suppliers := []domain.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

// SupplierParams contains supplier fields for create and update.
type SupplierParams struct {
	Name         string
	ContactEmail string
	Phone        string
	Address      string
}

// CreateSupplier inserts a supplier and returns the stored record.
func (q *Queries) CreateSupplier(ctx context.Context, params SupplierParams) (domain.Supplier, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO suppliers (name, contact_email, phone, address)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''))
		RETURNING `+supplierColumns,
		params.Name, params.ContactEmail, params.Phone, params.Address)
	return scanSupplier(row)
}

// UpdateSupplier updates a supplier's fields.
func (q *Queries) UpdateSupplier(ctx context.Context, supplierID int64, params SupplierParams) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE suppliers SET
			name = $2,
			contact_email = NULLIF($3, ''),
			phone = NULLIF($4, ''),
			address = NULLIF($5, ''),
			updated_at = now()
		WHERE id = $1`,
		supplierID, params.Name, params.ContactEmail, params.Phone, params.Address)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteSupplier removes a supplier; inventory references become NULL.
func (q *Queries) DeleteSupplier(ctx context.Context, supplierID int64) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, supplierID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
