package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/shopinger/shopinger/internal/domain"
)

const deliveryColumns = `id, receipt_id, deliverer_id, status, created_at, updated_at`

func scanDelivery(row pgx.Row) (domain.Delivery, error) {
	var d domain.Delivery
	err := row.Scan(&d.ID, &d.ReceiptID, &d.DelivererID, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// CreateDelivery inserts a pending delivery for a receipt.
func (q *Queries) CreateDelivery(ctx context.Context, receiptID int64) (domain.Delivery, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO deliveries (receipt_id) VALUES ($1)
		RETURNING `+deliveryColumns, receiptID)
	return scanDelivery(row)
}

// GetDelivery fetches one delivery by id.
func (q *Queries) GetDelivery(ctx context.Context, deliveryID int64) (domain.Delivery, error) {
	row := q.db.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, deliveryID)
	return scanDelivery(row)
}

// GetDeliveryByReceipt fetches the delivery attached to a receipt.
func (q *Queries) GetDeliveryByReceipt(ctx context.Context, receiptID int64) (domain.Delivery, error) {
	row := q.db.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE receipt_id = $1`, receiptID)
	return scanDelivery(row)
}

// ListDeliveries returns deliveries, optionally filtered by status.
func (q *Queries) ListDeliveries(ctx context.Context, status *domain.DeliveryStatus) ([]domain.Delivery, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE $1::text IS NULL OR status = $1
		ORDER BY created_at DESC, id DESC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := []domain.Delivery{}
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

// AssignDeliverer attaches a deliverer to a delivery.
func (q *Queries) AssignDeliverer(ctx context.Context, deliveryID, delivererID int64) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE deliveries SET deliverer_id = $2, updated_at = now() WHERE id = $1`,
		deliveryID, delivererID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateDeliveryStatus writes a new status for a delivery.
func (q *Queries) UpdateDeliveryStatus(ctx context.Context, deliveryID int64, status domain.DeliveryStatus) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE deliveries SET status = $2, updated_at = now() WHERE id = $1`,
		deliveryID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
