package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"backend/internal/domain"
)

func (r *Repository) ListInvoiceChanges(ctx context.Context) ([]domain.InvoiceChange, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, invoice_id, invoice_number, change_date, reason, change_details
		FROM invoice_changes
		ORDER BY change_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query invoice changes: %w", err)
	}
	defer rows.Close()

	changes := []domain.InvoiceChange{}
	for rows.Next() {
		var c domain.InvoiceChange
		err := rows.Scan(&c.ID, &c.InvoiceID, &c.InvoiceNumber, &c.ChangeDate, &c.Reason, &c.ChangeDetails)
		if err != nil {
			return nil, fmt.Errorf("scan invoice change row: %w", err)
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read invoice change rows: %w", err)
	}
	return changes, nil
}

func (r *Repository) InsertInvoiceChange(ctx context.Context, change domain.InvoiceChange) (domain.InvoiceChange, error) {
	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO invoice_changes (id, invoice_id, invoice_number, change_date, reason, change_details)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		change.ID, change.InvoiceID, change.InvoiceNumber, change.ChangeDate, change.Reason, change.ChangeDetails)
	if err != nil {
		return domain.InvoiceChange{}, fmt.Errorf("insert invoice change: %w", err)
	}
	return change, nil
}
