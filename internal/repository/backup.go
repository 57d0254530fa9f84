package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"backend/internal/domain"
)

func (r *Repository) ListBackupHistory(ctx context.Context) ([]domain.BackupHistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, type, timestamp, filename
		FROM backup_history
		ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("query backup history: %w", err)
	}
	defer rows.Close()

	entries := []domain.BackupHistoryEntry{}
	for rows.Next() {
		var e domain.BackupHistoryEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.Timestamp, &e.Filename); err != nil {
			return nil, fmt.Errorf("scan backup history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read backup history rows: %w", err)
	}
	return entries, nil
}

func (r *Repository) InsertBackupHistoryEntry(ctx context.Context, entry domain.BackupHistoryEntry) (domain.BackupHistoryEntry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO backup_history (id, type, timestamp, filename)
		VALUES ($1, $2, $3, $4)`,
		entry.ID, entry.Type, entry.Timestamp, entry.Filename)
	if err != nil {
		return domain.BackupHistoryEntry{}, fmt.Errorf("insert backup history entry: %w", err)
	}
	return entry, nil
}

// ClearAll wipes the operational tables in one transaction. Backup history
// survives a clear so the restore trail stays intact.
func (r *Repository) ClearAll(ctx context.Context) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"supply_invoice_items",
		"receipt_invoice_items",
		"supply_invoices",
		"receipt_invoices",
		"invoice_changes",
		"goods",
	}
	for _, table := range tables {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}
