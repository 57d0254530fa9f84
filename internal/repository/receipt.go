package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"backend/internal/domain"
)

func (r *Repository) ListReceiptInvoices(ctx context.Context) ([]domain.ReceiptInvoice, error) {
	records, err := r.listReceiptRecords(ctx)
	if err != nil {
		return nil, err
	}
	invoices := []domain.ReceiptInvoice{}
	for _, rec := range records {
		invoices = append(invoices, domain.ReceiptInvoiceFromRecord(rec))
	}
	return invoices, nil
}

func (r *Repository) listReceiptRecords(ctx context.Context) ([]domain.ReceiptInvoiceRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, date, invoice_number, supply_invoice_id, supply_invoice_number, job_worker, narration, created_at
		FROM receipt_invoices
		ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query receipt invoices: %w", err)
	}
	defer rows.Close()

	records := []domain.ReceiptInvoiceRecord{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		rec, err := scanReceiptHeader(rows)
		if err != nil {
			return nil, err
		}
		index[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read receipt invoice rows: %w", err)
	}
	if len(records) == 0 {
		return records, nil
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT id, receipt_invoice_id, goods_name, finished_quantity, damaged_quantity, attributes
		FROM receipt_invoice_items
		ORDER BY receipt_invoice_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query receipt invoice items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			item      domain.ReceiptItemRecord
			invoiceID uuid.UUID
		)
		err := itemRows.Scan(&item.ID, &invoiceID, &item.GoodsName,
			&item.FinishedQuantity, &item.DamagedQuantity, &item.Attributes)
		if err != nil {
			return nil, fmt.Errorf("scan receipt item row: %w", err)
		}
		if i, ok := index[invoiceID]; ok {
			records[i].Items = append(records[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("read receipt item rows: %w", err)
	}
	return records, nil
}

func (r *Repository) GetReceiptInvoiceRecord(ctx context.Context, id uuid.UUID) (domain.ReceiptInvoiceRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, date, invoice_number, supply_invoice_id, supply_invoice_number, job_worker, narration, created_at
		FROM receipt_invoices
		WHERE id = $1`, id)
	rec, err := scanReceiptHeader(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ReceiptInvoiceRecord{}, ErrNotFound
	}
	if err != nil {
		return domain.ReceiptInvoiceRecord{}, err
	}

	items, err := r.receiptItems(ctx, id)
	if err != nil {
		return domain.ReceiptInvoiceRecord{}, err
	}
	rec.Items = items
	return rec, nil
}

func (r *Repository) receiptItems(ctx context.Context, invoiceID uuid.UUID) ([]domain.ReceiptItemRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, goods_name, finished_quantity, damaged_quantity, attributes
		FROM receipt_invoice_items
		WHERE receipt_invoice_id = $1
		ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("query receipt items: %w", err)
	}
	defer rows.Close()

	items := []domain.ReceiptItemRecord{}
	for rows.Next() {
		var item domain.ReceiptItemRecord
		err := rows.Scan(&item.ID, &item.GoodsName,
			&item.FinishedQuantity, &item.DamagedQuantity, &item.Attributes)
		if err != nil {
			return nil, fmt.Errorf("scan receipt item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read receipt item rows: %w", err)
	}
	return items, nil
}

func (r *Repository) CreateReceiptInvoice(ctx context.Context, in domain.ReceiptInvoiceInput) (domain.ReceiptInvoice, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.ReceiptInvoice{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rec := domain.ReceiptInvoiceRecord{
		ID:                   uuid.New(),
		Date:                 in.Date,
		ReceiptInvoiceNumber: in.ReceiptInvoiceNumber,
		SupplyInvoiceID:      in.SupplyInvoiceID,
		SupplyInvoiceNumber:  in.SupplyInvoiceNumber,
		JobWorker:            normalizeText(in.JobWorker),
		Narration:            nullableText(in.Narration),
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO receipt_invoices
			(id, date, invoice_number, supply_invoice_id, supply_invoice_number, job_worker, narration)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		rec.ID, rec.Date, rec.ReceiptInvoiceNumber, rec.SupplyInvoiceID,
		rec.SupplyInvoiceNumber, rec.JobWorker, rec.Narration,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return domain.ReceiptInvoice{}, fmt.Errorf("insert receipt invoice: %w", err)
	}

	rec.Items, err = insertReceiptItems(ctx, tx, rec.ID, in.Items)
	if err != nil {
		return domain.ReceiptInvoice{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ReceiptInvoice{}, fmt.Errorf("commit receipt invoice: %w", err)
	}
	return domain.ReceiptInvoiceFromRecord(rec), nil
}

func (r *Repository) UpdateReceiptInvoice(ctx context.Context, id uuid.UUID, up domain.ReceiptInvoiceUpdate) (domain.ReceiptInvoice, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.ReceiptInvoice{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		SELECT id, date, invoice_number, supply_invoice_id, supply_invoice_number, job_worker, narration, created_at
		FROM receipt_invoices
		WHERE id = $1
		FOR UPDATE`, id)
	rec, err := scanReceiptHeader(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ReceiptInvoice{}, ErrNotFound
	}
	if err != nil {
		return domain.ReceiptInvoice{}, err
	}

	if up.Date != nil {
		rec.Date = *up.Date
	}
	if up.ReceiptInvoiceNumber != nil {
		rec.ReceiptInvoiceNumber = *up.ReceiptInvoiceNumber
	}
	if up.SupplyInvoiceID != nil {
		rec.SupplyInvoiceID = *up.SupplyInvoiceID
	}
	if up.SupplyInvoiceNumber != nil {
		rec.SupplyInvoiceNumber = *up.SupplyInvoiceNumber
	}
	if up.JobWorker != nil {
		rec.JobWorker = nullableText(*up.JobWorker)
	}
	if up.Narration != nil {
		rec.Narration = nullableText(*up.Narration)
	}

	_, err = tx.Exec(ctx, `
		UPDATE receipt_invoices
		SET date = $2, invoice_number = $3, supply_invoice_id = $4,
			supply_invoice_number = $5, job_worker = $6, narration = $7
		WHERE id = $1`,
		rec.ID, rec.Date, rec.ReceiptInvoiceNumber, rec.SupplyInvoiceID,
		rec.SupplyInvoiceNumber, rec.JobWorker, rec.Narration)
	if err != nil {
		return domain.ReceiptInvoice{}, fmt.Errorf("update receipt invoice: %w", err)
	}

	if up.Items != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM receipt_invoice_items WHERE receipt_invoice_id = $1`, id); err != nil {
			return domain.ReceiptInvoice{}, fmt.Errorf("delete receipt items: %w", err)
		}
		rec.Items, err = insertReceiptItems(ctx, tx, id, up.Items)
		if err != nil {
			return domain.ReceiptInvoice{}, err
		}
	} else {
		rec.Items, err = r.receiptItems(ctx, id)
		if err != nil {
			return domain.ReceiptInvoice{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ReceiptInvoice{}, fmt.Errorf("commit receipt invoice update: %w", err)
	}
	return domain.ReceiptInvoiceFromRecord(rec), nil
}

func (r *Repository) DeleteReceiptInvoice(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM receipt_invoice_items WHERE receipt_invoice_id = $1`, id); err != nil {
		return fmt.Errorf("delete receipt items: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM receipt_invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete receipt invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit receipt invoice delete: %w", err)
	}
	return nil
}

func insertReceiptItems(ctx context.Context, tx pgx.Tx, invoiceID uuid.UUID, inputs []domain.ReceiptItemInput) ([]domain.ReceiptItemRecord, error) {
	items := []domain.ReceiptItemRecord{}
	for i, in := range inputs {
		attrs := in.Attributes
		if attrs == nil {
			attrs = []string{}
		}
		item := domain.ReceiptItemRecord{
			ID:               uuid.New(),
			GoodsName:        in.GoodsName,
			FinishedQuantity: in.FinishedQuantity,
			DamagedQuantity:  in.DamagedQuantity,
			Attributes:       attrs,
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO receipt_invoice_items
				(id, receipt_invoice_id, goods_name, finished_quantity, damaged_quantity, attributes, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, invoiceID, item.GoodsName, item.FinishedQuantity, item.DamagedQuantity, item.Attributes, i)
		if err != nil {
			return nil, fmt.Errorf("insert receipt item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func scanReceiptHeader(row pgx.Row) (domain.ReceiptInvoiceRecord, error) {
	var (
		rec       domain.ReceiptInvoiceRecord
		jobWorker sql.NullString
		narration sql.NullString
	)
	err := row.Scan(&rec.ID, &rec.Date, &rec.ReceiptInvoiceNumber,
		&rec.SupplyInvoiceID, &rec.SupplyInvoiceNumber, &jobWorker, &narration, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ReceiptInvoiceRecord{}, err
		}
		return domain.ReceiptInvoiceRecord{}, fmt.Errorf("scan receipt invoice row: %w", err)
	}
	if jobWorker.Valid {
		rec.JobWorker = &jobWorker.String
	}
	if narration.Valid {
		rec.Narration = &narration.String
	}
	return rec, nil
}

func normalizeText(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
