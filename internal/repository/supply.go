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

func (r *Repository) ListSupplyInvoices(ctx context.Context) ([]domain.SupplyInvoice, error) {
	records, err := r.listSupplyRecords(ctx)
	if err != nil {
		return nil, err
	}
	invoices := []domain.SupplyInvoice{}
	for _, rec := range records {
		invoices = append(invoices, domain.SupplyInvoiceFromRecord(rec))
	}
	return invoices, nil
}

func (r *Repository) listSupplyRecords(ctx context.Context) ([]domain.SupplyInvoiceRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, date, invoice_number, job_worker, narration, created_at
		FROM supply_invoices
		ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query supply invoices: %w", err)
	}
	defer rows.Close()

	records := []domain.SupplyInvoiceRecord{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		rec, err := scanSupplyHeader(rows)
		if err != nil {
			return nil, err
		}
		index[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read supply invoice rows: %w", err)
	}
	if len(records) == 0 {
		return records, nil
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT id, supply_invoice_id, goods_name, quantity
		FROM supply_invoice_items
		ORDER BY supply_invoice_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query supply invoice items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			item      domain.SupplyItemRecord
			invoiceID uuid.UUID
		)
		if err := itemRows.Scan(&item.ID, &invoiceID, &item.GoodsName, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan supply item row: %w", err)
		}
		if i, ok := index[invoiceID]; ok {
			records[i].Items = append(records[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("read supply item rows: %w", err)
	}
	return records, nil
}

func (r *Repository) GetSupplyInvoiceRecord(ctx context.Context, id uuid.UUID) (domain.SupplyInvoiceRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, date, invoice_number, job_worker, narration, created_at
		FROM supply_invoices
		WHERE id = $1`, id)
	rec, err := scanSupplyHeader(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SupplyInvoiceRecord{}, ErrNotFound
	}
	if err != nil {
		return domain.SupplyInvoiceRecord{}, err
	}

	items, err := r.supplyItems(ctx, id)
	if err != nil {
		return domain.SupplyInvoiceRecord{}, err
	}
	rec.Items = items
	return rec, nil
}

func (r *Repository) supplyItems(ctx context.Context, invoiceID uuid.UUID) ([]domain.SupplyItemRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, goods_name, quantity
		FROM supply_invoice_items
		WHERE supply_invoice_id = $1
		ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("query supply items: %w", err)
	}
	defer rows.Close()

	items := []domain.SupplyItemRecord{}
	for rows.Next() {
		var item domain.SupplyItemRecord
		if err := rows.Scan(&item.ID, &item.GoodsName, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan supply item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read supply item rows: %w", err)
	}
	return items, nil
}

func (r *Repository) CreateSupplyInvoice(ctx context.Context, in domain.SupplyInvoiceInput) (domain.SupplyInvoice, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.SupplyInvoice{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rec := domain.SupplyInvoiceRecord{
		ID:            uuid.New(),
		Date:          in.Date,
		InvoiceNumber: in.InvoiceNumber,
		JobWorker:     normalizeText(in.JobWorker),
		Narration:     nullableText(in.Narration),
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO supply_invoices (id, date, invoice_number, job_worker, narration)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		rec.ID, rec.Date, rec.InvoiceNumber, rec.JobWorker, rec.Narration,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return domain.SupplyInvoice{}, fmt.Errorf("insert supply invoice: %w", err)
	}

	rec.Items, err = insertSupplyItems(ctx, tx, rec.ID, in.Items)
	if err != nil {
		return domain.SupplyInvoice{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.SupplyInvoice{}, fmt.Errorf("commit supply invoice: %w", err)
	}
	return domain.SupplyInvoiceFromRecord(rec), nil
}

func (r *Repository) UpdateSupplyInvoice(ctx context.Context, id uuid.UUID, up domain.SupplyInvoiceUpdate) (domain.SupplyInvoice, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.SupplyInvoice{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		SELECT id, date, invoice_number, job_worker, narration, created_at
		FROM supply_invoices
		WHERE id = $1
		FOR UPDATE`, id)
	rec, err := scanSupplyHeader(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SupplyInvoice{}, ErrNotFound
	}
	if err != nil {
		return domain.SupplyInvoice{}, err
	}

	if up.Date != nil {
		rec.Date = *up.Date
	}
	if up.InvoiceNumber != nil {
		rec.InvoiceNumber = *up.InvoiceNumber
	}
	if up.JobWorker != nil {
		rec.JobWorker = nullableText(*up.JobWorker)
	}
	if up.Narration != nil {
		rec.Narration = nullableText(*up.Narration)
	}

	_, err = tx.Exec(ctx, `
		UPDATE supply_invoices
		SET date = $2, invoice_number = $3, job_worker = $4, narration = $5
		WHERE id = $1`,
		rec.ID, rec.Date, rec.InvoiceNumber, rec.JobWorker, rec.Narration)
	if err != nil {
		return domain.SupplyInvoice{}, fmt.Errorf("update supply invoice: %w", err)
	}

	if up.Items != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM supply_invoice_items WHERE supply_invoice_id = $1`, id); err != nil {
			return domain.SupplyInvoice{}, fmt.Errorf("delete supply items: %w", err)
		}
		rec.Items, err = insertSupplyItems(ctx, tx, id, up.Items)
		if err != nil {
			return domain.SupplyInvoice{}, err
		}
	} else {
		rec.Items, err = r.supplyItems(ctx, id)
		if err != nil {
			return domain.SupplyInvoice{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.SupplyInvoice{}, fmt.Errorf("commit supply invoice update: %w", err)
	}
	return domain.SupplyInvoiceFromRecord(rec), nil
}

func (r *Repository) DeleteSupplyInvoice(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM supply_invoice_items WHERE supply_invoice_id = $1`, id); err != nil {
		return fmt.Errorf("delete supply items: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM supply_invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supply invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit supply invoice delete: %w", err)
	}
	return nil
}

func insertSupplyItems(ctx context.Context, tx pgx.Tx, invoiceID uuid.UUID, inputs []domain.SupplyItemInput) ([]domain.SupplyItemRecord, error) {
	items := []domain.SupplyItemRecord{}
	for i, in := range inputs {
		item := domain.SupplyItemRecord{
			ID:        uuid.New(),
			GoodsName: in.GoodsName,
			Quantity:  in.Quantity,
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO supply_invoice_items (id, supply_invoice_id, goods_name, quantity, position)
			VALUES ($1, $2, $3, $4, $5)`,
			item.ID, invoiceID, item.GoodsName, item.Quantity, i)
		if err != nil {
			return nil, fmt.Errorf("insert supply item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func scanSupplyHeader(row pgx.Row) (domain.SupplyInvoiceRecord, error) {
	var (
		rec       domain.SupplyInvoiceRecord
		jobWorker sql.NullString
		narration sql.NullString
	)
	err := row.Scan(&rec.ID, &rec.Date, &rec.InvoiceNumber, &jobWorker, &narration, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SupplyInvoiceRecord{}, err
		}
		return domain.SupplyInvoiceRecord{}, fmt.Errorf("scan supply invoice row: %w", err)
	}
	if jobWorker.Valid {
		rec.JobWorker = &jobWorker.String
	}
	if narration.Valid {
		rec.Narration = &narration.String
	}
	return rec, nil
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
