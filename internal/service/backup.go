package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"backend/internal/domain"
)

// BackupPayload is the full-database export document. It is also the only
// accepted restore format.
type BackupPayload struct {
	Goods           []domain.Goods          `json:"goods"`
	SupplyInvoices  []domain.SupplyInvoice  `json:"supplyInvoices"`
	ReceiptInvoices []domain.ReceiptInvoice `json:"receiptInvoices"`
	InvoiceChanges  []domain.InvoiceChange  `json:"invoiceChanges"`
	ExportDate      time.Time               `json:"exportDate"`
}

// ImportSummary reports how many records a restore wrote per collection.
type ImportSummary struct {
	Goods           int `json:"goods"`
	SupplyInvoices  int `json:"supplyInvoices"`
	ReceiptInvoices int `json:"receiptInvoices"`
	InvoiceChanges  int `json:"invoiceChanges"`
}

func (s *Service) ExportAllData(ctx context.Context) (BackupPayload, error) {
	goods, err := s.store.ListGoods(ctx)
	if err != nil {
		return BackupPayload{}, err
	}
	supplies, err := s.store.ListSupplyInvoices(ctx)
	if err != nil {
		return BackupPayload{}, err
	}
	receipts, err := s.store.ListReceiptInvoices(ctx)
	if err != nil {
		return BackupPayload{}, err
	}
	changes, err := s.store.ListInvoiceChanges(ctx)
	if err != nil {
		return BackupPayload{}, err
	}

	now := s.now()
	payload := BackupPayload{
		Goods:           goods,
		SupplyInvoices:  supplies,
		ReceiptInvoices: receipts,
		InvoiceChanges:  changes,
		ExportDate:      now,
	}
	s.recordBackupEvent(ctx, "backup", backupFilename(now))
	return payload, nil
}

// ImportAllData restores a previously exported payload. Records are written
// through the normal create paths, so every row gets a fresh id; the
// supplyInvoiceId stored on receipts is kept verbatim from the payload.
// With replace set, all operational data is wiped first. Backup history is
// never wiped.
func (s *Service) ImportAllData(ctx context.Context, raw []byte, replace bool) (ImportSummary, error) {
	var payload BackupPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ImportSummary{}, fmt.Errorf("%w: malformed backup payload: %v", ErrInvalid, err)
	}

	if replace {
		if err := s.store.ClearAll(ctx); err != nil {
			return ImportSummary{}, err
		}
	}

	summary := ImportSummary{}

	for _, g := range payload.Goods {
		if _, err := s.EnsureGoods(ctx, g.Name); err != nil {
			return summary, fmt.Errorf("import goods %q: %w", g.Name, err)
		}
		summary.Goods++
	}

	for _, supply := range payload.SupplyInvoices {
		in := domain.SupplyInvoiceInput{
			Date:          supply.Date,
			InvoiceNumber: supply.InvoiceNumber,
			JobWorker:     optionalText(supply.JobWorker),
			Narration:     supply.Narration,
		}
		for _, item := range supply.Items {
			in.Items = append(in.Items, domain.SupplyItemInput{
				GoodsName: item.GoodsName,
				Quantity:  item.Quantity,
			})
		}
		if _, err := s.store.CreateSupplyInvoice(ctx, in); err != nil {
			return summary, fmt.Errorf("import supply invoice %q: %w", supply.InvoiceNumber, err)
		}
		summary.SupplyInvoices++
	}

	for _, receipt := range payload.ReceiptInvoices {
		in := domain.ReceiptInvoiceInput{
			Date:                 receipt.Date,
			ReceiptInvoiceNumber: receipt.ReceiptInvoiceNumber,
			SupplyInvoiceID:      receipt.SupplyInvoiceID,
			SupplyInvoiceNumber:  receipt.SupplyInvoiceNumber,
			JobWorker:            optionalText(receipt.JobWorker),
			Narration:            receipt.Narration,
		}
		for _, item := range receipt.Items {
			in.Items = append(in.Items, domain.ReceiptItemInput{
				GoodsName:        item.GoodsName,
				FinishedQuantity: item.FinishedQuantity,
				DamagedQuantity:  item.DamagedQuantity,
				Attributes:       item.Attributes,
			})
		}
		if _, err := s.store.CreateReceiptInvoice(ctx, in); err != nil {
			return summary, fmt.Errorf("import receipt invoice %q: %w", receipt.ReceiptInvoiceNumber, err)
		}
		summary.ReceiptInvoices++
	}

	for _, change := range payload.InvoiceChanges {
		change.ID = uuid.Nil
		if _, err := s.store.InsertInvoiceChange(ctx, change); err != nil {
			s.log.Warn().Err(err).Str("invoice_number", change.InvoiceNumber).Msg("import invoice change")
			continue
		}
		summary.InvoiceChanges++
	}

	s.recordBackupEvent(ctx, "restore", backupFilename(s.now()))
	return summary, nil
}

func (s *Service) ListBackupHistory(ctx context.Context) ([]domain.BackupHistoryEntry, error) {
	return s.store.ListBackupHistory(ctx)
}

// ClearAllData wipes the operational tables and leaves backup history.
func (s *Service) ClearAllData(ctx context.Context) error {
	return s.store.ClearAll(ctx)
}

func (s *Service) recordBackupEvent(ctx context.Context, eventType, filename string) {
	_, err := s.store.InsertBackupHistoryEntry(ctx, domain.BackupHistoryEntry{
		Type:      eventType,
		Timestamp: s.now(),
		Filename:  filename,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("type", eventType).Msg("record backup event")
	}
}

func backupFilename(t time.Time) string {
	return "inventory-backup-" + t.Format("20060102-150405") + ".json"
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
