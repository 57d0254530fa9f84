package service

import (
	"context"

	"github.com/google/uuid"

	"backend/internal/domain"
)

// Store is the persistence gateway the service depends on. The pgx-backed
// repository satisfies it in production; tests substitute an in-memory one.
type Store interface {
	ListGoods(ctx context.Context) ([]domain.Goods, error)
	FindGoodsByName(ctx context.Context, name string) (domain.Goods, error)
	InsertGoods(ctx context.Context, name string) (domain.Goods, error)

	ListSupplyInvoices(ctx context.Context) ([]domain.SupplyInvoice, error)
	GetSupplyInvoiceRecord(ctx context.Context, id uuid.UUID) (domain.SupplyInvoiceRecord, error)
	CreateSupplyInvoice(ctx context.Context, in domain.SupplyInvoiceInput) (domain.SupplyInvoice, error)
	UpdateSupplyInvoice(ctx context.Context, id uuid.UUID, up domain.SupplyInvoiceUpdate) (domain.SupplyInvoice, error)
	DeleteSupplyInvoice(ctx context.Context, id uuid.UUID) error

	ListReceiptInvoices(ctx context.Context) ([]domain.ReceiptInvoice, error)
	GetReceiptInvoiceRecord(ctx context.Context, id uuid.UUID) (domain.ReceiptInvoiceRecord, error)
	CreateReceiptInvoice(ctx context.Context, in domain.ReceiptInvoiceInput) (domain.ReceiptInvoice, error)
	UpdateReceiptInvoice(ctx context.Context, id uuid.UUID, up domain.ReceiptInvoiceUpdate) (domain.ReceiptInvoice, error)
	DeleteReceiptInvoice(ctx context.Context, id uuid.UUID) error

	ListInvoiceChanges(ctx context.Context) ([]domain.InvoiceChange, error)
	InsertInvoiceChange(ctx context.Context, change domain.InvoiceChange) (domain.InvoiceChange, error)

	ListBackupHistory(ctx context.Context) ([]domain.BackupHistoryEntry, error)
	InsertBackupHistoryEntry(ctx context.Context, entry domain.BackupHistoryEntry) (domain.BackupHistoryEntry, error)
	ClearAll(ctx context.Context) error
}
