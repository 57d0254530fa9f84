package domain

import (
	"time"

	"github.com/google/uuid"
)

type Goods struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type SupplyItem struct {
	ID        uuid.UUID `json:"id"`
	GoodsName string    `json:"goodsName"`
	Quantity  float64   `json:"quantity"`
}

type SupplyInvoice struct {
	ID            uuid.UUID    `json:"id"`
	Date          time.Time    `json:"date"`
	InvoiceNumber string       `json:"invoiceNumber"`
	JobWorker     string       `json:"jobWorker,omitempty"`
	Narration     string       `json:"narration"`
	Items         []SupplyItem `json:"items"`
	CreatedAt     time.Time    `json:"createdAt"`
}

type ReceiptItem struct {
	ID               uuid.UUID `json:"id"`
	GoodsName        string    `json:"goodsName"`
	FinishedQuantity float64   `json:"finishedQuantity"`
	DamagedQuantity  float64   `json:"damagedQuantity"`
	Attributes       []string  `json:"attributes"`
}

type ReceiptInvoice struct {
	ID                   uuid.UUID     `json:"id"`
	Date                 time.Time     `json:"date"`
	ReceiptInvoiceNumber string        `json:"receiptInvoiceNumber"`
	SupplyInvoiceID      uuid.UUID     `json:"supplyInvoiceId"`
	SupplyInvoiceNumber  string        `json:"supplyInvoiceNumber"`
	JobWorker            string        `json:"jobWorker,omitempty"`
	Narration            string        `json:"narration"`
	Items                []ReceiptItem `json:"items"`
	CreatedAt            time.Time     `json:"createdAt"`
}

// InvoiceChange is one append-only audit entry. InvoiceID is a weak
// back-reference: the invoice it points at may have been deleted since.
type InvoiceChange struct {
	ID            uuid.UUID `json:"id"`
	InvoiceID     uuid.UUID `json:"invoiceId"`
	InvoiceNumber string    `json:"invoiceNumber"`
	ChangeDate    time.Time `json:"changeDate"`
	Reason        string    `json:"reason"`
	ChangeDetails string    `json:"changeDetails"`
}

// ChangeEntry is one field-level difference inside InvoiceChange.ChangeDetails,
// which stores a JSON-encoded []ChangeEntry.
type ChangeEntry struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

type BackupHistoryEntry struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"` // "backup" or "restore"
	Timestamp time.Time `json:"timestamp"`
	Filename  string    `json:"filename"`
}
