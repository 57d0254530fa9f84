package domain

import (
	"time"

	"github.com/google/uuid"
)

// Storage-shape records. The store keeps nullable header fields and hands
// them back exactly as persisted; the domain shapes above apply defaults.
// The diff engine compares a stored record against a proposed update, so it
// works on these types, never on the mapped domain shapes.

type SupplyItemRecord struct {
	ID        uuid.UUID
	GoodsName string
	Quantity  float64
}

type SupplyInvoiceRecord struct {
	ID            uuid.UUID
	Date          time.Time
	InvoiceNumber string
	JobWorker     *string
	Narration     *string
	Items         []SupplyItemRecord
	CreatedAt     time.Time
}

type ReceiptItemRecord struct {
	ID               uuid.UUID
	GoodsName        string
	FinishedQuantity float64
	DamagedQuantity  float64
	Attributes       []string
}

type ReceiptInvoiceRecord struct {
	ID                   uuid.UUID
	Date                 time.Time
	ReceiptInvoiceNumber string
	SupplyInvoiceID      uuid.UUID
	SupplyInvoiceNumber  string
	JobWorker            *string
	Narration            *string
	Items                []ReceiptItemRecord
	CreatedAt            time.Time
}

func SupplyInvoiceFromRecord(rec SupplyInvoiceRecord) SupplyInvoice {
	items := make([]SupplyItem, 0, len(rec.Items))
	for _, item := range rec.Items {
		items = append(items, SupplyItem{
			ID:        item.ID,
			GoodsName: item.GoodsName,
			Quantity:  item.Quantity,
		})
	}
	return SupplyInvoice{
		ID:            rec.ID,
		Date:          rec.Date,
		InvoiceNumber: rec.InvoiceNumber,
		JobWorker:     stringValue(rec.JobWorker),
		Narration:     stringValue(rec.Narration),
		Items:         items,
		CreatedAt:     rec.CreatedAt,
	}
}

func ReceiptInvoiceFromRecord(rec ReceiptInvoiceRecord) ReceiptInvoice {
	items := make([]ReceiptItem, 0, len(rec.Items))
	for _, item := range rec.Items {
		attrs := item.Attributes
		if attrs == nil {
			attrs = []string{}
		}
		items = append(items, ReceiptItem{
			ID:               item.ID,
			GoodsName:        item.GoodsName,
			FinishedQuantity: item.FinishedQuantity,
			DamagedQuantity:  item.DamagedQuantity,
			Attributes:       attrs,
		})
	}
	return ReceiptInvoice{
		ID:                   rec.ID,
		Date:                 rec.Date,
		ReceiptInvoiceNumber: rec.ReceiptInvoiceNumber,
		SupplyInvoiceID:      rec.SupplyInvoiceID,
		SupplyInvoiceNumber:  rec.SupplyInvoiceNumber,
		JobWorker:            stringValue(rec.JobWorker),
		Narration:            stringValue(rec.Narration),
		Items:                items,
		CreatedAt:            rec.CreatedAt,
	}
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
