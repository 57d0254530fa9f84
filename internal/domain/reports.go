package domain

import (
	"time"

	"github.com/google/uuid"
)

// DynamicSupplyRecord is one supply invoice reconciled against every receipt
// that references it, regardless of the receipt's own date.
type DynamicSupplyRecord struct {
	ID            uuid.UUID        `json:"id"`
	Date          time.Time        `json:"date"`
	InvoiceNumber string           `json:"invoiceNumber"`
	OriginalQty   float64          `json:"originalQty"`
	ReceivedQty   float64          `json:"receivedQty"`
	RemainingQty  float64          `json:"remainingQty"`
	Items         []SupplyItem     `json:"items"`
	Receipts      []ReceiptInvoice `json:"receipts"`
}

type AttributeDetail struct {
	GoodsName        string  `json:"goodsName"`
	FinishedQuantity float64 `json:"finishedQuantity"`
	DamagedQuantity  float64 `json:"damagedQuantity"`
}

// AttributeRow groups receipt line items by (date, receipt number). Totals
// and Details are keyed by attribute category and cover finished quantities
// only; damaged quantities appear in the drill-down detail.
type AttributeRow struct {
	Date                 time.Time                    `json:"date"`
	ReceiptInvoiceNumber string                       `json:"receiptInvoiceNumber"`
	SupplyInvoiceNumber  string                       `json:"supplyInvoiceNumber"`
	Totals               map[string]float64           `json:"totals"`
	Details              map[string][]AttributeDetail `json:"details"`
}

type GoodsSupplyEntry struct {
	Date          time.Time `json:"date"`
	InvoiceNumber string    `json:"invoiceNumber"`
	Quantity      float64   `json:"quantity"`
}

type GoodsReceiptEntry struct {
	Date          time.Time `json:"date"`
	ReceiptNumber string    `json:"receiptNumber"`
	Finished      float64   `json:"finished"`
	Damaged       float64   `json:"damaged"`
}

// GoodsRow is the stock position of one goods name over an activity window.
// StockWithJobWorker is deliberately not floored at zero: negative stock is
// the visible signal of over-receipt or a data entry error.
type GoodsRow struct {
	Name               string              `json:"name"`
	SuppliedQty        float64             `json:"suppliedQty"`
	FinishedQty        float64             `json:"finishedQty"`
	DamagedQty         float64             `json:"damagedQty"`
	ReceivedQty        float64             `json:"receivedQty"`
	StockWithJobWorker float64             `json:"stockWithJobWorker"`
	Supplies           []GoodsSupplyEntry  `json:"supplies"`
	Receipts           []GoodsReceiptEntry `json:"receipts"`
}
