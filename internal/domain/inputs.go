package domain

import (
	"time"

	"github.com/google/uuid"
)

type SupplyItemInput struct {
	GoodsName string  `json:"goodsName"`
	Quantity  float64 `json:"quantity"`
}

type SupplyInvoiceInput struct {
	Date          time.Time         `json:"date"`
	InvoiceNumber string            `json:"invoiceNumber"`
	JobWorker     *string           `json:"jobWorker"`
	Narration     string            `json:"narration"`
	Items         []SupplyItemInput `json:"items"`
}

type ReceiptItemInput struct {
	GoodsName        string   `json:"goodsName"`
	FinishedQuantity float64  `json:"finishedQuantity"`
	DamagedQuantity  float64  `json:"damagedQuantity"`
	Attributes       []string `json:"attributes"`
}

type ReceiptInvoiceInput struct {
	Date                 time.Time          `json:"date"`
	ReceiptInvoiceNumber string             `json:"receiptInvoiceNumber"`
	SupplyInvoiceID      uuid.UUID          `json:"supplyInvoiceId"`
	SupplyInvoiceNumber  string             `json:"supplyInvoiceNumber"`
	JobWorker            *string            `json:"jobWorker"`
	Narration            string             `json:"narration"`
	Items                []ReceiptItemInput `json:"items"`
}

// Update shapes are partial: a nil field is "not changing" and is neither
// diffed nor written. A nil Items slice leaves the stored items untouched;
// a non-nil slice replaces them wholesale.

type SupplyInvoiceUpdate struct {
	Date          *time.Time        `json:"date"`
	InvoiceNumber *string           `json:"invoiceNumber"`
	JobWorker     *string           `json:"jobWorker"`
	Narration     *string           `json:"narration"`
	Items         []SupplyItemInput `json:"items"`
}

type ReceiptInvoiceUpdate struct {
	Date                 *time.Time         `json:"date"`
	ReceiptInvoiceNumber *string            `json:"receiptInvoiceNumber"`
	SupplyInvoiceID      *uuid.UUID         `json:"supplyInvoiceId"`
	SupplyInvoiceNumber  *string            `json:"supplyInvoiceNumber"`
	JobWorker            *string            `json:"jobWorker"`
	Narration            *string            `json:"narration"`
	Items                []ReceiptItemInput `json:"items"`
}
