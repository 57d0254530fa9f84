// Package report holds the pure reporting engines: supply/receipt
// reconciliation, attribute aggregation and goods-level stock position.
// Every function is a plain computation over record sets passed in by the
// caller; filters arrive as explicit parameters and nothing here touches
// the store.
package report

import (
	"sort"
	"strings"

	"backend/internal/domain"
)

// Reconcile produces one record per supply invoice inside the window.
// The window constrains which supply invoices are shown; every receipt
// referencing a shown invoice counts toward it no matter when the receipt
// was dated.
func Reconcile(supplies []domain.SupplyInvoice, receipts []domain.ReceiptInvoice, win Window) []domain.DynamicSupplyRecord {
	records := make([]domain.DynamicSupplyRecord, 0, len(supplies))

	for _, supply := range supplies {
		if !win.Contains(supply.Date) {
			continue
		}

		matched := make([]domain.ReceiptInvoice, 0)
		received := 0.0
		for _, receipt := range receipts {
			if receipt.SupplyInvoiceID != supply.ID {
				continue
			}
			matched = append(matched, receipt)
			for _, item := range receipt.Items {
				received += item.FinishedQuantity + item.DamagedQuantity
			}
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Date.Before(matched[j].Date)
		})

		original := 0.0
		for _, item := range supply.Items {
			original += item.Quantity
		}

		records = append(records, domain.DynamicSupplyRecord{
			ID:            supply.ID,
			Date:          supply.Date,
			InvoiceNumber: supply.InvoiceNumber,
			OriginalQty:   original,
			ReceivedQty:   received,
			RemainingQty:  clampRemaining(original - received),
			Items:         supply.Items,
			Receipts:      matched,
		})
	}

	return records
}

// SearchDynamicRecords is a case-insensitive substring post-filter over
// the supply invoice number and formatted date.
func SearchDynamicRecords(records []domain.DynamicSupplyRecord, query string) []domain.DynamicSupplyRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records
	}
	result := make([]domain.DynamicSupplyRecord, 0, len(records))
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.InvoiceNumber), query) ||
			strings.Contains(record.Date.Format(attributeDateLayout), query) {
			result = append(result, record)
		}
	}
	return result
}

// clampRemaining floors displayed remaining quantity at zero. Over-receipt
// is accepted business data, not an error; this is the single place the
// policy lives should it ever change.
func clampRemaining(qty float64) float64 {
	if qty < 0 {
		return 0
	}
	return qty
}
