package report

import (
	"sort"
	"strings"

	"backend/internal/domain"
)

// AttributeCategories is the fixed taxonomy receipt items are tagged with.
// Tags outside this set are ignored by the aggregation.
var AttributeCategories = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

const attributeDateLayout = "2006-01-02"

// AggregateAttributes groups receipt line items by (date, receipt number)
// and sums finished quantities per attribute category. An item tagged with
// several categories contributes its full finished quantity to each one.
// Two distinct receipts sharing a number on the same date collapse into one
// row; that collision is a property of the key and is kept as-is.
func AggregateAttributes(receipts []domain.ReceiptInvoice, win Window) []domain.AttributeRow {
	rows := make(map[string]*domain.AttributeRow)
	order := make([]string, 0)

	for _, receipt := range receipts {
		if !win.Contains(receipt.Date) {
			continue
		}
		key := receipt.Date.Format(attributeDateLayout) + "-" + receipt.ReceiptInvoiceNumber
		row, ok := rows[key]
		if !ok {
			row = &domain.AttributeRow{
				Date:                 receipt.Date,
				ReceiptInvoiceNumber: receipt.ReceiptInvoiceNumber,
				SupplyInvoiceNumber:  receipt.SupplyInvoiceNumber,
				Totals:               make(map[string]float64, len(AttributeCategories)),
				Details:              make(map[string][]domain.AttributeDetail, len(AttributeCategories)),
			}
			for _, category := range AttributeCategories {
				row.Totals[category] = 0
				row.Details[category] = []domain.AttributeDetail{}
			}
			rows[key] = row
			order = append(order, key)
		}

		for _, item := range receipt.Items {
			for _, attr := range item.Attributes {
				if !isCategory(attr) {
					continue
				}
				row.Totals[attr] += item.FinishedQuantity
				row.Details[attr] = append(row.Details[attr], domain.AttributeDetail{
					GoodsName:        item.GoodsName,
					FinishedQuantity: item.FinishedQuantity,
					DamagedQuantity:  item.DamagedQuantity,
				})
			}
		}
	}

	result := make([]domain.AttributeRow, 0, len(order))
	for _, key := range order {
		result = append(result, *rows[key])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[j].Date.Before(result[i].Date)
	})
	return result
}

// SearchAttributeRows is a case-insensitive substring post-filter over
// receipt number, supply number and formatted date.
func SearchAttributeRows(rows []domain.AttributeRow, query string) []domain.AttributeRow {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}
	result := make([]domain.AttributeRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.ReceiptInvoiceNumber), query) ||
			strings.Contains(strings.ToLower(row.SupplyInvoiceNumber), query) ||
			strings.Contains(row.Date.Format(attributeDateLayout), query) {
			result = append(result, row)
		}
	}
	return result
}

func isCategory(attr string) bool {
	for _, category := range AttributeCategories {
		if attr == category {
			return true
		}
	}
	return false
}
