package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/domain"
)

func receiptWithAttrs(date, number string, items ...domain.ReceiptItem) domain.ReceiptInvoice {
	return domain.ReceiptInvoice{
		ID:                   uuid.New(),
		Date:                 day(date),
		ReceiptInvoiceNumber: number,
		SupplyInvoiceNumber:  "SUP-1",
		Items:                items,
	}
}

func TestAggregateAttributesSumsFinishedPerCategory(t *testing.T) {
	receipt := receiptWithAttrs("2026-03-05", "REC-1",
		domain.ReceiptItem{GoodsName: "Shirt", FinishedQuantity: 10, DamagedQuantity: 2, Attributes: []string{"A", "B"}},
		domain.ReceiptItem{GoodsName: "Pant", FinishedQuantity: 4, Attributes: []string{"A"}},
	)

	rows := AggregateAttributes([]domain.ReceiptInvoice{receipt}, wideWindow())
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 14.0, row.Totals["A"])
	assert.Equal(t, 10.0, row.Totals["B"])
	assert.Equal(t, 0.0, row.Totals["C"])
	require.Len(t, row.Details["A"], 2)
	assert.Equal(t, 2.0, row.Details["A"][0].DamagedQuantity)
}

func TestAggregateAttributesInitialisesAllCategories(t *testing.T) {
	receipt := receiptWithAttrs("2026-03-05", "REC-1",
		domain.ReceiptItem{GoodsName: "Shirt", FinishedQuantity: 1, Attributes: []string{"A"}},
	)
	rows := AggregateAttributes([]domain.ReceiptInvoice{receipt}, wideWindow())
	require.Len(t, rows, 1)
	for _, category := range AttributeCategories {
		_, hasTotal := rows[0].Totals[category]
		_, hasDetail := rows[0].Details[category]
		assert.True(t, hasTotal, category)
		assert.True(t, hasDetail, category)
	}
}

func TestAggregateAttributesIgnoresUnknownTags(t *testing.T) {
	receipt := receiptWithAttrs("2026-03-05", "REC-1",
		domain.ReceiptItem{GoodsName: "Shirt", FinishedQuantity: 5, Attributes: []string{"X", "A"}},
	)
	rows := AggregateAttributes([]domain.ReceiptInvoice{receipt}, wideWindow())
	require.Len(t, rows, 1)
	assert.Equal(t, 5.0, rows[0].Totals["A"])
	_, ok := rows[0].Totals["X"]
	assert.False(t, ok)
}

func TestAggregateAttributesGroupsByDateAndNumber(t *testing.T) {
	first := receiptWithAttrs("2026-03-05", "REC-1",
		domain.ReceiptItem{GoodsName: "Shirt", FinishedQuantity: 5, Attributes: []string{"A"}},
	)
	second := receiptWithAttrs("2026-03-05", "REC-1",
		domain.ReceiptItem{GoodsName: "Pant", FinishedQuantity: 3, Attributes: []string{"A"}},
	)
	third := receiptWithAttrs("2026-03-06", "REC-1",
		domain.ReceiptItem{GoodsName: "Pant", FinishedQuantity: 2, Attributes: []string{"A"}},
	)

	rows := AggregateAttributes([]domain.ReceiptInvoice{first, second, third}, wideWindow())
	require.Len(t, rows, 2)

	// Two receipts sharing a date and number collapse into one row.
	assert.Equal(t, 2.0, rows[0].Totals["A"])
	assert.Equal(t, 8.0, rows[1].Totals["A"])
}

func TestAggregateAttributesSortedByDateDescending(t *testing.T) {
	older := receiptWithAttrs("2026-03-01", "REC-1",
		domain.ReceiptItem{GoodsName: "Shirt", FinishedQuantity: 1, Attributes: []string{"A"}},
	)
	newer := receiptWithAttrs("2026-03-10", "REC-2",
		domain.ReceiptItem{GoodsName: "Shirt", FinishedQuantity: 1, Attributes: []string{"A"}},
	)
	rows := AggregateAttributes([]domain.ReceiptInvoice{older, newer}, wideWindow())
	require.Len(t, rows, 2)
	assert.Equal(t, "REC-2", rows[0].ReceiptInvoiceNumber)
	assert.Equal(t, "REC-1", rows[1].ReceiptInvoiceNumber)
}

func TestAggregateAttributesWindowFiltersReceipts(t *testing.T) {
	outside := receiptWithAttrs("2025-01-01", "REC-OLD",
		domain.ReceiptItem{GoodsName: "Shirt", FinishedQuantity: 1, Attributes: []string{"A"}},
	)
	rows := AggregateAttributes([]domain.ReceiptInvoice{outside}, wideWindow())
	assert.Empty(t, rows)
}

func TestSearchAttributeRows(t *testing.T) {
	receipt := receiptWithAttrs("2026-03-05", "REC-42",
		domain.ReceiptItem{GoodsName: "Shirt", FinishedQuantity: 1, Attributes: []string{"A"}},
	)
	rows := AggregateAttributes([]domain.ReceiptInvoice{receipt}, wideWindow())

	assert.Len(t, SearchAttributeRows(rows, "rec-42"), 1)
	assert.Len(t, SearchAttributeRows(rows, "SUP-1"), 1)
	assert.Len(t, SearchAttributeRows(rows, "2026-03-05"), 1)
	assert.Empty(t, SearchAttributeRows(rows, "missing"))
}
