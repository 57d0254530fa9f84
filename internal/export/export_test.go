package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"backend/internal/domain"
)

func sampleTable() Table {
	return Table{
		Title:   "Goods Report",
		Headers: []string{"Goods", "Supplied"},
		Rows: [][]string{
			{"Fabric", "100"},
			{"Buttons", "500"},
		},
	}
}

var exportedAt = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestTablePDFProducesADocument(t *testing.T) {
	data, err := TablePDF(sampleTable(), exportedAt)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestTableXLSXRoundTrips(t *testing.T) {
	data, err := TableXLSX(sampleTable(), exportedAt)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer file.Close()

	sheet := file.GetSheetName(file.GetActiveSheetIndex())

	title, err := file.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Goods Report", title)

	header, err := file.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Supplied", header)

	cell, err := file.GetCellValue(sheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Buttons", cell)

	footer, err := file.GetCellValue(sheet, "A6")
	require.NoError(t, err)
	assert.Equal(t, "Generated on: 2026-03-15 12:00:00", footer)
}

func TestDynamicSupplyTableFlattensRecords(t *testing.T) {
	records := []domain.DynamicSupplyRecord{
		{
			Date:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			InvoiceNumber: "SUP-1",
			OriginalQty:   100,
			ReceivedQty:   45.5,
			RemainingQty:  54.5,
			Receipts:      []domain.ReceiptInvoice{{}, {}},
		},
	}
	table := DynamicSupplyTable(records)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"2026-03-01", "SUP-1", "100", "45.5", "54.5", "2"}, table.Rows[0])
}

func TestAttributeTableHasColumnPerCategory(t *testing.T) {
	rows := []domain.AttributeRow{
		{
			Date:                 time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			ReceiptInvoiceNumber: "REC-1",
			SupplyInvoiceNumber:  "SUP-1",
			Totals:               map[string]float64{"A": 14, "B": 10},
		},
	}
	table := AttributeTable(rows)
	assert.Len(t, table.Headers, 11)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "14", table.Rows[0][3])
	assert.Equal(t, "10", table.Rows[0][4])
	assert.Equal(t, "0", table.Rows[0][5])
}

func TestGoodsTableKeepsNegativeStock(t *testing.T) {
	rows := []domain.GoodsRow{{Name: "Fabric", SuppliedQty: 50, ReceivedQty: 70, StockWithJobWorker: -20}}
	table := GoodsTable(rows)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "-20", table.Rows[0][5])
}
