// Package export renders report rows into downloadable documents. Reports
// are flattened into a Table first; the PDF and XLSX writers only know
// about tables.
package export

import (
	"strconv"
	"time"

	"backend/internal/domain"
	"backend/internal/report"
)

type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

const dateLayout = "2006-01-02"

func DynamicSupplyTable(records []domain.DynamicSupplyRecord) Table {
	t := Table{
		Title:   "Dynamic Supply Report",
		Headers: []string{"Date", "Invoice No", "Original Qty", "Received Qty", "Remaining Qty", "Receipts"},
	}
	for _, rec := range records {
		t.Rows = append(t.Rows, []string{
			rec.Date.Format(dateLayout),
			rec.InvoiceNumber,
			formatQty(rec.OriginalQty),
			formatQty(rec.ReceivedQty),
			formatQty(rec.RemainingQty),
			strconv.Itoa(len(rec.Receipts)),
		})
	}
	return t
}

func AttributeTable(rows []domain.AttributeRow) Table {
	headers := []string{"Date", "Receipt No", "Supply No"}
	headers = append(headers, report.AttributeCategories...)
	t := Table{Title: "Attribute Report", Headers: headers}
	for _, row := range rows {
		cells := []string{
			row.Date.Format(dateLayout),
			row.ReceiptInvoiceNumber,
			row.SupplyInvoiceNumber,
		}
		for _, category := range report.AttributeCategories {
			cells = append(cells, formatQty(row.Totals[category]))
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func GoodsTable(rows []domain.GoodsRow) Table {
	t := Table{
		Title:   "Goods Report",
		Headers: []string{"Goods", "Supplied", "Finished", "Damaged", "Received", "Stock With Job Worker"},
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, []string{
			row.Name,
			formatQty(row.SuppliedQty),
			formatQty(row.FinishedQty),
			formatQty(row.DamagedQty),
			formatQty(row.ReceivedQty),
			formatQty(row.StockWithJobWorker),
		})
	}
	return t
}

func formatQty(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}

func timestampLine(t time.Time) string {
	return "Generated on: " + t.Format("2006-01-02 15:04:05")
}
