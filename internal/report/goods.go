package report

import (
	"strings"

	"backend/internal/domain"
)

// AggregateGoods computes the stock position per goods name. The window is
// applied to supplies and receipts independently, each against its own date
// field: this is an "activity in period" view, so a receipt in the window
// counts even when its originating supply invoice falls outside it.
func AggregateGoods(goods []domain.Goods, supplies []domain.SupplyInvoice, receipts []domain.ReceiptInvoice, win Window) []domain.GoodsRow {
	rows := make([]domain.GoodsRow, 0, len(goods))

	for _, good := range goods {
		row := domain.GoodsRow{
			Name:     good.Name,
			Supplies: []domain.GoodsSupplyEntry{},
			Receipts: []domain.GoodsReceiptEntry{},
		}

		for _, supply := range supplies {
			if !win.Contains(supply.Date) {
				continue
			}
			for _, item := range supply.Items {
				if !sameGoods(item.GoodsName, good.Name) {
					continue
				}
				row.SuppliedQty += item.Quantity
				row.Supplies = append(row.Supplies, domain.GoodsSupplyEntry{
					Date:          supply.Date,
					InvoiceNumber: supply.InvoiceNumber,
					Quantity:      item.Quantity,
				})
			}
		}

		for _, receipt := range receipts {
			if !win.Contains(receipt.Date) {
				continue
			}
			for _, item := range receipt.Items {
				if !sameGoods(item.GoodsName, good.Name) {
					continue
				}
				row.FinishedQty += item.FinishedQuantity
				row.DamagedQty += item.DamagedQuantity
				row.Receipts = append(row.Receipts, domain.GoodsReceiptEntry{
					Date:          receipt.Date,
					ReceiptNumber: receipt.ReceiptInvoiceNumber,
					Finished:      item.FinishedQuantity,
					Damaged:       item.DamagedQuantity,
				})
			}
		}

		row.ReceivedQty = row.FinishedQty + row.DamagedQty
		row.StockWithJobWorker = row.SuppliedQty - row.ReceivedQty
		rows = append(rows, row)
	}

	return rows
}

// SearchGoodsRows filters rows by a case-insensitive substring of the name.
func SearchGoodsRows(rows []domain.GoodsRow, query string) []domain.GoodsRow {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}
	result := make([]domain.GoodsRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Name), query) {
			result = append(result, row)
		}
	}
	return result
}

// sameGoods is the single place goods identity is decided. Items link to
// goods by exact name today; an id-based migration changes only this.
func sameGoods(itemName, goodsName string) bool {
	return itemName == goodsName
}
