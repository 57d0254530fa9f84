package diff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/domain"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func supplyRecord() domain.SupplyInvoiceRecord {
	return domain.SupplyInvoiceRecord{
		Date:          date("2026-01-10"),
		InvoiceNumber: "SUP-001",
		JobWorker:     strPtr("Acme Works"),
		Narration:     strPtr("first lot"),
		Items: []domain.SupplyItemRecord{
			{GoodsName: "Blue Fabric", Quantity: 100},
			{GoodsName: "Buttons", Quantity: 500},
		},
	}
}

func TestSupplyChangesEmptyUpdateYieldsNothing(t *testing.T) {
	changes := SupplyChanges(supplyRecord(), domain.SupplyInvoiceUpdate{})
	assert.Empty(t, changes)
}

func TestSupplyChangesUnchangedValuesYieldNothing(t *testing.T) {
	old := supplyRecord()
	up := domain.SupplyInvoiceUpdate{
		Date:          timePtr(old.Date),
		InvoiceNumber: strPtr("SUP-001"),
		JobWorker:     strPtr("Acme Works"),
		Narration:     strPtr("first lot"),
		Items: []domain.SupplyItemInput{
			{GoodsName: "Blue Fabric", Quantity: 100},
			{GoodsName: "Buttons", Quantity: 500},
		},
	}
	assert.Empty(t, SupplyChanges(old, up))
}

func TestSupplyChangesHeaderFieldOrder(t *testing.T) {
	old := supplyRecord()
	up := domain.SupplyInvoiceUpdate{
		Date:          timePtr(date("2026-02-01")),
		InvoiceNumber: strPtr("SUP-002"),
		JobWorker:     strPtr("Beta Works"),
		Narration:     strPtr("revised lot"),
	}
	changes := SupplyChanges(old, up)
	require.Len(t, changes, 4)
	assert.Equal(t, "Date", changes[0].Field)
	assert.Equal(t, "2026-01-10", changes[0].Old)
	assert.Equal(t, "2026-02-01", changes[0].New)
	assert.Equal(t, "Invoice Number", changes[1].Field)
	assert.Equal(t, "Job Worker", changes[2].Field)
	assert.Equal(t, "Narration", changes[3].Field)
}

func TestSupplyChangesEmptyInvoiceNumberIsNotAChange(t *testing.T) {
	changes := SupplyChanges(supplyRecord(), domain.SupplyInvoiceUpdate{
		InvoiceNumber: strPtr(""),
	})
	assert.Empty(t, changes)
}

func TestSupplyChangesMissingOldNumberDisplaysNA(t *testing.T) {
	old := supplyRecord()
	old.InvoiceNumber = ""
	changes := SupplyChanges(old, domain.SupplyInvoiceUpdate{InvoiceNumber: strPtr("SUP-009")})
	require.Len(t, changes, 1)
	assert.Equal(t, "N/A", changes[0].Old)
	assert.Equal(t, "SUP-009", changes[0].New)
}

func TestSupplyChangesClearingTextFieldIsAChange(t *testing.T) {
	changes := SupplyChanges(supplyRecord(), domain.SupplyInvoiceUpdate{Narration: strPtr("")})
	require.Len(t, changes, 1)
	assert.Equal(t, "Narration", changes[0].Field)
	assert.Equal(t, "first lot", changes[0].Old)
	assert.Equal(t, "", changes[0].New)
}

func TestSupplyChangesNilOldTextDisplaysNA(t *testing.T) {
	old := supplyRecord()
	old.JobWorker = nil
	changes := SupplyChanges(old, domain.SupplyInvoiceUpdate{JobWorker: strPtr("Gamma Works")})
	require.Len(t, changes, 1)
	assert.Equal(t, "Job Worker", changes[0].Field)
	assert.Equal(t, "N/A", changes[0].Old)
}

func TestSupplyChangesItemAddQtyAndRemoval(t *testing.T) {
	old := supplyRecord()
	up := domain.SupplyInvoiceUpdate{
		Items: []domain.SupplyItemInput{
			{GoodsName: "Blue Fabric", Quantity: 120},
			{GoodsName: "Zippers", Quantity: 50},
		},
	}
	changes := SupplyChanges(old, up)
	require.Len(t, changes, 3)

	assert.Equal(t, "Item Qty: Blue Fabric", changes[0].Field)
	assert.Equal(t, "100", changes[0].Old)
	assert.Equal(t, "120", changes[0].New)

	assert.Equal(t, "Item Added: Zippers", changes[1].Field)
	assert.Equal(t, "-", changes[1].Old)
	assert.Equal(t, "Qty: 50", changes[1].New)

	assert.Equal(t, "Item Removed: Buttons", changes[2].Field)
	assert.Equal(t, "Present", changes[2].Old)
	assert.Equal(t, "Removed", changes[2].New)
}

func TestSupplyChangesNilItemsLeavesItemsAlone(t *testing.T) {
	changes := SupplyChanges(supplyRecord(), domain.SupplyInvoiceUpdate{
		InvoiceNumber: strPtr("SUP-002"),
		Items:         nil,
	})
	require.Len(t, changes, 1)
	assert.Equal(t, "Invoice Number", changes[0].Field)
}

func TestSupplyChangesEmptyItemsRemovesEverything(t *testing.T) {
	changes := SupplyChanges(supplyRecord(), domain.SupplyInvoiceUpdate{
		Items: []domain.SupplyItemInput{},
	})
	require.Len(t, changes, 2)
	assert.Equal(t, "Item Removed: Blue Fabric", changes[0].Field)
	assert.Equal(t, "Item Removed: Buttons", changes[1].Field)
}

func TestSupplyChangesDuplicateOldNamesRemovedOnce(t *testing.T) {
	old := supplyRecord()
	old.Items = []domain.SupplyItemRecord{
		{GoodsName: "Blue Fabric", Quantity: 40},
		{GoodsName: "Blue Fabric", Quantity: 60},
	}
	changes := SupplyChanges(old, domain.SupplyInvoiceUpdate{Items: []domain.SupplyItemInput{}})
	require.Len(t, changes, 1)
	assert.Equal(t, "Item Removed: Blue Fabric", changes[0].Field)
}

func TestSupplyChangesDuplicateNewNamesLastWinsOnce(t *testing.T) {
	old := supplyRecord()
	up := domain.SupplyInvoiceUpdate{
		Items: []domain.SupplyItemInput{
			{GoodsName: "Blue Fabric", Quantity: 110},
			{GoodsName: "Buttons", Quantity: 500},
			{GoodsName: "Blue Fabric", Quantity: 130},
		},
	}
	changes := SupplyChanges(old, up)
	require.Len(t, changes, 1)
	assert.Equal(t, "Item Qty: Blue Fabric", changes[0].Field)
	assert.Equal(t, "100", changes[0].Old)
	assert.Equal(t, "130", changes[0].New)
}

func TestReceiptChangesDuplicateNewNamesLastWinsOnce(t *testing.T) {
	changes := ReceiptChanges(receiptRecord(), domain.ReceiptInvoiceUpdate{
		Items: []domain.ReceiptItemInput{
			{GoodsName: "Blue Fabric", FinishedQuantity: 85, DamagedQuantity: 5, Attributes: []string{"A", "C"}},
			{GoodsName: "Blue Fabric", FinishedQuantity: 95, DamagedQuantity: 5, Attributes: []string{"A", "C"}},
		},
	})
	require.Len(t, changes, 1)
	assert.Equal(t, "Item Finished: Blue Fabric", changes[0].Field)
	assert.Equal(t, "95", changes[0].New)
}

func TestSupplyChangesFractionalQuantitiesFormatPlainly(t *testing.T) {
	old := supplyRecord()
	up := domain.SupplyInvoiceUpdate{
		Items: []domain.SupplyItemInput{
			{GoodsName: "Blue Fabric", Quantity: 100.5},
			{GoodsName: "Buttons", Quantity: 500},
		},
	}
	changes := SupplyChanges(old, up)
	require.Len(t, changes, 1)
	assert.Equal(t, "100", changes[0].Old)
	assert.Equal(t, "100.5", changes[0].New)
}

func receiptRecord() domain.ReceiptInvoiceRecord {
	return domain.ReceiptInvoiceRecord{
		Date:                 date("2026-01-20"),
		ReceiptInvoiceNumber: "REC-001",
		SupplyInvoiceNumber:  "SUP-001",
		Items: []domain.ReceiptItemRecord{
			{GoodsName: "Blue Fabric", FinishedQuantity: 80, DamagedQuantity: 5, Attributes: []string{"A", "C"}},
		},
	}
}

func TestReceiptChangesSupplyRefTracked(t *testing.T) {
	changes := ReceiptChanges(receiptRecord(), domain.ReceiptInvoiceUpdate{
		SupplyInvoiceNumber: strPtr("SUP-002"),
	})
	require.Len(t, changes, 1)
	assert.Equal(t, "Supply Ref", changes[0].Field)
	assert.Equal(t, "SUP-001", changes[0].Old)
	assert.Equal(t, "SUP-002", changes[0].New)
}

func TestReceiptChangesFinishedAndDamagedTrackedSeparately(t *testing.T) {
	changes := ReceiptChanges(receiptRecord(), domain.ReceiptInvoiceUpdate{
		Items: []domain.ReceiptItemInput{
			{GoodsName: "Blue Fabric", FinishedQuantity: 90, DamagedQuantity: 2, Attributes: []string{"A", "C"}},
		},
	})
	require.Len(t, changes, 2)
	assert.Equal(t, "Item Finished: Blue Fabric", changes[0].Field)
	assert.Equal(t, "80", changes[0].Old)
	assert.Equal(t, "90", changes[0].New)
	assert.Equal(t, "Item Damaged: Blue Fabric", changes[1].Field)
	assert.Equal(t, "5", changes[1].Old)
	assert.Equal(t, "2", changes[1].New)
}

func TestReceiptChangesAttributeReorderIsNotAChange(t *testing.T) {
	changes := ReceiptChanges(receiptRecord(), domain.ReceiptInvoiceUpdate{
		Items: []domain.ReceiptItemInput{
			{GoodsName: "Blue Fabric", FinishedQuantity: 80, DamagedQuantity: 5, Attributes: []string{"C", "A"}},
		},
	})
	assert.Empty(t, changes)
}

func TestReceiptChangesAttributeSetChange(t *testing.T) {
	changes := ReceiptChanges(receiptRecord(), domain.ReceiptInvoiceUpdate{
		Items: []domain.ReceiptItemInput{
			{GoodsName: "Blue Fabric", FinishedQuantity: 80, DamagedQuantity: 5, Attributes: []string{"B"}},
		},
	})
	require.Len(t, changes, 1)
	assert.Equal(t, "Item Attrs: Blue Fabric", changes[0].Field)
	assert.Equal(t, "A,C", changes[0].Old)
	assert.Equal(t, "B", changes[0].New)
}

func TestReceiptChangesEmptyAttributesDisplayNone(t *testing.T) {
	changes := ReceiptChanges(receiptRecord(), domain.ReceiptInvoiceUpdate{
		Items: []domain.ReceiptItemInput{
			{GoodsName: "Blue Fabric", FinishedQuantity: 80, DamagedQuantity: 5},
		},
	})
	require.Len(t, changes, 1)
	assert.Equal(t, "A,C", changes[0].Old)
	assert.Equal(t, "None", changes[0].New)
}

func TestReceiptChangesItemAddedShowsBothQuantities(t *testing.T) {
	changes := ReceiptChanges(receiptRecord(), domain.ReceiptInvoiceUpdate{
		Items: []domain.ReceiptItemInput{
			{GoodsName: "Blue Fabric", FinishedQuantity: 80, DamagedQuantity: 5, Attributes: []string{"A", "C"}},
			{GoodsName: "Collars", FinishedQuantity: 30, DamagedQuantity: 1},
		},
	})
	require.Len(t, changes, 1)
	assert.Equal(t, "Item Added: Collars", changes[0].Field)
	assert.Equal(t, "Fin: 30, Dmg: 1", changes[0].New)
}
