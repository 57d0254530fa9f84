package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/domain"
)

func seedBackupData(t *testing.T, svc *Service) {
	t.Helper()
	_, err := svc.CreateSupplyInvoice(context.Background(), validSupplyInput())
	require.NoError(t, err)
	_, err = svc.CreateReceiptInvoice(context.Background(), domain.ReceiptInvoiceInput{
		Date:                 time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ReceiptInvoiceNumber: "REC-1",
		SupplyInvoiceNumber:  "SUP-1",
		Items:                []domain.ReceiptItemInput{{GoodsName: "Fabric", FinishedQuantity: 40, Attributes: []string{"A"}}},
	})
	require.NoError(t, err)
}

func TestExportAllDataIncludesEveryCollection(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	seedBackupData(t, svc)

	payload, err := svc.ExportAllData(context.Background())
	require.NoError(t, err)
	assert.Len(t, payload.Goods, 1)
	assert.Len(t, payload.SupplyInvoices, 1)
	assert.Len(t, payload.ReceiptInvoices, 1)
	assert.Equal(t, svc.now(), payload.ExportDate)

	require.Len(t, store.history, 1)
	assert.Equal(t, "backup", store.history[0].Type)
	assert.Contains(t, store.history[0].Filename, "inventory-backup-")
}

func TestImportAllDataRoundTrip(t *testing.T) {
	source := newFakeStore()
	svc := newTestService(source)
	seedBackupData(t, svc)

	payload, err := svc.ExportAllData(context.Background())
	require.NoError(t, err)
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	target := newFakeStore()
	targetSvc := newTestService(target)
	summary, err := targetSvc.ImportAllData(context.Background(), raw, false)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Goods)
	assert.Equal(t, 1, summary.SupplyInvoices)
	assert.Equal(t, 1, summary.ReceiptInvoices)
	assert.Len(t, target.supplies, 1)
	assert.Len(t, target.receipts, 1)

	// Restored rows get fresh ids; the receipt keeps the supply reference
	// exactly as exported.
	assert.NotEqual(t, payload.SupplyInvoices[0].ID, target.supplies[0].ID)
	assert.Equal(t, payload.ReceiptInvoices[0].SupplyInvoiceID, target.receipts[0].SupplyInvoiceID)

	require.Len(t, target.history, 1)
	assert.Equal(t, "restore", target.history[0].Type)
}

func TestImportAllDataReplaceWipesFirst(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	seedBackupData(t, svc)

	payload, err := svc.ExportAllData(context.Background())
	require.NoError(t, err)
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	summary, err := svc.ImportAllData(context.Background(), raw, true)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SupplyInvoices)
	assert.Len(t, store.supplies, 1)
	assert.Len(t, store.receipts, 1)

	// History survives the wipe: one backup entry plus one restore entry.
	require.Len(t, store.history, 2)
}

func TestImportAllDataRejectsMalformedPayload(t *testing.T) {
	svc := newTestService(newFakeStore())
	_, err := svc.ImportAllData(context.Background(), []byte("{not json"), false)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestClearAllDataLeavesHistory(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	seedBackupData(t, svc)
	_, err := svc.ExportAllData(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.ClearAllData(context.Background()))
	assert.Empty(t, store.supplies)
	assert.Empty(t, store.receipts)
	assert.Empty(t, store.goods)
	assert.Len(t, store.history, 1)
}
