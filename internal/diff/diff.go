// Package diff computes field-level differences between a stored invoice
// record and a proposed update. The result is what gets serialized into the
// change log, so entry text and ordering are part of the persisted format:
// header fields in a fixed order, then item changes in the order of the new
// item set, then removals in the order of the old item set.
package diff

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"backend/internal/domain"
)

const dateLayout = "2006-01-02"

// SupplyChanges compares a stored supply invoice against a proposed update.
// Fields absent from the update are treated as unchanged.
func SupplyChanges(old domain.SupplyInvoiceRecord, update domain.SupplyInvoiceUpdate) []domain.ChangeEntry {
	changes := make([]domain.ChangeEntry, 0)

	changes = appendDateChange(changes, old.Date, update.Date)
	changes = appendNumberChange(changes, "Invoice Number", old.InvoiceNumber, update.InvoiceNumber)
	changes = appendTextChange(changes, "Job Worker", old.JobWorker, update.JobWorker)
	changes = appendTextChange(changes, "Narration", old.Narration, update.Narration)

	if update.Items == nil {
		return changes
	}

	oldByName := make(map[string]domain.SupplyItemRecord, len(old.Items))
	for _, item := range old.Items {
		oldByName[item.GoodsName] = item
	}
	newItems := dedupeSupplyItems(update.Items)
	newNames := make(map[string]struct{}, len(newItems))

	for _, item := range newItems {
		newNames[item.GoodsName] = struct{}{}
		oldItem, ok := oldByName[item.GoodsName]
		if !ok {
			changes = append(changes, domain.ChangeEntry{
				Field: "Item Added: " + item.GoodsName,
				Old:   "-",
				New:   "Qty: " + formatQty(item.Quantity),
			})
			continue
		}
		if oldItem.Quantity != item.Quantity {
			changes = append(changes, domain.ChangeEntry{
				Field: "Item Qty: " + item.GoodsName,
				Old:   formatQty(oldItem.Quantity),
				New:   formatQty(item.Quantity),
			})
		}
	}

	return appendRemovals(changes, supplyItemNames(old.Items), newNames)
}

// ReceiptChanges is the receipt counterpart of SupplyChanges. Receipt items
// carry two quantities plus an attribute set; attributes compare as sorted,
// comma-joined strings, so reordering alone is never a change.
func ReceiptChanges(old domain.ReceiptInvoiceRecord, update domain.ReceiptInvoiceUpdate) []domain.ChangeEntry {
	changes := make([]domain.ChangeEntry, 0)

	changes = appendDateChange(changes, old.Date, update.Date)
	changes = appendNumberChange(changes, "Invoice Number", old.ReceiptInvoiceNumber, update.ReceiptInvoiceNumber)
	changes = appendNumberChange(changes, "Supply Ref", old.SupplyInvoiceNumber, update.SupplyInvoiceNumber)
	changes = appendTextChange(changes, "Job Worker", old.JobWorker, update.JobWorker)
	changes = appendTextChange(changes, "Narration", old.Narration, update.Narration)

	if update.Items == nil {
		return changes
	}

	oldByName := make(map[string]domain.ReceiptItemRecord, len(old.Items))
	for _, item := range old.Items {
		oldByName[item.GoodsName] = item
	}
	newItems := dedupeReceiptItems(update.Items)
	newNames := make(map[string]struct{}, len(newItems))

	for _, item := range newItems {
		newNames[item.GoodsName] = struct{}{}
		oldItem, ok := oldByName[item.GoodsName]
		if !ok {
			changes = append(changes, domain.ChangeEntry{
				Field: "Item Added: " + item.GoodsName,
				Old:   "-",
				New:   "Fin: " + formatQty(item.FinishedQuantity) + ", Dmg: " + formatQty(item.DamagedQuantity),
			})
			continue
		}
		if oldItem.FinishedQuantity != item.FinishedQuantity {
			changes = append(changes, domain.ChangeEntry{
				Field: "Item Finished: " + item.GoodsName,
				Old:   formatQty(oldItem.FinishedQuantity),
				New:   formatQty(item.FinishedQuantity),
			})
		}
		if oldItem.DamagedQuantity != item.DamagedQuantity {
			changes = append(changes, domain.ChangeEntry{
				Field: "Item Damaged: " + item.GoodsName,
				Old:   formatQty(oldItem.DamagedQuantity),
				New:   formatQty(item.DamagedQuantity),
			})
		}
		oldAttrs := joinedAttrs(oldItem.Attributes)
		newAttrs := joinedAttrs(item.Attributes)
		if oldAttrs != newAttrs {
			changes = append(changes, domain.ChangeEntry{
				Field: "Item Attrs: " + item.GoodsName,
				Old:   orNone(oldAttrs),
				New:   orNone(newAttrs),
			})
		}
	}

	return appendRemovals(changes, receiptItemNames(old.Items), newNames)
}

func appendDateChange(changes []domain.ChangeEntry, old time.Time, updated *time.Time) []domain.ChangeEntry {
	if updated == nil || old.Equal(*updated) {
		return changes
	}
	return append(changes, domain.ChangeEntry{
		Field: "Date",
		Old:   old.Format(dateLayout),
		New:   updated.Format(dateLayout),
	})
}

// Invoice-number style fields: an empty proposed value also means "not
// changing", and an empty stored value displays as N/A.
func appendNumberChange(changes []domain.ChangeEntry, field, old string, updated *string) []domain.ChangeEntry {
	if updated == nil || *updated == "" || old == *updated {
		return changes
	}
	oldDisplay := old
	if oldDisplay == "" {
		oldDisplay = "N/A"
	}
	return append(changes, domain.ChangeEntry{Field: field, Old: oldDisplay, New: *updated})
}

// Free-text fields: a provided empty string is a real change (clearing the
// field), only a nil pointer is "not changing".
func appendTextChange(changes []domain.ChangeEntry, field string, old *string, updated *string) []domain.ChangeEntry {
	if updated == nil {
		return changes
	}
	oldValue := ""
	if old != nil {
		oldValue = *old
	}
	if oldValue == *updated {
		return changes
	}
	oldDisplay := oldValue
	if oldDisplay == "" {
		oldDisplay = "N/A"
	}
	return append(changes, domain.ChangeEntry{Field: field, Old: oldDisplay, New: *updated})
}

func appendRemovals(changes []domain.ChangeEntry, oldNames []string, newNames map[string]struct{}) []domain.ChangeEntry {
	seen := make(map[string]struct{}, len(oldNames))
	for _, name := range oldNames {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := newNames[name]; !ok {
			changes = append(changes, domain.ChangeEntry{
				Field: "Item Removed: " + name,
				Old:   "Present",
				New:   "Removed",
			})
		}
	}
	return changes
}

// Proposed item sets collapse duplicate goods names before comparison: the
// last occurrence wins, at the position of the first. One entry per name.
func dedupeSupplyItems(items []domain.SupplyItemInput) []domain.SupplyItemInput {
	index := make(map[string]int, len(items))
	unique := make([]domain.SupplyItemInput, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.GoodsName]; ok {
			unique[i] = item
			continue
		}
		index[item.GoodsName] = len(unique)
		unique = append(unique, item)
	}
	return unique
}

func dedupeReceiptItems(items []domain.ReceiptItemInput) []domain.ReceiptItemInput {
	index := make(map[string]int, len(items))
	unique := make([]domain.ReceiptItemInput, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.GoodsName]; ok {
			unique[i] = item
			continue
		}
		index[item.GoodsName] = len(unique)
		unique = append(unique, item)
	}
	return unique
}

func supplyItemNames(items []domain.SupplyItemRecord) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.GoodsName)
	}
	return names
}

func receiptItemNames(items []domain.ReceiptItemRecord) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.GoodsName)
	}
	return names
}

func joinedAttrs(attrs []string) string {
	if len(attrs) == 0 {
		return ""
	}
	sorted := make([]string, len(attrs))
	copy(sorted, attrs)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func orNone(value string) string {
	if value == "" {
		return "None"
	}
	return value
}

func formatQty(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}
