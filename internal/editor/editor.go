// Package editor implements receipt-item editing for one transaction. Every
// operation is pure: it takes a transaction value and returns a new one with
// the amount recomputed, so nothing touches the store until Save.
package editor

import (
	"context"
	"fmt"

	"billfold/internal/core"
)

// Saver is the slice of the store the editor needs.
type Saver interface {
	Update(ctx context.Context, t core.Transaction) error
}

// UpdateItem replaces the receipt item with the same id and recomputes the
// amount. An unmatched id leaves the item list unchanged.
func UpdateItem(t core.Transaction, item core.ReceiptItem) core.Transaction {
	out := t.Clone()
	for i := range out.ReceiptItems {
		if out.ReceiptItems[i].ID == item.ID {
			out.ReceiptItems[i] = item
			break
		}
	}
	return recalc(out)
}

// AddItem appends a fresh item with quantity 1 and price 0 and recomputes
// the amount. Since the new line total is zero the amount is unchanged.
func AddItem(t core.Transaction) core.Transaction {
	out := t.Clone()
	out.ReceiptItems = append(out.ReceiptItems, core.ReceiptItem{
		ID:       NextItemID(out),
		Quantity: 1,
		Price:    0,
	})
	return recalc(out)
}

// DeleteItem removes the item with the given id and recomputes the amount.
// A missing id returns the transaction unchanged.
func DeleteItem(t core.Transaction, itemID string) core.Transaction {
	found := false
	for _, ri := range t.ReceiptItems {
		if ri.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		return t
	}

	out := t.Clone()
	items := out.ReceiptItems[:0]
	for _, ri := range out.ReceiptItems {
		if ri.ID != itemID {
			items = append(items, ri)
		}
	}
	out.ReceiptItems = items
	return recalc(out)
}

// NextItemID mints a sequential ITEM%03d id. The count-based candidate is
// bumped past any survivor of an earlier delete so ids never collide within
// the transaction.
func NextItemID(t core.Transaction) string {
	n := len(t.ReceiptItems) + 1
	for {
		id := fmt.Sprintf("ITEM%03d", n)
		if !hasItem(t, id) {
			return id
		}
		n++
	}
}

func hasItem(t core.Transaction, id string) bool {
	for _, ri := range t.ReceiptItems {
		if ri.ID == id {
			return true
		}
	}
	return false
}

// Recalculate rewrites the amount from the item totals. A transaction
// without receipt items keeps its amount as entered.
func Recalculate(t core.Transaction) core.Transaction {
	out := t.Clone()
	if len(out.ReceiptItems) == 0 {
		return out
	}
	return recalc(out)
}

// recalc rewrites the amount from the item totals, two decimals.
func recalc(t core.Transaction) core.Transaction {
	t.Amount = core.FormatCents(t.Total())
	return t
}

// Save pushes the edited transaction into the store. On failure the caller
// still holds the edited value and can retry.
func Save(ctx context.Context, s Saver, t core.Transaction) error {
	if err := s.Update(ctx, t); err != nil {
		return fmt.Errorf("save transaction %s: %w", t.ID, err)
	}
	return nil
}
