// Package seed generates deterministic dummy transactions, used when the
// snapshot backend has nothing to load yet.
package seed

import (
	"fmt"
	"math"
	"time"

	"billfold/internal/core"
)

var (
	categories = []string{"Food", "Transport", "Entertainment", "Utilities", "Income"}
	methods    = []string{"Cash", "Credit Card", "Debit Card", "Bank Transfer"}
	statuses   = []string{core.StatusCompleted, core.StatusPending, core.StatusCancelled}
)

// DefaultCount is how many transactions a fresh store is seeded with.
const DefaultCount = 10

// Generate returns count transactions derived purely from (count, seed, now).
// The same inputs always produce the same list, so a reseeded store is
// reproducible.
func Generate(count int, seed int64, now time.Time) []core.Transaction {
	if count <= 0 {
		return nil
	}
	txs := make([]core.Transaction, 0, count)
	for i := 0; i < count; i++ {
		r := frac(seed + int64(i))

		date := now.AddDate(0, 0, -int(r*30)).Format(core.DateLayout)

		itemCount := int(r*5) + 1
		items := make([]core.ReceiptItem, 0, itemCount)
		for j := 0; j < itemCount; j++ {
			items = append(items, core.ReceiptItem{
				ID:          fmt.Sprintf("ITEM%03d", j+1),
				Description: fmt.Sprintf("Item %d", j+1),
				Quantity:    int64(r*5) + 1,
				Price:       core.Cents(math.Round(r * 100 * 100)),
			})
		}

		txs = append(txs, core.Transaction{
			ID:           fmt.Sprintf("TRX%03d", i+1),
			Date:         date,
			Category:     categories[int(r*float64(len(categories)))],
			Description:  fmt.Sprintf("Transaction %d", i+1),
			Amount:       core.FormatCents(core.Cents(math.Round((r*1000 - 500) * 100))),
			Method:       methods[int(r*float64(len(methods)))],
			Status:       statuses[int(r*float64(len(statuses)))],
			ReceiptItems: items,
		})
	}
	return txs
}

// frac is a sine-based pseudo random fraction in [0, 1).
func frac(seed int64) float64 {
	x := math.Sin(float64(seed)) * 10000
	return x - math.Floor(x)
}
