package seed

import (
	"testing"
	"time"

	"billfold/internal/core"
)

func TestGenerateIsDeterministic(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	a := Generate(10, 42, now)
	b := Generate(10, 42, now)
	if len(a) != 10 || len(b) != 10 {
		t.Fatalf("lengths = %d, %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Amount != b[i].Amount || a[i].Date != b[i].Date {
			t.Fatalf("run differs at %d: %+v vs %+v", i, a[i], b[i])
		}
	}

	c := Generate(10, 43, now)
	same := true
	for i := range a {
		if a[i].Amount != c[i].Amount {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical amounts")
	}
}

func TestGenerateShape(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	txs := Generate(5, 7, now)
	for i, tx := range txs {
		if want := "TRX00" + string(rune('1'+i)); tx.ID != want {
			t.Fatalf("id[%d] = %q, want %q", i, tx.ID, want)
		}
		if tx.ParsedDate().IsZero() {
			t.Fatalf("bad date %q", tx.Date)
		}
		if tx.ParsedDate().After(now) {
			t.Fatalf("date %q is in the future", tx.Date)
		}
		if _, err := core.ParseAmountCents(tx.Amount); err != nil {
			t.Fatalf("amount %q does not parse: %v", tx.Amount, err)
		}
		if !core.KnownStatus(tx.Status) {
			t.Fatalf("status %q unknown", tx.Status)
		}
		if n := len(tx.ReceiptItems); n < 1 || n > 5 {
			t.Fatalf("item count %d out of range", n)
		}
		for j, ri := range tx.ReceiptItems {
			if ri.Quantity < 1 || ri.Price < 0 {
				t.Fatalf("item %d/%d has qty %d price %d", i, j, ri.Quantity, ri.Price)
			}
		}
	}
}

func TestGenerateZeroCount(t *testing.T) {
	if got := Generate(0, 1, time.Now()); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
