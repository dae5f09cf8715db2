package view

import (
	"testing"
	"time"

	"billfold/internal/core"
)

func sample() []core.Transaction {
	return []core.Transaction{
		{ID: "TRX001", Date: "2024-01-01", Category: "Food", Description: "Groceries", Amount: "-120.00", Method: "Cash", Status: "Completed"},
		{ID: "TRX002", Date: "2024-03-01", Category: "Transport", Description: "Fuel", Amount: "-45.50", Method: "Credit Card", Status: "Pending"},
		{ID: "TRX003", Date: "2024-02-15", Category: "Income", Description: "Salary", Amount: "900.00", Method: "Bank Transfer", Status: "Completed"},
		{ID: "TRX004", Date: "2024-03-10", Category: "Food", Description: "Dinner out", Amount: "-30.00", Method: "Debit Card", Status: "Cancelled",
			ReceiptItems: []core.ReceiptItem{{ID: "ITEM001", Description: "Pizza", Quantity: 2, Price: 1500}}},
	}
}

func TestFilterByRange(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	got := FilterByRange(sample(), 1, now)
	ids := idsOf(got)
	if len(ids) != 2 || ids[0] != "TRX002" || ids[1] != "TRX004" {
		t.Fatalf("range filter ids = %v", ids)
	}
	if n := len(FilterByRange(sample(), RangeAll, now)); n != 4 {
		t.Fatalf("all range should keep everything, got %d", n)
	}
	if n := len(FilterByRange(nil, 3, now)); n != 0 {
		t.Fatalf("empty input should yield empty output, got %d", n)
	}
}

func TestFilterByTextEmptyQueryIsIdentity(t *testing.T) {
	in := sample()
	got := FilterByText(in, "")
	if len(got) != len(in) {
		t.Fatalf("expected %d rows, got %d", len(in), len(got))
	}
	for i := range in {
		if got[i].ID != in[i].ID {
			t.Fatalf("order changed at %d: %s != %s", i, got[i].ID, in[i].ID)
		}
	}
}

func TestFilterByTextMatchesTransactionFields(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"fuel", []string{"TRX002"}},
		{"FOOD", []string{"TRX001", "TRX004"}},
		{"bank", []string{"TRX003"}},
		{"2024-01", []string{"TRX001"}},
		{"no-such-thing", nil},
	}
	for _, tc := range cases {
		got := idsOf(FilterByText(sample(), tc.query))
		if !equalStrings(got, tc.want) {
			t.Fatalf("query %q: got %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestFilterByTextMatchesReceiptItems(t *testing.T) {
	got := idsOf(FilterByText(sample(), "pizza"))
	if !equalStrings(got, []string{"TRX004"}) {
		t.Fatalf("item description match: %v", got)
	}
	// Numeric item fields are searchable too.
	got = idsOf(FilterByText(sample(), "15.00"))
	if !equalStrings(got, []string{"TRX004"}) {
		t.Fatalf("item price match: %v", got)
	}
	got = idsOf(FilterByText(sample(), "item001"))
	if !equalStrings(got, []string{"TRX004"}) {
		t.Fatalf("item id match: %v", got)
	}
}

func TestSortByDateAndAmount(t *testing.T) {
	byDate := idsOf(SortBy(sample(), ColDate, Asc))
	if !equalStrings(byDate, []string{"TRX001", "TRX003", "TRX002", "TRX004"}) {
		t.Fatalf("date asc: %v", byDate)
	}
	byAmount := idsOf(SortBy(sample(), ColAmount, Asc))
	if !equalStrings(byAmount, []string{"TRX001", "TRX002", "TRX004", "TRX003"}) {
		t.Fatalf("amount asc: %v", byAmount)
	}
}

func TestSortByDescReversesAsc(t *testing.T) {
	// No duplicate keys in the sample, so desc must be the exact reverse.
	for _, col := range Columns() {
		asc := idsOf(SortBy(sample(), col, Asc))
		desc := idsOf(SortBy(sample(), col, Desc))
		for i := range asc {
			if asc[i] != desc[len(desc)-1-i] {
				t.Fatalf("column %s: desc is not reverse of asc (%v vs %v)", col, asc, desc)
			}
		}
	}
}

func TestSortIsStable(t *testing.T) {
	txs := []core.Transaction{
		{ID: "TRX001", Category: "Same"},
		{ID: "TRX002", Category: "Same"},
		{ID: "TRX003", Category: "Same"},
	}
	got := idsOf(SortBy(txs, ColCategory, Asc))
	if !equalStrings(got, []string{"TRX001", "TRX002", "TRX003"}) {
		t.Fatalf("ties must preserve prior order: %v", got)
	}
}

func TestGroupByCategory(t *testing.T) {
	totals := GroupByCategory(sample())
	if len(totals) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(totals))
	}
	if totals[0].Name != "Income" || totals[0].Total != 90000 {
		t.Fatalf("top category = %+v", totals[0])
	}
	if totals[1].Name != "Food" || totals[1].Total != 15000 {
		t.Fatalf("second category = %+v", totals[1])
	}

	// Grand total equals the sum of abs(amount) over all transactions.
	var sum core.Cents
	for _, ct := range totals {
		sum += ct.Total
	}
	var want core.Cents
	for _, tx := range sample() {
		c := tx.AmountCents()
		if c < 0 {
			c = -c
		}
		want += c
	}
	if sum != want {
		t.Fatalf("totals sum = %d, want %d", sum, want)
	}
}

func TestGroupByCategoryMalformedAmountCountsAsZero(t *testing.T) {
	txs := []core.Transaction{
		{ID: "TRX001", Category: "Odd", Amount: "not-a-number"},
		{ID: "TRX002", Category: "Odd", Amount: "-10.00"},
	}
	totals := GroupByCategory(txs)
	if len(totals) != 1 || totals[0].Total != 1000 {
		t.Fatalf("totals = %+v", totals)
	}
}

func TestSelectCategory(t *testing.T) {
	got := idsOf(SelectCategory(sample(), "Food"))
	if !equalStrings(got, []string{"TRX001", "TRX004"}) {
		t.Fatalf("select: %v", got)
	}
	if n := len(SelectCategory(nil, "Food")); n != 0 {
		t.Fatalf("empty input: %d", n)
	}
}

func idsOf(txs []core.Transaction) []string {
	var out []string
	for _, t := range txs {
		out = append(out, t.ID)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
