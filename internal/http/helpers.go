package http

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"billfold/internal/core"
	"billfold/internal/view"
)

// rangeOptions are the selectable time windows, in months. 0 means all.
var rangeOptions = []int{1, 3, 6, 12, view.RangeAll}

// parseMonths reads the range query parameter. Anything unrecognized
// falls back to all time.
func parseMonths(r *http.Request) int {
	v := strings.TrimSpace(r.URL.Query().Get("range"))
	if v == "" || v == "all" {
		return view.RangeAll
	}
	months, err := strconv.Atoi(v)
	if err != nil || months < 0 {
		return view.RangeAll
	}
	return months
}

// parseTransactionForm rebuilds a transaction from the edit form. Receipt
// items arrive as parallel arrays; malformed quantities and prices become
// zero rather than failing the whole edit.
func parseTransactionForm(r *http.Request, id string) core.Transaction {
	t := core.Transaction{
		ID:          id,
		Date:        sanitizeInput(r.Form.Get("date")),
		Category:    sanitizeInput(r.Form.Get("category")),
		Description: sanitizeInput(r.Form.Get("description")),
		Amount:      sanitizeInput(r.Form.Get("amount")),
		Method:      sanitizeInput(r.Form.Get("method")),
		Status:      sanitizeInput(r.Form.Get("status")),
	}

	ids := r.Form["item_id"]
	descs := r.Form["item_description"]
	qtys := r.Form["item_quantity"]
	prices := r.Form["item_price"]

	for i, itemID := range ids {
		item := core.ReceiptItem{ID: sanitizeInput(itemID)}
		if i < len(descs) {
			item.Description = sanitizeInput(descs[i])
		}
		if i < len(qtys) {
			if q, err := strconv.ParseInt(strings.TrimSpace(qtys[i]), 10, 64); err == nil && q >= 0 {
				item.Quantity = q
			}
		}
		if i < len(prices) {
			item.Price = core.AmountCentsOrZero(prices[i])
		}
		t.ReceiptItems = append(t.ReceiptItems, item)
	}

	return t
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"cents": func(c core.Cents) string { return core.FormatCents(c) },
	}
}
