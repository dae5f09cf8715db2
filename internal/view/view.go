// Package view is the pure aggregation layer between the transaction store
// and its consumers. Every function takes the current list plus view
// parameters and derives a new slice; nothing here holds state or mutates
// its input.
package view

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"billfold/internal/core"
)

// Column identifies a sortable table column. Sorting goes through typed
// accessors rather than runtime field lookup.
type Column string

const (
	ColID          Column = "id"
	ColDate        Column = "date"
	ColCategory    Column = "category"
	ColDescription Column = "description"
	ColAmount      Column = "amount"
	ColMethod      Column = "method"
	ColStatus      Column = "status"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Columns lists the sortable columns in table order.
func Columns() []Column {
	return []Column{ColID, ColDate, ColCategory, ColDescription, ColAmount, ColMethod, ColStatus}
}

// ParseColumn maps a query-string value to a Column, defaulting to none.
func ParseColumn(s string) (Column, bool) {
	for _, c := range Columns() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// ParseDirection maps a query-string value to a Direction, defaulting to asc.
func ParseDirection(s string) Direction {
	if s == string(Desc) {
		return Desc
	}
	return Asc
}

// RangeAll disables time filtering.
const RangeAll = 0

// FilterByRange keeps transactions dated on or after now minus the given
// number of calendar months. months <= 0 returns the input unchanged.
func FilterByRange(txs []core.Transaction, months int, now time.Time) []core.Transaction {
	if months <= 0 {
		return txs
	}
	cutoff := now.AddDate(0, -months, 0)
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		d := t.ParsedDate()
		if d.IsZero() {
			continue
		}
		if !d.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByText keeps transactions where the query is a case-insensitive
// substring of the date, category, description or method, or of any field of
// any receipt item. An empty query matches everything.
func FilterByText(txs []core.Transaction, query string) []core.Transaction {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return txs
	}
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if matchesText(t, query) {
			out = append(out, t)
		}
	}
	return out
}

func matchesText(t core.Transaction, query string) bool {
	for _, v := range []string{t.Date, t.Category, t.Description, t.Method} {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	for _, ri := range t.ReceiptItems {
		fields := []string{
			ri.ID,
			ri.Description,
			strconv.FormatInt(ri.Quantity, 10),
			core.FormatCents(ri.Price),
		}
		for _, v := range fields {
			if strings.Contains(strings.ToLower(v), query) {
				return true
			}
		}
	}
	return false
}

// SortBy returns a stably sorted copy. Ties keep their prior relative order,
// so repeated sorts are deterministic.
func SortBy(txs []core.Transaction, col Column, dir Direction) []core.Transaction {
	out := make([]core.Transaction, len(txs))
	copy(out, txs)
	less := lessFunc(col)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(col Column) func(a, b core.Transaction) bool {
	switch col {
	case ColID:
		return func(a, b core.Transaction) bool { return a.ID < b.ID }
	case ColDate:
		return func(a, b core.Transaction) bool { return a.ParsedDate().Before(b.ParsedDate()) }
	case ColCategory:
		return func(a, b core.Transaction) bool { return a.Category < b.Category }
	case ColDescription:
		return func(a, b core.Transaction) bool { return a.Description < b.Description }
	case ColAmount:
		return func(a, b core.Transaction) bool { return a.AmountCents() < b.AmountCents() }
	case ColMethod:
		return func(a, b core.Transaction) bool { return a.Method < b.Method }
	case ColStatus:
		return func(a, b core.Transaction) bool { return a.Status < b.Status }
	}
	return nil
}

// GroupByCategory sums abs(amount) per category and returns totals ordered
// largest first. Equal totals order by name so chart output is stable.
// Malformed amounts count as zero.
func GroupByCategory(txs []core.Transaction) []core.CategoryTotal {
	sums := make(map[string]core.Cents)
	for _, t := range txs {
		c := t.AmountCents()
		if c < 0 {
			c = -c
		}
		sums[t.Category] += c
	}
	out := make([]core.CategoryTotal, 0, len(sums))
	for name, total := range sums {
		out = append(out, core.CategoryTotal{Name: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SelectCategory keeps transactions whose category equals the given label,
// used for chart drill-down.
func SelectCategory(txs []core.Transaction, category string) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}
