package core

import (
	"errors"
	"time"
)

const (
	StatusCompleted = "Completed"
	StatusPending   = "Pending"
	StatusCancelled = "Cancelled"
)

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02"

var (
	ErrNotFound      = errors.New("transaction not found")
	ErrSnapshotWrite = errors.New("snapshot write failed")
	ErrEmptyID       = errors.New("empty transaction id")
)

type (
	// ReceiptItem is one line entry of a transaction's itemized receipt.
	// It has no lifecycle outside its owning transaction.
	ReceiptItem struct {
		ID          string `json:"id"`
		Description string `json:"description"`
		Quantity    int64  `json:"quantity"`
		Price       Cents  `json:"price"`
	}

	// Transaction is one recorded financial event. Amount is carried as the
	// raw decimal string it arrived with: the store accepts and round-trips
	// malformed values, only the aggregation layer interprets them.
	Transaction struct {
		ID           string        `json:"id"`
		Date         string        `json:"date"`
		Category     string        `json:"category"`
		Description  string        `json:"description"`
		Amount       string        `json:"amount"`
		Method       string        `json:"method"`
		Status       string        `json:"status"`
		ReceiptItems []ReceiptItem `json:"receiptItems"`
	}
)

// Statuses lists the recognized status values in display order.
func Statuses() []string {
	return []string{StatusCompleted, StatusPending, StatusCancelled}
}

// KnownStatus reports whether s is one of the enumerated status values.
// Unknown values are still carried; consumers fall back to a neutral badge.
func KnownStatus(s string) bool {
	switch s {
	case StatusCompleted, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// LineTotal returns quantity times price in cents.
func (ri ReceiptItem) LineTotal() Cents {
	return Cents(ri.Quantity) * ri.Price
}

// Total sums the line totals of all receipt items.
func (t Transaction) Total() Cents {
	var sum Cents
	for _, ri := range t.ReceiptItems {
		sum += ri.LineTotal()
	}
	return sum
}

// AmountCents parses the amount string, treating malformed values as zero.
func (t Transaction) AmountCents() Cents {
	return AmountCentsOrZero(t.Amount)
}

// ParsedDate returns the transaction date, or the zero time if it does not
// parse as YYYY-MM-DD.
func (t Transaction) ParsedDate() time.Time {
	d, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return time.Time{}
	}
	return d
}

// Clone returns a deep copy. Callers that hand transactions across component
// boundaries copy first so the store's list is never mutated in place.
func (t Transaction) Clone() Transaction {
	out := t
	if t.ReceiptItems != nil {
		out.ReceiptItems = make([]ReceiptItem, len(t.ReceiptItems))
		copy(out.ReceiptItems, t.ReceiptItems)
	}
	return out
}

// CloneAll deep-copies a transaction list.
func CloneAll(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, t := range txs {
		out[i] = t.Clone()
	}
	return out
}

// Validate checks the minimal structural requirements the store enforces.
// Everything else (unknown statuses, malformed amounts, missing fields) is
// accepted and passed through.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return ErrEmptyID
	}
	return nil
}
