// Package core holds the transaction domain model and money handling.
//
// Monetary values are kept as integer cents for all arithmetic; decimal
// strings only exist at the edges (the persisted snapshot and the UI).
package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Cents is a monetary value in hundredths of the display unit. It marshals
// to a plain two-decimal JSON number so the snapshot format matches what the
// table and receipt forms show.
type Cents int64

// ParseAmountCents converts a signed decimal string to cents with half-up
// rounding on the third decimal place. Both dot and comma separators are
// accepted. Unlike expense entry parsing, zero and negative values are fine:
// the amount's sign distinguishes inflow from outflow.
func ParseAmountCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	s = strings.ReplaceAll(s, ",", ".")

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("bare sign is not an amount")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("malformed amount %q", s)
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("malformed amount %q", s)
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, fmt.Errorf("amount %q overflows", s)
	}

	// First two fractional digits, half-up on the third.
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}

	cents := iv*100 + frac
	if neg {
		cents = -cents
	}
	return Cents(cents), nil
}

// AmountCentsOrZero parses like ParseAmountCents but recovers from malformed
// input by returning zero. Aggregation uses this so one bad record never
// breaks a chart total.
func AmountCentsOrZero(s string) Cents {
	c, err := ParseAmountCents(s)
	if err != nil {
		return 0
	}
	return c
}

// FormatCents renders cents as a signed two-decimal string, e.g. "30.00",
// "-0.50".
func FormatCents(c Cents) string {
	neg := c < 0
	if neg {
		c = -c
	}
	s := fmt.Sprintf("%d.%02d", int64(c)/100, int64(c)%100)
	if neg {
		return "-" + s
	}
	return s
}

// String implements fmt.Stringer.
func (c Cents) String() string {
	return FormatCents(c)
}

// MarshalJSON writes the value as a two-decimal number (12.34, not "12.34").
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(FormatCents(c)), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string and rounds
// to cents. null leaves the value at zero.
func (c *Cents) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseAmountCents(s)
		if err != nil {
			return err
		}
		*c = v
		return nil
	}
	v, err := ParseAmountCents(string(data))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
