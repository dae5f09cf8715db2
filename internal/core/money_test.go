package core

import (
	"encoding/json"
	"testing"
)

func TestParseAmountCents(t *testing.T) {
	cases := []struct {
		in  string
		out Cents
		ok  bool
	}{
		{"1", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0", 0, true},
		{"0.00", 0, true},
		{"-500.00", -50000, true},
		{"-0.01", -1, true},
		{"+2.50", 250, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 12.34 ", 1234, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"12e3", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmountCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error, got %d", tc.in, got)
		}
	}
}

func TestAmountCentsOrZero(t *testing.T) {
	if got := AmountCentsOrZero("not-a-number"); got != 0 {
		t.Fatalf("malformed amount expected 0, got %d", got)
	}
	if got := AmountCentsOrZero("-12.50"); got != -1250 {
		t.Fatalf("expected -1250, got %d", got)
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		in  Cents
		out string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{3000, "30.00"},
		{-50, "-0.50"},
		{-123456, "-1234.56"},
	}
	for _, tc := range cases {
		if got := FormatCents(tc.in); got != tc.out {
			t.Fatalf("FormatCents(%d) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestCentsJSONRoundTrip(t *testing.T) {
	item := ReceiptItem{ID: "ITEM001", Description: "Coffee", Quantity: 2, Price: 1050}
	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"ITEM001","description":"Coffee","quantity":2,"price":10.50}`
	if string(data) != want {
		t.Fatalf("marshal = %s, want %s", data, want)
	}

	var back ReceiptItem
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Price != 1050 {
		t.Fatalf("price round-trip = %d, want 1050", back.Price)
	}

	// Fractional prices from the old generator (e.g. 33.33) must survive.
	var ri ReceiptItem
	if err := json.Unmarshal([]byte(`{"id":"ITEM002","quantity":1,"price":33.33}`), &ri); err != nil {
		t.Fatalf("unmarshal number price: %v", err)
	}
	if ri.Price != 3333 {
		t.Fatalf("price = %d, want 3333", ri.Price)
	}
}
