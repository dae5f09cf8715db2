package sheets

import (
	"context"
	"testing"
	"time"

	"billfold/internal/core"
)

func TestNewClientRequiresSpreadsheetID(t *testing.T) {
	if _, err := NewClient(context.Background(), "", "Summary"); err == nil {
		t.Fatal("expected error for empty spreadsheet id")
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	if _, err := NewClient(context.Background(), "sheet-id", "Summary"); err == nil {
		t.Fatal("expected error when no credentials are configured")
	}
}

func TestSummaryRows(t *testing.T) {
	totals := []core.CategoryTotal{
		{Name: "Food", Total: 12550},
		{Name: "Transport", Total: 3000},
	}
	exportedAt := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	rows := SummaryRows(totals, exportedAt)

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	header := rows[0]
	if header[0] != "Category" || header[1] != "Total" {
		t.Errorf("unexpected header row: %v", header)
	}
	if rows[1][0] != "Food" || rows[1][1] != "125.50" {
		t.Errorf("unexpected first data row: %v", rows[1])
	}
	if rows[2][2] != "2024-03-15T12:00:00Z" {
		t.Errorf("unexpected export timestamp: %v", rows[2][2])
	}
}

func TestSummaryRowsEmpty(t *testing.T) {
	rows := SummaryRows(nil, time.Now())
	if len(rows) != 1 {
		t.Fatalf("got %d rows for empty totals, want header only", len(rows))
	}
}
