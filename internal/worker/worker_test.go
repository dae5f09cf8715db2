package worker

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"billfold/internal/core"
	"billfold/internal/events"
	"billfold/internal/log"
	"billfold/internal/snapshot/memory"
	"billfold/internal/snapshot/sqlite"
)

type recordingAudit struct {
	records []sqlite.AuditRecord
	fail    bool
}

func (a *recordingAudit) AppendAudit(_ context.Context, rec sqlite.AuditRecord) error {
	if a.fail {
		return errors.New("audit db unavailable")
	}
	a.records = append(a.records, rec)
	return nil
}

type recordingExporter struct {
	exported [][]core.CategoryTotal
	fail     bool
}

func (e *recordingExporter) ExportSummary(_ context.Context, totals []core.CategoryTotal) error {
	if e.fail {
		return errors.New("sheets unavailable")
	}
	e.exported = append(e.exported, totals)
	return nil
}

func sampleTransactions() []core.Transaction {
	return []core.Transaction{
		{ID: "TRX001", Date: "2024-01-15", Category: "Food", Amount: "45.00", Status: core.StatusCompleted},
		{ID: "TRX002", Date: "2024-01-20", Category: "Transport", Amount: "12.50", Status: core.StatusPending},
		{ID: "TRX003", Date: "2024-02-01", Category: "Food", Amount: "30.00", Status: core.StatusCompleted},
	}
}

func TestHandleUpdateAuditsTransaction(t *testing.T) {
	snap := memory.NewWith(sampleTransactions())
	audit := &recordingAudit{}
	w := New(snap, audit, nil, nil)

	msg := &events.TransactionUpdated{ID: "TRX002", Version: 7}
	if err := w.HandleUpdate(context.Background(), msg); err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}

	if len(audit.records) != 1 {
		t.Fatalf("got %d audit records, want 1", len(audit.records))
	}
	rec := audit.records[0]
	if rec.TxID != "TRX002" || rec.Version != 7 {
		t.Errorf("audit record = %+v, want TRX002 version 7", rec)
	}
	if rec.Amount != "12.50" || rec.Category != "Transport" {
		t.Errorf("audit record carries %q/%q, want 12.50/Transport", rec.Amount, rec.Category)
	}
}

func TestHandleUpdateLogsOperationField(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{
		Component: log.ComponentWorker,
		Handler:   slog.NewTextHandler(&buf, nil),
	})

	snap := memory.NewWith(sampleTransactions())
	w := New(snap, &recordingAudit{}, nil, logger)

	msg := &events.TransactionUpdated{ID: "TRX001", Version: 3}
	if err := w.HandleUpdate(context.Background(), msg); err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, log.FieldOperation+"="+log.OpAudit) {
		t.Errorf("log output missing operation field: %s", out)
	}
}

func TestHandleUpdateDropsUnknownTransaction(t *testing.T) {
	snap := memory.NewWith(sampleTransactions())
	audit := &recordingAudit{}
	w := New(snap, audit, nil, nil)

	msg := &events.TransactionUpdated{ID: "TRX999", Version: 1}
	if err := w.HandleUpdate(context.Background(), msg); err != nil {
		t.Fatalf("HandleUpdate returned error for unknown id: %v", err)
	}
	if len(audit.records) != 0 {
		t.Errorf("got %d audit records for unknown id, want 0", len(audit.records))
	}
}

func TestHandleUpdateDropsBeforeFirstSnapshot(t *testing.T) {
	snap := memory.New()
	audit := &recordingAudit{}
	w := New(snap, audit, nil, nil)

	msg := &events.TransactionUpdated{ID: "TRX001", Version: 1}
	if err := w.HandleUpdate(context.Background(), msg); err != nil {
		t.Fatalf("HandleUpdate returned error before first snapshot: %v", err)
	}
	if len(audit.records) != 0 {
		t.Errorf("got %d audit records, want 0", len(audit.records))
	}
}

func TestHandleUpdatePropagatesAuditFailure(t *testing.T) {
	snap := memory.NewWith(sampleTransactions())
	audit := &recordingAudit{fail: true}
	w := New(snap, audit, nil, nil)

	msg := &events.TransactionUpdated{ID: "TRX001", Version: 1}
	if err := w.HandleUpdate(context.Background(), msg); err == nil {
		t.Fatal("expected error when audit append fails")
	}
}

func TestExportWritesGroupedSummary(t *testing.T) {
	snap := memory.NewWith(sampleTransactions())
	exporter := &recordingExporter{}
	w := New(snap, &recordingAudit{}, exporter, nil)

	if err := w.Export(context.Background()); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	if len(exporter.exported) != 1 {
		t.Fatalf("got %d exports, want 1", len(exporter.exported))
	}
	totals := exporter.exported[0]
	if len(totals) != 2 {
		t.Fatalf("got %d categories, want 2", len(totals))
	}
	if totals[0].Name != "Food" || totals[0].Total != 7500 {
		t.Errorf("first category = %+v, want Food 7500", totals[0])
	}
	if totals[1].Name != "Transport" || totals[1].Total != 1250 {
		t.Errorf("second category = %+v, want Transport 1250", totals[1])
	}
}

func TestExportSkipsWithoutSnapshot(t *testing.T) {
	exporter := &recordingExporter{}
	w := New(memory.New(), &recordingAudit{}, exporter, nil)

	if err := w.Export(context.Background()); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if len(exporter.exported) != 0 {
		t.Errorf("got %d exports before first snapshot, want 0", len(exporter.exported))
	}
}

func TestExportWithoutExporterIsNoOp(t *testing.T) {
	w := New(memory.NewWith(sampleTransactions()), &recordingAudit{}, nil, nil)
	if err := w.Export(context.Background()); err != nil {
		t.Fatalf("Export without exporter returned error: %v", err)
	}
}
