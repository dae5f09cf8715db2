// Package worker runs the background consumer that audits transaction
// updates and periodically exports category summaries. It reads from the
// shared snapshot rather than the web process, so it can run as its own
// binary against the same database.
package worker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"billfold/internal/core"
	"billfold/internal/events"
	"billfold/internal/export/sheets"
	"billfold/internal/log"
	"billfold/internal/snapshot"
	"billfold/internal/snapshot/sqlite"
	"billfold/internal/view"
)

// AuditAppender records processed update events.
type AuditAppender interface {
	AppendAudit(ctx context.Context, rec sqlite.AuditRecord) error
}

// Consumer delivers update events to a handler until the context ends.
type Consumer interface {
	Consume(ctx context.Context, handler func(context.Context, *events.TransactionUpdated) error) error
}

type Worker struct {
	snap     snapshot.Store
	audit    AuditAppender
	exporter sheets.Exporter
	logger   *log.Logger
}

func New(snap snapshot.Store, audit AuditAppender, exporter sheets.Exporter, logger *log.Logger) *Worker {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	}
	return &Worker{
		snap:     snap,
		audit:    audit,
		exporter: exporter,
		logger:   logger,
	}
}

// HandleUpdate audits a single transaction update event. An event for a
// transaction missing from the snapshot is logged and dropped; requeueing
// it would loop forever.
func (w *Worker) HandleUpdate(ctx context.Context, msg *events.TransactionUpdated) error {
	txs, found, err := w.snap.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		w.logger.WarnContext(ctx, "update event before first snapshot, dropping",
			log.FieldTransactionID, msg.ID, log.FieldVersion, msg.Version)
		return nil
	}

	var tx *core.Transaction
	for i := range txs {
		if txs[i].ID == msg.ID {
			tx = &txs[i]
			break
		}
	}
	if tx == nil {
		w.logger.WarnContext(ctx, "update event for unknown transaction, dropping",
			log.FieldTransactionID, msg.ID, log.FieldVersion, msg.Version)
		return nil
	}

	rec := sqlite.AuditRecord{
		TxID:     tx.ID,
		Version:  msg.Version,
		Amount:   tx.Amount,
		Category: tx.Category,
	}
	if err := w.audit.AppendAudit(ctx, rec); err != nil {
		return fmt.Errorf("audit update for %s: %w", msg.ID, err)
	}

	w.logger.InfoContext(ctx, "audited transaction update",
		log.FieldOperation, log.OpAudit,
		log.FieldTransactionID, tx.ID,
		log.FieldVersion, msg.Version,
		log.FieldCategory, tx.Category,
		log.FieldAmount, tx.Amount)
	return nil
}

// Export writes the current category summary to the configured exporter.
func (w *Worker) Export(ctx context.Context) error {
	if w.exporter == nil {
		return nil
	}

	txs, found, err := w.snap.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		w.logger.InfoContext(ctx, "no snapshot yet, skipping export")
		return nil
	}

	totals := view.GroupByCategory(txs)
	if err := w.exporter.ExportSummary(ctx, totals); err != nil {
		return fmt.Errorf("export summary: %w", err)
	}

	w.logger.InfoContext(ctx, "exported category summary",
		log.FieldOperation, log.OpExport,
		"categories", len(totals))
	return nil
}

// Run consumes update events and exports summaries on a timer until ctx is
// cancelled. Export failures are logged and retried on the next tick;
// consumer failures stop the worker.
func (w *Worker) Run(ctx context.Context, consumer Consumer, exportInterval time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return consumer.Consume(ctx, w.HandleUpdate)
	})

	if w.exporter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(exportInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
					if err := w.Export(ctx); err != nil {
						w.logger.ErrorContext(ctx, "summary export failed", log.FieldError, err)
					}
				}
			}
		})
	}

	return g.Wait()
}
