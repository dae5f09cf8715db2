// Package sqlite is the relational snapshot backend. The snapshot contract
// stays the same as the key-value backends (wholesale rewrite on Save), but
// rows are normalized so the audit worker can query them in place.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"billfold/internal/core"
)

type Store struct {
	db *sql.DB
}

// AuditRecord is one row of the update audit trail the worker maintains.
type AuditRecord struct {
	ID        int64
	TxID      string
	Version   int64
	Amount    string
	Category  string
	CreatedAt time.Time
}

// Open opens the database, creating the file and running migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the full snapshot in store order. Presence is tracked by the
// snapshot_state marker, so an empty saved snapshot still reads back as
// found, matching the key-value backends.
func (s *Store) Load(ctx context.Context) ([]core.Transaction, bool, error) {
	var saved int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshot_state`).Scan(&saved)
	if err != nil {
		return nil, false, fmt.Errorf("query snapshot state: %w", err)
	}
	if saved == 0 {
		return nil, false, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, category, description, amount, method, status
		 FROM transactions ORDER BY position`)
	if err != nil {
		return nil, false, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	index := make(map[string]int)
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Category, &t.Description, &t.Amount, &t.Method, &t.Status); err != nil {
			return nil, false, fmt.Errorf("scan transaction: %w", err)
		}
		index[t.ID] = len(txs)
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate transactions: %w", err)
	}
	itemRows, err := s.db.QueryContext(ctx,
		`SELECT tx_id, item_id, description, quantity, price_cents
		 FROM receipt_items ORDER BY tx_id, position`)
	if err != nil {
		return nil, false, fmt.Errorf("query receipt items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var txID string
		var ri core.ReceiptItem
		var price int64
		if err := itemRows.Scan(&txID, &ri.ID, &ri.Description, &ri.Quantity, &price); err != nil {
			return nil, false, fmt.Errorf("scan receipt item: %w", err)
		}
		ri.Price = core.Cents(price)
		if i, ok := index[txID]; ok {
			txs[i].ReceiptItems = append(txs[i].ReceiptItems, ri)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate receipt items: %w", err)
	}

	return txs, true, nil
}

// Save rewrites the snapshot inside one transaction: delete everything,
// reinsert everything. The audit log is untouched.
func (s *Store) Save(ctx context.Context, txs []core.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot_state (id, saved_at) VALUES (1, CURRENT_TIMESTAMP)
		 ON CONFLICT (id) DO UPDATE SET saved_at = CURRENT_TIMESTAMP`); err != nil {
		return fmt.Errorf("mark snapshot saved: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM receipt_items`); err != nil {
		return fmt.Errorf("clear receipt items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	insTx, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (id, position, date, category, description, amount, method, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare transaction insert: %w", err)
	}
	defer insTx.Close()

	insItem, err := tx.PrepareContext(ctx,
		`INSERT INTO receipt_items (tx_id, position, item_id, description, quantity, price_cents)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare item insert: %w", err)
	}
	defer insItem.Close()

	for pos, t := range txs {
		if _, err := insTx.ExecContext(ctx, t.ID, pos, t.Date, t.Category, t.Description, t.Amount, t.Method, t.Status); err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
		for ipos, ri := range t.ReceiptItems {
			if _, err := insItem.ExecContext(ctx, t.ID, ipos, ri.ID, ri.Description, ri.Quantity, int64(ri.Price)); err != nil {
				return fmt.Errorf("insert item %s/%s: %w", t.ID, ri.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot write: %w", err)
	}
	return nil
}

// AppendAudit records one processed update event.
func (s *Store) AppendAudit(ctx context.Context, rec AuditRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log (tx_id, version, amount, category) VALUES (?, ?, ?, ?)`,
		rec.TxID, rec.Version, rec.Amount, rec.Category)
	if err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}

// RecentAudit returns the newest audit records, newest first.
func (s *Store) RecentAudit(ctx context.Context, limit int) ([]AuditRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tx_id, version, amount, category, created_at
		 FROM audit_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var out []AuditRecord
	for rows.Next() {
		var rec AuditRecord
		if err := rows.Scan(&rec.ID, &rec.TxID, &rec.Version, &rec.Amount, &rec.Category, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
