// Package store owns the canonical in-memory transaction list and its
// durable mirror. All mutation funnels through Update so the copy-on-write
// discipline stays enforceable; consumers only ever see copies.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"billfold/internal/core"
	"billfold/internal/log"
	"billfold/internal/seed"
	"billfold/internal/snapshot"
)

// UpdatePublisher notifies interested consumers that a transaction changed.
// A nil publisher disables notifications.
type UpdatePublisher interface {
	PublishTransactionUpdated(ctx context.Context, id string, version int64) error
}

type Store struct {
	snap      snapshot.Store
	publisher UpdatePublisher
	seedCount int
	seedValue int64
	now       func() time.Time

	mu      sync.Mutex
	txs     []core.Transaction
	loaded  bool
	version int64
}

// New builds a store over the given snapshot backend. seedCount/seedValue
// drive the dummy generator when no snapshot exists yet; publisher may be
// nil.
func New(snap snapshot.Store, publisher UpdatePublisher, seedCount int, seedValue int64) *Store {
	if seedCount <= 0 {
		seedCount = seed.DefaultCount
	}
	return &Store{
		snap:      snap,
		publisher: publisher,
		seedCount: seedCount,
		seedValue: seedValue,
		now:       time.Now,
	}
}

// Load returns the current list, reading the snapshot (or seeding a fresh
// one) on first access. Later calls never re-seed.
func (s *Store) Load(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return core.CloneAll(s.txs), nil
}

func (s *Store) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	txs, found, err := s.snap.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		txs = seed.Generate(s.seedCount, s.seedValue, s.now())
		if err := s.snap.Save(ctx, txs); err != nil {
			return fmt.Errorf("persist seeded snapshot: %w", err)
		}
		slog.InfoContext(ctx, "Seeded fresh transaction snapshot",
			log.FieldOperation, log.OpSeed,
			"count", len(txs),
			"seed", s.seedValue)
	}

	s.txs = txs
	s.loaded = true
	return nil
}

// Get returns the transaction with the given id, or core.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return core.Transaction{}, err
	}
	for _, t := range s.txs {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

// Neighbors returns the ids of the transactions immediately before and after
// id in store order; empty strings at the ends. Unknown id returns
// core.ErrNotFound.
func (s *Store) Neighbors(ctx context.Context, id string) (prevID, nextID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return "", "", err
	}
	for i, t := range s.txs {
		if t.ID != id {
			continue
		}
		if i > 0 {
			prevID = s.txs[i-1].ID
		}
		if i < len(s.txs)-1 {
			nextID = s.txs[i+1].ID
		}
		return prevID, nextID, nil
	}
	return "", "", core.ErrNotFound
}

// Update replaces the stored transaction with the same id, preserving order,
// then rewrites the full snapshot. Updating an unknown id is an explicit
// error rather than a silent no-op. The in-memory replacement survives a
// failed snapshot write so the caller can retry the save.
func (s *Store) Update(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		s.mu.Unlock()
		return err
	}

	idx := -1
	for i := range s.txs {
		if s.txs[i].ID == t.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("update %s: %w", t.ID, core.ErrNotFound)
	}

	s.txs[idx] = t.Clone()
	s.version++
	version := s.version

	if err := s.snap.Save(ctx, s.txs); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", core.ErrSnapshotWrite, err)
	}
	s.mu.Unlock()

	// Local write succeeded; the event is best effort.
	if s.publisher != nil {
		if err := s.publisher.PublishTransactionUpdated(ctx, t.ID, version); err != nil {
			slog.ErrorContext(ctx, "Failed to publish update event",
				log.FieldOperation, log.OpUpdate,
				log.FieldTransactionID, t.ID,
				log.FieldVersion, version,
				log.FieldError, err)
		}
	}

	return nil
}

// Version increments on every successful update; views use it as a cache
// key component.
func (s *Store) Version() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Len returns the number of transactions currently held.
func (s *Store) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}
	return len(s.txs), nil
}
