// Package memory is the in-process snapshot backend, used as the default
// backend and as the test double for the store.
package memory

import (
	"context"
	"sync"

	"billfold/internal/core"
)

type Store struct {
	mu    sync.Mutex
	txs   []core.Transaction
	saved bool

	// FailSaves makes every Save return core.ErrSnapshotWrite; tests use it
	// to exercise persistence-failure paths.
	FailSaves bool
}

func New() *Store {
	return &Store{}
}

// NewWith returns a store preloaded with a snapshot, as if it had been saved
// in an earlier session.
func NewWith(txs []core.Transaction) *Store {
	return &Store{txs: core.CloneAll(txs), saved: true}
}

func (s *Store) Load(_ context.Context) ([]core.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return nil, false, nil
	}
	return core.CloneAll(s.txs), true, nil
}

func (s *Store) Save(_ context.Context, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves {
		return core.ErrSnapshotWrite
	}
	s.txs = core.CloneAll(txs)
	s.saved = true
	return nil
}

// Saved reports whether any snapshot has been written.
func (s *Store) Saved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}
