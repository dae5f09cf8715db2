// Package snapshot defines the port for durable transaction snapshots.
//
// The store persists the whole transaction list as one snapshot: Save always
// rewrites everything, Load reads everything back. Backends live in the
// subpackages (memory, bolt, sqlite) and are selected through
// internal/backend.
package snapshot

import (
	"context"

	"billfold/internal/core"
)

// Store reads and writes the full transaction snapshot.
type Store interface {
	// Load returns the persisted list. found is false when no snapshot has
	// been written yet, which tells the caller to seed.
	Load(ctx context.Context) (txs []core.Transaction, found bool, err error)

	// Save replaces the persisted snapshot wholesale.
	Save(ctx context.Context, txs []core.Transaction) error
}

// Key is the fixed key the list is stored under in key-value backends.
const Key = "transactions"
