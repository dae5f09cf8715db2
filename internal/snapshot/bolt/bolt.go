// Package bolt persists the transaction snapshot in a bbolt database: one
// bucket, one fixed key, the JSON-serialized list as the value.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"billfold/internal/core"
	"billfold/internal/snapshot"
)

const bucketSnapshots = "snapshots"

type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the bbolt file and its snapshot bucket.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshots))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket %s: %w", bucketSnapshots, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Load(_ context.Context) ([]core.Transaction, bool, error) {
	var txs []core.Transaction
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketSnapshots)).Get([]byte(snapshot.Key))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &txs)
	})
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	return txs, found, nil
}

func (s *Store) Save(_ context.Context, txs []core.Transaction) error {
	data, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshots)).Put([]byte(snapshot.Key), data)
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
