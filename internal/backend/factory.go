package backend

import (
	"context"
	"fmt"

	"billfold/internal/log"
	"billfold/internal/snapshot/bolt"
	"billfold/internal/snapshot/memory"
	"billfold/internal/snapshot/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentApp)
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, cfg Config) (*BackendResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case MemoryBackend:
		return f.createMemoryBackend()
	case BoltBackend:
		return f.createBoltBackend(cfg)
	case SQLiteBackend:
		return f.createSQLiteBackend(cfg)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func (f *DefaultFactory) createMemoryBackend() (*BackendResult, error) {
	f.logger.Info("initialized memory backend")

	return &BackendResult{
		Store:   memory.New(),
		Cleanup: nil,
	}, nil
}

func (f *DefaultFactory) createBoltBackend(cfg Config) (*BackendResult, error) {
	store, err := bolt.Open(cfg.BoltDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt snapshot store: %w", err)
	}

	f.logger.Info("initialized bolt backend", log.FieldBackend, BoltBackend.String(), "db_path", cfg.BoltDBPath)

	return &BackendResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(cfg Config) (*BackendResult, error) {
	store, err := sqlite.Open(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite snapshot store: %w", err)
	}

	f.logger.Info("initialized sqlite backend", log.FieldBackend, SQLiteBackend.String(), "db_path", cfg.SQLiteDBPath)

	return &BackendResult{
		Store:   store,
		Audit:   store,
		Cleanup: store.Close,
	}, nil
}
