// Package ledgerdb implements the LedgerStore contract using BadgerHold.
// It holds wallets, transactions, bills, categories, and per-user
// preferences, and exposes badger's serializable transactions as the atomic
// multi-record primitive the balance engine depends on.
package ledgerdb

import (
	"fmt"
	"os"
	"sync"

	"github.com/timshannon/badgerhold/v4"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/interfaces"
)

// Compile-time interface check
var _ interfaces.LedgerStore = (*Store)(nil)

// Store implements interfaces.LedgerStore backed by a single BadgerHold
// database.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger

	mu       sync.Mutex
	watchers map[int]*watcher
	nextID   int
	closed   bool
}

// kvSep is the composite key separator for UserKeyValue records. A null byte
// prevents collisions when userID or key contain ":".
const kvSep = "\x00"

// NewStore opens (or creates) a ledger database at the given directory path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger db path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger db at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("Ledger store opened")
	return &Store{
		db:       db,
		logger:   logger,
		watchers: make(map[int]*watcher),
	}, nil
}

// Close shuts down the watcher fan-out and the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		for id, w := range s.watchers {
			close(w.ch)
			delete(s.watchers, id)
		}
	}
	s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
