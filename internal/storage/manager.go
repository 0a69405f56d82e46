// Package storage coordinates the storage backends for Centsible.
package storage

import (
	"fmt"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/interfaces"
	"github.com/centsible/centsible/internal/storage/ledgerdb"
)

// Compile-time interface check
var _ interfaces.StorageManager = (*Manager)(nil)

// Manager implements StorageManager over the embedded ledger database.
type Manager struct {
	ledger   interfaces.LedgerStore
	dataPath string
	logger   *common.Logger
}

// NewManager opens all storage backends described by the config.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ledger, err := ledgerdb.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger store: %w", err)
	}
	return &Manager{
		ledger:   ledger,
		dataPath: config.Storage.Path,
		logger:   logger,
	}, nil
}

// Ledger returns the ledger store.
func (m *Manager) Ledger() interfaces.LedgerStore {
	return m.ledger
}

// DataPath returns the base data directory path.
func (m *Manager) DataPath() string {
	return m.dataPath
}

// Close shuts down all storage backends.
func (m *Manager) Close() error {
	if m.ledger != nil {
		if err := m.ledger.Close(); err != nil {
			m.logger.Error().Err(err).Msg("Failed to close ledger store")
			return err
		}
		m.ledger = nil
	}
	return nil
}
