package store

import (
	"errors"

	"github.com/calvinwijaya/blackjack-table/internal/table"
)

var ErrTableNotFound = errors.New("table not found")

// Store defines the interface for table storage
type Store interface {
	// SaveTable adds or replaces a table
	SaveTable(t *table.Table) error

	// GetTable retrieves a table by ID
	GetTable(id string) (*table.Table, error)

	// DeleteTable removes a table from the store
	DeleteTable(id string) error

	// GetAllTables returns all tables, oldest first
	GetAllTables() ([]*table.Table, error)
}
