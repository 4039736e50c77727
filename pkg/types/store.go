package types

import (
	"errors"
	"time"
)

// TableInfo describes a table held by a Store.
type TableInfo struct {
	ID        string    `json:"table_id"`
	Name      string    `json:"name"`
	Backend   string    `json:"backend"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store keeps named tables across process runs. Callers attach to a data
// directory, save and load tables by name, and detach when done.
type Store interface {
	// Attach opens the store described by config. Creates DataDir if it does
	// not exist. Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases the store. Idempotent: multiple calls succeed.
	// After Detach, every other operation returns ErrStoreDetached.
	Detach() error

	// Save creates or replaces the table stored under name. The table keeps
	// its id and creation time across saves.
	Save(name string, t TabulatedFunction) (TableInfo, error)

	// Load rebuilds the named table with factory.
	// Returns ErrTableNotFound if no table has that name.
	Load(name string, factory Factory) (TabulatedFunction, error)

	// Info returns the metadata of the named table.
	Info(name string) (TableInfo, error)

	// List returns all stored tables ordered by name.
	List() ([]TableInfo, error)

	// Delete removes the named table.
	// Returns ErrTableNotFound if no table has that name.
	Delete(name string) error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrTableNotFound   = errors.New("table not found")
	ErrInvalidName     = errors.New("invalid table name")
)
