// Package sqlite provides the public constructor for the SQLite table store
// while keeping the implementation internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/tabula/internal/sqlite"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// NewStore creates a detached SQLite store. Call Attach with a Config to
// open it. A nil logger disables logging.
//
// Example:
//
//	store := sqlite.NewStore(nil)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendArray,
//	    DataDir: ".tabula-db",
//	})
//	defer store.Detach()
func NewStore(logger *zap.Logger) types.Store {
	return sqlite.NewStore(sqlite.WithLogger(logger))
}
