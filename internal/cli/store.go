package cli

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/tabula/internal/sqlite"
	"github.com/mesh-intelligence/tabula/pkg/tabulated"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

var errTableExists = errors.New("table already exists")

func factoryFor(backend string) (types.Factory, error) {
	return tabulated.FactoryFor(backend)
}

// withStore attaches the store for the duration of fn and classifies the
// error fn returns.
func (a *app) withStore(fn func(s *sqlite.Store) error) (err error) {
	s := sqlite.NewStore(sqlite.WithLogger(a.logger))
	if err := s.Attach(a.config); err != nil {
		return sysError(fmt.Errorf("attach store: %w", err))
	}
	defer func() {
		if derr := s.Detach(); derr != nil && err == nil {
			err = sysError(fmt.Errorf("detach store: %w", derr))
		}
	}()
	return classify(fn(s))
}

// saveNew stores t under name, refusing to replace an existing table unless
// force is set.
func saveNew(s *sqlite.Store, name string, t types.TabulatedFunction, force bool) (types.TableInfo, error) {
	if !force {
		_, err := s.Info(name)
		if err == nil {
			return types.TableInfo{}, userError(fmt.Errorf("%w: %q (use --force to replace)", errTableExists, name))
		}
		if !errors.Is(err, types.ErrTableNotFound) {
			return types.TableInfo{}, err
		}
	}
	return s.Save(name, t)
}

// loadFactory returns the factory stored tables are rebuilt with. Without an
// explicit --backend it is nil, so each table keeps the backend it was saved
// from.
func (a *app) loadFactory() types.Factory {
	if a.flags.backend == "" {
		return nil
	}
	return a.factory
}

// editTable loads the named table, applies edit, and saves the result.
func (a *app) editTable(s *sqlite.Store, name string, edit func(types.TabulatedFunction) error) (types.TableInfo, types.TabulatedFunction, error) {
	t, err := s.Load(name, a.loadFactory())
	if err != nil {
		return types.TableInfo{}, nil, err
	}
	if err := edit(t); err != nil {
		return types.TableInfo{}, nil, err
	}
	info, err := s.Save(name, t)
	if err != nil {
		return types.TableInfo{}, nil, err
	}
	return info, t, nil
}
