package tabulated

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/tabula/internal/array"
	"github.com/mesh-intelligence/tabula/internal/linked"
	"github.com/mesh-intelligence/tabula/internal/tabular"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// Factories for the two built-in backends.
var (
	ArrayFactory  types.Factory = array.Factory{}
	LinkedFactory types.Factory = linked.Factory{}
)

// DefaultFactory is the factory in effect before any SetFactory call.
var DefaultFactory = ArrayFactory

var (
	factoryMu sync.RWMutex
	factory   = DefaultFactory
)

// SetFactory replaces the process-wide factory. Tables created earlier keep
// their backend. A nil factory restores DefaultFactory.
func SetFactory(f types.Factory) {
	if f == nil {
		f = DefaultFactory
	}
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factory = f
}

// GetFactory returns the process-wide factory.
func GetFactory() types.Factory {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	return factory
}

// FactoryFor returns the factory for a backend name.
// Returns ErrBackendUnknown if the name is not a supported backend.
func FactoryFor(backend string) (types.Factory, error) {
	switch backend {
	case types.BackendArray:
		return ArrayFactory, nil
	case types.BackendLinked:
		return LinkedFactory, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, backend)
	}
}

// FromPoints builds a table from points with the current factory.
func FromPoints(points []types.Point) (types.TabulatedFunction, error) {
	return GetFactory().FromPoints(points)
}

// FromRange samples the seed function over [leftX, rightX] with the current
// factory.
func FromRange(leftX, rightX float64, count int) (types.TabulatedFunction, error) {
	return GetFactory().FromRange(leftX, rightX, count)
}

// FromArrays builds a table from parallel slices with the current factory.
func FromArrays(xs, ys []float64) (types.TabulatedFunction, error) {
	return GetFactory().FromArrays(xs, ys)
}

// Tabulate samples fn at count evenly spaced x in [leftX, rightX] and builds
// the table with the current factory.
// Returns ErrInvalidArgument if count < 2 or the bounds do not produce
// strictly increasing x.
func Tabulate(fn types.Function, leftX, rightX float64, count int) (types.TabulatedFunction, error) {
	return TabulateWith(GetFactory(), fn, leftX, rightX, count)
}

// TabulateWith is Tabulate with an explicit factory.
func TabulateWith(f types.Factory, fn types.Function, leftX, rightX float64, count int) (types.TabulatedFunction, error) {
	if count < tabular.MinPoints {
		return nil, fmt.Errorf("%w: at least %d points required, got %d", types.ErrInvalidArgument, tabular.MinPoints, count)
	}
	xs, ys := tabular.Sample(leftX, rightX, count, fn.Value)
	return f.FromArrays(xs, ys)
}

// BackendOf reports which built-in backend produced t, or "" for a table
// of any other implementation.
func BackendOf(t types.TabulatedFunction) string {
	switch v := t.(type) {
	case *array.Table:
		return types.BackendArray
	case *linked.Table:
		return types.BackendLinked
	case *Synchronized:
		return BackendOf(v.table)
	default:
		return ""
	}
}
