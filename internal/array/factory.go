package array

import "github.com/mesh-intelligence/tabula/pkg/types"

// Factory creates array-backed tables.
type Factory struct{}

// Name returns the backend name.
func (Factory) Name() string { return types.BackendArray }

// FromPoints builds a table from points sorted by strictly ascending x.
func (Factory) FromPoints(points []types.Point) (types.TabulatedFunction, error) {
	t, err := New(points)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// FromRange samples the seed function at count evenly spaced x in [leftX, rightX].
func (Factory) FromRange(leftX, rightX float64, count int) (types.TabulatedFunction, error) {
	t, err := NewRange(leftX, rightX, count)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// FromArrays builds a table from parallel x and y slices.
func (Factory) FromArrays(xs, ys []float64) (types.TabulatedFunction, error) {
	t, err := NewFromArrays(xs, ys)
	if err != nil {
		return nil, err
	}
	return t, nil
}
