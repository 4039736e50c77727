package types

// Factory creates tables backed by one storage strategy. The three
// constructors share the validation rules of the concrete backends and
// return ErrInvalidArgument on malformed input.
type Factory interface {
	// Name returns the backend name, one of the Backend constants.
	Name() string

	// FromPoints builds a table from a copy of points, which must hold at
	// least two points with strictly increasing x.
	FromPoints(points []Point) (TabulatedFunction, error)

	// FromRange samples the seed function (sine) at count evenly spaced x
	// in [leftX, rightX]. Requires leftX < rightX and count >= 2.
	FromRange(leftX, rightX float64, count int) (TabulatedFunction, error)

	// FromArrays builds a table from parallel x and y slices of equal
	// length, at least two, with strictly increasing x.
	FromArrays(xs, ys []float64) (TabulatedFunction, error)
}
