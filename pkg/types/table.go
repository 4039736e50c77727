package types

import (
	"errors"
	"iter"
	"math"
)

// TabulatedFunction is an ordered, mutable sequence of points with strictly
// increasing x that answers point queries by exact lookup or linear
// interpolation. A table always holds at least two points.
//
// Implementations are not safe for concurrent use. A table has one owner;
// Clone is the only way to obtain an independent copy.
type TabulatedFunction interface {
	Function

	// Count returns the number of stored points.
	Count() int

	// PointAt returns a copy of the point at index i.
	// Returns ErrIndexOutOfRange if i is not in [0, Count()).
	PointAt(i int) (Point, error)

	// XAt returns the x-coordinate of the point at index i.
	XAt(i int) (float64, error)

	// YAt returns the y-coordinate of the point at index i.
	YAt(i int) (float64, error)

	// SetX replaces the x-coordinate of the point at index i.
	// Returns ErrIndexOutOfRange for a bad index and ErrInvalidPoint if x
	// would break the ordering against either neighbor.
	SetX(i int, x float64) error

	// SetY replaces the y-coordinate of the point at index i.
	SetY(i int, y float64) error

	// SetPoint replaces the point at index i, with the same ordering check
	// as SetX applied to p.X.
	SetPoint(i int, p Point) error

	// AddPoint inserts p at its ordered position.
	// Returns ErrInvalidPoint if a stored x is approximately equal to p.X.
	AddPoint(p Point) error

	// DeletePoint removes the point at index i.
	// Returns ErrIndexOutOfRange for a bad index and ErrInvariantViolation
	// if the table holds fewer than three points.
	DeletePoint(i int) error

	// Iterator returns a fresh iterator over copies of the points in
	// ascending x order. Mutating the table while iterating is undefined.
	Iterator() Iterator

	// All returns the points as a range-over-func sequence.
	All() iter.Seq[Point]

	// Clone returns a deep copy backed by the same storage strategy.
	Clone() TabulatedFunction

	// Equal reports whether other holds the same points in the same order,
	// regardless of backend.
	Equal(other TabulatedFunction) bool

	// Hash returns a hash consistent with Equal across backends.
	Hash() uint64

	// String formats the table as "{(x1; y1), (x2; y2), ...}".
	String() string
}

// Iterator walks a table's points once. It never mutates the table.
type Iterator interface {
	// HasNext reports whether Next will return another point.
	HasNext() bool

	// Next returns a copy of the next point.
	// Returns ErrNoMoreElements once the iterator is exhausted.
	Next() (Point, error)

	// Remove always returns ErrUnsupportedOperation.
	Remove() error
}

// Table operation errors.
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrIndexOutOfRange      = errors.New("point index out of range")
	ErrInvalidPoint         = errors.New("inappropriate function point")
	ErrInvariantViolation   = errors.New("table invariant violation")
	ErrNoMoreElements       = errors.New("no more elements in the iterator")
	ErrUnsupportedOperation = errors.New("operation is not supported")
)

func nan() float64 {
	return math.NaN()
}
