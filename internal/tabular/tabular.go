// Package tabular holds the logic shared by every TabulatedFunction backend:
// construction-input validation, evenly spaced sampling, linear
// interpolation, ordering checks, and contract-level equality, hashing and
// formatting.
package tabular

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// MinPoints is the smallest number of points a table may hold.
const MinPoints = 2

// MinDeletable is the smallest point count at which DeletePoint succeeds.
const MinDeletable = 3

// ValidatePoints checks a point list for construction.
func ValidatePoints(points []types.Point) error {
	if len(points) < MinPoints {
		return fmt.Errorf("%w: at least %d points required, got %d", types.ErrInvalidArgument, MinPoints, len(points))
	}
	for i := 1; i < len(points); i++ {
		if !(points[i].X > points[i-1].X) {
			return fmt.Errorf("%w: x must be strictly increasing (index %d: %v after %v)",
				types.ErrInvalidArgument, i, points[i].X, points[i-1].X)
		}
	}
	return nil
}

// ValidateArrays checks parallel x and y slices for construction.
func ValidateArrays(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: x and y lengths differ (%d != %d)", types.ErrInvalidArgument, len(xs), len(ys))
	}
	if len(xs) < MinPoints {
		return fmt.Errorf("%w: at least %d points required, got %d", types.ErrInvalidArgument, MinPoints, len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return fmt.Errorf("%w: x must be strictly increasing (index %d: %v after %v)",
				types.ErrInvalidArgument, i, xs[i], xs[i-1])
		}
	}
	return nil
}

// ValidateRange checks the bounds and count of a range construction.
func ValidateRange(leftX, rightX float64, count int) error {
	if !(leftX < rightX) {
		return fmt.Errorf("%w: left bound %v must be less than right bound %v", types.ErrInvalidArgument, leftX, rightX)
	}
	if count < MinPoints {
		return fmt.Errorf("%w: at least %d points required, got %d", types.ErrInvalidArgument, MinPoints, count)
	}
	return nil
}

// Sample evaluates f at count evenly spaced x in [leftX, rightX].
// The caller validates count.
func Sample(leftX, rightX float64, count int, f func(float64) float64) (xs, ys []float64) {
	xs = make([]float64, count)
	ys = make([]float64, count)
	step := (rightX - leftX) / float64(count-1)
	for i := range count {
		x := leftX + float64(i)*step
		xs[i] = x
		ys[i] = f(x)
	}
	return xs, ys
}

// Seed is the function range constructors tabulate.
func Seed(x float64) float64 {
	return math.Sin(x)
}

// Interpolate returns the value at x on the line through a and b.
func Interpolate(a, b types.Point, x float64) float64 {
	return a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X)
}

// CheckIndex returns ErrIndexOutOfRange unless 0 <= i < count.
func CheckIndex(i, count int) error {
	if i < 0 || i >= count {
		return fmt.Errorf("%w: index %d, count %d", types.ErrIndexOutOfRange, i, count)
	}
	return nil
}

// CheckBetween returns ErrInvalidPoint unless lo < x < hi. Pass -Inf or +Inf
// for a missing neighbor.
func CheckBetween(x, lo, hi float64) error {
	if !(x > lo) || !(x < hi) {
		return fmt.Errorf("%w: x %v must lie strictly between %v and %v", types.ErrInvalidPoint, x, lo, hi)
	}
	return nil
}

// Duplicate returns the ErrInvalidPoint reported when AddPoint meets an
// existing x.
func Duplicate(x float64) error {
	return fmt.Errorf("%w: x %v already present", types.ErrInvalidPoint, x)
}

// TooSmall returns the ErrInvariantViolation reported when DeletePoint is
// called on a table with fewer than MinDeletable points.
func TooSmall(count int) error {
	return fmt.Errorf("%w: cannot delete from a table of %d points, minimum %d required",
		types.ErrInvariantViolation, count, MinDeletable)
}

// Equal compares two tables point by point through the shared contract.
func Equal(a, b types.TabulatedFunction) bool {
	if a == nil || b == nil {
		return a == b
	}
	n := a.Count()
	if n != b.Count() {
		return false
	}
	for i := range n {
		pa, err := a.PointAt(i)
		if err != nil {
			return false
		}
		pb, err := b.PointAt(i)
		if err != nil {
			return false
		}
		if !pa.Equal(pb) {
			return false
		}
	}
	return true
}

// Hash digests the count followed by every point's bit patterns, so equal
// tables hash equally whatever their backend.
func Hash(count int, points iter.Seq[types.Point]) uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 16)
	buf = append(buf, byte(count), byte(count>>8), byte(count>>16), byte(count>>24))
	_, _ = d.Write(buf)
	for p := range points {
		buf = p.AppendBits(buf[:0])
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}

// Format renders points as "{(x1; y1), (x2; y2), ...}".
func Format(points iter.Seq[types.Point]) string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for p := range points {
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
		first = false
	}
	sb.WriteByte('}')
	return sb.String()
}

// Seq adapts an Iterator to a range-over-func sequence.
func Seq(it types.Iterator) iter.Seq[types.Point] {
	return func(yield func(types.Point) bool) {
		for it.HasNext() {
			p, err := it.Next()
			if err != nil || !yield(p) {
				return
			}
		}
	}
}

// Unsupported returns the error every iterator's Remove reports.
func Unsupported() error {
	return fmt.Errorf("%w: remove through an iterator", types.ErrUnsupportedOperation)
}

// Exhausted returns the error Next reports past the last point.
func Exhausted() error {
	return types.ErrNoMoreElements
}
