// Package array implements the contiguous-buffer TabulatedFunction backend.
// Points live in a slice sorted by x; the slice keeps spare capacity and is
// doubled when an insertion finds it full.
package array

import (
	"iter"
	"math"
	"sort"

	"github.com/mesh-intelligence/tabula/internal/tabular"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// spare is the extra capacity allocated beyond the initial point count.
const spare = 10

// Table implements types.TabulatedFunction over a contiguous buffer.
// Indices below count are valid and sorted by strictly increasing x.
type Table struct {
	points []types.Point
	count  int
}

// New builds a table from a copy of points.
// Returns ErrInvalidArgument if fewer than two points are given or x is not
// strictly increasing.
func New(points []types.Point) (*Table, error) {
	if err := tabular.ValidatePoints(points); err != nil {
		return nil, err
	}
	t := newTable(len(points))
	copy(t.points, points)
	return t, nil
}

// NewRange samples the seed function at count evenly spaced x in
// [leftX, rightX].
func NewRange(leftX, rightX float64, count int) (*Table, error) {
	if err := tabular.ValidateRange(leftX, rightX, count); err != nil {
		return nil, err
	}
	xs, ys := tabular.Sample(leftX, rightX, count, tabular.Seed)
	return fromArrays(xs, ys), nil
}

// NewFromArrays builds a table from parallel x and y slices.
func NewFromArrays(xs, ys []float64) (*Table, error) {
	if err := tabular.ValidateArrays(xs, ys); err != nil {
		return nil, err
	}
	return fromArrays(xs, ys), nil
}

func newTable(count int) *Table {
	return &Table{
		points: make([]types.Point, count+spare),
		count:  count,
	}
}

func fromArrays(xs, ys []float64) *Table {
	t := newTable(len(xs))
	for i := range xs {
		t.points[i] = types.NewPoint(xs[i], ys[i])
	}
	return t
}

// Capacity returns the size of the backing buffer.
func (t *Table) Capacity() int {
	return len(t.points)
}

// DomainLeft returns the x of the first point.
func (t *Table) DomainLeft() float64 {
	return t.points[0].X
}

// DomainRight returns the x of the last point.
func (t *Table) DomainRight() float64 {
	return t.points[t.count-1].X
}

// Value returns the stored y when x matches a stored x exactly, the linear
// interpolation of the bracketing pair otherwise, and NaN outside the
// domain.
func (t *Table) Value(x float64) float64 {
	if !(x >= t.DomainLeft() && x <= t.DomainRight()) {
		return math.NaN()
	}
	live := t.points[:t.count]
	// First index whose x is not below the query.
	i := sort.Search(len(live), func(i int) bool { return live[i].X >= x })
	if types.SameBits(live[i].X, x) {
		return live[i].Y
	}
	if i == 0 {
		// x == DomainLeft with a different zero sign.
		return live[0].Y
	}
	return tabular.Interpolate(live[i-1], live[i], x)
}

// Count returns the number of points. A nil table has none.
func (t *Table) Count() int {
	if t == nil {
		return 0
	}
	return t.count
}

// PointAt returns point i.
func (t *Table) PointAt(i int) (types.Point, error) {
	if err := tabular.CheckIndex(i, t.count); err != nil {
		return types.Point{}, err
	}
	return t.points[i], nil
}

// XAt returns the x-coordinate of point i.
func (t *Table) XAt(i int) (float64, error) {
	if err := tabular.CheckIndex(i, t.count); err != nil {
		return 0, err
	}
	return t.points[i].X, nil
}

// YAt returns the y-coordinate of point i.
func (t *Table) YAt(i int) (float64, error) {
	if err := tabular.CheckIndex(i, t.count); err != nil {
		return 0, err
	}
	return t.points[i].Y, nil
}

// SetX replaces the x of point i if it stays strictly between its
// neighbors.
func (t *Table) SetX(i int, x float64) error {
	if err := t.checkPlacement(i, x); err != nil {
		return err
	}
	t.points[i].X = x
	return nil
}

// SetY replaces the y of point i. Any y is accepted.
func (t *Table) SetY(i int, y float64) error {
	if err := tabular.CheckIndex(i, t.count); err != nil {
		return err
	}
	t.points[i].Y = y
	return nil
}

// SetPoint replaces point i if p.X stays strictly between its neighbors.
func (t *Table) SetPoint(i int, p types.Point) error {
	if err := t.checkPlacement(i, p.X); err != nil {
		return err
	}
	t.points[i] = p
	return nil
}

func (t *Table) checkPlacement(i int, x float64) error {
	if err := tabular.CheckIndex(i, t.count); err != nil {
		return err
	}
	lo, hi := math.Inf(-1), math.Inf(1)
	if i > 0 {
		lo = t.points[i-1].X
	}
	if i < t.count-1 {
		hi = t.points[i+1].X
	}
	return tabular.CheckBetween(x, lo, hi)
}

// AddPoint inserts p before the first point with a greater x, growing the
// buffer by doubling when it is full.
func (t *Table) AddPoint(p types.Point) error {
	pos, err := t.placeFor(p.X)
	if err != nil {
		return err
	}
	if t.count == len(t.points) {
		grown := make([]types.Point, 2*len(t.points))
		copy(grown, t.points[:t.count])
		t.points = grown
	}
	copy(t.points[pos+1:t.count+1], t.points[pos:t.count])
	t.points[pos] = p
	t.count++
	return nil
}

// placeFor returns the insertion index for x, or ErrInvalidPoint when x
// collides with a stored x.
func (t *Table) placeFor(x float64) (int, error) {
	if math.IsNaN(x) {
		return 0, tabular.CheckBetween(x, math.Inf(-1), math.Inf(1))
	}
	for i := 0; i < t.count; i++ {
		if types.ApproxEqualX(t.points[i].X, x) {
			return 0, tabular.Duplicate(x)
		}
		if t.points[i].X > x {
			return i, nil
		}
	}
	return t.count, nil
}

// DeletePoint removes point i and shifts the tail left.
func (t *Table) DeletePoint(i int) error {
	if err := tabular.CheckIndex(i, t.count); err != nil {
		return err
	}
	if t.count < tabular.MinDeletable {
		return tabular.TooSmall(t.count)
	}
	copy(t.points[i:t.count-1], t.points[i+1:t.count])
	t.count--
	t.points[t.count] = types.Point{}
	return nil
}

// Iterator returns a fresh iterator over copies of the points.
func (t *Table) Iterator() types.Iterator {
	return &iterator{table: t}
}

// All yields the points in ascending x order.
func (t *Table) All() iter.Seq[types.Point] {
	return tabular.Seq(t.Iterator())
}

// Clone returns a deep copy with a buffer of the same capacity.
func (t *Table) Clone() types.TabulatedFunction {
	c := &Table{
		points: make([]types.Point, len(t.points)),
		count:  t.count,
	}
	copy(c.points, t.points[:t.count])
	return c
}

// Equal compares buffers directly against another array table and falls
// back to the shared contract for any other backend.
func (t *Table) Equal(other types.TabulatedFunction) bool {
	o, ok := other.(*Table)
	if !ok {
		return tabular.Equal(t, other)
	}
	if o == nil {
		return false
	}
	if t.count != o.count {
		return false
	}
	for i := 0; i < t.count; i++ {
		if !t.points[i].Equal(o.points[i]) {
			return false
		}
	}
	return true
}

// Hash returns the content hash of the points.
func (t *Table) Hash() uint64 {
	return tabular.Hash(t.count, t.All())
}

// String renders the table one point per line.
func (t *Table) String() string {
	return tabular.Format(t.All())
}

// iterator walks the live prefix of the buffer by index.
type iterator struct {
	table *Table
	next  int
}

// HasNext reports whether Next has a point to return.
func (it *iterator) HasNext() bool {
	return it.next < it.table.count
}

// Next returns the next point in ascending x order.
func (it *iterator) Next() (types.Point, error) {
	if !it.HasNext() {
		return types.Point{}, tabular.Exhausted()
	}
	p := it.table.points[it.next]
	it.next++
	return p, nil
}

// Remove is not supported; the table only changes through its own methods.
func (it *iterator) Remove() error {
	return tabular.Unsupported()
}
