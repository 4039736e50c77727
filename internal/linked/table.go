// Package linked implements the TabulatedFunction backend built on a
// circular doubly-linked list. A sentinel head closes the ring, and a cursor
// caches the last node reached by index so that runs of nearby positional
// lookups walk from the cursor rather than from an end.
package linked

import (
	"iter"
	"math"

	"github.com/mesh-intelligence/tabula/internal/tabular"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// node holds one point. The head sentinel's point is never read.
type node struct {
	point types.Point
	prev  *node
	next  *node
}

// cursor is the cached (node, index) pair. It is only an accelerator:
// nodeAt stays correct whatever it holds, as long as index is -1 or names
// the position of node.
type cursor struct {
	node  *node
	index int
}

// Table implements types.TabulatedFunction over a ring of nodes.
type Table struct {
	head   *node
	size   int
	cursor cursor
}

// New builds a table from a copy of points.
// Returns ErrInvalidArgument if fewer than two points are given or x is not
// strictly increasing.
func New(points []types.Point) (*Table, error) {
	if err := tabular.ValidatePoints(points); err != nil {
		return nil, err
	}
	t := newRing()
	for _, p := range points {
		t.pushBack(p)
	}
	t.resetCursor()
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

func fromArrays(xs, ys []float64) *Table {
	t := newRing()
	for i := range xs {
		t.pushBack(types.NewPoint(xs[i], ys[i]))
	}
	t.resetCursor()
	return t
}

func newRing() *Table {
	head := &node{}
	head.next = head
	head.prev = head
	return &Table{
		head:   head,
		cursor: cursor{node: head, index: -1},
	}
}

// resetCursor points the cursor at the first node.
func (t *Table) resetCursor() {
	if t.size == 0 {
		t.cursor = cursor{node: t.head, index: -1}
		return
	}
	t.cursor = cursor{node: t.head.next, index: 0}
}

// pushBack appends p after the current tail.
func (t *Table) pushBack(p types.Point) *node {
	return t.insertBefore(t.head, p)
}

// insertBefore splices a new node holding p in front of at.
func (t *Table) insertBefore(at *node, p types.Point) *node {
	n := &node{point: p, prev: at.prev, next: at}
	at.prev.next = n
	at.prev = n
	t.size++
	return n
}

// nodeAt returns the node at index i, which the caller has validated.
// It walks from the cursor when that is closer than both ends, otherwise
// from the nearer end, and leaves the cursor on the result.
func (t *Table) nodeAt(i int) *node {
	fromHead, fromTail := i+1, t.size-i
	if c := t.cursor; c.index >= 0 && c.node != t.head {
		diff := i - c.index
		if abs(diff) < min(fromHead, fromTail) {
			n := c.node
			for ; diff > 0; diff-- {
				n = n.next
			}
			for ; diff < 0; diff++ {
				n = n.prev
			}
			t.cursor = cursor{node: n, index: i}
			return n
		}
	}

	var n *node
	if i < t.size/2 {
		n = t.head.next
		for j := 0; j < i; j++ {
			n = n.next
		}
	} else {
		n = t.head.prev
		for j := t.size - 1; j > i; j-- {
			n = n.prev
		}
	}
	t.cursor = cursor{node: n, index: i}
	return n
}

// unlink removes n, which sits at index i, and keeps the cursor consistent.
func (t *Table) unlink(n *node, i int) {
	n.prev.next = n.next
	n.next.prev = n.prev
	t.size--

	switch {
	case t.cursor.node == n:
		if n.next != t.head {
			t.cursor = cursor{node: n.next, index: i}
		} else {
			t.cursor = cursor{node: n.prev, index: i - 1}
		}
	case i < t.cursor.index:
		t.cursor.index--
	}
	n.prev, n.next = nil, nil
}

// DomainLeft returns the smallest x.
func (t *Table) DomainLeft() float64 {
	return t.head.next.point.X
}

// DomainRight returns the largest x.
func (t *Table) DomainRight() float64 {
	return t.head.prev.point.X
}

// Value walks the ring from the head. It returns the stored y on an exact
// x match, the interpolation of the bracketing pair otherwise, and NaN
// outside the domain.
func (t *Table) Value(x float64) float64 {
	if !(x >= t.DomainLeft() && x <= t.DomainRight()) {
		return math.NaN()
	}
	for n := t.head.next; n != t.head; n = n.next {
		if types.SameBits(n.point.X, x) {
			return n.point.Y
		}
		if n.next != t.head && x >= n.point.X && x <= n.next.point.X {
			if types.SameBits(n.next.point.X, x) {
				return n.next.point.Y
			}
			return tabular.Interpolate(n.point, n.next.point, x)
		}
	}
	return math.NaN()
}

// Count returns the number of points. A nil table has none.
func (t *Table) Count() int {
	if t == nil {
		return 0
	}
	return t.size
}

// PointAt returns point i.
func (t *Table) PointAt(i int) (types.Point, error) {
	if err := tabular.CheckIndex(i, t.size); err != nil {
		return types.Point{}, err
	}
	return t.nodeAt(i).point, nil
}

// XAt returns the x-coordinate of point i.
func (t *Table) XAt(i int) (float64, error) {
	if err := tabular.CheckIndex(i, t.size); err != nil {
		return 0, err
	}
	return t.nodeAt(i).point.X, nil
}

// YAt returns the y-coordinate of point i.
func (t *Table) YAt(i int) (float64, error) {
	if err := tabular.CheckIndex(i, t.size); err != nil {
		return 0, err
	}
	return t.nodeAt(i).point.Y, nil
}

// SetX replaces the x of point i if it stays strictly between its
// neighbors.
func (t *Table) SetX(i int, x float64) error {
	n, err := t.placement(i, x)
	if err != nil {
		return err
	}
	n.point.X = x
	return nil
}

// SetY replaces the y of point i. Any y is accepted.
func (t *Table) SetY(i int, y float64) error {
	if err := tabular.CheckIndex(i, t.size); err != nil {
		return err
	}
	t.nodeAt(i).point.Y = y
	return nil
}

// SetPoint replaces point i under the same placement rule as SetX.
func (t *Table) SetPoint(i int, p types.Point) error {
	n, err := t.placement(i, p.X)
	if err != nil {
		return err
	}
	n.point = p
	return nil
}

// placement locates node i and checks that x fits between its neighbors.
func (t *Table) placement(i int, x float64) (*node, error) {
	if err := tabular.CheckIndex(i, t.size); err != nil {
		return nil, err
	}
	n := t.nodeAt(i)
	lo, hi := math.Inf(-1), math.Inf(1)
	if i > 0 {
		lo = n.prev.point.X
	}
	if i < t.size-1 {
		hi = n.next.point.X
	}
	if err := tabular.CheckBetween(x, lo, hi); err != nil {
		return nil, err
	}
	return n, nil
}

// AddPoint finds the duplicate check and the insertion point in a single
// walk from the head, then splices the new node in place.
func (t *Table) AddPoint(p types.Point) error {
	if math.IsNaN(p.X) {
		return tabular.CheckBetween(p.X, math.Inf(-1), math.Inf(1))
	}
	at, index := t.head.next, 0
	for ; at != t.head; at, index = at.next, index+1 {
		if types.ApproxEqualX(at.point.X, p.X) {
			return tabular.Duplicate(p.X)
		}
		if at.point.X > p.X {
			break
		}
	}
	t.insertBefore(at, p)
	if t.cursor.index >= 0 && index <= t.cursor.index {
		t.cursor.index++
	}
	return nil
}

// DeletePoint unlinks node i.
func (t *Table) DeletePoint(i int) error {
	if err := tabular.CheckIndex(i, t.size); err != nil {
		return err
	}
	if t.size < tabular.MinDeletable {
		return tabular.TooSmall(t.size)
	}
	t.unlink(t.nodeAt(i), i)
	return nil
}

// Iterator walks the ring from the first node back to the head.
func (t *Table) Iterator() types.Iterator {
	return &iterator{head: t.head, next: t.head.next}
}

// All yields the points in ascending x order.
func (t *Table) All() iter.Seq[types.Point] {
	return tabular.Seq(t.Iterator())
}

// Clone copies the ring node by node and resets the cursor to the first
// node.
func (t *Table) Clone() types.TabulatedFunction {
	c := newRing()
	for n := t.head.next; n != t.head; n = n.next {
		c.pushBack(n.point)
	}
	c.resetCursor()
	return c
}

// Equal walks both rings in lockstep against another linked table and
// falls back to the shared contract for any other backend.
func (t *Table) Equal(other types.TabulatedFunction) bool {
	o, ok := other.(*Table)
	if !ok {
		return tabular.Equal(t, other)
	}
	if o == nil {
		return false
	}
	if t.size != o.size {
		return false
	}
	a, b := t.head.next, o.head.next
	for a != t.head && b != o.head {
		if !a.point.Equal(b.point) {
			return false
		}
		a, b = a.next, b.next
	}
	return a == t.head && b == o.head
}

// Hash returns the content hash of the points.
func (t *Table) Hash() uint64 {
	return tabular.Hash(t.size, t.All())
}

// String renders the table one point per line.
func (t *Table) String() string {
	return tabular.Format(t.All())
}

type iterator struct {
	head *node
	next *node
}

// HasNext reports whether Next has a point to return.
func (it *iterator) HasNext() bool {
	return it.next != it.head
}

// Next returns the next point in ascending x order.
func (it *iterator) Next() (types.Point, error) {
	if !it.HasNext() {
		return types.Point{}, tabular.Exhausted()
	}
	p := it.next.point
	it.next = it.next.next
	return p, nil
}

// Remove is not supported; the table only changes through its own methods.
func (it *iterator) Remove() error {
	return tabular.Unsupported()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
