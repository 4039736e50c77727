// Package tabulartest provides a conformance suite that every
// types.Factory and the tables it builds must pass.
package tabulartest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// Squares is the point list (0,0), (1,1), (2,4), (3,9), (4,16).
func Squares() []types.Point {
	return []types.Point{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 4}, {X: 3, Y: 9}, {X: 4, Y: 16},
	}
}

// Collect drains a table's iterator into a slice.
func Collect(t *testing.T, tf types.TabulatedFunction) []types.Point {
	t.Helper()
	var out []types.Point
	it := tf.Iterator()
	for it.HasNext() {
		p, err := it.Next()
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

// Xs returns the x-coordinates of a table in index order.
func Xs(t *testing.T, tf types.TabulatedFunction) []float64 {
	t.Helper()
	var xs []float64
	for p := range tf.All() {
		xs = append(xs, p.X)
	}
	return xs
}

// RequireOrdered fails unless x is strictly increasing and the table holds
// at least two points.
func RequireOrdered(t *testing.T, tf types.TabulatedFunction) {
	t.Helper()
	require.GreaterOrEqual(t, tf.Count(), 2)
	xs := Xs(t, tf)
	require.Len(t, xs, tf.Count())
	for i := 1; i < len(xs); i++ {
		require.Less(t, xs[i-1], xs[i], "x must be strictly increasing at index %d", i)
	}
}

// Run executes the conformance suite against f.
func Run(t *testing.T, f types.Factory) {
	t.Run("construction", func(t *testing.T) { testConstruction(t, f) })
	t.Run("value", func(t *testing.T) { testValue(t, f) })
	t.Run("indexed access", func(t *testing.T) { testIndexedAccess(t, f) })
	t.Run("setters", func(t *testing.T) { testSetters(t, f) })
	t.Run("add and delete", func(t *testing.T) { testAddDelete(t, f) })
	t.Run("scenario", func(t *testing.T) { testScenario(t, f) })
	t.Run("iterator", func(t *testing.T) { testIterator(t, f) })
	t.Run("clone", func(t *testing.T) { testClone(t, f) })
	t.Run("equal and hash", func(t *testing.T) { testEqualHash(t, f) })
	t.Run("string", func(t *testing.T) { testString(t, f) })
	t.Run("range round trip", func(t *testing.T) { testRangeRoundTrip(t, f) })
}

func testConstruction(t *testing.T, f types.Factory) {
	pointCases := []struct {
		name    string
		points  []types.Point
		wantErr error
	}{
		{name: "valid", points: Squares()},
		{name: "two points", points: []types.Point{{X: 0, Y: 1}, {X: 1, Y: 2}}},
		{name: "nil", points: nil, wantErr: types.ErrInvalidArgument},
		{name: "single point", points: []types.Point{{X: 0, Y: 0}}, wantErr: types.ErrInvalidArgument},
		{name: "equal x", points: []types.Point{{X: 0}, {X: 1}, {X: 1}}, wantErr: types.ErrInvalidArgument},
		{name: "decreasing x", points: []types.Point{{X: 2}, {X: 1}}, wantErr: types.ErrInvalidArgument},
		{name: "NaN x", points: []types.Point{{X: 0}, {X: math.NaN()}}, wantErr: types.ErrInvalidArgument},
	}
	for _, tt := range pointCases {
		t.Run("points "+tt.name, func(t *testing.T) {
			tf, err := f.FromPoints(tt.points)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tf)
				return
			}
			require.NoError(t, err)
			RequireOrdered(t, tf)
			assert.Equal(t, tt.points, Collect(t, tf))
		})
	}

	t.Run("points are copied in", func(t *testing.T) {
		pts := Squares()
		tf, err := f.FromPoints(pts)
		require.NoError(t, err)
		pts[0].Y = 100
		y, err := tf.YAt(0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, y)
	})

	rangeCases := []struct {
		name        string
		left, right float64
		count       int
		wantErr     error
	}{
		{name: "valid", left: 0, right: math.Pi, count: 11},
		{name: "minimum count", left: -1, right: 1, count: 2},
		{name: "left equals right", left: 1, right: 1, count: 5, wantErr: types.ErrInvalidArgument},
		{name: "left above right", left: 2, right: 1, count: 5, wantErr: types.ErrInvalidArgument},
		{name: "count too small", left: 0, right: 1, count: 1, wantErr: types.ErrInvalidArgument},
	}
	for _, tt := range rangeCases {
		t.Run("range "+tt.name, func(t *testing.T) {
			tf, err := f.FromRange(tt.left, tt.right, tt.count)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			RequireOrdered(t, tf)
			assert.Equal(t, tt.count, tf.Count())
			assert.Equal(t, tt.left, tf.DomainLeft())
			assert.InDelta(t, tt.right, tf.DomainRight(), 1e-12)
			for p := range tf.All() {
				assert.Equal(t, math.Sin(p.X), p.Y)
			}
		})
	}

	arrayCases := []struct {
		name    string
		xs, ys  []float64
		wantErr error
	}{
		{name: "valid", xs: []float64{0, 1, 2}, ys: []float64{5, 6, 7}},
		{name: "length mismatch", xs: []float64{0, 1, 2}, ys: []float64{5, 6}, wantErr: types.ErrInvalidArgument},
		{name: "too short", xs: []float64{0}, ys: []float64{5}, wantErr: types.ErrInvalidArgument},
		{name: "non increasing", xs: []float64{0, 2, 2}, ys: []float64{5, 6, 7}, wantErr: types.ErrInvalidArgument},
	}
	for _, tt := range arrayCases {
		t.Run("arrays "+tt.name, func(t *testing.T) {
			tf, err := f.FromArrays(tt.xs, tt.ys)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			RequireOrdered(t, tf)
			for i := range tt.xs {
				p, err := tf.PointAt(i)
				require.NoError(t, err)
				assert.Equal(t, types.NewPoint(tt.xs[i], tt.ys[i]), p)
			}
		})
	}
}

func testValue(t *testing.T, f types.Factory) {
	tf, err := f.FromPoints(Squares())
	require.NoError(t, err)

	assert.Equal(t, 0.0, tf.DomainLeft())
	assert.Equal(t, 4.0, tf.DomainRight())

	for _, p := range Squares() {
		assert.Equal(t, p.Y, tf.Value(p.X), "exact x %v returns stored y", p.X)
	}

	cases := []struct {
		x, want float64
	}{
		{x: 0.5, want: 0.5},
		{x: 1.5, want: 2.5},
		{x: 2.25, want: 5.25},
		{x: 3.75, want: 14.25},
	}
	for _, tt := range cases {
		assert.InDelta(t, tt.want, tf.Value(tt.x), 1e-12, "x=%v", tt.x)
	}

	// Piecewise-linear formula between every consecutive pair.
	pts := Squares()
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		for _, frac := range []float64{0.1, 0.33, 0.5, 0.9} {
			x := a.X + frac*(b.X-a.X)
			want := a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X)
			assert.InDelta(t, want, tf.Value(x), 1e-12)
		}
	}

	for _, x := range []float64{-1, -1e-12, 4 + 1e-9, 100, math.Inf(1), math.Inf(-1), math.NaN()} {
		assert.True(t, math.IsNaN(tf.Value(x)), "x=%v must be out of domain", x)
	}
}

func testIndexedAccess(t *testing.T, f types.Factory) {
	tf, err := f.FromPoints(Squares())
	require.NoError(t, err)

	// Scattered order exercises positional lookups from every direction.
	for _, i := range []int{0, 4, 2, 3, 1, 1, 0, 4, 3} {
		p, err := tf.PointAt(i)
		require.NoError(t, err)
		assert.Equal(t, Squares()[i], p)

		x, err := tf.XAt(i)
		require.NoError(t, err)
		assert.Equal(t, Squares()[i].X, x)

		y, err := tf.YAt(i)
		require.NoError(t, err)
		assert.Equal(t, Squares()[i].Y, y)
	}

	for _, i := range []int{-1, 5, 100} {
		_, err := tf.PointAt(i)
		assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
		_, err = tf.XAt(i)
		assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
		_, err = tf.YAt(i)
		assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
		assert.ErrorIs(t, tf.SetX(i, 0.5), types.ErrIndexOutOfRange)
		assert.ErrorIs(t, tf.SetY(i, 0.5), types.ErrIndexOutOfRange)
		assert.ErrorIs(t, tf.SetPoint(i, types.NewPoint(0.5, 0)), types.ErrIndexOutOfRange)
		assert.ErrorIs(t, tf.DeletePoint(i), types.ErrIndexOutOfRange)
	}

	p, err := tf.PointAt(2)
	require.NoError(t, err)
	p.Y = 1000
	y, err := tf.YAt(2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, y, "returned points must not alias storage")
}

func testSetters(t *testing.T, f types.Factory) {
	tests := []struct {
		name    string
		index   int
		x       float64
		wantErr error
	}{
		{name: "interior within neighbors", index: 2, x: 2.5},
		{name: "first moved left", index: 0, x: -10},
		{name: "last moved right", index: 4, x: 10},
		{name: "equal to previous", index: 2, x: 1, wantErr: types.ErrInvalidPoint},
		{name: "equal to next", index: 2, x: 3, wantErr: types.ErrInvalidPoint},
		{name: "past next", index: 1, x: 2.5, wantErr: types.ErrInvalidPoint},
		{name: "first past next", index: 0, x: 1, wantErr: types.ErrInvalidPoint},
		{name: "last before previous", index: 4, x: 3, wantErr: types.ErrInvalidPoint},
		{name: "NaN", index: 2, x: math.NaN(), wantErr: types.ErrInvalidPoint},
	}

	for _, tt := range tests {
		t.Run("SetX "+tt.name, func(t *testing.T) {
			tf, err := f.FromPoints(Squares())
			require.NoError(t, err)

			err = tf.SetX(tt.index, tt.x)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Squares(), Collect(t, tf), "table must not change on error")
				return
			}
			require.NoError(t, err)
			x, err := tf.XAt(tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.x, x)
			RequireOrdered(t, tf)
		})

		t.Run("SetPoint "+tt.name, func(t *testing.T) {
			tf, err := f.FromPoints(Squares())
			require.NoError(t, err)

			err = tf.SetPoint(tt.index, types.NewPoint(tt.x, -7))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Squares(), Collect(t, tf), "table must not change on error")
				return
			}
			require.NoError(t, err)
			p, err := tf.PointAt(tt.index)
			require.NoError(t, err)
			assert.Equal(t, types.NewPoint(tt.x, -7), p)
			RequireOrdered(t, tf)
		})
	}

	t.Run("SetY has no ordering constraint", func(t *testing.T) {
		tf, err := f.FromPoints(Squares())
		require.NoError(t, err)
		require.NoError(t, tf.SetY(3, -1e6))
		y, err := tf.YAt(3)
		require.NoError(t, err)
		assert.Equal(t, -1e6, y)
		assert.Equal(t, -1e6, tf.Value(3))
	})

	t.Run("SetX moves domain borders", func(t *testing.T) {
		tf, err := f.FromPoints(Squares())
		require.NoError(t, err)
		require.NoError(t, tf.SetX(0, -2))
		require.NoError(t, tf.SetX(4, 8))
		assert.Equal(t, -2.0, tf.DomainLeft())
		assert.Equal(t, 8.0, tf.DomainRight())
	})
}

func testAddDelete(t *testing.T, f types.Factory) {
	t.Run("insert positions", func(t *testing.T) {
		tests := []struct {
			name   string
			point  types.Point
			wantXs []float64
		}{
			{name: "front", point: types.NewPoint(-1, 1), wantXs: []float64{-1, 0, 1, 2, 3, 4}},
			{name: "middle", point: types.NewPoint(2.5, 6), wantXs: []float64{0, 1, 2, 2.5, 3, 4}},
			{name: "back", point: types.NewPoint(5, 25), wantXs: []float64{0, 1, 2, 3, 4, 5}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tf, err := f.FromPoints(Squares())
				require.NoError(t, err)
				require.NoError(t, tf.AddPoint(tt.point))
				assert.Equal(t, tt.wantXs, Xs(t, tf))
				assert.Equal(t, tt.point.Y, tf.Value(tt.point.X))
			})
		}
	})

	t.Run("duplicates rejected", func(t *testing.T) {
		for _, x := range []float64{0, 2, 4, 2 + 1e-10, 4 - 1e-10, math.NaN()} {
			tf, err := f.FromPoints(Squares())
			require.NoError(t, err)
			err = tf.AddPoint(types.NewPoint(x, 99))
			assert.ErrorIs(t, err, types.ErrInvalidPoint, "x=%v", x)
			assert.Equal(t, Squares(), Collect(t, tf), "table must not change on error")
		}
	})

	t.Run("round trip at every position", func(t *testing.T) {
		inserts := []types.Point{{X: -3, Y: 1}, {X: 0.5, Y: 1}, {X: 1.5, Y: 2}, {X: 3.5, Y: 3}, {X: 9, Y: 4}}
		for _, p := range inserts {
			tf, err := f.FromPoints(Squares())
			require.NoError(t, err)
			require.NoError(t, tf.AddPoint(p))

			idx := -1
			for i := range tf.Count() {
				x, err := tf.XAt(i)
				require.NoError(t, err)
				if x == p.X {
					idx = i
				}
			}
			require.GreaterOrEqual(t, idx, 0)
			require.NoError(t, tf.DeletePoint(idx))
			assert.Equal(t, Squares(), Collect(t, tf))
		}
	})

	t.Run("delete every position", func(t *testing.T) {
		for i := range len(Squares()) {
			tf, err := f.FromPoints(Squares())
			require.NoError(t, err)
			require.NoError(t, tf.DeletePoint(i))

			want := append(append([]types.Point{}, Squares()[:i]...), Squares()[i+1:]...)
			assert.Equal(t, want, Collect(t, tf))
			assert.Equal(t, want[0].X, tf.DomainLeft())
			assert.Equal(t, want[len(want)-1].X, tf.DomainRight())
		}
	})

	t.Run("two point table refuses delete", func(t *testing.T) {
		tf, err := f.FromArrays([]float64{0, 1}, []float64{0, 1})
		require.NoError(t, err)
		assert.ErrorIs(t, tf.DeletePoint(0), types.ErrInvariantViolation)
		assert.ErrorIs(t, tf.DeletePoint(2), types.ErrIndexOutOfRange)
		assert.Equal(t, 2, tf.Count())
	})

	t.Run("many inserts grow storage", func(t *testing.T) {
		tf, err := f.FromArrays([]float64{0, 1000}, []float64{0, 0})
		require.NoError(t, err)
		for i := 999; i >= 1; i-- {
			require.NoError(t, tf.AddPoint(types.NewPoint(float64(i), float64(i*i))))
		}
		assert.Equal(t, 1001, tf.Count())
		RequireOrdered(t, tf)
		for _, i := range []int{0, 500, 1, 999, 250, 251, 1000} {
			y, err := tf.YAt(i)
			require.NoError(t, err)
			if i == 1000 {
				assert.Equal(t, 0.0, y)
				continue
			}
			assert.Equal(t, float64(i*i), y)
		}
	})
}

func testScenario(t *testing.T, f types.Factory) {
	tf, err := f.FromPoints(Squares())
	require.NoError(t, err)

	assert.Equal(t, 2.5, tf.Value(1.5))
	assert.True(t, math.IsNaN(tf.Value(-1)))

	require.NoError(t, tf.AddPoint(types.NewPoint(2.5, 6)))
	assert.Equal(t, []float64{0, 1, 2, 2.5, 3, 4}, Xs(t, tf))

	assert.ErrorIs(t, tf.AddPoint(types.NewPoint(2, 99)), types.ErrInvalidPoint)

	require.NoError(t, tf.DeletePoint(0))
	assert.Equal(t, 5, tf.Count())
	assert.Equal(t, 1.0, tf.DomainLeft())

	for tf.Count() > 2 {
		require.NoError(t, tf.DeletePoint(0))
	}
	before := Collect(t, tf)
	assert.ErrorIs(t, tf.DeletePoint(0), types.ErrInvariantViolation)
	assert.Equal(t, before, Collect(t, tf))
}

func testIterator(t *testing.T, f types.Factory) {
	tf, err := f.FromPoints(Squares())
	require.NoError(t, err)

	it := tf.Iterator()
	assert.ErrorIs(t, it.Remove(), types.ErrUnsupportedOperation)

	var got []types.Point
	for it.HasNext() {
		p, err := it.Next()
		require.NoError(t, err)
		got = append(got, p)
	}
	assert.Equal(t, Squares(), got)

	_, err = it.Next()
	assert.ErrorIs(t, err, types.ErrNoMoreElements)
	_, err = it.Next()
	assert.ErrorIs(t, err, types.ErrNoMoreElements)
	assert.ErrorIs(t, it.Remove(), types.ErrUnsupportedOperation)

	// A fresh iterator starts over.
	assert.Equal(t, Squares(), Collect(t, tf))

	// Early break from All.
	n := 0
	for range tf.All() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)

	// Yielded points are copies.
	for p := range tf.All() {
		p.Y = -1
	}
	assert.Equal(t, Squares(), Collect(t, tf))
}

func testClone(t *testing.T, f types.Factory) {
	tf, err := f.FromPoints(Squares())
	require.NoError(t, err)

	c := tf.Clone()
	require.NotNil(t, c)
	assert.True(t, tf.Equal(c))
	assert.True(t, c.Equal(tf))
	assert.Equal(t, tf.Hash(), c.Hash())

	require.NoError(t, c.SetY(1, 42))
	require.NoError(t, c.AddPoint(types.NewPoint(10, 100)))
	require.NoError(t, c.DeletePoint(0))
	assert.Equal(t, Squares(), Collect(t, tf), "mutating the clone must not touch the original")

	c2 := tf.Clone()
	require.NoError(t, tf.SetY(2, -4))
	require.NoError(t, tf.AddPoint(types.NewPoint(0.5, 0.25)))
	assert.Equal(t, Squares(), Collect(t, c2), "mutating the original must not touch the clone")
	assert.False(t, tf.Equal(c2))
}

func testEqualHash(t *testing.T, f types.Factory) {
	a, err := f.FromPoints(Squares())
	require.NoError(t, err)
	b, err := f.FromArrays([]float64{0, 1, 2, 3, 4}, []float64{0, 1, 4, 9, 16})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.True(t, a.Equal(a))

	require.NoError(t, b.SetY(4, 16.000001))
	assert.False(t, a.Equal(b))

	shorter, err := f.FromArrays([]float64{0, 1, 2, 3}, []float64{0, 1, 4, 9})
	require.NoError(t, err)
	assert.False(t, a.Equal(shorter))
	assert.False(t, shorter.Equal(a))
	assert.False(t, a.Equal(nil))
}

func testString(t *testing.T, f types.Factory) {
	tf, err := f.FromPoints([]types.Point{{X: 0, Y: 0}, {X: 1.5, Y: -2}, {X: 3, Y: 0.25}})
	require.NoError(t, err)
	assert.Equal(t, "{(0; 0), (1.5; -2), (3; 0.25)}", tf.String())
}

func testRangeRoundTrip(t *testing.T, f types.Factory) {
	src, err := f.FromRange(0, math.Pi, 11)
	require.NoError(t, err)

	xs := make([]float64, src.Count())
	ys := make([]float64, src.Count())
	for i := range src.Count() {
		xs[i], err = src.XAt(i)
		require.NoError(t, err)
		ys[i], err = src.YAt(i)
		require.NoError(t, err)
	}

	rebuilt, err := f.FromArrays(xs, ys)
	require.NoError(t, err)
	assert.True(t, src.Equal(rebuilt))
	assert.True(t, rebuilt.Equal(src))
}
