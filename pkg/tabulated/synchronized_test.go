package tabulated

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabula/internal/tabular/tabulartest"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

func TestSynchronizedDelegates(t *testing.T) {
	for _, f := range []types.Factory{ArrayFactory, LinkedFactory} {
		t.Run(f.Name(), func(t *testing.T) {
			inner, err := f.FromPoints(tabulartest.Squares())
			require.NoError(t, err)
			s := Synchronize(inner)
			assert.Same(t, s, Synchronize(s))
			assert.Equal(t, f.Name(), BackendOf(s))

			assert.Equal(t, 5, s.Count())
			assert.Equal(t, 2.5, s.Value(1.5))
			assert.Equal(t, 0.0, s.DomainLeft())
			assert.Equal(t, 4.0, s.DomainRight())

			require.NoError(t, s.AddPoint(types.NewPoint(2.5, 6)))
			require.NoError(t, s.SetY(0, -1))
			require.NoError(t, s.SetX(0, -0.5))
			require.NoError(t, s.SetPoint(1, types.NewPoint(1, 2)))
			assert.ErrorIs(t, s.SetX(1, 2), types.ErrInvalidPoint)
			require.NoError(t, s.DeletePoint(5))

			p, err := s.PointAt(0)
			require.NoError(t, err)
			assert.Equal(t, types.NewPoint(-0.5, -1), p)
			x, err := s.XAt(3)
			require.NoError(t, err)
			assert.Equal(t, 2.5, x)
			y, err := s.YAt(1)
			require.NoError(t, err)
			assert.Equal(t, 2.0, y)

			assert.Equal(t, "{(-0.5; -1), (1; 2), (2; 4), (2.5; 6), (3; 9)}", s.String())
			assert.True(t, s.Equal(inner))
			assert.True(t, inner.Equal(s))
			assert.Equal(t, inner.Hash(), s.Hash())

			c := s.Clone()
			assert.True(t, c.Equal(s))
			assert.True(t, s.Equal(c))
			assert.True(t, s.Equal(s))
			require.NoError(t, c.SetY(0, 100))
			assert.False(t, c.Equal(s))

			it := s.Iterator()
			assert.ErrorIs(t, it.Remove(), types.ErrUnsupportedOperation)
			assert.Len(t, tabulartest.Collect(t, s), 5)
		})
	}
}

func TestSynchronizedConcurrentUse(t *testing.T) {
	for _, f := range []types.Factory{ArrayFactory, LinkedFactory} {
		t.Run(f.Name(), func(t *testing.T) {
			inner, err := f.FromArrays([]float64{0, 1000}, []float64{0, 0})
			require.NoError(t, err)
			s := Synchronize(inner)

			var wg sync.WaitGroup
			for w := range 4 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 1; i < 250; i++ {
						_ = s.AddPoint(types.NewPoint(float64(w*250+i), float64(i)))
					}
				}()
			}
			for range 4 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range 200 {
						_ = s.Value(float64(i))
						if n := s.Count(); n > 0 {
							_, _ = s.PointAt(i % n)
						}
						for range s.All() {
						}
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, 2+4*249, s.Count())
			tabulartest.RequireOrdered(t, s.Snapshot())
		})
	}
}
