package tabular

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

func TestSample(t *testing.T) {
	xs, ys := Sample(0, 1, 5, func(x float64) float64 { return 2 * x })
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, xs)
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, ys)
}

func TestInterpolate(t *testing.T) {
	a, b := types.NewPoint(1, 1), types.NewPoint(2, 4)
	assert.Equal(t, 2.5, Interpolate(a, b, 1.5))
	assert.Equal(t, 1.0, Interpolate(a, b, 1))
	assert.Equal(t, 4.0, Interpolate(a, b, 2))
}

func TestCheckBetween(t *testing.T) {
	tests := []struct {
		name      string
		x, lo, hi float64
		ok        bool
	}{
		{name: "inside", x: 1, lo: 0, hi: 2, ok: true},
		{name: "no neighbors", x: 1e300, lo: math.Inf(-1), hi: math.Inf(1), ok: true},
		{name: "on lower bound", x: 0, lo: 0, hi: 2},
		{name: "on upper bound", x: 2, lo: 0, hi: 2},
		{name: "NaN", x: math.NaN(), lo: math.Inf(-1), hi: math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBetween(tt.x, tt.lo, tt.hi)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, types.ErrInvalidPoint)
		})
	}
}

func TestErrorsWrapSentinels(t *testing.T) {
	assert.ErrorIs(t, CheckIndex(3, 3), types.ErrIndexOutOfRange)
	assert.ErrorIs(t, CheckIndex(-1, 3), types.ErrIndexOutOfRange)
	assert.NoError(t, CheckIndex(0, 3))
	assert.ErrorIs(t, Duplicate(1), types.ErrInvalidPoint)
	assert.ErrorIs(t, TooSmall(2), types.ErrInvariantViolation)
	assert.ErrorIs(t, Unsupported(), types.ErrUnsupportedOperation)
	assert.ErrorIs(t, Exhausted(), types.ErrNoMoreElements)
}

func TestValidateArrays(t *testing.T) {
	require.NoError(t, ValidateArrays([]float64{1, 2}, []float64{0, 0}))
	assert.ErrorIs(t, ValidateArrays([]float64{1, 2}, []float64{0}), types.ErrInvalidArgument)
	assert.ErrorIs(t, ValidateArrays(nil, nil), types.ErrInvalidArgument)
	assert.ErrorIs(t, ValidateArrays([]float64{1, math.NaN()}, []float64{0, 0}), types.ErrInvalidArgument)
}

func TestValidateRange(t *testing.T) {
	require.NoError(t, ValidateRange(0, 1, 2))
	assert.ErrorIs(t, ValidateRange(1, 0, 2), types.ErrInvalidArgument)
	assert.ErrorIs(t, ValidateRange(math.NaN(), 1, 2), types.ErrInvalidArgument)
	assert.ErrorIs(t, ValidateRange(0, 1, 1), types.ErrInvalidArgument)
}

func TestFormatAndHash(t *testing.T) {
	pts := []types.Point{{X: 0, Y: 1}, {X: 2, Y: 3}}
	seq := func(yield func(types.Point) bool) {
		for _, p := range pts {
			if !yield(p) {
				return
			}
		}
	}

	assert.Equal(t, "{(0; 1), (2; 3)}", Format(seq))
	assert.Equal(t, Hash(2, seq), Hash(2, seq))
	assert.NotEqual(t, Hash(2, seq), Hash(3, seq))
}
