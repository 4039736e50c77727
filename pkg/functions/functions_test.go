package functions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabula/pkg/tabulated"
)

func TestClosedForms(t *testing.T) {
	assert.Equal(t, math.Sin(1), Sin{}.Value(1))
	assert.Equal(t, math.Cos(1), Cos{}.Value(1))
	assert.Equal(t, math.Exp(1), Exp{}.Value(1))
	assert.True(t, math.IsInf(Exp{}.DomainRight(), 1))
	assert.Equal(t, "cos(x)", Cos{}.String())
}

func TestLog(t *testing.T) {
	l, err := NewLog(2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, l.Base())
	assert.InDelta(t, 3.0, l.Value(8), 1e-12)
	assert.True(t, math.IsNaN(l.Value(0)))
	assert.True(t, math.IsNaN(l.Value(-1)))
	assert.Equal(t, "log_2(x)", l.String())

	for _, base := range []float64{0, -2, 1, math.NaN(), math.Inf(1)} {
		_, err := NewLog(base)
		assert.ErrorIs(t, err, ErrInvalidBase, "base=%v", base)
	}
}

func TestShift(t *testing.T) {
	l, err := NewLog(10)
	require.NoError(t, err)
	s := Shift{F: l, DX: 1, DY: 5}

	assert.Equal(t, 1.0, s.DomainLeft())
	assert.InDelta(t, 6.0, s.Value(11), 1e-12)
	assert.True(t, math.IsNaN(s.Value(0.5)))
}

func TestCompose(t *testing.T) {
	c := Compose{Outer: Exp{}, Inner: Cos{}}
	assert.Equal(t, math.Exp(math.Cos(0.3)), c.Value(0.3))
	assert.True(t, math.IsInf(c.DomainLeft(), -1))
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		x, want float64
		wantErr error
	}{
		{name: "sin", x: 0.5, want: math.Sin(0.5)},
		{name: " COS ", x: 0.5, want: math.Cos(0.5)},
		{name: "exp", x: 2, want: math.Exp(2)},
		{name: "ln", x: math.E, want: 1},
		{name: "log", x: math.E, want: 1},
		{name: "log:2", x: 1024, want: 10},
		{name: "log:1", wantErr: ErrInvalidBase},
		{name: "log:two", wantErr: ErrInvalidBase},
		{name: "tan", wantErr: ErrUnknownFunction},
		{name: "sin:3", wantErr: ErrUnknownFunction},
		{name: "cos:x", wantErr: ErrUnknownFunction},
		{name: "exp:", wantErr: ErrUnknownFunction},
		{name: "ln:2", wantErr: ErrUnknownFunction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Lookup(tt.name)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, f.Value(tt.x), 1e-12)
		})
	}
}

func TestTabulateCosine(t *testing.T) {
	for _, f := range []string{"array", "linked"} {
		t.Run(f, func(t *testing.T) {
			factory, err := tabulated.FactoryFor(f)
			require.NoError(t, err)

			tf, err := tabulated.TabulateWith(factory, Cos{}, 0, math.Pi, 11)
			require.NoError(t, err)
			assert.Equal(t, 11, tf.Count())
			assert.Equal(t, 1.0, tf.Value(0))
			assert.InDelta(t, -1.0, tf.Value(tf.DomainRight()), 1e-12)
			assert.InDelta(t, math.Cos(1), tf.Value(1), 0.02)
		})
	}
}
