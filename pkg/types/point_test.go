package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want bool
	}{
		{name: "identical", a: NewPoint(1, 2), b: NewPoint(1, 2), want: true},
		{name: "different y", a: NewPoint(1, 2), b: NewPoint(1, 3)},
		{name: "close but not equal x", a: NewPoint(1, 2), b: NewPoint(1+1e-12, 2)},
		{name: "signed zeros differ", a: NewPoint(0, 0), b: NewPoint(math.Copysign(0, -1), 0)},
		{name: "NaN equals itself bitwise", a: NewPoint(math.NaN(), 1), b: NewPoint(math.NaN(), 1), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			if tt.want {
				assert.Equal(t, tt.a.Hash(), tt.b.Hash(), "equal points must hash equally")
			}
		})
	}
}

func TestPointWithCopies(t *testing.T) {
	p := NewPoint(1, 2)
	q := p.WithX(5).WithY(7)

	assert.Equal(t, NewPoint(1, 2), p, "original must not change")
	assert.Equal(t, NewPoint(5, 7), q)
}

func TestApproxEqualX(t *testing.T) {
	assert.True(t, ApproxEqualX(1, 1))
	assert.True(t, ApproxEqualX(1, 1+1e-10))
	assert.False(t, ApproxEqualX(1, 1+1e-8))
	assert.False(t, ApproxEqualX(math.NaN(), math.NaN()))
}

func TestPointString(t *testing.T) {
	assert.Equal(t, "(2.5; -6)", NewPoint(2.5, -6).String())
	assert.Equal(t, "(0; 1e-10)", NewPoint(0, 1e-10).String())
}

func TestFunctionFunc(t *testing.T) {
	f := FunctionFunc{Left: 0, Right: 2, F: func(x float64) float64 { return x * x }}

	assert.Equal(t, 0.0, f.DomainLeft())
	assert.Equal(t, 2.0, f.DomainRight())
	assert.Equal(t, 2.25, f.Value(1.5))
	assert.True(t, math.IsNaN(f.Value(3)))
}
