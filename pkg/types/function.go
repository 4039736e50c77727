package types

// Function is a real-valued function of one real variable with domain
// bounds. Closed-form functions and tabulated functions both satisfy it.
type Function interface {
	// DomainLeft returns the smallest x for which Value is defined.
	DomainLeft() float64

	// DomainRight returns the largest x for which Value is defined.
	DomainRight() float64

	// Value evaluates the function at x. Values outside the domain are NaN.
	Value(x float64) float64
}

// FunctionFunc adapts a plain func and explicit bounds to Function.
type FunctionFunc struct {
	Left, Right float64
	F           func(float64) float64
}

func (f FunctionFunc) DomainLeft() float64  { return f.Left }
func (f FunctionFunc) DomainRight() float64 { return f.Right }

// Value returns NaN outside [Left, Right].
func (f FunctionFunc) Value(x float64) float64 {
	if x < f.Left || x > f.Right {
		return nan()
	}
	return f.F(x)
}
