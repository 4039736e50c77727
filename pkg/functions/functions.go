// Package functions provides closed-form functions and combinators that
// satisfy types.Function, for seeding tables with tabulated.Tabulate.
package functions

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// Function construction errors.
var (
	ErrInvalidBase     = errors.New("logarithm base must be positive and not equal to 1")
	ErrUnknownFunction = errors.New("unknown function")
)

// Sin is sine over the whole real line.
type Sin struct{}

func (Sin) DomainLeft() float64     { return math.Inf(-1) }
func (Sin) DomainRight() float64    { return math.Inf(1) }
func (Sin) Value(x float64) float64 { return math.Sin(x) }
func (Sin) String() string          { return "sin(x)" }

// Cos is cosine over the whole real line.
type Cos struct{}

func (Cos) DomainLeft() float64     { return math.Inf(-1) }
func (Cos) DomainRight() float64    { return math.Inf(1) }
func (Cos) Value(x float64) float64 { return math.Cos(x) }
func (Cos) String() string          { return "cos(x)" }

// Exp is e^x over the whole real line.
type Exp struct{}

func (Exp) DomainLeft() float64     { return math.Inf(-1) }
func (Exp) DomainRight() float64    { return math.Inf(1) }
func (Exp) Value(x float64) float64 { return math.Exp(x) }
func (Exp) String() string          { return "e^x" }

// Log is the logarithm to a fixed base, defined for x > 0.
type Log struct {
	base float64
}

// NewLog returns the logarithm to base.
// Returns ErrInvalidBase unless base > 0 and base != 1.
func NewLog(base float64) (Log, error) {
	if !(base > 0) || math.Abs(base-1) < 1e-10 || math.IsInf(base, 1) {
		return Log{}, fmt.Errorf("%w: got %v", ErrInvalidBase, base)
	}
	return Log{base: base}, nil
}

func (l Log) Base() float64      { return l.base }
func (Log) DomainLeft() float64  { return 0 }
func (Log) DomainRight() float64 { return math.Inf(1) }

// Value returns NaN for x <= 0.
func (l Log) Value(x float64) float64 {
	if !(x > 0) {
		return math.NaN()
	}
	return math.Log(x) / math.Log(l.base)
}

func (l Log) String() string {
	return "log_" + types.FormatFloat(l.base) + "(x)"
}

// Shift moves F by DX along x and DY along y.
type Shift struct {
	F      types.Function
	DX, DY float64
}

func (s Shift) DomainLeft() float64  { return s.F.DomainLeft() + s.DX }
func (s Shift) DomainRight() float64 { return s.F.DomainRight() + s.DX }

// Value returns NaN when x-DX falls outside F's domain.
func (s Shift) Value(x float64) float64 {
	orig := x - s.DX
	if orig < s.F.DomainLeft() || orig > s.F.DomainRight() {
		return math.NaN()
	}
	return s.F.Value(orig) + s.DY
}

// Compose evaluates Outer(Inner(x)) over Inner's domain.
type Compose struct {
	Outer, Inner types.Function
}

func (c Compose) DomainLeft() float64  { return c.Inner.DomainLeft() }
func (c Compose) DomainRight() float64 { return c.Inner.DomainRight() }

func (c Compose) Value(x float64) float64 {
	return c.Outer.Value(c.Inner.Value(x))
}

// Names lists the function names Lookup accepts.
func Names() []string {
	return []string{"sin", "cos", "exp", "log", "ln"}
}

// Lookup resolves a function by name. "log" takes an optional base suffix,
// as in "log:2"; without one it is the natural logarithm, same as "ln".
func Lookup(name string) (types.Function, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	head, arg, hasArg := strings.Cut(name, ":")
	if hasArg && head != "log" {
		return nil, fmt.Errorf("%w: %q takes no argument", ErrUnknownFunction, name)
	}
	switch head {
	case "sin":
		return Sin{}, nil
	case "cos":
		return Cos{}, nil
	case "exp":
		return Exp{}, nil
	case "ln":
		return logOf(math.E)
	case "log":
		if !hasArg {
			return logOf(math.E)
		}
		base, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBase, arg)
		}
		return logOf(base)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
}

// logOf is NewLog returning a nil Function on error.
func logOf(base float64) (types.Function, error) {
	l, err := NewLog(base)
	if err != nil {
		return nil, err
	}
	return l, nil
}
