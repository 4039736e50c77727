package types

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Epsilon is the tolerance used when two x-coordinates are checked for a
// collision during insertion.
const Epsilon = 1e-9

// Point is a single (x, y) sample. It is a value type: every table copies
// points on the way in and on the way out.
type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// NewPoint returns the point (x, y).
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// WithX returns a copy of p with the x-coordinate replaced.
// No ordering validation happens here; that is the table's job.
func (p Point) WithX(x float64) Point {
	p.X = x
	return p
}

// WithY returns a copy of p with the y-coordinate replaced.
func (p Point) WithY(y float64) Point {
	p.Y = y
	return p
}

// Equal reports whether both coordinates of p and o have identical IEEE-754
// bit patterns. Use ApproxEqualX for tolerance-based x comparisons.
func (p Point) Equal(o Point) bool {
	return SameBits(p.X, o.X) && SameBits(p.Y, o.Y)
}

// Hash returns a hash of both coordinates' bit patterns, consistent with
// Equal.
func (p Point) Hash() uint64 {
	var buf [16]byte
	p.putBits(buf[:])
	return xxhash.Sum64(buf[:])
}

// AppendBits appends the little-endian bit patterns of x then y to dst.
func (p Point) AppendBits(dst []byte) []byte {
	var buf [16]byte
	p.putBits(buf[:])
	return append(dst, buf[:]...)
}

func (p Point) putBits(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(p.X))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(p.Y))
}

// String formats the point as "(x; y)".
func (p Point) String() string {
	return "(" + FormatFloat(p.X) + "; " + FormatFloat(p.Y) + ")"
}

// ApproxEqualX reports whether |a-b| < Epsilon.
func ApproxEqualX(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// SameBits reports whether a and b have identical bit patterns.
func SameBits(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

// FormatFloat formats f with the shortest representation that round-trips.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
