package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// WriteBinary writes a big-endian int32 point count followed by a float64
// x, y pair per point.
func WriteBinary(w io.Writer, t types.TabulatedFunction) error {
	xs, ys, err := columns(t)
	if err != nil {
		return err
	}
	if len(xs) > math.MaxInt32 {
		return fmt.Errorf("%w: %d points exceed the binary header", ErrMalformed, len(xs))
	}
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.BigEndian, int32(len(xs))); err != nil {
		return fmt.Errorf("writing count: %w", err)
	}
	var buf [16]byte
	for i := range xs {
		binary.BigEndian.PutUint64(buf[0:8], math.Float64bits(xs[i]))
		binary.BigEndian.PutUint64(buf[8:16], math.Float64bits(ys[i]))
		if _, err := bw.Write(buf[:]); err != nil {
			return fmt.Errorf("writing point %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ReadBinary parses the output of WriteBinary.
func ReadBinary(r io.Reader, factory types.Factory) (types.TabulatedFunction, error) {
	br := bufio.NewReader(r)
	var n int32
	if err := binary.Read(br, binary.BigEndian, &n); err != nil {
		return nil, fmt.Errorf("%w: reading count: %w", ErrMalformed, err)
	}
	if err := checkCount(int64(n)); err != nil {
		return nil, err
	}

	xs := make([]float64, 0, min(int(n), maxPrealloc))
	ys := make([]float64, 0, min(int(n), maxPrealloc))
	var buf [16]byte
	for i := range int(n) {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return nil, fmt.Errorf("%w: reading point %d: %w", ErrMalformed, i, err)
		}
		xs = append(xs, math.Float64frombits(binary.BigEndian.Uint64(buf[0:8])))
		ys = append(ys, math.Float64frombits(binary.BigEndian.Uint64(buf[8:16])))
	}
	return factory.FromArrays(xs, ys)
}
