// Package codec reads and writes tables as text, binary, or msgpack streams.
// Writers consume only Count and PointAt; readers rebuild tables through a
// types.Factory so the caller picks the backend.
package codec

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// Format names a stream encoding.
type Format string

// Supported formats.
const (
	FormatText    Format = "text"
	FormatBinary  Format = "binary"
	FormatMsgpack Format = "msgpack"
)

// Codec errors.
var (
	ErrUnknownFormat = errors.New("unknown format")
	ErrMalformed     = errors.New("malformed table stream")
)

// maxPrealloc caps the slice capacity trusted from a stream header.
const maxPrealloc = 1 << 16

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatBinary, FormatMsgpack}
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Write encodes t to w in format f.
func Write(w io.Writer, t types.TabulatedFunction, f Format) error {
	switch f {
	case FormatText:
		return WriteText(w, t)
	case FormatBinary:
		return WriteBinary(w, t)
	case FormatMsgpack:
		return WriteMsgpack(w, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Read decodes a table in format f from r and builds it with factory.
func Read(r io.Reader, f Format, factory types.Factory) (types.TabulatedFunction, error) {
	switch f {
	case FormatText:
		return ReadText(r, factory)
	case FormatBinary:
		return ReadBinary(r, factory)
	case FormatMsgpack:
		return ReadMsgpack(r, factory)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// columns extracts parallel x and y slices from t.
func columns(t types.TabulatedFunction) (xs, ys []float64, err error) {
	n := t.Count()
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := range n {
		p, err := t.PointAt(i)
		if err != nil {
			return nil, nil, err
		}
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys, nil
}

func checkCount(n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: negative point count %d", ErrMalformed, n)
	}
	return nil
}
