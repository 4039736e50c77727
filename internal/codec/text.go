package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// WriteText writes the point count on the first line, then one "x y" line
// per point with ten decimal places.
func WriteText(w io.Writer, t types.TabulatedFunction) error {
	xs, ys, err := columns(t)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, len(xs)); err != nil {
		return fmt.Errorf("writing count: %w", err)
	}
	for i := range xs {
		if _, err := fmt.Fprintf(bw, "%.10f %.10f\n", xs[i], ys[i]); err != nil {
			return fmt.Errorf("writing point %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ReadText parses the output of WriteText. Numbers may be separated by any
// whitespace.
func ReadText(r io.Reader, factory types.Factory) (types.TabulatedFunction, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func(what string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("scanning %s: %w", what, err)
			}
			return "", fmt.Errorf("%w: expected %s", ErrMalformed, what)
		}
		return sc.Text(), nil
	}

	tok, err := next("number of points")
	if err != nil {
		return nil, err
	}
	n, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: number of points %q", ErrMalformed, tok)
	}
	if err := checkCount(n); err != nil {
		return nil, err
	}

	xs := make([]float64, 0, min(n, maxPrealloc))
	ys := make([]float64, 0, min(n, maxPrealloc))
	for i := range n {
		x, err := nextFloat(next, fmt.Sprintf("x value at point %d", i))
		if err != nil {
			return nil, err
		}
		y, err := nextFloat(next, fmt.Sprintf("y value at point %d", i))
		if err != nil {
			return nil, err
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return factory.FromArrays(xs, ys)
}

func nextFloat(next func(string) (string, error), what string) (float64, error) {
	tok, err := next(what)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformed, what, tok)
	}
	return f, nil
}
