package codec

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// tableRecord is the msgpack document for one table.
type tableRecord struct {
	Count  int           `msgpack:"count"`
	Points []types.Point `msgpack:"points"`
}

// WriteMsgpack encodes t as a {count, points} map.
func WriteMsgpack(w io.Writer, t types.TabulatedFunction) error {
	rec := tableRecord{Count: t.Count(), Points: make([]types.Point, 0, t.Count())}
	for p := range t.All() {
		rec.Points = append(rec.Points, p)
	}
	if err := msgpack.NewEncoder(w).Encode(&rec); err != nil {
		return fmt.Errorf("encoding table: %w", err)
	}
	return nil
}

// ReadMsgpack decodes the output of WriteMsgpack.
func ReadMsgpack(r io.Reader, factory types.Factory) (types.TabulatedFunction, error) {
	var rec tableRecord
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: decoding table: %w", ErrMalformed, err)
	}
	if rec.Count != len(rec.Points) {
		return nil, fmt.Errorf("%w: header says %d points, found %d", ErrMalformed, rec.Count, len(rec.Points))
	}
	return factory.FromPoints(rec.Points)
}
