package cli

import (
	"errors"
	"io/fs"

	"github.com/mesh-intelligence/tabula/internal/codec"
	"github.com/mesh-intelligence/tabula/pkg/functions"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// userErrors are failures caused by the command line or its inputs.
var userErrors = []error{
	types.ErrTableNotFound,
	types.ErrInvalidName,
	types.ErrInvalidArgument,
	types.ErrIndexOutOfRange,
	types.ErrInvalidPoint,
	types.ErrInvariantViolation,
	types.ErrBackendUnknown,
	functions.ErrUnknownFunction,
	functions.ErrInvalidBase,
	codec.ErrUnknownFormat,
	codec.ErrMalformed,
	fs.ErrNotExist,
}

// classify tags err with the exit code its cause calls for.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var e *exitErr
	if errors.As(err, &e) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}
