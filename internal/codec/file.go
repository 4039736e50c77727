package codec

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// WriteFile atomically writes t to path using the temp-file, fsync, rename
// pattern, so readers never observe a partial table.
func WriteFile(path string, t types.TabulatedFunction, f Format) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tabula-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	if err := Write(w, t, f); err != nil {
		return fail(fmt.Errorf("writing table: %w", err))
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ReadFile reads a table in format f from path.
func ReadFile(path string, f Format, factory types.Factory) (types.TabulatedFunction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	t, err := Read(bufio.NewReader(file), f, factory)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}
