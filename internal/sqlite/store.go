// Package sqlite implements the named-table store on SQLite.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/tabula/pkg/tabulated"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// DBFile is the database file name inside the data directory.
const DBFile = "tabula.db"

// Store implements types.Store on a single SQLite database file.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store operations.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source for created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates a detached store. Call Attach with a Config to open it.
func NewStore(opts ...Option) *Store {
	s := &Store{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach opens <DataDir>/tabula.db, creating the directory and schema when
// missing. Existing tables are kept.
// Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// One connection keeps transactions from contending for the file lock.
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	s.db = db
	s.config = config
	s.attached = true
	s.logger.Debug("store attached", zap.String("path", dbPath))
	return nil
}

// Detach closes the database. Detach is idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	s.attached = false
	s.logger.Debug("store detached")
	return nil
}

// Save creates or replaces the named table inside one transaction.
func (s *Store) Save(name string, t types.TabulatedFunction) (types.TableInfo, error) {
	name, err := checkName(name)
	if err != nil {
		return types.TableInfo{}, err
	}
	if t == nil {
		return types.TableInfo{}, fmt.Errorf("%w: nil table", types.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return types.TableInfo{}, types.ErrStoreDetached
	}

	backend := tabulated.BackendOf(t)
	if backend == "" {
		backend = s.config.Backend
	}
	now := s.now().UTC()
	info := types.TableInfo{
		ID:        generateUUID(),
		Name:      name,
		Backend:   backend,
		Count:     t.Count(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return types.TableInfo{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := scanInfo(tx.QueryRow(selectInfoByName, name))
	switch {
	case err == nil:
		info.ID = existing.ID
		info.CreatedAt = existing.CreatedAt
	case !errors.Is(err, types.ErrTableNotFound):
		return types.TableInfo{}, err
	}

	if _, err := tx.Exec(upsertTable,
		info.ID, info.Name, info.Backend, info.Count,
		formatTime(info.CreatedAt), formatTime(info.UpdatedAt),
	); err != nil {
		return types.TableInfo{}, fmt.Errorf("saving table %q: %w", name, err)
	}
	if _, err := tx.Exec(deletePoints, info.ID); err != nil {
		return types.TableInfo{}, fmt.Errorf("clearing points of %q: %w", name, err)
	}

	stmt, err := tx.Prepare(insertPoint)
	if err != nil {
		return types.TableInfo{}, fmt.Errorf("preparing point insert: %w", err)
	}
	defer stmt.Close()

	idx := 0
	for p := range t.All() {
		if _, err := stmt.Exec(info.ID, idx, toBits(p.X), toBits(p.Y)); err != nil {
			return types.TableInfo{}, fmt.Errorf("saving point %d of %q: %w", idx, name, err)
		}
		idx++
	}

	if err := tx.Commit(); err != nil {
		return types.TableInfo{}, fmt.Errorf("committing %q: %w", name, err)
	}
	s.logger.Debug("table saved",
		zap.String("name", name),
		zap.String("id", info.ID),
		zap.String("backend", info.Backend),
		zap.Int("points", info.Count),
	)
	return info, nil
}

// Load rebuilds the named table with factory. A nil factory selects the
// backend the table was saved from.
func (s *Store) Load(name string, factory types.Factory) (types.TabulatedFunction, error) {
	name, err := checkName(name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, types.ErrStoreDetached
	}

	info, err := scanInfo(s.db.QueryRow(selectInfoByName, name))
	if err != nil {
		return nil, err
	}
	if factory == nil {
		factory, err = tabulated.FactoryFor(info.Backend)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", name, err)
		}
	}

	rows, err := s.db.Query(selectPoints, info.ID)
	if err != nil {
		return nil, fmt.Errorf("querying points of %q: %w", name, err)
	}
	defer rows.Close()

	xs := make([]float64, 0, info.Count)
	ys := make([]float64, 0, info.Count)
	for rows.Next() {
		var xb, yb int64
		if err := rows.Scan(&xb, &yb); err != nil {
			return nil, fmt.Errorf("scanning point of %q: %w", name, err)
		}
		xs = append(xs, fromBits(xb))
		ys = append(ys, fromBits(yb))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading points of %q: %w", name, err)
	}

	t, err := factory.FromArrays(xs, ys)
	if err != nil {
		return nil, fmt.Errorf("rebuilding %q: %w", name, err)
	}
	s.logger.Debug("table loaded",
		zap.String("name", name),
		zap.String("backend", factory.Name()),
		zap.Int("points", t.Count()),
	)
	return t, nil
}

// Info returns the metadata of the named table.
func (s *Store) Info(name string) (types.TableInfo, error) {
	name, err := checkName(name)
	if err != nil {
		return types.TableInfo{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return types.TableInfo{}, types.ErrStoreDetached
	}
	return scanInfo(s.db.QueryRow(selectInfoByName, name))
}

// List returns every stored table ordered by name.
func (s *Store) List() ([]types.TableInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := s.db.Query(selectInfoAll)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var out []types.TableInfo
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	return out, nil
}

// Delete removes the named table and its points.
func (s *Store) Delete(name string) error {
	name, err := checkName(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return types.ErrStoreDetached
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	info, err := scanInfo(tx.QueryRow(selectInfoByName, name))
	if err != nil {
		return err
	}
	if _, err := tx.Exec(deletePoints, info.ID); err != nil {
		return fmt.Errorf("deleting points of %q: %w", name, err)
	}
	if _, err := tx.Exec(deleteTable, info.ID); err != nil {
		return fmt.Errorf("deleting %q: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete of %q: %w", name, err)
	}
	s.logger.Debug("table deleted", zap.String("name", name), zap.String("id", info.ID))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanInfo reads one tables row. sql.ErrNoRows becomes ErrTableNotFound.
func scanInfo(row rowScanner) (types.TableInfo, error) {
	var (
		info             types.TableInfo
		created, updated string
	)
	err := row.Scan(&info.ID, &info.Name, &info.Backend, &info.Count, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return types.TableInfo{}, types.ErrTableNotFound
	}
	if err != nil {
		return types.TableInfo{}, fmt.Errorf("scanning table row: %w", err)
	}
	if info.CreatedAt, err = parseTime(created); err != nil {
		return types.TableInfo{}, err
	}
	if info.UpdatedAt, err = parseTime(updated); err != nil {
		return types.TableInfo{}, err
	}
	return info, nil
}

func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name must not be empty", types.ErrInvalidName)
	}
	return name, nil
}

// generateUUID generates a new UUID v7 for table ids.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

func toBits(f float64) int64 {
	return int64(math.Float64bits(f))
}

func fromBits(b int64) float64 {
	return math.Float64frombits(uint64(b))
}
