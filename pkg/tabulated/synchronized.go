package tabulated

import (
	"iter"
	"sync"

	"github.com/mesh-intelligence/tabula/internal/tabular"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// Synchronized guards a table with a reader/writer lock so several
// goroutines can share it. Positional reads take the write lock because the
// linked backend moves its cursor on every indexed lookup. Iteration runs
// over a snapshot taken under the lock.
type Synchronized struct {
	mu    sync.RWMutex
	table types.TabulatedFunction
}

// Synchronize wraps t. The caller must stop using t directly.
func Synchronize(t types.TabulatedFunction) *Synchronized {
	if s, ok := t.(*Synchronized); ok {
		return s
	}
	return &Synchronized{table: t}
}

// Snapshot returns an unsynchronized deep copy of the wrapped table.
func (s *Synchronized) Snapshot() types.TabulatedFunction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

func (s *Synchronized) DomainLeft() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.DomainLeft()
}

func (s *Synchronized) DomainRight() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.DomainRight()
}

func (s *Synchronized) Value(x float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Value(x)
}

func (s *Synchronized) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Count()
}

func (s *Synchronized) PointAt(i int) (types.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.PointAt(i)
}

func (s *Synchronized) XAt(i int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.XAt(i)
}

func (s *Synchronized) YAt(i int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.YAt(i)
}

func (s *Synchronized) SetX(i int, x float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.SetX(i, x)
}

func (s *Synchronized) SetY(i int, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.SetY(i, y)
}

func (s *Synchronized) SetPoint(i int, p types.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.SetPoint(i, p)
}

func (s *Synchronized) AddPoint(p types.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.AddPoint(p)
}

func (s *Synchronized) DeletePoint(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.DeletePoint(i)
}

// Iterator iterates a snapshot, so later writers never disturb it.
func (s *Synchronized) Iterator() types.Iterator {
	return s.Snapshot().Iterator()
}

func (s *Synchronized) All() iter.Seq[types.Point] {
	return tabular.Seq(s.Iterator())
}

// Clone returns a new Synchronized around a deep copy.
func (s *Synchronized) Clone() types.TabulatedFunction {
	return &Synchronized{table: s.Snapshot()}
}

func (s *Synchronized) Equal(other types.TabulatedFunction) bool {
	if o, ok := other.(*Synchronized); ok {
		if o == s {
			return true
		}
		other = o.Snapshot()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Equal(other)
}

func (s *Synchronized) Hash() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Hash()
}

func (s *Synchronized) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.String()
}
