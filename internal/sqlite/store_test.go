package sqlite

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/tabula/internal/tabular/tabulartest"
	"github.com/mesh-intelligence/tabula/pkg/tabulated"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

func attached(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s := NewStore(opts...)
	require.NoError(t, s.Attach(types.Config{Backend: types.BackendArray, DataDir: dir}))
	t.Cleanup(func() { s.Detach() })
	return s, dir
}

func squares(t *testing.T, f types.Factory) types.TabulatedFunction {
	t.Helper()
	tf, err := f.FromPoints(tabulartest.Squares())
	require.NoError(t, err)
	return tf
}

func TestStore_Attach(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewStore()
	config := types.Config{Backend: types.BackendArray, DataDir: dir}

	require.NoError(t, s.Attach(config))
	_, err := os.Stat(filepath.Join(dir, DBFile))
	require.NoError(t, err, "database file must be created")

	require.ErrorIs(t, s.Attach(config), types.ErrAlreadyAttached)
	require.NoError(t, s.Detach())
}

func TestStore_AttachInvalidConfig(t *testing.T) {
	s := NewStore()
	err := s.Attach(types.Config{Backend: "btree", DataDir: t.TempDir()})
	require.ErrorIs(t, err, types.ErrBackendUnknown)

	_, err = s.List()
	require.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestStore_Detach(t *testing.T) {
	s, _ := attached(t)
	tf := squares(t, tabulated.ArrayFactory)

	require.NoError(t, s.Detach())
	require.NoError(t, s.Detach(), "Detach must be idempotent")

	_, err := s.Save("sq", tf)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = s.Load("sq", nil)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = s.Info("sq")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = s.List()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, s.Delete("sq"), types.ErrStoreDetached)
}

func TestStore_SaveLoad(t *testing.T) {
	tests := []struct {
		name        string
		saveWith    types.Factory
		loadWith    types.Factory
		wantBackend string
	}{
		{"array as saved", tabulated.ArrayFactory, nil, types.BackendArray},
		{"linked as saved", tabulated.LinkedFactory, nil, types.BackendLinked},
		{"array into linked", tabulated.ArrayFactory, tabulated.LinkedFactory, types.BackendLinked},
		{"linked into array", tabulated.LinkedFactory, tabulated.ArrayFactory, types.BackendArray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := attached(t)
			src := squares(t, tt.saveWith)

			info, err := s.Save("sq", src)
			require.NoError(t, err)
			assert.Equal(t, "sq", info.Name)
			assert.Equal(t, tt.saveWith.Name(), info.Backend)
			assert.Equal(t, 5, info.Count)
			assert.NotEmpty(t, info.ID)

			got, err := s.Load("sq", tt.loadWith)
			require.NoError(t, err)
			assert.True(t, src.Equal(got))
			assert.Equal(t, tt.wantBackend, tabulated.BackendOf(got))
		})
	}
}

func TestStore_SaveKeepsSpecialValues(t *testing.T) {
	s, _ := attached(t)
	negZero := math.Copysign(0, -1)
	src, err := tabulated.ArrayFactory.FromPoints([]types.Point{
		{X: negZero, Y: math.NaN()},
		{X: 1, Y: math.Inf(-1)},
		{X: 2, Y: math.SmallestNonzeroFloat64},
	})
	require.NoError(t, err)

	_, err = s.Save("odd", src)
	require.NoError(t, err)
	got, err := s.Load("odd", nil)
	require.NoError(t, err)

	assert.True(t, src.Equal(got), "bit patterns must survive storage")
	x0, err := got.XAt(0)
	require.NoError(t, err)
	assert.True(t, math.Signbit(x0))
}

func TestStore_SaveReplaces(t *testing.T) {
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s, _ := attached(t, WithClock(func() time.Time { return clock }))

	first, err := s.Save("t", squares(t, tabulated.ArrayFactory))
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	smaller, err := tabulated.LinkedFactory.FromArrays([]float64{0, 1}, []float64{5, 6})
	require.NoError(t, err)
	second, err := s.Save("t", smaller)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "id is stable across saves")
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.True(t, second.UpdatedAt.Equal(clock))
	assert.Equal(t, types.BackendLinked, second.Backend)
	assert.Equal(t, 2, second.Count)

	got, err := s.Load("t", nil)
	require.NoError(t, err)
	assert.True(t, smaller.Equal(got), "old points must be gone")

	info, err := s.Info("t")
	require.NoError(t, err)
	assert.Equal(t, second.ID, info.ID)
	assert.True(t, info.UpdatedAt.Equal(clock))
}

func TestStore_Persists(t *testing.T) {
	dir := t.TempDir()
	config := types.Config{Backend: types.BackendArray, DataDir: dir}
	src := squares(t, tabulated.LinkedFactory)

	s := NewStore()
	require.NoError(t, s.Attach(config))
	_, err := s.Save("kept", src)
	require.NoError(t, err)
	require.NoError(t, s.Detach())

	reopened := NewStore()
	require.NoError(t, reopened.Attach(config))
	defer reopened.Detach()

	got, err := reopened.Load("kept", nil)
	require.NoError(t, err)
	assert.True(t, src.Equal(got))
	assert.Equal(t, types.BackendLinked, tabulated.BackendOf(got))
}

func TestStore_ListAndDelete(t *testing.T) {
	s, _ := attached(t)

	list, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := s.Save(name, squares(t, tabulated.ArrayFactory))
		require.NoError(t, err)
	}

	list, err = s.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "mid", list[1].Name)
	assert.Equal(t, "zeta", list[2].Name)

	require.NoError(t, s.Delete("mid"))
	require.ErrorIs(t, s.Delete("mid"), types.ErrTableNotFound)

	_, err = s.Load("mid", nil)
	require.ErrorIs(t, err, types.ErrTableNotFound)

	list, err = s.List()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestStore_InvalidName(t *testing.T) {
	s, _ := attached(t)

	_, err := s.Save("  ", squares(t, tabulated.ArrayFactory))
	assert.ErrorIs(t, err, types.ErrInvalidName)
	_, err = s.Load("", nil)
	assert.ErrorIs(t, err, types.ErrInvalidName)
	assert.ErrorIs(t, s.Delete(""), types.ErrInvalidName)

	_, err = s.Save("nil", nil)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestStore_SaveSynchronized(t *testing.T) {
	s, _ := attached(t)
	shared := tabulated.Synchronize(squares(t, tabulated.LinkedFactory))

	info, err := s.Save("shared", shared)
	require.NoError(t, err)
	assert.Equal(t, types.BackendLinked, info.Backend)
}

func TestStore_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s, _ := attached(t, WithLogger(zap.New(core)))

	_, err := s.Save("sq", squares(t, tabulated.ArrayFactory))
	require.NoError(t, err)
	_, err = s.Load("sq", nil)
	require.NoError(t, err)

	saved := logs.FilterMessage("table saved").All()
	require.Len(t, saved, 1)
	assert.Equal(t, "sq", saved[0].ContextMap()["name"])
	assert.Equal(t, int64(5), saved[0].ContextMap()["points"])
	assert.Equal(t, 1, logs.FilterMessage("table loaded").Len())
	assert.Equal(t, 1, logs.FilterMessage("store attached").Len())
}
