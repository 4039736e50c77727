package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabula/pkg/tabulated"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

func TestNewStore(t *testing.T) {
	store := NewStore(nil)
	require.NoError(t, store.Attach(types.Config{Backend: types.BackendLinked, DataDir: t.TempDir()}))
	defer store.Detach()

	tf, err := tabulated.LinkedFactory.FromRange(0, 1, 4)
	require.NoError(t, err)
	_, err = store.Save("seed", tf)
	require.NoError(t, err)

	got, err := store.Load("seed", tabulated.ArrayFactory)
	require.NoError(t, err)
	assert.True(t, tf.Equal(got))
}
