package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "trials.db")
	cache, err := OpenCache(path)
	require.NoError(t, err)
	defer cache.Close()

	table := Table{
		{ID: "a", Run: "odepe", System: "seir", Noise: 1e-06, HasResult: true,
			Result: "[('beta', 0.25)]", TrueParameters: "{'beta': 0.25}", TrueStates: "{}", Time: 3.5},
		{Run: "sciml", System: "hiv", Noise: 0, HasResult: false,
			Result: "[]", TrueParameters: "{'b': 0.3}", TrueStates: "{}", Time: 1.25},
	}
	require.NoError(t, cache.Put(table))

	n, err := cache.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	loaded, err := cache.Load()
	require.NoError(t, err)
	assert.Equal(t, table, loaded)
}

func TestCachePutReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trials.db")
	cache, err := OpenCache(path)
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Put(Table{{Run: "odepe"}, {Run: "sciml"}}))
	require.NoError(t, cache.Put(Table{{Run: "amigo2_0_10"}}))

	loaded, err := cache.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "amigo2_0_10", loaded[0].Run)
}

func TestCacheEmptyLoad(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "trials.db"))
	require.NoError(t, err)
	defer cache.Close()

	loaded, err := cache.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
