package pcache

import (
	"fmt"
	"testing"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/dataset"
	"github.com/stretchr/testify/require"
)

func TestCacheResize(t *testing.T) {
	cache := NewLRU(&LRUConfig{
		InitialSize: 10,
	})
	defer cache.Clear()

	iCache, ok := cache.(*lru)
	require.True(t, ok)

	for i := 0; i < 20; i++ {
		cache.Add(fmt.Sprintf("piece-%d", i), dataset.NewPointSet())
	}
	require.Equal(t, 10, len(iCache.pmap))
	require.Equal(t, 10, iCache.recentList.Len())
	cache.Resize(0.5)
	require.Equal(t, 5, len(iCache.pmap))
	require.Equal(t, 5, cache.CurrentSize())
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	cache := NewLRU(&LRUConfig{
		InitialSize: 2,
		OnEvict: func(key string, value vispipe.DataObject) {
			evicted = append(evicted, key)
		},
	})
	defer cache.Clear()
	a := dataset.NewPointSet()
	cache.Add("a", a)
	cache.Add("b", dataset.NewPointSet())
	got, err := cache.Get("a")
	require.Nil(t, err)
	require.Equal(t, a, got)
	cache.Add("c", dataset.NewPointSet())
	require.Equal(t, []string{"b"}, evicted)
	_, err = cache.Get("b")
	require.NotNil(t, err)
	require.True(t, cache.Remove("a"))
	require.False(t, cache.Remove("a"))
	require.Equal(t, 1, cache.CurrentSize())
}
