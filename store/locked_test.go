package store

import (
	"encoding/binary"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLocked() (CacheableKVStore, func()) {
	return NewLocked(MemStore()), func() {}
}

var lockedSuite = NewTestSuite(makeLocked)

func TestLockedGetSet(t *testing.T) {
	lockedSuite.GetSet(t)
}

func TestLockedCacheConflicts(t *testing.T) {
	lockedSuite.CacheConflicts(t)
}

func TestLockedNestedCacheWrap(t *testing.T) {
	lockedSuite.NestedCacheWrap(t)
}

// TestLockedConcurrentWrites runs many cache wraps in parallel. Each of them
// writes a pair of keys that must always be observed together.
func TestLockedConcurrentWrites(t *testing.T) {
	db := NewLocked(MemStore())

	const workers = 32
	var wg conc.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Go(func() {
			cache := db.CacheWrap()
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, uint64(i))
			if err := cache.Set(append([]byte("a:"), key...), key); err != nil {
				panic(err)
			}
			if err := cache.Set(append([]byte("b:"), key...), key); err != nil {
				panic(err)
			}
			if err := cache.Write(); err != nil {
				panic(err)
			}
		})
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, uint64(i))
		a, err := db.Get(append([]byte("a:"), key...))
		require.NoError(t, err)
		b, err := db.Get(append([]byte("b:"), key...))
		require.NoError(t, err)
		assert.Equal(t, key, a)
		assert.Equal(t, key, b)
	}
}
