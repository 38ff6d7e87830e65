package store

import (
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeMemStore() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

var btreeSuite = NewTestSuite(makeMemStore)

func TestBTreeCacheGetSet(t *testing.T) {
	btreeSuite.GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	btreeSuite.CacheConflicts(t)
}

func TestBTreeNestedCacheWrap(t *testing.T) {
	btreeSuite.NestedCacheWrap(t)
}

// TestBTreeCacheableWritesThrough makes sure a cache over a plain KVStore
// reaches it only on Write.
func TestBTreeCacheableWritesThrough(t *testing.T) {
	base := NewLocked(MemStore())
	cacheable := BTreeCacheable{base}

	cache := cacheable.CacheWrap()
	require.NoError(t, cache.Set([]byte("k"), []byte("v")))

	got, err := base.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Write())
	got, err = base.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestNonAtomicBatchShowOps(t *testing.T) {
	b := NewNonAtomicBatch(EmptyKVStore{})
	require.NoError(t, b.Set([]byte("a"), []byte("1")))
	require.NoError(t, b.Delete([]byte("b")))

	assert.Equal(t, []Op{SetOp([]byte("a"), []byte("1")), DelOp([]byte("b"))}, b.ShowOps())
	require.NoError(t, b.Write())
	assert.Empty(t, b.ShowOps())
}

// failingStore accepts a limited number of writes.
type failingStore struct {
	EmptyKVStore
	left int
}

func (f *failingStore) Set(key, value []byte) error {
	if f.left == 0 {
		return errors.Wrap(errors.ErrDatabase, "full")
	}
	f.left--
	return nil
}

func TestNonAtomicBatchKeepsUnwrittenOps(t *testing.T) {
	out := &failingStore{left: 1}
	b := NewNonAtomicBatch(out)
	require.NoError(t, b.Set([]byte("a"), []byte("1")))
	require.NoError(t, b.Set([]byte("b"), []byte("2")))

	err := b.Write()
	require.Error(t, err)
	assert.True(t, errors.ErrDatabase.Is(err))
	assert.Equal(t, []Op{SetOp([]byte("b"), []byte("2"))}, b.ShowOps())

	out.left = 1
	require.NoError(t, b.Write())
	assert.Empty(t, b.ShowOps())
}
