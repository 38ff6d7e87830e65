package store

import (
	"bytes"

	"github.com/google/btree"
)

// degree of every cache tree.
const degree = 2

// BTreeCacheable gives any KVStore a btree cache wrap. Changes made through
// the cache reach the store only on Write, one operation at a time.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap implements CacheableKVStore.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, NewNonAtomicBatch(b.KVStore))
}

// MemStore returns an in memory store, mostly useful in tests. Nothing is
// persisted.
//
// The returned store is not safe for concurrent use. Wrap it with
// NewLocked if it is shared between goroutines.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch())
}

// BTreeCacheWrap keeps all changes in a btree on top of a read only view.
// Reads are served from the tree first. Every change is mirrored into the
// batch, flushed by Write.
type BTreeCacheWrap struct {
	changes *btree.BTree
	back    ReadOnlyKVStore
	batch   Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over kv. All writes go to batch, kv
// is only read from.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch) BTreeCacheWrap {
	return BTreeCacheWrap{
		changes: btree.New(degree),
		back:    kv,
		batch:   batch,
	}
}

// CacheWrap returns a cache over this one. Writing it applies the changes
// to this cache, not to the backing store.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch())
}

// NewBatch returns a batch that writes into this cache.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all changes to the backing store and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all changes.
func (b BTreeCacheWrap) Discard() {
	b.changes.Clear(false)
}

// Set implements KVStore.
func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.changes.ReplaceOrInsert(change{key: key, value: value})
	return b.batch.Set(key, value)
}

// Delete implements KVStore.
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.changes.ReplaceOrInsert(change{key: key, deleted: true})
	return b.batch.Delete(key)
}

// Get implements ReadOnlyKVStore.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if c, ok := b.lookup(key); ok {
		if c.deleted {
			return nil, nil
		}
		return c.value, nil
	}
	return b.back.Get(key)
}

// Has implements ReadOnlyKVStore.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if c, ok := b.lookup(key); ok {
		return !c.deleted, nil
	}
	return b.back.Has(key)
}

func (b BTreeCacheWrap) lookup(key []byte) (change, bool) {
	item := b.changes.Get(change{key: key})
	if item == nil {
		return change{}, false
	}
	return item.(change), true
}

// change is a single cached write. A deleted change hides the key of the
// backing store.
type change struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = change{}

// Less orders changes by key.
func (c change) Less(than btree.Item) bool {
	return bytes.Compare(c.key, than.(change).key) < 0
}
