package store

import (
	"sync"
)

// Locked is a KVStore that can be shared between goroutines. Reads are served
// under a read lock. A cache wrap created from it is written back in one step
// under the write lock, so that concurrent readers observe all of its changes
// or none of them.
type Locked struct {
	mu sync.RWMutex
	kv KVStore
}

var _ CacheableKVStore = (*Locked)(nil)

// NewLocked returns a store that guards all access to kv. The kv store must
// not be used directly afterwards.
func NewLocked(kv KVStore) *Locked {
	return &Locked{kv: kv}
}

// Get returns nil iff key doesn't exist.
func (l *Locked) Get(key []byte) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.kv.Get(key)
}

// Has checks if a key exists.
func (l *Locked) Has(key []byte) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.kv.Has(key)
}

// Set writes a single value.
func (l *Locked) Set(key, value []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.kv.Set(key, value)
}

// Delete removes a single value.
func (l *Locked) Delete(key []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.kv.Delete(key)
}

// NewBatch returns a batch that applies all its operations while holding
// the write lock.
func (l *Locked) NewBatch() Batch {
	return &lockedBatch{parent: l}
}

// CacheWrap returns a btree cache that is written back atomically.
func (l *Locked) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(l, l.NewBatch())
}

type lockedBatch struct {
	parent *Locked
	ops    []Op
}

func (b *lockedBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *lockedBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

func (b *lockedBatch) Write() error {
	b.parent.mu.Lock()
	defer b.parent.mu.Unlock()

	ops := b.ops
	b.ops = nil
	for _, op := range ops {
		if err := op.Apply(b.parent.kv); err != nil {
			return err
		}
	}
	return nil
}
