package store

import (
	"github.com/iov-one/weave-escrow/errors"
)

// EmptyKVStore holds nothing and ignores writes. It is the bottom layer
// of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set(_, _ []byte) error      { return nil }
func (EmptyKVStore) Delete([]byte) error        { return nil }

// NewBatch returns a batch that drops everything written to it.
func (EmptyKVStore) NewBatch() Batch { return nopBatch{} }

type nopBatch struct{}

func (nopBatch) Set(_, _ []byte) error { return nil }
func (nopBatch) Delete([]byte) error   { return nil }
func (nopBatch) Write() error          { return nil }

// Op is a single recorded write.
type Op struct {
	del   bool
	key   []byte
	value []byte
}

// SetOp records setting key to value.
func SetOp(key, value []byte) Op { return Op{key: key, value: value} }

// DelOp records deleting key.
func DelOp(key []byte) Op { return Op{del: true, key: key} }

// Apply performs the write on out.
func (o Op) Apply(out SetDeleter) error {
	if o.key == nil {
		return errors.Wrap(errors.ErrDatabase, "operation without key")
	}
	if o.del {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch records writes and replays them in order on Write. A
// failing write stops the replay and leaves the earlier ones applied, so
// it is only fit for stores that cannot fail halfway, like the cache
// wraps and stores in memory.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch returns an empty batch writing to out.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write replays all recorded writes and empties the batch.
func (b *NonAtomicBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			b.ops = b.ops[i:]
			return err
		}
	}
	b.ops = nil
	return nil
}

// ShowOps returns the writes not replayed yet.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
