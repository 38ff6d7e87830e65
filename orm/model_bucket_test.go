package orm

import (
	"testing"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

// counter is a minimal model used to exercise the bucket.
type counter struct {
	Count int64
}

var _ Model = (*counter)(nil)

func (c *counter) Marshal() ([]byte, error) {
	return weave.MarshalBinary(c)
}

func (c *counter) Unmarshal(raw []byte) error {
	return weave.UnmarshalBinary(raw, c)
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func (c *counter) Copy() CloneableData {
	return &counter{Count: c.Count}
}

func TestModelBucket(t *testing.T) {
	db := store.MemStore()

	b := NewModelBucket("cnts")

	if err := b.Put(db, []byte("c1"), &counter{Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}

	var c1 counter
	if err := b.One(db, []byte("c1"), &c1); err != nil {
		t.Fatalf("cannot get c1 counter: %s", err)
	}
	if c1.Count != 1 {
		t.Fatalf("unexpected counter state: %d", c1.Count)
	}
	assert.Nil(t, b.Has(db, []byte("c1")))

	// stored under the bucket prefix
	raw, err := db.Get([]byte("cnts:c1"))
	assert.Nil(t, err)
	if raw == nil {
		t.Fatal("model not stored under the bucket prefix")
	}

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete c1 counter: %s", err)
	}
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting unexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("c1")))
}

func TestModelBucketPutValidates(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	err := b.Put(db, []byte("bad"), &counter{Count: -1})
	assert.IsErr(t, errors.ErrModel, err)
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("bad")))
}

func TestModelBucketName(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("A") })
	assert.Panics(t, func() { NewModelBucket("with space") })
}
