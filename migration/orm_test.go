package migration

import (
	"testing"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

func TestSchemaVersionedBucket(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &MyModel{}, NoModification)

	db := store.MemStore()

	// Use custom register instead of the global one to avoid pollution
	// from the application during tests.
	b := NewModelBucket(orm.NewModelBucket("mymodel")).useRegister(reg)

	assert.Nil(t, b.Put(db, []byte("schema_one"), &MyModel{
		Metadata: &weave.Metadata{Schema: 1},
		Cnt:      5,
	}))

	var m MyModel
	assert.Nil(t, b.One(db, []byte("schema_one"), &m))
	assert.Equal(t, uint32(1), m.Metadata.Schema)
	assert.Equal(t, 5, m.Cnt)

	// Storing a model with a schema version higher than currently
	// registered is not allowed.
	err := b.Put(db, []byte("schema_two"), &MyModel{
		Metadata: &weave.Metadata{Schema: 2},
		Cnt:      11,
	})
	assert.IsErr(t, errors.ErrSchema, err)
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("schema_two")))

	// Registering a new version upgrades every loaded model to it.
	reg.MustRegister(2, &MyModel{}, func(db weave.ReadOnlyKVStore, m Migratable) error {
		m.(*MyModel).Cnt += 2
		return nil
	})

	assert.Nil(t, b.One(db, []byte("schema_one"), &m))
	assert.Equal(t, uint32(2), m.Metadata.Schema)
	assert.Equal(t, 7, m.Cnt)

	assert.Nil(t, b.Put(db, []byte("schema_two"), &MyModel{
		Metadata: &weave.Metadata{Schema: 2},
		Cnt:      11,
	}))
	assert.Nil(t, b.One(db, []byte("schema_two"), &m))
	assert.Equal(t, uint32(2), m.Metadata.Schema)
	assert.Equal(t, 11, m.Cnt)

	// Saving a model with an outdated schema runs the migration before
	// writing to the database.
	assert.Nil(t, b.Put(db, []byte("schema_one_2"), &MyModel{
		Metadata: &weave.Metadata{Schema: 1},
		Cnt:      17,
	}))
	var raw MyModel
	assert.Nil(t, orm.NewModelBucket("mymodel").One(db, []byte("schema_one_2"), &raw))
	assert.Equal(t, uint32(2), raw.Metadata.Schema)
	assert.Equal(t, 19, raw.Cnt)

	assert.Nil(t, b.Delete(db, []byte("schema_one_2")))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("schema_one_2")))
}

func TestBucketRequiresRegisteredModel(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket(orm.NewModelBucket("mymodel")).useRegister(newRegister())

	err := b.Put(db, []byte("a"), &MyModel{Metadata: &weave.Metadata{Schema: 1}})
	assert.IsErr(t, errors.ErrSchema, err)
}
