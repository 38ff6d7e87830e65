package migration

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

// NewModelBucket returns a bucket that stores and returns models migrated to
// the highest schema version registered for their type.
func NewModelBucket(b orm.ModelBucket) *ModelBucket {
	return &ModelBucket{b: b, reg: reg}
}

// ModelBucket wraps an orm.ModelBucket and ensures all models are migrated
// before being returned or stored.
type ModelBucket struct {
	b   orm.ModelBucket
	reg *register
}

var _ orm.ModelBucket = (*ModelBucket)(nil)

// useRegister returns a copy of this bucket that uses given register.
func (mb *ModelBucket) useRegister(r *register) *ModelBucket {
	return &ModelBucket{b: mb.b, reg: r}
}

// One loads the model under given key and migrates it to the latest schema.
// The stored value is not modified.
func (mb *ModelBucket) One(db weave.ReadOnlyKVStore, key []byte, dest orm.Model) error {
	if err := mb.b.One(db, key, dest); err != nil {
		return err
	}
	if err := mb.migrate(db, dest); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return nil
}

func (mb *ModelBucket) Has(db weave.ReadOnlyKVStore, key []byte) error {
	return mb.b.Has(db, key)
}

// Put migrates given model to the latest schema and stores it. A model
// declaring a schema version higher than the latest registered one is
// rejected.
func (mb *ModelBucket) Put(db weave.KVStore, key []byte, m orm.Model) error {
	if err := mb.migrate(db, m); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return mb.b.Put(db, key, m)
}

func (mb *ModelBucket) Delete(db weave.KVStore, key []byte) error {
	return mb.b.Delete(db, key)
}

func (mb *ModelBucket) migrate(db weave.ReadOnlyKVStore, m orm.Model) error {
	mm, ok := m.(Migratable)
	if !ok {
		return errors.Wrapf(errors.ErrModel, "%T is not migratable", m)
	}
	latest := mb.reg.Latest(mm)
	if latest == 0 {
		return errors.Wrapf(errors.ErrSchema, "no schema registered for %T", m)
	}
	return mb.reg.Apply(db, mm, latest)
}
