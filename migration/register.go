package migration

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// Migrator is a function that migrates in place an entity of a single type.
type Migrator func(weave.ReadOnlyKVStore, Migratable) error

// Migratable represents an entity that can be migrated.
type Migratable interface {
	GetMetadata() *weave.Metadata
	Validate() error
}

// NoModification is a migration function that migrates data that requires no
// change. It should be used to register migrations that do not require any
// modifications.
func NoModification(weave.ReadOnlyKVStore, Migratable) error {
	return nil
}

// reg is a globally available register instance that must be used during the
// runtime to register migration handlers.
// Register is declared as a separate type so that it can be tested without
// worrying about the global state.
var reg = newRegister()

// MustRegister registers a migration function for a given model. Function
// panics on any error.
func MustRegister(migrationTo uint32, msgOrModel Migratable, fn Migrator) {
	reg.MustRegister(migrationTo, msgOrModel, fn)
}

// Apply upgrades given entity to the requested schema version.
func Apply(db weave.ReadOnlyKVStore, m Migratable, migrateTo uint32) error {
	return reg.Apply(db, m, migrateTo)
}

// Latest returns the highest schema version registered for the type of given
// entity. Zero is returned for unknown types.
func Latest(m Migratable) uint32 {
	return reg.Latest(m)
}

type register struct {
	mu         sync.RWMutex
	migrateTo  map[payloadVersion]Migrator
	lastSchema map[reflect.Type]uint32
}

func newRegister() *register {
	return &register{
		migrateTo:  make(map[payloadVersion]Migrator),
		lastSchema: make(map[reflect.Type]uint32),
	}
}

type payloadVersion struct {
	payload reflect.Type
	version uint32
}

// MustRegister registers a migration function for a given type. Function
// panics on any error.
func (r *register) MustRegister(migrationTo uint32, msgOrModel Migratable, fn Migrator) {
	if err := r.Register(migrationTo, msgOrModel, fn); err != nil {
		panic(err)
	}
}

// Register registers a migration function for given type. Versions of a
// type must be registered one by one starting with 1.
func (r *register) Register(migrationTo uint32, msgOrModel Migratable, fn Migrator) error {
	if migrationTo < 1 {
		return errors.Wrap(errors.ErrInput, "minimal allowed version is 1")
	}

	tp := reflect.TypeOf(msgOrModel)

	r.mu.Lock()
	defer r.mu.Unlock()

	if migrationTo != r.lastSchema[tp]+1 {
		return errors.Wrapf(errors.ErrInput,
			"%v: missing %d version migration", tp, r.lastSchema[tp]+1)
	}
	r.migrateTo[payloadVersion{payload: tp, version: migrationTo}] = fn
	r.lastSchema[tp] = migrationTo
	return nil
}

func (r *register) Latest(m Migratable) uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastSchema[reflect.TypeOf(m)]
}

// Apply updates the object by applying all missing data migrations. Even a
// non modifying migration is expected to be registered.
//
// Given Migratable entity is modified in place.
// Returned entity metadata schema version is updated.
func (r *register) Apply(db weave.ReadOnlyKVStore, m Migratable, migrateTo uint32) error {
	if migrateTo < 1 {
		return errors.Wrap(errors.ErrInput, "minimal allowed version is 1")
	}

	meta := m.GetMetadata()
	if err := meta.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if meta.Schema > migrateTo {
		return errors.Wrapf(errors.ErrSchema,
			"cannot downgrade %T from version %d to %d", m, meta.Schema, migrateTo)
	}

	tp := reflect.TypeOf(m)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for v := meta.Schema + 1; v <= migrateTo; v++ {
		migrate, ok := r.migrateTo[payloadVersion{payload: tp, version: v}]
		if !ok {
			return errors.Wrapf(errors.ErrSchema, "%T missing migration to version %d", m, v)
		}
		if err := migrate(db, m); err != nil {
			return errors.Wrapf(err, "migration to version %d", v)
		}
		meta.Schema = v
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, fmt.Sprintf("migrated to version %d", meta.Schema))
	}
	return nil
}
