package migration

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

func TestZeroMigrationIsNotAllowed(t *testing.T) {
	reg := newRegister()

	if err := reg.Register(0, &MyModel{}, NoModification); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected invalid version registration error: %s", err)
	}
	if err := reg.Apply(nil, &MyModel{}, 0); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected invalid version registration error: %s", err)
	}
}

func TestRegisterMigrationMustBeSequential(t *testing.T) {
	reg := newRegister()

	// Each migration must start with 1.
	if err := reg.Register(2, &MyModel{}, NoModification); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error when missing previous migration: %s", err)
	}

	reg.MustRegister(1, &MyModel{}, NoModification)
	reg.MustRegister(2, &MyModel{}, NoModification)

	if err := reg.Register(4, &MyModel{}, NoModification); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error when missing previous migration: %s", err)
	}
	if err := reg.Register(2, &MyModel{}, NoModification); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error when registering a version twice: %s", err)
	}

	reg.MustRegister(3, &MyModel{}, NoModification)
	assert.Equal(t, uint32(3), reg.Latest(&MyModel{}))
	assert.Equal(t, uint32(0), reg.Latest(&otherModel{}))

	assert.Panics(t, func() {
		reg.MustRegister(5, &MyModel{}, NoModification)
	})
}

func TestApply(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &MyModel{}, NoModification)
	reg.MustRegister(2, &MyModel{}, func(db weave.ReadOnlyKVStore, m Migratable) error {
		m.(*MyModel).Cnt += 2
		return nil
	})
	reg.MustRegister(3, &MyModel{}, NoModification)
	reg.MustRegister(4, &MyModel{}, func(db weave.ReadOnlyKVStore, m Migratable) error {
		m.(*MyModel).Cnt *= 10
		return nil
	})

	m := &MyModel{
		Metadata: &weave.Metadata{Schema: 1},
		Cnt:      1,
	}

	// Running a migration can bring it up to any state in the future.
	assert.Nil(t, reg.Apply(nil, m, 3))
	assert.Equal(t, uint32(3), m.Metadata.Schema)
	assert.Equal(t, 3, m.Cnt)

	assert.Nil(t, reg.Apply(nil, m, 4))
	assert.Equal(t, uint32(4), m.Metadata.Schema)
	assert.Equal(t, 30, m.Cnt)

	// Migrating to the current version is a no-op.
	assert.Nil(t, reg.Apply(nil, m, 4))
	assert.Equal(t, 30, m.Cnt)

	if err := reg.Apply(nil, m, 2); !errors.ErrSchema.Is(err) {
		t.Fatalf("unexpected downgrade error: %s", err)
	}
}

func TestApplyRequiresMetadata(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &MyModel{}, NoModification)

	err := reg.Apply(nil, &MyModel{}, 1)
	assert.IsErr(t, errors.ErrMetadata, err)
}

func TestMigrateUnknownVersion(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &MyModel{}, NoModification)
	reg.MustRegister(2, &MyModel{}, NoModification)
	reg.MustRegister(3, &MyModel{}, NoModification)

	m := &MyModel{
		Metadata: &weave.Metadata{Schema: 1},
	}

	// Migration attempt to a non existing version must fail. It will
	// upgrade the model to the highest available state.
	if err := reg.Apply(nil, m, 999); !errors.ErrSchema.Is(err) {
		t.Fatalf("unexpected migration failure: %s", err)
	}
	assert.Equal(t, uint32(3), m.Metadata.Schema)
}

func TestMigrationResultIsValidated(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &MyModel{}, NoModification)
	reg.MustRegister(2, &MyModel{}, func(db weave.ReadOnlyKVStore, m Migratable) error {
		m.(*MyModel).err = errors.ErrState
		return nil
	})

	m := &MyModel{Metadata: &weave.Metadata{Schema: 1}}
	err := reg.Apply(nil, m, 2)
	assert.IsErr(t, errors.ErrState, err)
}

type MyModel struct {
	Metadata *weave.Metadata `json:"metadata"`
	Cnt      int             `json:"cnt"`

	err error
}

func (m *MyModel) GetMetadata() *weave.Metadata {
	return m.Metadata
}

func (m *MyModel) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	return m.err
}

func (m *MyModel) Copy() orm.CloneableData {
	return &MyModel{
		Metadata: m.Metadata.Copy(),
		Cnt:      m.Cnt,
		err:      m.err,
	}
}

func (m *MyModel) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *MyModel) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

var _ Migratable = (*MyModel)(nil)
var _ orm.Model = (*MyModel)(nil)

type otherModel struct {
	MyModel
}
