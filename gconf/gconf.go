package gconf

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// ReadStore is the part of weave.ReadOnlyKVStore needed to load a
// configuration.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of weave.KVStore needed to save a configuration.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// ValidMarshaler is a configuration that can be checked and serialized.
type ValidMarshaler interface {
	weave.Marshaller
	weave.Validater
}

// Unmarshaler is a configuration that can be loaded back.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is implemented by every extension configuration.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

// key returns the singleton key of the package configuration.
func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates src and stores it as the configuration of pkg, replacing
// any previous one.
func Save(db Store, pkg string, src ValidMarshaler) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: %s configuration", pkg)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: %s configuration", pkg)
	}
	if err := db.Set(key(pkg), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Load reads the configuration of pkg into dst. It returns ErrNotFound if
// none was saved.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: %s configuration", pkg)
	}
	return nil
}

// InitConfig saves the configuration found in the genesis under
// conf.<pkg>. It returns ErrNotFound if the genesis has none for pkg.
func InitConfig(db Store, opts weave.Options, pkg string, conf Configuration) error {
	var all weave.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if len(all[pkg]) == 0 {
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration in genesis", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read %s configuration", pkg)
	}
	return Save(db, pkg, conf)
}
