package weave

import (
	"github.com/iov-one/weave-escrow/errors"
	amino "github.com/tendermint/go-amino"
)

// Marshaller is anything that can be represented in binary
//
// Marshall may validate the data before serializing it and
// unless you previously validated the struct,
// errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Validater is any struct that can be validated.
type Validater interface {
	Validate() error
}

// codec serializes all models to their binary representation. Models are
// plain structures, so no concrete type registration is needed.
var codec = amino.NewCodec()

// MarshalBinary returns the binary representation of given model. Use it to
// implement the Persistent interface.
func MarshalBinary(model interface{}) ([]byte, error) {
	raw, err := codec.MarshalBinaryBare(model)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", model, err)
	}
	// A zero value model encodes to no bytes. Stores treat nil as a
	// missing value.
	if raw == nil {
		raw = []byte{}
	}
	return raw, nil
}

// UnmarshalBinary loads the state of a model from its binary representation.
// Destination must be a pointer.
func UnmarshalBinary(raw []byte, dest interface{}) error {
	if err := codec.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", dest, err)
	}
	return nil
}
