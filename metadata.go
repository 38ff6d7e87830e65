package weave

import "github.com/iov-one/weave-escrow/errors"

// Metadata is a header stored with every model. Schema is the version of
// the model structure and must be at least 1.
type Metadata struct {
	Schema uint32 `json:"schema"`
}

// Validate returns an error if the header is missing or describes an
// unknown schema.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version is required")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when implementing
// orm.Model interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
