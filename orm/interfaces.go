package orm

import (
	"github.com/iov-one/weave-escrow"
)

// CloneableData is an intelligent Value that can be stored in a bucket and
// copied without sharing any memory with the original.
type CloneableData interface {
	weave.Validater
	weave.Persistent
	Copy() CloneableData
}

// Model is impelemented by any entity that can be stored using ModelBucket.
//
// This is the same interface as CloneableData. Using the right type names
// provides an easier to read API.
type Model interface {
	weave.Persistent
	Validate() error
	Copy() CloneableData
}
