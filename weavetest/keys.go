package weavetest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/weave-escrow"
)

var condCounter uint64

// NewCondition returns a condition that is unique within the test binary.
// Its address can be used as a participant or a wallet owner.
func NewCondition() weave.Condition {
	n := atomic.AddUint64(&condCounter, 1)
	return weave.NewCondition("test", "seq", SequenceID(n))
}

// NewAddress returns the address of a new unique condition.
func NewAddress() weave.Address {
	return NewCondition().Address()
}

// SequenceID returns an ID encoded as if it was generated by the orm
// sequence. Use it to build keys of entities stored in a bucket.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
