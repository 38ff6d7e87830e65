package orm

import (
	"encoding/binary"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both NextInt() as well as bytes.Compare() on NextVal().
//
// The first value returned by a new sequence is 0.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//
//	_s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal returns the next value of the sequence as 8 bytes, and
// increments the counter.
func (s *Sequence) NextVal(db weave.KVStore) ([]byte, error) {
	val, err := s.NextInt(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(val), nil
}

// NextInt returns the next value of the sequence as an int, and increments
// the counter.
func (s *Sequence) NextInt(db weave.KVStore) (uint64, error) {
	val, err := s.Peek(db)
	if err != nil {
		return 0, err
	}
	if val+1 == 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	if err := db.Set(s.id, EncodeSequence(val+1)); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return val, nil
}

// Peek returns the value the next NextInt call returns. This method does not
// modify the sequence state.
func (s *Sequence) Peek(db weave.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return DecodeSequence(raw)
}

// DecodeSequence reads a sequence value. Missing value is decoded as zero.
func DecodeSequence(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "sequence value must be 8 bytes, got %d", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

// EncodeSequence returns the big endian representation of a sequence value.
// Encoded values sort the same way as the numbers they represent.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
