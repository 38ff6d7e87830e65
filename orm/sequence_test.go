package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

func TestSequence(t *testing.T) {
	cases := map[string]struct {
		bucket     string
		name       string
		increments uint64
	}{
		"single increment": {
			bucket:     "esc",
			name:       "id",
			increments: 1,
		},
		"many increments": {
			bucket:     "esc",
			name:       "id",
			increments: 300,
		},
		"other name": {
			bucket:     "cash",
			name:       "tx",
			increments: 22,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			s := NewSequence(tc.bucket, tc.name)

			var prev []byte
			for i := uint64(0); i < tc.increments; i++ {
				raw, err := s.NextVal(db)
				assert.Nil(t, err)

				val, err := DecodeSequence(raw)
				assert.Nil(t, err)
				assert.Equal(t, i, val)

				// raw bytes can be used to index stuff
				if prev != nil && bytes.Compare(raw, prev) != 1 {
					t.Fatalf("%x is not greater than %x", raw, prev)
				}
				prev = raw
			}

			next, err := s.Peek(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.increments, next)
		})
	}
}

func TestSequenceIsolation(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("esc", "id")
	b := NewSequence("esc", "other")

	for i := 0; i < 3; i++ {
		_, err := a.NextInt(db)
		assert.Nil(t, err)
	}
	val, err := b.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), val)

	// discarded cache does not consume values
	cache := db.CacheWrap()
	_, err = a.NextInt(cache)
	assert.Nil(t, err)
	cache.Discard()
	val, err = a.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), val)
}

func TestDecodeSequence(t *testing.T) {
	val, err := DecodeSequence(nil)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), val)

	_, err = DecodeSequence([]byte{1, 2})
	assert.IsErr(t, errors.ErrInput, err)

	val, err = DecodeSequence(EncodeSequence(1 << 40))
	assert.Nil(t, err)
	assert.Equal(t, uint64(1<<40), val)
}
