package weavetest

import (
	"testing"

	"github.com/iov-one/weave-escrow/weavetest/assert"
)

func TestNewAddressIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		a := NewAddress()
		assert.Nil(t, a.Validate())
		if seen[a.String()] {
			t.Fatalf("address %s generated twice", a)
		}
		seen[a.String()] = true
	}
}

func TestSequenceID(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 0}, SequenceID(256))
}
