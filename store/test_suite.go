package store

import (
	"fmt"
	"testing"

	"github.com/iov-one/weave-escrow/weavetest/assert"
)

// TestSuite runs the same checks against any CacheableKVStore
// implementation. Each check builds a fresh store with the constructor.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns an empty store and a function releasing it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite testing stores built by constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that a cache wrap shows the data of its store, keeps its
// own changes private until written and drops them on discard.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	escrow, wallet, config := []byte("escrow:1"), []byte("wallet:dest"), []byte("conf:escrow")

	s.AssertGetHas(t, base, escrow, nil, false)
	assert.Nil(t, base.Set(escrow, []byte("open")))
	s.AssertGetHas(t, base, escrow, []byte("open"), true)

	written := base.CacheWrap()
	s.AssertGetHas(t, written, escrow, []byte("open"), true)
	assert.Nil(t, written.Set(wallet, []byte("20 IOV")))
	s.AssertGetHas(t, written, wallet, []byte("20 IOV"), true)
	s.AssertGetHas(t, base, wallet, nil, false)
	assert.Nil(t, written.Write())
	s.AssertGetHas(t, base, wallet, []byte("20 IOV"), true)

	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Set(config, []byte("limit")))
	assert.Nil(t, discarded.Delete(escrow))
	s.AssertGetHas(t, discarded, escrow, nil, false)
	discarded.Discard()
	s.AssertGetHas(t, base, config, nil, false)
	s.AssertGetHas(t, base, escrow, []byte("open"), true)

	deleting := base.CacheWrap()
	assert.Nil(t, deleting.Delete(escrow))
	assert.Nil(t, deleting.Write())
	s.AssertGetHas(t, base, escrow, nil, false)
	s.AssertGetHas(t, base, wallet, []byte("20 IOV"), true)
}

// CacheConflicts checks changes of a cache wrap that overlap with the data
// of its store.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := testKeys("key", 8)
	vs := testKeys("value", 16)

	cases := map[string]struct {
		parentOps []Op
		childOps  []Op
		// Keys queried on the parent before and on both after the child
		// is written. A nil value means the key is missing.
		before []Model
		after  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps: []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:  []Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			before:    []Model{Pair(ks[1], vs[1]), Pair(ks[2], vs[2]), Pair(ks[3], nil)},
			after:     []Model{Pair(ks[1], vs[11]), Pair(ks[2], nil), Pair(ks[3], vs[7])},
		},
		"last write of a key wins": {
			parentOps: []Op{SetOp(ks[4], vs[4])},
			childOps:  []Op{DelOp(ks[4]), SetOp(ks[4], vs[14]), SetOp(ks[4], vs[15])},
			before:    []Model{Pair(ks[4], vs[4])},
			after:     []Model{Pair(ks[4], vs[15])},
		},
		"delete then set a missing key": {
			childOps: []Op{DelOp(ks[6]), SetOp(ks[6], vs[6])},
			before:   []Model{Pair(ks[6], nil)},
			after:    []Model{Pair(ks[6], vs[6])},
		},
		"delete a missing key": {
			parentOps: []Op{SetOp(ks[5], vs[5])},
			childOps:  []Op{DelOp(ks[7])},
			before:    []Model{Pair(ks[5], vs[5]), Pair(ks[7], nil)},
			after:     []Model{Pair(ks[5], vs[5]), Pair(ks[7], nil)},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				assert.Nil(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				assert.Nil(t, op.Apply(child))
			}

			for _, q := range tc.before {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.after {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			assert.Nil(t, child.Write())
			for _, q := range tc.after {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// NestedCacheWrap checks that values written through many layers of cache
// wraps only reach the base once every layer is written.
func (s *TestSuite) NestedCacheWrap(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("escrow"), []byte("open")
	outer := base.CacheWrap()
	inner := outer.CacheWrap()
	assert.Nil(t, inner.Set(k, v))

	s.AssertGetHas(t, inner, k, v, true)
	s.AssertGetHas(t, outer, k, nil, false)
	s.AssertGetHas(t, base, k, nil, false)

	assert.Nil(t, inner.Write())
	s.AssertGetHas(t, outer, k, v, true)
	s.AssertGetHas(t, base, k, nil, false)

	assert.Nil(t, outer.Write())
	s.AssertGetHas(t, base, k, v, true)
}

// AssertGetHas fails unless kv holds val under key. A missing key must
// read as nil.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

// testKeys returns count distinct keys with given prefix.
func testKeys(prefix string, count int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = []byte(fmt.Sprintf("%s:%02d", prefix, i))
	}
	return res
}
