package weave

// ReadOnlyKVStore reads single keys. A missing key reads as nil.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// SetDeleter is the write half shared by stores and batches.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is what escrow, cash and configuration code is written
// against. A nil key is a programming error and may panic.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// Batch collects writes and applies them to its store on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// CacheableKVStore can open a cache wrap on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds pending changes over a store. Reads see the pending
// changes first. Write applies them to the store below, Discard drops
// them. A cache wrap can be wrapped again.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is a versioned root store. Changes written through its
// cache wraps become a new version on Commit.
type CommitKVStore interface {
	// Get reads from the last committed version.
	Get(key []byte) ([]byte, error)

	CacheWrap() KVCacheWrap

	// Commit saves the working state as the next version.
	Commit() (CommitID, error)

	// LoadLatestVersion opens the store at its last complete version.
	LoadLatestVersion() error

	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by number and root hash.
type CommitID struct {
	Version int64
	Hash    []byte
}
