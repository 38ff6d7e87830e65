package cash

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/migration"
	"github.com/iov-one/weave-escrow/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

//---- Set

// Set is the balance of a single wallet.
type Set struct {
	Metadata *weave.Metadata `json:"metadata"`
	Coins    coin.Coins      `json:"coins"`
}

var _ orm.Model = (*Set)(nil)

func init() {
	migration.MustRegister(1, &Set{}, migration.NoModification)
}

// GetMetadata implements migration.Migratable.
func (s *Set) GetMetadata() *weave.Metadata {
	return s.Metadata
}

// Marshal implements weave.Persistent.
func (s *Set) Marshal() ([]byte, error) {
	return weave.MarshalBinary(s)
}

// Unmarshal implements weave.Persistent.
func (s *Set) Unmarshal(raw []byte) error {
	return weave.UnmarshalBinary(raw, s)
}

// Validate requires that all coins are in alphabetical order,
// positive and unique.
func (s *Set) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.AppendField(errs, "Coins", s.Coins.Validate())
	for i, c := range s.Coins {
		if c != nil && !c.IsNonNegative() {
			errs = errors.Append(errs, errors.Field("Coins", errors.ErrAmount, "coin %d is negative", i))
		}
	}
	return errs
}

// Copy makes a new set with the same coins
func (s *Set) Copy() orm.CloneableData {
	return &Set{
		Metadata: s.Metadata.Copy(),
		Coins:    s.Coins.Clone(),
	}
}

// NewSet returns an empty wallet balance.
func NewSet() *Set {
	return &Set{Metadata: &weave.Metadata{Schema: 1}}
}

// NewBucket returns the bucket that stores all wallets. Wallets are indexed
// by the owner address.
func NewBucket() orm.ModelBucket {
	return migration.NewModelBucket(orm.NewModelBucket(BucketName))
}
