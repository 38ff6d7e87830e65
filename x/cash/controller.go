package cash

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

// Controller is the functionality needed by the escrow extension and the
// command line. Extensions that need to move money should use it rather than
// access the bucket directly.
type Controller interface {
	// Balance returns all coins held by the wallet. An address that was
	// never credited is reported with an ErrNotFound.
	Balance(weave.ReadOnlyKVStore, weave.Address) (coin.Coins, error)

	// CoinMint credits the wallet with given amount, creating it if
	// needed.
	CoinMint(weave.KVStore, weave.Address, coin.Coin) error

	// MoveCoins moves the given amount from src to dest. It fails if src
	// does not hold enough.
	MoveCoins(weave.KVStore, weave.Address, weave.Address, coin.Coin) error
}

// BaseController is a simple implementation of controller
// wallet must return something that supports AsSet
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a basic controller implementation
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by given address.
func (c BaseController) Balance(store weave.ReadOnlyKVStore, src weave.Address) (coin.Coins, error) {
	var set Set
	if err := c.bucket.One(store, src, &set); err != nil {
		return nil, errors.Wrapf(err, "wallet %s", src)
	}
	return set.Coins, nil
}

// CoinMint attempts to add the given amount of coins to the destination
// address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(store weave.KVStore, dest weave.Address, amount coin.Coin) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive mint %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	wallet, err := c.getOrCreate(store, dest)
	if err != nil {
		return err
	}
	if wallet.Coins, err = wallet.Coins.Add(amount); err != nil {
		return err
	}
	return c.bucket.Put(store, dest, wallet)
}

// MoveCoins moves the given amount from src to dest. If src doesn't exist,
// or doesn't have sufficient coins, it fails. Both balances are computed
// before anything is written, a failure leaves the store untouched.
func (c BaseController) MoveCoins(store weave.KVStore, src, dest weave.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive send %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	var sender Set
	if err := c.bucket.One(store, src, &sender); err != nil {
		return errors.Wrapf(err, "sender %s", src)
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "funds: %s", sender.Coins.Amount(amount.Ticker))
	}
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.getOrCreate(store, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return errors.Wrapf(err, "recipient %s", dest)
	}
	if sender.Coins, err = sender.Coins.Subtract(amount); err != nil {
		return err
	}
	if err := c.bucket.Put(store, src, &sender); err != nil {
		return err
	}
	return c.bucket.Put(store, dest, recipient)
}

func (c BaseController) getOrCreate(store weave.ReadOnlyKVStore, addr weave.Address) (*Set, error) {
	var set Set
	switch err := c.bucket.One(store, addr, &set); {
	case err == nil:
		return &set, nil
	case errors.ErrNotFound.Is(err):
		return NewSet(), nil
	default:
		return nil, err
	}
}
