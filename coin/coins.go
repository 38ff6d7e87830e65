package coin

import (
	"sort"

	"github.com/iov-one/weave-escrow/errors"
)

// Coins is a balance of several currencies. A normalized set is sorted by
// ticker, holds each ticker once and has no zero coins. All operations
// return normalized sets and never modify the receiver.
type Coins []*Coin

// CombineCoins returns a normalized set holding the sum of given coins.
func CombineCoins(cs ...Coin) (Coins, error) {
	var (
		res Coins
		err error
	)
	for _, c := range cs {
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// index returns the position of the ticker in the set, or the position
// where it belongs.
func (cs Coins) index(ticker string) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= ticker })
	return i, i < len(cs) && cs[i].Ticker == ticker
}

// Clone returns a deep copy of the set.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add returns a set with the holding of c increased by c.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	i, ok := cs.index(c.Ticker)
	res := make(Coins, 0, len(cs)+1)
	res = append(res, cs[:i]...)
	if ok {
		sum, err := cs[i].Add(c)
		if err != nil {
			return nil, err
		}
		if !sum.IsZero() {
			res = append(res, &sum)
		}
		return append(res, cs[i+1:]...), nil
	}
	res = append(res, c.Clone())
	return append(res, cs[i:]...), nil
}

// Subtract returns a set with the holding of c decreased by c. The result
// may hold negative coins.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	neg, err := Coin{Ticker: c.Ticker}.Subtract(c)
	if err != nil {
		return nil, err
	}
	return cs.Add(neg)
}

// Contains returns true if the set holds at least c.
func (cs Coins) Contains(c Coin) bool {
	i, ok := cs.index(c.Ticker)
	return ok && !cs[i].value().LessThan(c.value())
}

// Amount returns the holding of a single currency. The result is a zero
// coin of that ticker if nothing is held.
func (cs Coins) Amount(ticker string) Coin {
	if i, ok := cs.index(ticker); ok {
		return *cs[i]
	}
	return Coin{Ticker: ticker}
}

// Equals returns true if both sets hold the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate returns an error unless the set is normalized and every coin in
// it is valid.
func (cs Coins) Validate() error {
	var errs error
	for i, c := range cs {
		if c == nil {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrEmpty, "coin %d", i))
			continue
		}
		if err := c.Validate(); err != nil {
			errs = errors.Append(errs, errors.Wrapf(err, "coin %d", i))
		}
		if c.IsZero() {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrState, "coin %d is zero", i))
		}
		if i > 0 && cs[i-1] != nil && cs[i-1].Ticker >= c.Ticker {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrState, "coin %d is not sorted", i))
		}
	}
	return errs
}
