package coin

import (
	"github.com/iov-one/weave-escrow/errors"
	"github.com/shopspring/decimal"
)

const (
	// MaxInt is the largest whole value a coin can hold.
	MaxInt int64 = 999999999999999
	// MinInt is the lowest whole value a coin can hold.
	MinInt = -MaxInt

	// FracUnit is the number of fractional units in a whole one.
	FracUnit int64 = 1000000000

	// fracExp is the decimal exponent of a single fractional unit.
	fracExp = -9
)

// limit is the smallest absolute value that does not fit into a coin.
var limit = decimal.New(MaxInt+1, 0)

// Coin is an amount of a single currency. The value is fixed point, Whole
// units plus Fractional billionths, and both parts must have the same sign.
type Coin struct {
	Whole      int64  `json:"whole,omitempty"`
	Fractional int64  `json:"fractional,omitempty"`
	Ticker     string `json:"ticker,omitempty"`
}

// NewCoin returns a coin of given value.
func NewCoin(whole, fractional int64, ticker string) Coin {
	return Coin{Whole: whole, Fractional: fractional, Ticker: ticker}
}

// NewCoinp is NewCoin returning a pointer.
func NewCoinp(whole, fractional int64, ticker string) *Coin {
	c := NewCoin(whole, fractional, ticker)
	return &c
}

// value returns the exact decimal value of the coin. It is defined for
// coins that are not normalized as well.
func (c Coin) value() decimal.Decimal {
	return decimal.New(c.Whole, 0).Add(decimal.New(c.Fractional, fracExp))
}

// fromValue builds a normalized coin. Precision beyond a fractional unit is
// truncated.
func fromValue(ticker string, v decimal.Decimal) (Coin, error) {
	if v.Abs().GreaterThanOrEqual(limit) {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s %s", v, ticker)
	}
	whole := v.IntPart()
	frac := v.Sub(decimal.New(whole, 0)).Shift(-fracExp).IntPart()
	return Coin{Whole: whole, Fractional: frac, Ticker: ticker}, nil
}

// Add returns the sum of both coins. A zero coin without a ticker is
// neutral, otherwise both must be of the same currency.
func (c Coin) Add(o Coin) (Coin, error) {
	switch {
	case c.Ticker == "" && c.IsZero():
		return o, nil
	case o.Ticker == "" && o.IsZero():
		return c, nil
	case c.Ticker != o.Ticker:
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	return fromValue(c.Ticker, c.value().Add(o.value()))
}

// Subtract returns c decreased by amount.
func (c Coin) Subtract(amount Coin) (Coin, error) {
	neg, err := fromValue(amount.Ticker, amount.value().Neg())
	if err != nil {
		return Coin{}, err
	}
	return c.Add(neg)
}

// Multiply returns the coin value times n. It fails if the result would
// overflow the coin range.
func (c Coin) Multiply(n int64) (Coin, error) {
	return fromValue(c.Ticker, c.value().Mul(decimal.New(n, 0)))
}

// Equals returns true if both coins have identical fields.
func (c Coin) Equals(o Coin) bool {
	return c == o
}

// IsZero returns true if the coin holds no value.
func (c Coin) IsZero() bool {
	return c.Whole == 0 && c.Fractional == 0
}

// IsPositive returns true if the value is greater than zero.
func (c Coin) IsPositive() bool {
	return c.value().IsPositive()
}

// IsNonNegative returns true if the value is zero or greater.
func (c Coin) IsNonNegative() bool {
	return !c.value().IsNegative()
}

// Clone returns a copy of the coin. Cloning nil returns nil.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Validate returns an error if the ticker is not 3 or 4 upper case
// letters, any part is out of range or the parts have different signs.
// Negative coins are valid.
func (c Coin) Validate() error {
	var errs error
	if !isTicker(c.Ticker) {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", c.Ticker))
	}
	if c.Whole < MinInt || c.Whole > MaxInt {
		errs = errors.Append(errs, errors.Wrap(errors.ErrOverflow, "whole"))
	}
	if c.Fractional <= -FracUnit || c.Fractional >= FracUnit {
		errs = errors.Append(errs, errors.Wrap(errors.ErrOverflow, "fractional"))
	}
	if (c.Whole < 0 && c.Fractional > 0) || (c.Whole > 0 && c.Fractional < 0) {
		errs = errors.Append(errs, errors.Wrap(errors.ErrState, "mismatched sign"))
	}
	return errs
}

func isTicker(s string) bool {
	if len(s) < 3 || len(s) > 4 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
