package coin

import (
	"encoding/json"
	"regexp"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/shopspring/decimal"
)

var humanFormat = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)\s*([A-Z]{3,4})$`)

// ParseHumanFormat parses a coin written as "<whole>[.<fractional>] <ticker>",
// for example "10 IOV" or "-0.5 ETH".
func ParseHumanFormat(h string) (Coin, error) {
	m := humanFormat.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	v, err := decimal.NewFromString(m[1])
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid value %q: %s", m[1], err)
	}
	if v.Exponent() < fracExp {
		return Coin{}, errors.Wrapf(errors.ErrInput, "%q is too precise", m[1])
	}
	c, err := fromValue(m[2], v)
	if err != nil {
		return Coin{}, errors.Wrap(errors.ErrInput, err.Error())
	}
	return c, nil
}

// String returns the human readable format of the coin. The result can be
// parsed back if the coin is valid.
func (c Coin) String() string {
	s := c.value().String()
	if c.Ticker == "" {
		return s
	}
	return s + " " + c.Ticker
}

// Set implements flag.Value.
func (c *Coin) Set(raw string) error {
	v, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// plainCoin has the fields of a coin without its JSON methods.
type plainCoin Coin

// MarshalJSON writes a valid coin in the human readable format and an
// invalid one as an object, so that no information is lost.
func (c Coin) MarshalJSON() ([]byte, error) {
	if c.Validate() != nil {
		return json.Marshal(plainCoin(c))
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts both the human readable format and an object.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		v, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = v
		return nil
	}
	var p plainCoin
	if err := json.Unmarshal(raw, &p); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode coin: %s", err)
	}
	*c = Coin(p)
	return nil
}
