package weave

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iov-one/weave-escrow/errors"
)

// Fraction is a rational number, such as the approval ratio of an escrow.
// Ratios are compared on integers only.
type Fraction struct {
	Numerator   uint32 `json:"numerator"`
	Denominator uint32 `json:"denominator"`
}

// MeetsRatio returns true if part out of whole is at least f. A whole of
// zero meets no ratio.
func (f Fraction) MeetsRatio(part, whole uint64) bool {
	if whole == 0 {
		return false
	}
	// part/whole >= n/d  <=>  part*d >= n*whole
	return part*uint64(f.Denominator) >= uint64(f.Numerator)*whole
}

// Validate returns an error if the fraction divides by zero.
func (f Fraction) Validate() error {
	if f.Denominator == 0 && f.Numerator != 0 {
		return errors.Wrap(errors.ErrState, "zero division")
	}
	return nil
}

// String returns the fraction as "n/d", or only n for whole numbers.
func (f *Fraction) String() string {
	switch {
	case f == nil:
		return "nil"
	case f.Numerator == 0:
		return "0"
	case f.Denominator == 1:
		return strconv.FormatUint(uint64(f.Numerator), 10)
	default:
		return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
	}
}

// Set implements flag.Value.
func (f *Fraction) Set(raw string) error {
	frac, err := ParseFractionString(raw)
	if err != nil {
		return err
	}
	*f = *frac
	return nil
}

// plainFraction has the fields of a fraction without its JSON methods.
type plainFraction Fraction

func (f Fraction) MarshalJSON() ([]byte, error) {
	return json.Marshal(plainFraction(f))
}

// UnmarshalJSON accepts both an object and the String form.
func (f *Fraction) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		frac, err := ParseFractionString(s)
		if err != nil {
			return errors.Wrap(err, "fraction string")
		}
		*f = *frac
		return nil
	}
	var p plainFraction
	if err := json.Unmarshal(raw, &p); err != nil {
		return errors.Wrapf(errors.ErrInput, "fraction: %s", err)
	}
	*f = Fraction(p)
	return nil
}

// ParseFractionString parses "n/d" or "n", surrounding spaces allowed. The
// value is not validated, "2/0" parses.
func ParseFractionString(raw string) (*Fraction, error) {
	num, den := raw, "1"
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		num, den = raw[:i], raw[i+1:]
	}
	n, err := strconv.ParseUint(strings.TrimSpace(num), 10, 32)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "numerator of %q", raw)
	}
	d, err := strconv.ParseUint(strings.TrimSpace(den), 10, 32)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "denominator of %q", raw)
	}
	return &Fraction{Numerator: uint32(n), Denominator: uint32(d)}, nil
}
