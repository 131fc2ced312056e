package models

import (
	"database/sql/driver"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Price is an exact two-decimal money amount, stored as DECIMAL(10,2).
// It travels over JSON as a string ("10.00") to avoid float rounding.
type Price struct {
	decimal.Decimal
}

// maxPrice is the first value that no longer fits DECIMAL(10,2).
var maxPrice = decimal.New(1, 8)

// Rounding or comparing a decimal rescales it to 10^|exponent|, so values
// outside this window are refused before any arithmetic touches them.
const (
	minDecimalExp = -32
	maxDecimalExp = 8
)

var errExponentRange = errors.New("decimal exponent out of range")

// parseDecimal is decimal.NewFromString restricted to the exponent window.
func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return d, checkExponent(d)
}

func checkExponent(d decimal.Decimal) error {
	if e := d.Exponent(); e < minDecimalExp || e > maxDecimalExp {
		return errors.Wrapf(errExponentRange, "exponent %d", e)
	}
	return nil
}

// NewPrice parses s into a Price rounded to two decimal places.
func NewPrice(s string) (Price, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return Price{}, err
	}
	return Price{d.Round(2)}, nil
}

// MustPrice is NewPrice for literals known to be valid.
func MustPrice(s string) Price {
	p, err := NewPrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Price) String() string {
	return p.StringFixed(2)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON accepts both "10.00" and 10.00.
func (p *Price) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	if err := checkExponent(d); err != nil {
		return err
	}
	p.Decimal = d.Round(2)
	return nil
}

// Value always sends two decimals to the driver.
func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}

// MarshalCSV is used by the CSV export.
func (p Price) MarshalCSV() (string, error) {
	return p.String(), nil
}
