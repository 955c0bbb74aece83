package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Money is a cent-precision amount. It marshals to a JSON number with two decimals.
type Money struct {
	decimal.Decimal
}

// MaxMoney is the largest magnitude a NUMERIC(12,2) column holds.
var MaxMoney = Money{Decimal: decimal.RequireFromString("9999999999.99")}

// maxExponent bounds the decimal exponent accepted from input.
const maxExponent = 32

// ErrMoneyRange rejects amounts outside [-MaxMoney, MaxMoney].
var ErrMoneyRange = errors.New("amount is out of range")

// ZeroMoney is the additive identity.
var ZeroMoney = Money{Decimal: decimal.Zero}

// NewMoney rounds d to cents.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// MoneyFromString parses a decimal literal such as "25.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return checkedMoney(d)
}

func checkedMoney(d decimal.Decimal) (Money, error) {
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return Money{}, ErrMoneyRange
	}
	m := NewMoney(d)
	if m.Abs().GreaterThan(MaxMoney.Decimal) {
		return Money{}, ErrMoneyRange
	}
	return m, nil
}

// InRange reports whether m fits the storage column.
func (m Money) InRange() bool {
	return m.Abs().LessThanOrEqual(MaxMoney.Decimal)
}

// MustMoney is MoneyFromString for constants in tests and defaults.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{Decimal: m.Decimal.Add(other.Decimal)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{Decimal: m.Decimal.Sub(other.Decimal)}
}

// Mul returns m * factor rounded to cents.
func (m Money) Mul(factor decimal.Decimal) Money {
	return NewMoney(m.Decimal.Mul(factor))
}

// String renders the amount with exactly two decimals, the storage representation.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// MarshalJSON renders a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or numeric string within the storage range.
func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	checked, err := checkedMoney(d)
	if err != nil {
		return err
	}
	*m = checked
	return nil
}
