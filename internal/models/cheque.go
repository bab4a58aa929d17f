package models

import (
	"errors"
	"math"
)

// ErrInvalidAmount is returned when an amount is negative or not finite.
var ErrInvalidAmount = errors.New("montant invalide")

// Cheque holds the fields written onto a cheque.
type Cheque struct {
	Amount float64 `json:"montant"`
	Payee  string  `json:"ordre"`
	Place  string  `json:"lieu"`
	// Date in JJ/MM/AAAA form; empty means today.
	Date string `json:"date"`
}

// MonetaryAmount is a non-negative amount split into whole currency units
// and a two-digit subunit. Invariant: 0 <= Minor <= 99.
type MonetaryAmount struct {
	Major int64
	Minor int64
}

// SplitAmount splits a decimal amount into major and minor units.
// The fractional part is rounded half-up (math.Round); when rounding lands
// on 100 subunits the excess carries into the major units so the Minor
// invariant holds (2.999 becomes 3 units 0 subunits).
func SplitAmount(amount float64) (MonetaryAmount, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return MonetaryAmount{}, ErrInvalidAmount
	}

	major := int64(amount)
	minor := int64(math.Round((amount - float64(major)) * 100))
	if minor >= 100 {
		major++
		minor -= 100
	}

	return MonetaryAmount{Major: major, Minor: minor}, nil
}

// IsZero reports whether the amount is exactly zero.
func (m MonetaryAmount) IsZero() bool {
	return m.Major == 0 && m.Minor == 0
}

// Currency carries the vocabulary used when spelling and formatting amounts.
// Only the unit names are swappable; the French number tables are not.
type Currency struct {
	Code          string `json:"code"`
	MajorSingular string `json:"major_singular"`
	MajorPlural   string `json:"major_plural"`
	MinorSingular string `json:"minor_singular"`
	MinorPlural   string `json:"minor_plural"`
}

// DZD is the default currency vocabulary (Algerian dinar).
var DZD = Currency{
	Code:          "DA",
	MajorSingular: "dinar",
	MajorPlural:   "dinars",
	MinorSingular: "centime",
	MinorPlural:   "centimes",
}
