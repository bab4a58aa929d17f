package services

import (
	"strconv"
	"strings"

	"github.com/kbelaid/chequier/internal/models"
)

// AmountSpeller converts decimal amounts to their spelled-out French form,
// including the currency unit and subunit words.
// Example: 1500.50 -> "mille cinq cents dinars et cinquante centimes"
type AmountSpeller struct {
	currency models.Currency
}

func NewAmountSpeller(currency models.Currency) *AmountSpeller {
	return &AmountSpeller{currency: currency}
}

// SpellAmount returns the full spelled-out phrase for amount.
// Negative or non-finite amounts return models.ErrInvalidAmount.
// Amounts of a billion units or more keep the unit words but render the
// number itself as digits; that is a documented limit, not an error.
func (s *AmountSpeller) SpellAmount(amount float64) (string, error) {
	m, err := models.SplitAmount(amount)
	if err != nil {
		return "", err
	}

	if m.IsZero() {
		return "zéro " + s.currency.MajorSingular, nil
	}

	var parts []string

	if m.Major > 0 {
		parts = append(parts, spellInteger(m.Major))
		if m.Major == 1 {
			parts = append(parts, s.currency.MajorSingular)
		} else {
			parts = append(parts, s.currency.MajorPlural)
		}
	}

	if m.Minor > 0 {
		parts = append(parts, "et", spellInteger(m.Minor))
		if m.Minor == 1 {
			parts = append(parts, s.currency.MinorSingular)
		} else {
			parts = append(parts, s.currency.MinorPlural)
		}
	}

	return strings.Join(parts, " "), nil
}

// Currency returns the vocabulary the speller was built with.
func (s *AmountSpeller) Currency() models.Currency {
	return s.currency
}

// unitWords covers 0-19; French has irregular words through nineteen.
var unitWords = []string{
	"", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf",
	"dix", "onze", "douze", "treize", "quatorze", "quinze", "seize", "dix-sept",
	"dix-huit", "dix-neuf",
}

// tensWords is indexed by the tens digit. 70-79 and 90-99 have no word of
// their own: they build on "soixante" and "quatre-vingt" with the 10-19 table.
var tensWords = []string{
	"", "dix", "vingt", "trente", "quarante", "cinquante", "soixante",
	"soixante", "quatre-vingt", "quatre-vingt",
}

// spellInteger converts a non-negative integer to French words.
// Zero yields the empty string: it only occurs as a remainder of a higher
// magnitude tier, never standalone.
func spellInteger(n int64) string {
	if n == 0 {
		return ""
	}

	if n < 20 {
		return unitWords[n]
	}

	if n < 100 {
		tens := n / 10
		units := n % 10

		switch tens {
		case 7, 9:
			// 70-79 and 90-99 reuse the 10-19 words after the tens base.
			// "et" appears only at 71, never in the nineties.
			base := tensWords[tens]
			if tens == 7 && units == 1 {
				return base + "-et-onze"
			}
			return base + "-" + unitWords[10+units]
		case 8:
			// "quatre-vingts" takes its plural s only on the round number,
			// and never takes "et".
			if units == 0 {
				return "quatre-vingts"
			}
			return "quatre-vingt-" + unitWords[units]
		default:
			if units == 0 {
				return tensWords[tens]
			}
			if units == 1 {
				return tensWords[tens] + "-et-un"
			}
			return tensWords[tens] + "-" + unitWords[units]
		}
	}

	if n < 1000 {
		hundreds := n / 100
		remainder := n % 100

		result := "cent"
		if hundreds > 1 {
			result = unitWords[hundreds] + " cent"
		}

		if remainder == 0 && hundreds > 1 {
			return result + "s"
		}
		if remainder > 0 {
			result += " " + spellInteger(remainder)
		}
		return result
	}

	if n < 1000000 {
		thousands := n / 1000
		remainder := n % 1000

		// "mille" is invariable: no "un" prefix, no plural s.
		result := "mille"
		if thousands > 1 {
			result = spellInteger(thousands) + " mille"
		}

		if remainder > 0 {
			result += " " + spellInteger(remainder)
		}
		return result
	}

	if n < 1000000000 {
		millions := n / 1000000
		remainder := n % 1000000

		result := "un million"
		if millions > 1 {
			result = spellInteger(millions) + " millions"
		}

		if remainder > 0 {
			result += " " + spellInteger(remainder)
		}
		return result
	}

	// Past the milliard the spelled form stops; plain digits instead.
	return strconv.FormatInt(n, 10)
}
