package services

import (
	"math"
	"strings"
	"testing"

	"github.com/kbelaid/chequier/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSpellIntegerIrregularTable(t *testing.T) {
	expected := []string{
		"", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit",
		"neuf", "dix", "onze", "douze", "treize", "quatorze", "quinze",
		"seize", "dix-sept", "dix-huit", "dix-neuf",
	}
	for n := 1; n <= 19; n++ {
		assert.Equal(t, expected[n], spellInteger(int64(n)), "n=%d", n)
	}
}

func TestSpellIntegerTens(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{20, "vingt"},
		{21, "vingt-et-un"},
		{22, "vingt-deux"},
		{30, "trente"},
		{41, "quarante-et-un"},
		{55, "cinquante-cinq"},
		{60, "soixante"},
		{61, "soixante-et-un"},
		{69, "soixante-neuf"},
		{70, "soixante-dix"},
		{71, "soixante-et-onze"},
		{72, "soixante-douze"},
		{79, "soixante-dix-neuf"},
		{80, "quatre-vingts"},
		{81, "quatre-vingt-un"},
		{85, "quatre-vingt-cinq"},
		{90, "quatre-vingt-dix"},
		{91, "quatre-vingt-onze"},
		{99, "quatre-vingt-dix-neuf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, spellInteger(tt.n), "n=%d", tt.n)
	}
}

func TestSpellIntegerConnectiveAsymmetry(t *testing.T) {
	// "et" links the units only in the twenties through seventies;
	// the eighties and nineties hyphenate directly.
	assert.Contains(t, spellInteger(21), "-et-")
	assert.Contains(t, spellInteger(71), "-et-")
	assert.NotContains(t, spellInteger(81), "-et-")
	assert.NotContains(t, spellInteger(91), "-et-")
}

func TestSpellIntegerHundreds(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{100, "cent"},
		{101, "cent un"},
		{150, "cent cinquante"},
		{180, "cent quatre-vingts"},
		{200, "deux cents"},
		{201, "deux cent un"},
		{800, "huit cents"},
		{999, "neuf cent quatre-vingt-dix-neuf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, spellInteger(tt.n), "n=%d", tt.n)
	}
}

func TestSpellIntegerThousandsAndMillions(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1000, "mille"},
		{1001, "mille un"},
		{2000, "deux mille"},
		{10000, "dix mille"},
		{999999, "neuf cent quatre-vingt-dix-neuf mille neuf cent quatre-vingt-dix-neuf"},
		{1000000, "un million"},
		{2000000, "deux millions"},
		{1234567, "un million deux cent trente-quatre mille cinq cent soixante-sept"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, spellInteger(tt.n), "n=%d", tt.n)
	}
}

func TestSpellIntegerDigitFallback(t *testing.T) {
	assert.Equal(t, "1000000000", spellInteger(1000000000))
	assert.Equal(t, "2500000001", spellInteger(2500000001))
}

func TestSpellAmountZero(t *testing.T) {
	s := NewAmountSpeller(models.DZD)
	got, err := s.SpellAmount(0)
	assert.NoError(t, err)
	assert.Equal(t, "zéro dinar", got)
}

func TestSpellAmount(t *testing.T) {
	s := NewAmountSpeller(models.DZD)

	tests := []struct {
		amount float64
		want   string
	}{
		{1, "un dinar"},
		{1.01, "un dinar et un centime"},
		{150.00, "cent cinquante dinars"},
		{89.99, "quatre-vingt-neuf dinars et quatre-vingt-dix-neuf centimes"},
		{1234567.89, "un million deux cent trente-quatre mille cinq cent soixante-sept dinars et quatre-vingt-neuf centimes"},
		// Subunits only: the major-unit word is omitted entirely.
		{0.50, "et cinquante centimes"},
		// Rounding carries into the major units.
		{1.999, "deux dinars"},
	}
	for _, tt := range tests {
		got, err := s.SpellAmount(tt.amount)
		assert.NoError(t, err, "amount=%v", tt.amount)
		assert.Equal(t, tt.want, got, "amount=%v", tt.amount)
	}
}

func TestSpellAmountNoDoubleSpaces(t *testing.T) {
	s := NewAmountSpeller(models.DZD)
	for _, amount := range []float64{0, 0.5, 1, 21.21, 1000.01, 1234567.89} {
		got, err := s.SpellAmount(amount)
		assert.NoError(t, err)
		assert.NotContains(t, got, "  ")
		assert.Equal(t, got, strings.TrimSpace(got))
	}
}

func TestSpellAmountInvalid(t *testing.T) {
	s := NewAmountSpeller(models.DZD)
	for _, amount := range []float64{-0.01, -100, math.NaN(), math.Inf(1)} {
		_, err := s.SpellAmount(amount)
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount=%v", amount)
	}
}

func TestSpellAmountCustomCurrency(t *testing.T) {
	eur := models.Currency{
		Code:          "EUR",
		MajorSingular: "euro",
		MajorPlural:   "euros",
		MinorSingular: "centime",
		MinorPlural:   "centimes",
	}
	s := NewAmountSpeller(eur)
	got, err := s.SpellAmount(2.02)
	assert.NoError(t, err)
	assert.Equal(t, "deux euros et deux centimes", got)
}
