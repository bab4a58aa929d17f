package services

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kbelaid/chequier/internal/models"
)

// NumericFormatter renders amounts as grouped digit strings for the numeric
// amount box. Example: 1234567.89 -> "1 234 567,89 DA"
type NumericFormatter struct {
	currency models.Currency
}

func NewNumericFormatter(currency models.Currency) *NumericFormatter {
	return &NumericFormatter{currency: currency}
}

// FormatAmount formats amount with space-grouped thousands, a comma before
// the two-digit subunit and the currency code suffix.
func (f *NumericFormatter) FormatAmount(amount float64) (string, error) {
	m, err := models.SplitAmount(amount)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s,%02d %s", groupThousands(m.Major), m.Minor, f.currency.Code), nil
}

// groupThousands inserts a plain space every three digits, right to left.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteString(" ")
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// WrapForDisplay upper-cases the first rune of phrase, then splits it into
// at most two lines of maxWidth runes without breaking words. Words
// accumulate greedily on the first line; the word that would overflow and
// everything after it go to the second line, with no re-balancing.
// The returned lines preserve the phrase's word sequence exactly.
func WrapForDisplay(phrase string, maxWidth int) (string, string, error) {
	if maxWidth <= 0 {
		return "", "", ErrInvalidWidth
	}

	phrase = capitalizeFirst(strings.TrimSpace(phrase))
	if phrase == "" {
		return "", "", nil
	}

	if utf8.RuneCountInString(phrase) <= maxWidth {
		return phrase, "", nil
	}

	var line1, line2 []string
	// width counts line1's runes including one trailing space per word,
	// matching the printed field's cursor position.
	width := 0
	onSecondLine := false

	for _, word := range strings.Fields(phrase) {
		wordLen := utf8.RuneCountInString(word)
		if !onSecondLine && width+wordLen < maxWidth {
			line1 = append(line1, word)
			width += wordLen + 1
		} else {
			onSecondLine = true
			line2 = append(line2, word)
		}
	}

	return strings.Join(line1, " "), strings.Join(line2, " "), nil
}

// capitalizeFirst upper-cases the first rune only; the rest of the phrase
// stays as produced by the speller.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[size:]
}
