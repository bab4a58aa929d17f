package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProducesPDF(t *testing.T) {
	r := NewChequeRenderer(DefaultLayout())

	data, err := r.Render(Fields{
		NumericAmount: "1 234 567,89 DA",
		WordsLine1:    "Un million deux cent trente-quatre mille cinq cent soixante-sept",
		WordsLine2:    "dinars et quatre-vingt-neuf centimes",
		Payee:         "Sonatrach",
		Place:         "Alger",
		Date:          "07/01/2026",
	})

	assert.NoError(t, err)
	assert.Greater(t, len(data), 0, "PDF output should not be empty")
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderSkipsEmptySecondLine(t *testing.T) {
	r := NewChequeRenderer(DefaultLayout())

	data, err := r.Render(Fields{
		NumericAmount: "150,00 DA",
		WordsLine1:    "Cent cinquante dinars",
		Payee:         "Jean Dupont",
		Place:         "Paris",
		Date:          "07/01/2026",
	})

	assert.NoError(t, err)
	assert.Greater(t, len(data), 0)
}

func TestCalibrationPage(t *testing.T) {
	r := NewChequeRenderer(DefaultLayout())

	data, err := r.CalibrationPage()
	assert.NoError(t, err)
	assert.Greater(t, len(data), 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestDefaultLayoutFitsOnPage(t *testing.T) {
	l := DefaultLayout()

	assert.LessOrEqual(t, l.OffsetX+l.ChequeWidth, float64(pageWidthMM))
	assert.LessOrEqual(t, l.OffsetY+l.ChequeHeight, float64(pageHeightMM))

	for _, p := range []Position{l.NumericAmount, l.WordsLine1, l.WordsLine2, l.Payee, l.Place, l.Date} {
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.X, l.ChequeWidth)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.LessOrEqual(t, p.Y, l.ChequeHeight)
	}
}
