package render

// Position is a point in millimetres, measured from the cheque's
// bottom-left corner.
type Position struct {
	X float64
	Y float64
}

// Layout holds the field positions for one cheque model plus the placement
// of the cheque on the A4 sheet. All values are millimetres.
type Layout struct {
	NumericAmount Position
	WordsLine1    Position
	WordsLine2    Position
	Payee         Position
	Place         Position
	Date          Position

	// OffsetX/OffsetY place the cheque's bottom-left corner on the page,
	// measured from the page's bottom-left corner.
	OffsetX float64
	OffsetY float64

	// Outline of the physical cheque, used by the calibration page.
	ChequeWidth  float64
	ChequeHeight float64

	FontFamily string
	FontSize   float64
}

// DefaultLayout returns positions calibrated for a standard bank cheque
// printed on A4. Adjust per cheque model with the calibration page.
func DefaultLayout() Layout {
	return Layout{
		NumericAmount: Position{X: 165, Y: 75},
		WordsLine1:    Position{X: 25, Y: 62},
		WordsLine2:    Position{X: 25, Y: 55},
		Payee:         Position{X: 45, Y: 48},
		Place:         Position{X: 130, Y: 35},
		Date:          Position{X: 155, Y: 35},

		OffsetX: 10,
		OffsetY: 180,

		ChequeWidth:  175,
		ChequeHeight: 80,

		FontFamily: "Helvetica",
		FontSize:   10,
	}
}

// Fields carries the final strings to draw, one per cheque field.
// WordsLine2 may be empty.
type Fields struct {
	NumericAmount string
	WordsLine1    string
	WordsLine2    string
	Payee         string
	Place         string
	Date          string
}
