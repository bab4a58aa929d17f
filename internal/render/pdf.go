package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidthMM  = 210
	pageHeightMM = 297
)

// ChequeRenderer draws cheque fields at absolute positions on an A4 page.
type ChequeRenderer struct {
	layout Layout
}

func NewChequeRenderer(layout Layout) *ChequeRenderer {
	return &ChequeRenderer{layout: layout}
}

// Layout returns the renderer's layout.
func (r *ChequeRenderer) Layout() Layout {
	return r.layout
}

// y converts a cheque-relative millimetre coordinate (origin bottom-left)
// to gofpdf's top-left page coordinate.
func (r *ChequeRenderer) y(v float64) float64 {
	return pageHeightMM - (r.layout.OffsetY + v)
}

// x converts a cheque-relative millimetre coordinate to a page coordinate.
func (r *ChequeRenderer) x(v float64) float64 {
	return r.layout.OffsetX + v
}

// Render draws the fields onto a blank A4 page and returns the PDF bytes.
// The page carries text only: it is meant to be printed over a pre-printed
// cheque form.
func (r *ChequeRenderer) Render(f Fields) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont(r.layout.FontFamily, "", r.layout.FontSize)

	draw := func(pos Position, text string) {
		if text == "" {
			return
		}
		pdf.Text(r.x(pos.X), r.y(pos.Y), tr(text))
	}

	draw(r.layout.NumericAmount, f.NumericAmount)
	draw(r.layout.WordsLine1, f.WordsLine1)
	draw(r.layout.WordsLine2, f.WordsLine2)
	draw(r.layout.Payee, f.Payee)
	draw(r.layout.Place, f.Place)
	draw(r.layout.Date, f.Date)

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("échec de la génération du PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// CalibrationPage produces a measurement page: print it, tape the cheque
// onto the marked corners, read the real position of each field off the
// grid, then adjust the layout and the page offset.
func (r *ChequeRenderer) CalibrationPage() ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	l := r.layout
	left := r.x(0)
	bottom := r.y(0)
	top := r.y(l.ChequeHeight)
	right := r.x(l.ChequeWidth)

	// Grey fixing tabs in each corner, for repositionable tape.
	const tabSize = 15.0
	pdf.SetDrawColor(128, 128, 128)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetLineWidth(0.3)
	tabs := []Position{
		{X: left - tabSize, Y: bottom},
		{X: right, Y: bottom},
		{X: left - tabSize, Y: top - tabSize},
		{X: right, Y: top - tabSize},
	}
	pdf.SetTextColor(150, 150, 150)
	pdf.SetFont(l.FontFamily, "", 5)
	for _, t := range tabs {
		pdf.Rect(t.X, t.Y, tabSize, tabSize, "FD")
		pdf.Text(t.X+2, t.Y+tabSize/2, "ADHESIF")
	}

	// L-shaped alignment guides at each corner of the cheque outline.
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1.5)
	const guideLen, guideGap = 20.0, 5.0
	for _, c := range []struct{ x, y, dx, dy float64 }{
		{left, bottom, -1, 1},
		{right, bottom, 1, 1},
		{left, top, -1, -1},
		{right, top, 1, -1},
	} {
		pdf.Line(c.x, c.y+c.dy*guideGap, c.x, c.y+c.dy*guideLen)
		pdf.Line(c.x+c.dx*guideGap, c.y, c.x+c.dx*guideLen, c.y)
	}

	// Cheque outline.
	pdf.SetDrawColor(0, 0, 255)
	pdf.SetLineWidth(0.5)
	pdf.Rect(left, top, l.ChequeWidth, l.ChequeHeight, "D")

	// Millimetre grid with axis labels every 10 mm.
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.2)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetFont(l.FontFamily, "", 6)
	for gx := 0.0; gx <= l.ChequeWidth; gx += 10 {
		pdf.Line(r.x(gx), bottom, r.x(gx), top)
		pdf.Text(r.x(gx), bottom+3, fmt.Sprintf("%.0f", gx))
	}
	for gy := 0.0; gy <= l.ChequeHeight; gy += 10 {
		pdf.Line(left, r.y(gy), right, r.y(gy))
		pdf.Text(left-8, r.y(gy), fmt.Sprintf("%.0f", gy))
	}

	// Red markers at the configured field positions.
	pdf.SetFillColor(255, 0, 0)
	pdf.SetTextColor(255, 0, 0)
	pdf.SetFont(l.FontFamily, "", 8)
	markers := []struct {
		name string
		pos  Position
	}{
		{"montant_chiffres", l.NumericAmount},
		{"montant_lettres_1", l.WordsLine1},
		{"montant_lettres_2", l.WordsLine2},
		{"ordre", l.Payee},
		{"lieu", l.Place},
		{"date", l.Date},
	}
	for _, m := range markers {
		pdf.Circle(r.x(m.pos.X), r.y(m.pos.Y), 1, "F")
		pdf.Text(r.x(m.pos.X)+1.5, r.y(m.pos.Y)-1.5, m.name)
	}

	// Instructions at the top of the page.
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(l.FontFamily, "", 12)
	pdf.Text(20, pageHeightMM-270, tr("Page de calibration - Chèque"))
	pdf.SetFont(l.FontFamily, "", 9)
	steps := []string{
		"1. Imprimez cette page",
		"2. Fixez le chèque avec du ruban repositionnable sur les zones grises",
		"3. Alignez les bords du chèque avec les guides en L noirs",
		"4. Relevez la position réelle de chaque champ sur la grille",
		"5. Reportez les valeurs dans la configuration des positions",
	}
	for i, s := range steps {
		pdf.Text(20, pageHeightMM-258+float64(i)*5, tr(s))
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("échec de la génération de la page de calibration: %w", err)
	}
	return buf.Bytes(), nil
}
