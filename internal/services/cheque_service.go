package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kbelaid/chequier/internal/models"
	"github.com/kbelaid/chequier/internal/render"
)

// dateLayout is the printed date format (JJ/MM/AAAA).
const dateLayout = "02/01/2006"

// ChequeService fills cheque fields: it spells the amount, wraps the phrase
// onto the two amount-in-words lines, formats the numeric box and hands the
// final strings to the renderer.
type ChequeService struct {
	speller      *AmountSpeller
	formatter    *NumericFormatter
	renderer     *render.ChequeRenderer
	maxLineWidth int
}

func NewChequeService(
	speller *AmountSpeller,
	formatter *NumericFormatter,
	renderer *render.ChequeRenderer,
	maxLineWidth int,
) *ChequeService {
	return &ChequeService{
		speller:      speller,
		formatter:    formatter,
		renderer:     renderer,
		maxLineWidth: maxLineWidth,
	}
}

// Preview holds the computed field strings for one amount, without any
// rendering. Used by the CLI echo and the API preview endpoint.
type Preview struct {
	Phrase  string `json:"montant_lettres"`
	Line1   string `json:"ligne1"`
	Line2   string `json:"ligne2"`
	Numeric string `json:"montant_chiffres"`
}

// Preview runs the amount through the full text pipeline.
func (s *ChequeService) Preview(amount float64) (*Preview, error) {
	phrase, err := s.speller.SpellAmount(amount)
	if err != nil {
		return nil, err
	}

	line1, line2, err := WrapForDisplay(phrase, s.maxLineWidth)
	if err != nil {
		return nil, err
	}

	numeric, err := s.formatter.FormatAmount(amount)
	if err != nil {
		return nil, err
	}

	return &Preview{
		Phrase:  phrase,
		Line1:   line1,
		Line2:   line2,
		Numeric: numeric,
	}, nil
}

// Generate validates the cheque, computes every field and returns the
// rendered PDF. An empty date defaults to today.
func (s *ChequeService) Generate(ctx context.Context, cheque models.Cheque) ([]byte, error) {
	if strings.TrimSpace(cheque.Payee) == "" {
		return nil, fmt.Errorf("ordre: %w", ErrMissingField)
	}
	if strings.TrimSpace(cheque.Place) == "" {
		return nil, fmt.Errorf("lieu: %w", ErrMissingField)
	}

	preview, err := s.Preview(cheque.Amount)
	if err != nil {
		return nil, err
	}

	date := strings.TrimSpace(cheque.Date)
	if date == "" {
		date = time.Now().Format(dateLayout)
	}

	return s.renderer.Render(render.Fields{
		NumericAmount: preview.Numeric,
		WordsLine1:    preview.Line1,
		WordsLine2:    preview.Line2,
		Payee:         strings.TrimSpace(cheque.Payee),
		Place:         strings.TrimSpace(cheque.Place),
		Date:          date,
	})
}

// GenerateToFile renders the cheque and writes it at path.
func (s *ChequeService) GenerateToFile(ctx context.Context, cheque models.Cheque, path string) error {
	data, err := s.Generate(ctx, cheque)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("échec de l'écriture du fichier: %w", err)
	}
	return nil
}

// CalibrationPage renders the position-calibration page.
func (s *ChequeService) CalibrationPage() ([]byte, error) {
	return s.renderer.CalibrationPage()
}

// SpellAmount exposes the spelled-out phrase for display after generation.
func (s *ChequeService) SpellAmount(amount float64) (string, error) {
	return s.speller.SpellAmount(amount)
}
