package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kbelaid/chequier/internal/models"
	"github.com/kbelaid/chequier/internal/repository"
	"github.com/kbelaid/chequier/internal/statemachine"
	"github.com/kbelaid/chequier/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// RegisterService keeps the persistent trail of issued cheques and drives
// their status transitions. The whole register is optional: when no
// database is configured the service is simply never constructed.
type RegisterService struct {
	repo    repository.ChequeRepository
	speller *AmountSpeller
}

func NewRegisterService(repo repository.ChequeRepository, speller *AmountSpeller) *RegisterService {
	return &RegisterService{repo: repo, speller: speller}
}

// Record adds a freshly generated cheque to the register.
func (s *RegisterService) Record(ctx context.Context, cheque models.Cheque, filePath string) (*models.ChequeRecord, error) {
	words, err := s.speller.SpellAmount(cheque.Amount)
	if err != nil {
		return nil, err
	}

	issueDate := cheque.Date
	if issueDate == "" {
		issueDate = time.Now().Format(dateLayout)
	}

	record := &models.ChequeRecord{
		Amount:      cheque.Amount,
		AmountWords: words,
		Payee:       cheque.Payee,
		Place:       cheque.Place,
		IssueDate:   issueDate,
		FilePath:    filePath,
		Status:      models.ChequeStatusIssued,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("échec de l'enregistrement du chèque: %w", err)
	}

	logger.Info("Cheque recorded", "id", record.ID, "payee", record.Payee, "amount", record.Amount)
	return record, nil
}

// MarkPrinted transitions a register entry to printed.
func (s *RegisterService) MarkPrinted(ctx context.Context, id uint) (*models.ChequeRecord, error) {
	return s.transition(ctx, id, func(m *statemachine.ChequeFSM) error {
		return m.Print(ctx)
	})
}

// Void invalidates a register entry. A voided cheque stays in the register
// but is excluded from totals and can never change state again.
func (s *RegisterService) Void(ctx context.Context, id uint) (*models.ChequeRecord, error) {
	return s.transition(ctx, id, func(m *statemachine.ChequeFSM) error {
		return m.Void(ctx)
	})
}

func (s *RegisterService) transition(ctx context.Context, id uint, event func(*statemachine.ChequeFSM) error) (*models.ChequeRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	machine := statemachine.NewChequeFSM(record)
	if err := event(machine); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("échec de la mise à jour du registre: %w", err)
	}

	logger.Info("Cheque status changed", "id", record.ID, "status", record.Status)
	return record, nil
}

// Get returns one register entry.
func (s *RegisterService) Get(ctx context.Context, id uint) (*models.ChequeRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// List returns register entries matching the query, most recent first.
func (s *RegisterService) List(ctx context.Context, query repository.ListQuery) ([]models.ChequeRecord, error) {
	return s.repo.List(ctx, query)
}

// TotalIssued returns the sum of all non-voided cheque amounts.
func (s *RegisterService) TotalIssued(ctx context.Context) (float64, error) {
	return s.repo.TotalIssued(ctx)
}

// ExportXLSX dumps the register into a spreadsheet.
func (s *RegisterService) ExportXLSX(ctx context.Context, query repository.ListQuery) ([]byte, string, error) {
	records, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, "", err
	}

	total, err := s.repo.TotalIssued(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Registre"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Registre des chèques")
	_ = f.SetCellValue(sheet, "B1", time.Now().Format("2006-01-02 15:04"))
	_ = f.SetCellStyle(sheet, "A1", "B1", headerStyle)

	headers := []string{"ID", "Montant", "Montant en lettres", "Ordre", "Lieu", "Date", "Statut", "Fichier"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, record := range records {
		row := i + 4
		values := []interface{}{
			record.ID,
			record.Amount,
			record.AmountWords,
			record.Payee,
			record.Place,
			record.IssueDate,
			record.Status,
			record.FilePath,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	totalRow := len(records) + 5
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	_ = f.SetCellValue(sheet, cell, "Total émis")
	cell, _ = excelize.CoordinatesToCellName(2, totalRow)
	_ = f.SetCellValue(sheet, cell, total)

	var buf *bytes.Buffer
	buf, err = f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("registre_cheques_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
