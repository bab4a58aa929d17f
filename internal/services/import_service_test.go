package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbelaid/chequier/internal/jobs"
	"github.com/kbelaid/chequier/internal/models"
	"github.com/kbelaid/chequier/internal/render"
	"github.com/kbelaid/chequier/internal/storage"
	"github.com/kbelaid/chequier/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func newTestImportService(t *testing.T) (*ImportService, *storage.LocalStorage) {
	t.Helper()
	logger.Setup("test", false)

	speller := NewAmountSpeller(models.DZD)
	formatter := NewNumericFormatter(models.DZD)
	renderer := render.NewChequeRenderer(render.DefaultLayout())
	chequeSvc := NewChequeService(speller, formatter, renderer, 70)

	store, err := storage.NewLocalStorage(t.TempDir())
	assert.NoError(t, err)

	worker := jobs.NewWorker(2)
	t.Cleanup(worker.Shutdown)

	return NewImportService(chequeSvc, nil, worker, store), store
}

func TestImportService_ImportCSV(t *testing.T) {
	svc, store := newTestImportService(t)

	path := filepath.Join(t.TempDir(), "lot.csv")
	content := "montant;ordre;lieu;date\n" +
		"150,00;Jean Dupont;Paris;07/01/2026\n" +
		"1234,56;Marie Martin;Lyon;\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	result, err := svc.ImportCSV(context.Background(), path)
	assert.NoError(t, err)
	assert.Len(t, result.Generated, 2)
	assert.Empty(t, result.Skipped)

	assert.True(t, store.Exists("cheque_001_Jean_Dupont.pdf"))
	assert.True(t, store.Exists("cheque_002_Marie_Martin.pdf"))
}

func TestImportService_ImportCSV_SkipsMalformedRecords(t *testing.T) {
	svc, _ := newTestImportService(t)

	path := filepath.Join(t.TempDir(), "lot.csv")
	content := "montant;ordre;lieu;date\n" +
		"abc;Jean Dupont;Paris;\n" + // bad amount
		"150,00;;Paris;\n" + // missing payee
		"89,99;Boulangerie du Coin;Marseille;\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	result, err := svc.ImportCSV(context.Background(), path)
	assert.NoError(t, err)
	assert.Len(t, result.Generated, 1)
	assert.Equal(t, []int{1, 2}, result.Skipped)
}

func TestImportService_ImportCSV_MissingColumn(t *testing.T) {
	svc, _ := newTestImportService(t)

	path := filepath.Join(t.TempDir(), "lot.csv")
	content := "montant;lieu\n150,00;Paris\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := svc.ImportCSV(context.Background(), path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ordre")
}

func TestImportService_ImportCSV_FileNotFound(t *testing.T) {
	svc, _ := newTestImportService(t)

	_, err := svc.ImportCSV(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestImportService_SampleCSVRoundTrip(t *testing.T) {
	svc, _ := newTestImportService(t)

	path := filepath.Join(t.TempDir(), "exemple.csv")
	assert.NoError(t, svc.WriteSampleCSV(path))

	result, err := svc.ImportCSV(context.Background(), path)
	assert.NoError(t, err)
	assert.Len(t, result.Generated, 4)
	assert.Empty(t, result.Skipped)
}

func TestMapColumns(t *testing.T) {
	columns, err := mapColumns([]string{" Montant ", "ORDRE", "lieu", "date"})
	assert.NoError(t, err)
	assert.Equal(t, 0, columns["montant"])
	assert.Equal(t, 1, columns["ordre"])

	_, err = mapColumns([]string{"montant", "ordre"})
	assert.Error(t, err)
}

func TestParseRecord(t *testing.T) {
	columns := map[string]int{"montant": 0, "ordre": 1, "lieu": 2, "date": 3}

	cheque, err := parseRecord([]string{"1234,56", "Jean", "Paris", "07/01/2026"}, columns)
	assert.NoError(t, err)
	assert.Equal(t, 1234.56, cheque.Amount)
	assert.Equal(t, "Jean", cheque.Payee)

	// Date column may be absent entirely
	cheque, err = parseRecord([]string{"10", "Jean", "Paris"}, columns)
	assert.NoError(t, err)
	assert.Equal(t, "", cheque.Date)

	_, err = parseRecord([]string{"", "Jean", "Paris"}, columns)
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = parseRecord([]string{"abc", "Jean", "Paris"}, columns)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Jean_Dupont", sanitizeName("Jean Dupont"))
	assert.Equal(t, "a_b", sanitizeName("a/b"))

	long := sanitizeName("Société Générale d'Investissement du Sud")
	assert.LessOrEqual(t, len([]rune(long)), 20)
}
