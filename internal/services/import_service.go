package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/kbelaid/chequier/internal/jobs"
	"github.com/kbelaid/chequier/internal/models"
	"github.com/kbelaid/chequier/internal/storage"
	"github.com/kbelaid/chequier/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ImportService generates cheques in batch from delimited files.
// Each record is an isolated worker job: a malformed or failing record is
// logged with its index and skipped, the rest of the batch continues.
type ImportService struct {
	chequeSvc *ChequeService
	register  *RegisterService // nil when the register is not configured
	worker    *jobs.Worker
	store     *storage.LocalStorage
}

func NewImportService(
	chequeSvc *ChequeService,
	register *RegisterService,
	worker *jobs.Worker,
	store *storage.LocalStorage,
) *ImportService {
	return &ImportService{
		chequeSvc: chequeSvc,
		register:  register,
		worker:    worker,
		store:     store,
	}
}

// BatchResult reports what a batch produced. Skipped holds the 1-based
// indexes of records that were rejected or failed.
type BatchResult struct {
	Generated []string `json:"generated"`
	Skipped   []int    `json:"skipped"`
}

// batchRecord is one parsed data row, 1-based index included for diagnostics.
type batchRecord struct {
	index  int
	cheque models.Cheque
}

// ImportCSV reads a ';'-delimited file with a montant;ordre;lieu;date
// header (date optional, decimal comma accepted) and generates one cheque
// per valid record.
func (s *ImportService) ImportCSV(ctx context.Context, path string) (*BatchResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fichier introuvable: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("échec de la lecture du CSV: %w", err)
	}

	return s.runBatch(ctx, rows)
}

// ImportXLSX reads the first sheet of an xlsx workbook with the same
// columns as the CSV format.
func (s *ImportService) ImportXLSX(ctx context.Context, path string) (*BatchResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("fichier introuvable: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("classeur vide")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("échec de la lecture du classeur: %w", err)
	}

	return s.runBatch(ctx, rows)
}

// runBatch parses the header, dispatches one job per valid record and
// waits for the pool to drain them.
func (s *ImportService) runBatch(ctx context.Context, rows [][]string) (*BatchResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("fichier vide")
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	var records []batchRecord

	for i, row := range rows[1:] {
		index := i + 1
		cheque, err := parseRecord(row, columns)
		if err != nil {
			logger.Warn("Record skipped", "index", index, "error", err)
			result.Skipped = append(result.Skipped, index)
			continue
		}
		records = append(records, batchRecord{index: index, cheque: cheque})
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, rec := range records {
		rec := rec
		filename := fmt.Sprintf("cheque_%03d_%s.pdf", rec.index, sanitizeName(rec.cheque.Payee))

		wg.Add(1)
		s.worker.Enqueue(func(jobCtx context.Context) error {
			defer wg.Done()

			data, err := s.chequeSvc.Generate(jobCtx, rec.cheque)
			if err != nil {
				mu.Lock()
				result.Skipped = append(result.Skipped, rec.index)
				mu.Unlock()
				return fmt.Errorf("record %d: %w", rec.index, err)
			}

			path, err := s.store.SaveBytes(data, filename)
			if err != nil {
				mu.Lock()
				result.Skipped = append(result.Skipped, rec.index)
				mu.Unlock()
				return fmt.Errorf("record %d: %w", rec.index, err)
			}

			if s.register != nil {
				if _, err := s.register.Record(jobCtx, rec.cheque, path); err != nil {
					// The cheque exists on disk; a register failure is
					// reported but does not undo the generation.
					logger.Error("Register entry failed", "index", rec.index, "error", err)
				}
			}

			mu.Lock()
			result.Generated = append(result.Generated, path)
			mu.Unlock()
			return nil
		})
	}

	wg.Wait()

	sort.Strings(result.Generated)
	sort.Ints(result.Skipped)

	logger.Info("Batch finished",
		"generated", len(result.Generated),
		"skipped", len(result.Skipped),
		"output_dir", s.store.BasePath(),
	)
	return result, nil
}

// mapColumns resolves the header row into field indexes.
// Required: montant, ordre, lieu. Optional: date.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{"montant", "ordre", "lieu"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("colonne %q absente de l'en-tête", required)
		}
	}
	return columns, nil
}

// parseRecord builds a cheque from one data row.
func parseRecord(row []string, columns map[string]int) (models.Cheque, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rawAmount := strings.ReplaceAll(field("montant"), ",", ".")
	if rawAmount == "" {
		return models.Cheque{}, fmt.Errorf("montant: %w", ErrMissingField)
	}

	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		return models.Cheque{}, fmt.Errorf("montant %q: %w", rawAmount, ErrInvalidAmount)
	}

	cheque := models.Cheque{
		Amount: amount,
		Payee:  field("ordre"),
		Place:  field("lieu"),
		Date:   field("date"),
	}

	if cheque.Payee == "" {
		return models.Cheque{}, fmt.Errorf("ordre: %w", ErrMissingField)
	}
	if cheque.Place == "" {
		return models.Cheque{}, fmt.Errorf("lieu: %w", ErrMissingField)
	}
	return cheque, nil
}

// sanitizeName makes a payee safe for use in a filename, capped at 20 runes.
func sanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))

	runes := []rune(name)
	if len(runes) > 20 {
		runes = runes[:20]
	}
	return string(runes)
}

// sampleCSV is the example batch file emitted by WriteSampleCSV.
const sampleCSV = `montant;ordre;lieu;date
150,00;Jean Dupont;Paris;07/01/2026
1234,56;Marie Martin;Lyon;
89,99;Boulangerie du Coin;Marseille;15/01/2026
500,00;EDF;Toulouse;
`

// WriteSampleCSV writes an example batch file at path.
func (s *ImportService) WriteSampleCSV(path string) error {
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		return fmt.Errorf("échec de l'écriture du fichier d'exemple: %w", err)
	}
	return nil
}
