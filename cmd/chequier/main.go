package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/getsentry/sentry-go"
	_ "github.com/joho/godotenv/autoload"

	"github.com/kbelaid/chequier/internal/config"
	"github.com/kbelaid/chequier/internal/database"
	"github.com/kbelaid/chequier/internal/jobs"
	"github.com/kbelaid/chequier/internal/models"
	"github.com/kbelaid/chequier/internal/repository"
	"github.com/kbelaid/chequier/internal/services"
	"github.com/kbelaid/chequier/internal/storage"
	"github.com/kbelaid/chequier/pkg/logger"
)

func main() {
	montant := flag.Float64("montant", 0, "montant du chèque (ex: 1234.56)")
	ordre := flag.String("ordre", "", "bénéficiaire du chèque")
	lieu := flag.String("lieu", "", "lieu d'émission")
	date := flag.String("date", "", "date d'émission JJ/MM/AAAA (défaut: aujourd'hui)")
	sortie := flag.String("sortie", "", "fichier PDF de sortie")
	imprimer := flag.Bool("imprimer", false, "envoyer le PDF à l'imprimante")
	imprimante := flag.String("imprimante", "", "nom de l'imprimante (défaut: imprimante système)")
	ouvrir := flag.Bool("ouvrir", false, "ouvrir le PDF après génération")
	interactif := flag.Bool("interactif", false, "saisie interactive des champs")
	csvPath := flag.String("csv", "", "génération par lot depuis un fichier CSV")
	xlsxPath := flag.String("xlsx", "", "génération par lot depuis un classeur XLSX")
	calibration := flag.Bool("calibration", false, "générer la page de calibration")
	exempleCSV := flag.String("exemple-csv", "", "écrire un fichier CSV d'exemple puis quitter")
	verbose := flag.Bool("v", false, "journalisation détaillée")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration invalide: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Environment, *verbose)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		}
	}

	if *imprimante != "" {
		cfg.Printer = *imprimante
	}

	opts := cliOptions{
		montant:     *montant,
		ordre:       *ordre,
		lieu:        *lieu,
		date:        *date,
		sortie:      *sortie,
		imprimer:    *imprimer,
		ouvrir:      *ouvrir,
		interactif:  *interactif,
		csvPath:     *csvPath,
		xlsxPath:    *xlsxPath,
		calibration: *calibration,
		exempleCSV:  *exempleCSV,
	}

	if opts.empty() {
		flag.Usage()
		fmt.Fprintln(os.Stderr, "\nExemple: chequier -montant 1234.56 -ordre \"Jean Dupont\" -lieu Alger")
		os.Exit(2)
	}

	if err := run(cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "erreur: %v\n", err)
		os.Exit(1)
	}
}

type cliOptions struct {
	montant     float64
	ordre       string
	lieu        string
	date        string
	sortie      string
	imprimer    bool
	ouvrir      bool
	interactif  bool
	csvPath     string
	xlsxPath    string
	calibration bool
	exempleCSV  string
}

// empty reports whether no mode flag and no cheque field was supplied, in
// which case the usage text is shown instead of a missing-field error.
func (o cliOptions) empty() bool {
	return o.montant == 0 &&
		o.ordre == "" &&
		o.lieu == "" &&
		o.date == "" &&
		o.sortie == "" &&
		!o.interactif &&
		o.csvPath == "" &&
		o.xlsxPath == "" &&
		!o.calibration &&
		o.exempleCSV == ""
}

func run(cfg *config.Config, opts cliOptions) error {
	ctx := context.Background()

	store, err := storage.NewLocalStorage(cfg.OutputDir)
	if err != nil {
		return err
	}

	var repos *repository.Repositories
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connexion au registre impossible: %w", err)
		}
		if err := db.AutoMigrate(&models.ChequeRecord{}); err != nil {
			return fmt.Errorf("migration du registre impossible: %w", err)
		}
		repos = repository.NewRepositories(db)
		logger.Debug("Cheque register enabled")
	}

	worker := jobs.NewWorker(cfg.WorkerCount)
	defer worker.Shutdown()

	svcs := services.NewServices(repos, worker, store, cfg)

	switch {
	case opts.exempleCSV != "":
		if err := svcs.Import.WriteSampleCSV(opts.exempleCSV); err != nil {
			return err
		}
		fmt.Printf("Fichier d'exemple écrit: %s\n", opts.exempleCSV)
		return nil

	case opts.calibration:
		path := opts.sortie
		if path == "" {
			path = store.FullPath("calibration.pdf")
		}
		data, err := svcs.Cheque.CalibrationPage()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		fmt.Printf("Page de calibration générée: %s\n", path)
		return finish(ctx, svcs, path, opts)

	case opts.csvPath != "":
		return runBatch(ctx, store, opts.csvPath, svcs.Import.ImportCSV)

	case opts.xlsxPath != "":
		return runBatch(ctx, store, opts.xlsxPath, svcs.Import.ImportXLSX)

	case opts.interactif:
		cheque, err := promptCheque()
		if err != nil {
			return err
		}
		return generateOne(ctx, svcs, store, cfg, cheque, opts)

	default:
		cheque := models.Cheque{
			Amount: opts.montant,
			Payee:  opts.ordre,
			Place:  opts.lieu,
			Date:   opts.date,
		}
		return generateOne(ctx, svcs, store, cfg, cheque, opts)
	}
}

func runBatch(ctx context.Context, store *storage.LocalStorage, path string, importFn func(context.Context, string) (*services.BatchResult, error)) error {
	result, err := importFn(ctx, path)
	if err != nil {
		return err
	}

	fmt.Printf("Chèques générés: %d dans %s\n", len(result.Generated), store.BasePath())
	if len(result.Skipped) > 0 {
		fmt.Printf("Enregistrements ignorés: %v\n", result.Skipped)
	}
	return nil
}

func generateOne(ctx context.Context, svcs *services.Services, store *storage.LocalStorage, cfg *config.Config, cheque models.Cheque, opts cliOptions) error {
	path := opts.sortie
	if path == "" {
		path = store.FullPath(cfg.OutputFile)
	}

	preview, err := svcs.Cheque.Preview(cheque.Amount)
	if err != nil {
		return err
	}

	if err := svcs.Cheque.GenerateToFile(ctx, cheque, path); err != nil {
		return err
	}

	if opts.ouvrir || opts.imprimer {
		// The viewer and the spooler both want an absolute path.
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	fmt.Printf("Montant en lettres: %s\n", preview.Phrase)
	fmt.Printf("Montant en chiffres: %s\n", preview.Numeric)
	fmt.Printf("Chèque généré: %s\n", path)

	if svcs.Register != nil {
		if record, err := svcs.Register.Record(ctx, cheque, path); err != nil {
			logger.Error("Register entry failed", "error", err)
		} else {
			fmt.Printf("Enregistré au registre sous le n° %d\n", record.ID)
		}
	}

	return finish(ctx, svcs, path, opts)
}

// finish handles the post-generation print/open dispatch.
func finish(ctx context.Context, svcs *services.Services, path string, opts cliOptions) error {
	if opts.imprimer {
		if err := svcs.Print.Print(ctx, path); err != nil {
			return err
		}
		fmt.Println("Envoyé à l'imprimante")
	}
	if opts.ouvrir {
		if err := svcs.Print.Open(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

// promptCheque reads the cheque fields from stdin.
func promptCheque() (models.Cheque, error) {
	scanner := bufio.NewScanner(os.Stdin)

	read := func(label string) (string, error) {
		fmt.Printf("%s: ", label)
		if !scanner.Scan() {
			return "", fmt.Errorf("saisie interrompue")
		}
		return strings.TrimSpace(scanner.Text()), nil
	}

	rawAmount, err := read("Montant")
	if err != nil {
		return models.Cheque{}, err
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(rawAmount, ",", "."), 64)
	if err != nil {
		return models.Cheque{}, fmt.Errorf("montant %q: %w", rawAmount, models.ErrInvalidAmount)
	}

	ordre, err := read("Ordre")
	if err != nil {
		return models.Cheque{}, err
	}
	lieu, err := read("Lieu")
	if err != nil {
		return models.Cheque{}, err
	}
	date, err := read("Date (JJ/MM/AAAA, vide = aujourd'hui)")
	if err != nil {
		return models.Cheque{}, err
	}

	return models.Cheque{Amount: amount, Payee: ordre, Place: lieu, Date: date}, nil
}
