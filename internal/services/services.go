package services

import (
	"github.com/kbelaid/chequier/internal/config"
	"github.com/kbelaid/chequier/internal/jobs"
	"github.com/kbelaid/chequier/internal/models"
	"github.com/kbelaid/chequier/internal/render"
	"github.com/kbelaid/chequier/internal/repository"
	"github.com/kbelaid/chequier/internal/storage"
)

// Services holds all service instances
type Services struct {
	Cheque   *ChequeService
	Import   *ImportService
	Print    *PrintService
	Register *RegisterService // nil when DATABASE_URL is not set
}

// NewServices creates all service instances. repos may be nil, which
// disables the persistent register.
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config) *Services {
	currency := models.Currency{
		Code:          cfg.CurrencyCode,
		MajorSingular: cfg.CurrencyMajorSingular,
		MajorPlural:   cfg.CurrencyMajorPlural,
		MinorSingular: cfg.CurrencyMinorSingular,
		MinorPlural:   cfg.CurrencyMinorPlural,
	}

	speller := NewAmountSpeller(currency)
	formatter := NewNumericFormatter(currency)

	layout := render.DefaultLayout()
	layout.OffsetX = cfg.ChequeOffsetX
	layout.OffsetY = cfg.ChequeOffsetY
	renderer := render.NewChequeRenderer(layout)

	chequeSvc := NewChequeService(speller, formatter, renderer, cfg.MaxLineWidth)

	var registerSvc *RegisterService
	if repos != nil {
		registerSvc = NewRegisterService(repos.Cheque, speller)
	}

	return &Services{
		Cheque:   chequeSvc,
		Import:   NewImportService(chequeSvc, registerSvc, worker, store),
		Print:    NewPrintService(cfg.Printer),
		Register: registerSvc,
	}
}
