package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/kbelaid/chequier/pkg/logger"
)

// PrintService hands finished PDF files to the host print spooler.
type PrintService struct {
	printer string
}

// NewPrintService creates a print service. printer is the spooler queue
// name; empty means the system default printer.
func NewPrintService(printer string) *PrintService {
	return &PrintService{printer: printer}
}

// Print sends the file at path to the printer.
func (s *PrintService) Print(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("fichier introuvable: %w", err)
	}

	args, err := printCommand(runtime.GOOS, s.printer, path)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("échec de l'impression: %w (%s)", err, out)
	}

	logger.Info("Cheque sent to printer", "path", path, "printer", s.printer)
	return nil
}

// printCommand builds the platform spooler invocation. Split out so the
// per-platform argument construction is testable without a spooler.
func printCommand(goos, printer, path string) ([]string, error) {
	switch goos {
	case "linux", "darwin":
		if printer != "" {
			return []string{"lp", "-d", printer, path}, nil
		}
		return []string{"lp", path}, nil
	case "windows":
		// No lp on Windows; the shell print verb uses the default printer.
		return []string{"powershell", "-NoProfile", "-Command",
			fmt.Sprintf("Start-Process -FilePath %q -Verb Print", path)}, nil
	default:
		return nil, fmt.Errorf("plateforme non supportée: %s", goos)
	}
}

// Open launches the platform PDF viewer on path.
func (s *PrintService) Open(ctx context.Context, path string) error {
	args, err := openCommand(runtime.GOOS, path)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("échec de l'ouverture du fichier: %w", err)
	}
	return nil
}

func openCommand(goos, path string) ([]string, error) {
	switch goos {
	case "linux":
		return []string{"xdg-open", path}, nil
	case "darwin":
		return []string{"open", path}, nil
	case "windows":
		return []string{"cmd", "/C", "start", "", path}, nil
	default:
		return nil, fmt.Errorf("plateforme non supportée: %s", goos)
	}
}
