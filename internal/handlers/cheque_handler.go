package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kbelaid/chequier/internal/models"
	"github.com/kbelaid/chequier/internal/services"
	"github.com/kbelaid/chequier/internal/storage"
)

type ChequeHandler struct {
	chequeService *services.ChequeService
	importService *services.ImportService
	storage       *storage.LocalStorage
}

func NewChequeHandler(chequeService *services.ChequeService, importService *services.ImportService, storage *storage.LocalStorage) *ChequeHandler {
	return &ChequeHandler{
		chequeService: chequeService,
		importService: importService,
		storage:       storage,
	}
}

// Preview returns the computed field strings for an amount without
// rendering anything. GET /cheques/preview?montant=1234.56
func (h *ChequeHandler) Preview(c *gin.Context) {
	raw := strings.ReplaceAll(c.Query("montant"), ",", ".")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "montant invalide"})
		return
	}

	preview, err := h.chequeService.Preview(amount)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidAmount) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, preview)
}

// Create renders one cheque and returns the PDF.
// Accepts {"cheque": {...}} or a flat object.
func (h *ChequeHandler) Create(c *gin.Context) {
	var cheque models.Cheque
	if err := BindNestedOrFlat(c, "cheque", &cheque); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corps de requête invalide"})
		return
	}

	data, err := h.chequeService.Generate(c.Request.Context(), cheque)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidAmount) || errors.Is(err, services.ErrMissingField) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=cheque.pdf")
	c.Data(http.StatusOK, "application/pdf", data)
}

// Import runs a batch from an uploaded CSV or XLSX file.
func (h *ChequeHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fichier requis"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format non supporté, .csv ou .xlsx attendu"})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("import_%s%s", uuid.New().String(), ext))
	out, err := os.Create(tmpPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.Remove(tmpPath)

	if _, err := out.ReadFrom(file); err != nil {
		out.Close()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out.Close()

	var result *services.BatchResult
	if ext == ".csv" {
		result, err = h.importService.ImportCSV(c.Request.Context(), tmpPath)
	} else {
		result, err = h.importService.ImportXLSX(c.Request.Context(), tmpPath)
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Calibration returns the position-calibration page PDF.
func (h *ChequeHandler) Calibration(c *gin.Context) {
	data, err := h.chequeService.CalibrationPage()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=calibration.pdf")
	c.Data(http.StatusOK, "application/pdf", data)
}
