package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kbelaid/chequier/internal/repository"
	"github.com/kbelaid/chequier/internal/services"
)

type RegisterHandler struct {
	registerService *services.RegisterService
	printService    *services.PrintService
}

func NewRegisterHandler(registerService *services.RegisterService, printService *services.PrintService) *RegisterHandler {
	return &RegisterHandler{
		registerService: registerService,
		printService:    printService,
	}
}

// Index lists register entries. GET /register?status=&ordre=&limit=
func (h *RegisterHandler) Index(c *gin.Context) {
	query := repository.ListQuery{
		Status: c.Query("status"),
		Payee:  c.Query("ordre"),
	}
	query.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	records, err := h.registerService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	total, err := h.registerService.TotalIssued(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cheques":    records,
		"total_emis": total,
	})
}

// Print sends a registered cheque to the printer and marks it printed.
func (h *RegisterHandler) Print(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	record, err := h.registerService.Get(c.Request.Context(), uint(id))
	if err != nil {
		h.renderError(c, err)
		return
	}

	if err := h.printService.Print(c.Request.Context(), record.FilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	record, err = h.registerService.MarkPrinted(c.Request.Context(), uint(id))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cheque": record})
}

// Void invalidates a registered cheque.
func (h *RegisterHandler) Void(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	record, err := h.registerService.Void(c.Request.Context(), uint(id))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cheque": record})
}

// Export downloads the register as a spreadsheet.
func (h *RegisterHandler) Export(c *gin.Context) {
	query := repository.ListQuery{
		Status: c.Query("status"),
		Payee:  c.Query("ordre"),
	}

	data, filename, err := h.registerService.ExportXLSX(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func (h *RegisterHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "chèque introuvable"})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
