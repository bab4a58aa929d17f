package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kbelaid/chequier/internal/services"
	"github.com/kbelaid/chequier/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Cheque   *ChequeHandler
	Register *RegisterHandler // nil when the register is disabled
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, store *storage.LocalStorage) *Handlers {
	h := &Handlers{
		Health: NewHealthHandler(),
		Cheque: NewChequeHandler(svcs.Cheque, svcs.Import, store),
	}
	if svcs.Register != nil {
		h.Register = NewRegisterHandler(svcs.Register, svcs.Print)
	}
	return h
}

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "chequier",
		"version": "1.0.0",
	})
}
