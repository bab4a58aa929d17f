package services

import (
	"errors"

	"github.com/kbelaid/chequier/internal/models"
)

// Common service errors
var (
	// ErrInvalidAmount re-exports the models sentinel so callers can match
	// it without importing both packages.
	ErrInvalidAmount = models.ErrInvalidAmount

	ErrInvalidWidth = errors.New("largeur de ligne invalide")
	ErrMissingField = errors.New("champ obligatoire manquant")
	ErrNotFound     = errors.New("enregistrement introuvable")
	ErrInvalidState = errors.New("transition d'état invalide")
)
