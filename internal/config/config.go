package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server (API mode)
	Port        string
	Environment string

	// Database (optional cheque register; empty disables it)
	DatabaseURL string

	// Output
	OutputDir  string
	OutputFile string

	// Amount-in-words field
	MaxLineWidth int

	// Currency vocabulary
	CurrencyCode          string
	CurrencyMajorSingular string
	CurrencyMajorPlural   string
	CurrencyMinorSingular string
	CurrencyMinorPlural   string

	// Cheque placement on the A4 sheet (mm from the bottom-left page corner)
	ChequeOffsetX float64
	ChequeOffsetY float64

	// Printing
	Printer string

	// Background workers
	WorkerCount int

	// Generated-file retention for the API cleanup job (0 disables)
	RetentionDays int

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		OutputDir:             getEnv("OUTPUT_DIR", "cheques_generes"),
		OutputFile:            getEnv("OUTPUT_FILE", "cheque.pdf"),
		MaxLineWidth:          getEnvAsInt("MAX_LINE_WIDTH", 70),
		CurrencyCode:          getEnv("CURRENCY_CODE", "DA"),
		CurrencyMajorSingular: getEnv("CURRENCY_MAJOR_SINGULAR", "dinar"),
		CurrencyMajorPlural:   getEnv("CURRENCY_MAJOR_PLURAL", "dinars"),
		CurrencyMinorSingular: getEnv("CURRENCY_MINOR_SINGULAR", "centime"),
		CurrencyMinorPlural:   getEnv("CURRENCY_MINOR_PLURAL", "centimes"),
		ChequeOffsetX:         getEnvAsFloat("CHEQUE_OFFSET_X", 10),
		ChequeOffsetY:         getEnvAsFloat("CHEQUE_OFFSET_Y", 180),
		Printer:               getEnv("PRINTER", ""),
		WorkerCount:           getEnvAsInt("WORKER_COUNT", 5),
		RetentionDays:         getEnvAsInt("RETENTION_DAYS", 0),
		AllowedOrigins:        getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:             getEnv("SENTRY_DSN", ""),
	}

	if cfg.MaxLineWidth <= 0 {
		return nil, fmt.Errorf("MAX_LINE_WIDTH must be positive, got %d", cfg.MaxLineWidth)
	}

	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("WORKER_COUNT must be positive, got %d", cfg.WorkerCount)
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat reads an environment variable as float64
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
