package config

import (
	"log"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Defaults for values that are configurable but rarely changed.
const (
	// DefaultTaxRate is the VAT applied at checkout (5%).
	DefaultTaxRate = 0.05
	// DefaultStartID is the first medicine ID assigned to an empty catalog.
	DefaultStartID = 1001
	// DefaultLowStockThreshold flags records running out in admin reports.
	DefaultLowStockThreshold = 5

	defaultAdminPassword = "admin123"
)

// Config holds application configuration values.
type Config struct {
	CatalogPath       string
	TransactionDSN    string
	ReceiptPath       string
	SeedPath          string
	TaxRate           float64
	StartID           int64
	LowStockThreshold int64
	AdminHash         []byte
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	cfg := Config{
		CatalogPath:       envOr("CATALOG_PATH", "medicines.json"),
		TransactionDSN:    envOr("TRANSACTION_DSN", "transactions.db"),
		ReceiptPath:       envOr("RECEIPT_PATH", "sales_history.txt"),
		SeedPath:          envOr("SEED_PATH", "assets/medicines.csv"),
		TaxRate:           floatEnv("TAX_RATE", DefaultTaxRate),
		StartID:           intEnv("START_ID", DefaultStartID),
		LowStockThreshold: intEnv("LOW_STOCK_THRESHOLD", DefaultLowStockThreshold),
	}

	password := envOr("ADMIN_PASSWORD", defaultAdminPassword)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("unable to secure admin password: %v", err)
	}
	cfg.AdminHash = hash

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func floatEnv(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil || parsed < 0 {
		log.Printf("invalid %s value %q, defaulting to %v", key, v, fallback)
		return fallback
	}
	return parsed
}

func intEnv(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil || parsed < 0 {
		log.Printf("invalid %s value %q, defaulting to %v", key, v, fallback)
		return fallback
	}
	return parsed
}
