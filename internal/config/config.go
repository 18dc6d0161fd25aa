package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend names.
const (
	BackendSQLite = "sqlite"
	BackendSheets = "sheets"
)

// Config holds the process configuration, read once at startup.
type Config struct {
	// Backend selects the tabular store: "sqlite" (default) or "sheets".
	Backend string

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string

	// SpreadsheetID and CredentialsFile configure the sheets backend.
	SpreadsheetID   string
	CredentialsFile string

	// CacheTTL is how long a table snapshot is served before the next read
	// refetches it.
	CacheTTL time.Duration

	// Addr is the HTTP listen address.
	Addr string

	// MasterName and MasterPassword seed the master account when the users
	// table has none. An existing master is never touched.
	MasterName     string
	MasterPassword string
}

// Load reads .env (if present) and the UBASE_* environment variables.
// Missing variables fall back to development defaults; only a malformed or
// incomplete value is an error.
func Load() (Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := Config{
		Backend:         envOrDefault("UBASE_BACKEND", BackendSQLite),
		SQLitePath:      envOrDefault("UBASE_SQLITE_PATH", "ubase.db"),
		SpreadsheetID:   os.Getenv("UBASE_SPREADSHEET_ID"),
		CredentialsFile: os.Getenv("UBASE_CREDENTIALS_FILE"),
		Addr:            envOrDefault("UBASE_ADDR", ":8080"),
		MasterName:      envOrDefault("UBASE_MASTER_NAME", "管理者"),
		MasterPassword:  envOrDefault("UBASE_MASTER_PASSWORD", "Ubase2025"),
	}

	ttl := envOrDefault("UBASE_CACHE_TTL", "5m")
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return Config{}, fmt.Errorf("UBASE_CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = d

	switch cfg.Backend {
	case BackendSQLite:
	case BackendSheets:
		if cfg.SpreadsheetID == "" {
			return Config{}, fmt.Errorf("UBASE_SPREADSHEET_ID is required for the sheets backend")
		}
		if cfg.CredentialsFile == "" {
			return Config{}, fmt.Errorf("UBASE_CREDENTIALS_FILE is required for the sheets backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown UBASE_BACKEND %q", cfg.Backend)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
