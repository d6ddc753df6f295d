// Package config assembles runtime settings from the environment and
// optional .env files.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/renato-web/Profluxo/internal/llm"
	"github.com/renato-web/Profluxo/internal/repository"
)

// StoreKind selects the row-store backend.
type StoreKind string

const (
	StoreSQLite   StoreKind = "sqlite"
	StorePostgres StoreKind = "postgres"
	StoreREST     StoreKind = "rest"
)

// DefaultManagerPassword is used when no manager credential is configured.
// It matches the password the department has always shared; set
// PROFLUXO_MANAGER_PASSWORD_HASH in any real deployment.
const DefaultManagerPassword = "admin123"

// Config holds all runtime settings.
type Config struct {
	Home        string
	Store       StoreKind
	DBPath      string
	PostgresDSN string
	RESTURL     string
	RESTKey     string
	Table       string

	// ManagerPasswordHash is a bcrypt hash. Plaintext configuration is
	// hashed during Load.
	ManagerPasswordHash    []byte
	DefaultManagerPassword bool

	LogLevel   slog.Level
	LogEnabled bool

	LLM llm.LLMConfig
}

// Load reads configuration. A .env file in the working directory and one in
// the application home are loaded first; neither overrides variables that
// are already set.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	home := os.Getenv("PROFLUXO_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		home = filepath.Join(userHome, ".profluxo")
	}
	if err := loadDotEnv(filepath.Join(home, ".env")); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Home:        home,
		Store:       StoreSQLite,
		DBPath:      filepath.Join(home, "profluxo.db"),
		PostgresDSN: os.Getenv("PROFLUXO_PG_DSN"),
		RESTURL:     os.Getenv("PROFLUXO_REST_URL"),
		RESTKey:     os.Getenv("PROFLUXO_REST_KEY"),
		Table:       repository.DefaultTable,
		LLM:         llm.LoadConfig(),
	}

	if v := os.Getenv("PROFLUXO_STORE"); v != "" {
		kind, err := ParseStoreKind(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Store = kind
	}
	if v := os.Getenv("PROFLUXO_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PROFLUXO_TABLE"); v != "" {
		cfg.Table = v
	}

	if v := os.Getenv("PROFLUXO_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid PROFLUXO_LOG_LEVEL %q: %w", v, err)
		}
		cfg.LogEnabled = true
	}

	hash, isDefault, err := managerPasswordHash()
	if err != nil {
		return Config{}, err
	}
	cfg.ManagerPasswordHash = hash
	cfg.DefaultManagerPassword = isDefault

	return cfg, nil
}

// ParseStoreKind validates a backend name.
func ParseStoreKind(s string) (StoreKind, error) {
	switch k := StoreKind(strings.ToLower(strings.TrimSpace(s))); k {
	case StoreSQLite, StorePostgres, StoreREST:
		return k, nil
	}
	return "", fmt.Errorf("unknown store %q: expected sqlite, postgres or rest", s)
}

// Logger returns the process logger. Logging is off unless a level is set,
// so command output on stdout stays clean; logs always go to w.
func (c Config) Logger(w io.Writer) *slog.Logger {
	if !c.LogEnabled {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

// HashPassword returns a bcrypt hash suitable for PROFLUXO_MANAGER_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func managerPasswordHash() (hash []byte, isDefault bool, err error) {
	if v := os.Getenv("PROFLUXO_MANAGER_PASSWORD_HASH"); v != "" {
		if _, err := bcrypt.Cost([]byte(v)); err != nil {
			return nil, false, fmt.Errorf("invalid PROFLUXO_MANAGER_PASSWORD_HASH: %w", err)
		}
		return []byte(v), false, nil
	}

	plain := os.Getenv("PROFLUXO_MANAGER_PASSWORD")
	if plain == "" {
		plain = DefaultManagerPassword
		isDefault = true
	}
	// The in-memory hash only has to outlive this process.
	hash, err = bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		return nil, false, fmt.Errorf("hashing manager password: %w", err)
	}
	return hash, isDefault, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
