package cliparse

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/danielhkuo/pageant/models"
)

// Database types accepted by -t / DATABASE_TYPE
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseMemory   = "memory"
)

// DefaultSQLitePath is used when sqlite is selected without a URL
const DefaultSQLitePath = "pageant.db"

type Config struct {
	Port         int    `env:"PORT" envDefault:"3318" validate:"min=1,max=65535"`
	DatabaseURL  string `env:"DATABASE_URL" validate:"required_if=DatabaseType postgres"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite" validate:"oneof=sqlite postgres memory"`
	SeedFile     string `env:"SEED_FILE"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	// Empty means any origin, without credentials
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," validate:"dive,url"`
}

// ParseFlags reads the environment, then lets CLI flags override it
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("pageant", flag.ContinueOnError)

	// Env values become the flag defaults, so an explicit flag wins
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite, postgres or memory)")
	fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "YAML file used to populate an empty store")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.Func("cors", "Comma-separated origins allowed by CORS (default any)", func(v string) error {
		cfg.CORSOrigins = splitList(v)
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.DatabaseType = strings.ToLower(strings.TrimSpace(cfg.DatabaseType))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if cfg.DatabaseType == DatabaseSQLite && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DefaultSQLitePath
	}

	if err := models.Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SlogLevel maps LogLevel onto slog levels
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
