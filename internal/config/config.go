// Package config loads server settings from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DotEnvFile is read before the environment is parsed, if present.
// Variables already set in the process environment win.
const DotEnvFile = ".env"

// Config holds every setting the server reads at startup.
type Config struct {
	Addr       string        `env:"EXPENSE_TRACKER_ADDR"        envDefault:":8080"`
	DBPath     string        `env:"EXPENSE_TRACKER_DB_PATH"     envDefault:"./data/expenses.db"`
	JWTSecret  string        `env:"EXPENSE_TRACKER_JWT_SECRET"`
	TokenTTL   time.Duration `env:"EXPENSE_TRACKER_TOKEN_TTL"   envDefault:"24h"`
	BcryptCost int           `env:"EXPENSE_TRACKER_BCRYPT_COST" envDefault:"0"`
	CORSOrigin string        `env:"EXPENSE_TRACKER_CORS_ORIGIN" envDefault:"*"`
	LogLevel   string        `env:"LOG_LEVEL"                   envDefault:"info"`

	// GeneratedSecret is set when JWTSecret was empty and a random one was
	// created. Tokens then stop validating after a restart.
	GeneratedSecret bool
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return Config{}, err
	}
	return parse(env.Options{})
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("EXPENSE_TRACKER_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}

	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, err
		}
		cfg.JWTSecret = secret
		cfg.GeneratedSecret = true
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
