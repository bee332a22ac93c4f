package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds server settings read from HANABI_* environment variables.
type Config struct {
	Host           string   `env:"HANABI_HOST" envDefault:""`
	Port           int      `env:"HANABI_PORT" envDefault:"8080"`
	PublicURL      string   `env:"HANABI_PUBLIC_URL"` // base for QR links; request host when empty
	LogLevel       string   `env:"HANABI_LOG_LEVEL" envDefault:"info"`
	Dev            bool     `env:"HANABI_DEV" envDefault:"false"`
	AllowedOrigins []string `env:"HANABI_ALLOWED_ORIGINS" envSeparator:","` // websocket origins; any when empty
	MaxGames       int      `env:"HANABI_MAX_GAMES" envDefault:"1000"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads the given dotenv files (missing files are skipped) and then
// parses the environment. Variables already set win over dotenv values.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
