package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"fanpass/constant"
)

// Config holds every runtime knob, all environment-backed. A .env file in
// the working directory is honored when present.
type Config struct {
	BaseURL        string        `env:"BASE_API_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"30s"`
	Currency       string        `env:"CURRENCY" env-default:"inr"`
	ReceiptsFile   string        `env:"RECEIPTS_FILE" env-default:"receipts.log"`
	DatabaseURL    string        `env:"DATABASE_URL"`
}

func Load() (Config, error) {
	_ = godotenv.Load() // load .env if present, ignore error

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = constant.DEFAULT_BASE_URL
	}
	return cfg, nil
}
