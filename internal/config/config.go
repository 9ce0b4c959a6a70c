package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr         string        `env:"RENALCALC_ADDR" envDefault:":8080"`
	DBPath       string        `env:"RENALCALC_DB_PATH" envDefault:"renalcalc.db"`
	JWTSecret    string        `env:"RENALCALC_JWT_SECRET,required,notEmpty"`
	TokenTTL     time.Duration `env:"RENALCALC_TOKEN_TTL" envDefault:"72h"`
	RedisAddr    string        `env:"RENALCALC_REDIS_ADDR"`
	RedisDB      int           `env:"RENALCALC_REDIS_DB" envDefault:"0"`
	LogLevel     string        `env:"RENALCALC_LOG_LEVEL" envDefault:"info"`
	LogFormat    string        `env:"RENALCALC_LOG_FORMAT" envDefault:"text"`
	HistoryLimit int           `env:"RENALCALC_HISTORY_LIMIT" envDefault:"50"`
}

// Load reads the service configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("parse env: RENALCALC_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.HistoryLimit <= 0 {
		return Config{}, fmt.Errorf("parse env: RENALCALC_HISTORY_LIMIT must be positive, got %d", cfg.HistoryLimit)
	}
	return cfg, nil
}
