package config

import (
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress string        `env:"SERVER_ADDRESS" envDefault:":5000"`
	OfferTimeout  time.Duration `env:"OFFER_TIMEOUT" envDefault:"30s"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	PushURL       string        `env:"PUSH_URL"`
	PushTimeout   time.Duration `env:"PUSH_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from the environment, with a best-effort .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
