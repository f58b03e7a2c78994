package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"5000"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"experience_booking"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// RabbitURL empty disables booking events and catalog sync.
	RabbitURL string `env:"RABBITMQ_URL"`

	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	SeedDatabase bool   `env:"SEED_DATABASE" envDefault:"false"`

	// ClampDiscount caps a discount at the base price so totals never go negative.
	ClampDiscount  bool          `env:"PROMO_CLAMP_DISCOUNT" envDefault:"false"`
	SlotWindowDays int           `env:"SLOT_WINDOW_DAYS" envDefault:"30"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// Parse builds a Config from the process environment only.
func Parse() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SlotWindowDays <= 0 {
		return nil, fmt.Errorf("SLOT_WINDOW_DAYS must be positive, got %d", cfg.SlotWindowDays)
	}
	return &cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}
