package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string        `env:"DATABASE_URL" envDefault:"postgresql://postgres@localhost:5432/portfolio"`
	JWTSecret     string        `env:"JWT_SECRET"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"1h"`
	ServerPort    string        `env:"SERVER_PORT" envDefault:"8080"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty  bool   `env:"LOG_PRETTY" envDefault:"false"`
	DBLogLevel string `env:"DB_LOG_LEVEL" envDefault:"warn"`

	// Zero means bcrypt.DefaultCost.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"0"`

	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`
	LoginRateBurst     int `env:"LOGIN_RATE_BURST" envDefault:"5"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWTExpiration <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRATION must be positive, got %s", cfg.JWTExpiration)
	}
	if cfg.LoginRatePerMinute <= 0 || cfg.LoginRateBurst <= 0 {
		return nil, fmt.Errorf("login rate limit must be positive")
	}

	return cfg, nil
}
