package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	JWT struct {
		Secret string        `env:"JWT_SECRET,required"`
		TTL    time.Duration `env:"JWT_EXPIRE" envDefault:"24h"`
	}

	OTP struct {
		TTL time.Duration `env:"OTP_EXPIRE" envDefault:"10m"`

		// When false, a reset request for an unknown email returns a
		// generic acknowledgement instead of 404.
		RevealAccount bool `env:"OTP_REVEAL_ACCOUNT" envDefault:"true"`
	}

	SMTP struct {
		Host     string `env:"SMTP_HOST" envDefault:"localhost"`
		Port     int    `env:"SMTP_PORT" envDefault:"587"`
		Username string `env:"SMTP_USERNAME" envDefault:""`
		Password string `env:"SMTP_PASSWORD" envDefault:""`
		From     string `env:"SMTP_FROM" envDefault:"no-reply@localhost"`
	}

	// Seed admin created on first boot when no account with this email exists.
	Admin struct {
		Email    string `env:"ADMIN_EMAIL" envDefault:""`
		Password string `env:"ADMIN_PASSWORD" envDefault:""`
		Phone    string `env:"ADMIN_PHONE" envDefault:"0000000000"`
	}
}

func Load() (*Config, error) {
	// .env is optional; production sets variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
