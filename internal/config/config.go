package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/invoiceqc/internal/normalize"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"InvoiceQC" validate:"required"`
		Port int    `envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s" validate:"gt=0"`
		MaxUploadBytes int64         `envconfig:"MAX_UPLOAD_BYTES" default:"33554432" validate:"gt=0"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*" validate:"min=1"`
	}

	Extract struct {
		Workers int `envconfig:"EXTRACT_WORKERS" default:"4" validate:"min=1,max=64"`
	}

	Dates struct {
		YearsBack    int `envconfig:"DATE_YEARS_BACK" default:"10" validate:"min=0"`
		YearsForward int `envconfig:"DATE_YEARS_FORWARD" default:"2" validate:"min=0"`
	}

	DB struct {
		Enabled  bool   `envconfig:"DB_ENABLED" default:"false"`
		Host     string `envconfig:"DB_HOST" default:"localhost" validate:"required_if=Enabled true"`
		Port     int    `envconfig:"DB_PORT" default:"5432" validate:"min=1,max=65535"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"invoiceqc" validate:"required_if=Enabled true"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// DateParser returns a parser using the configured year window.
func (c *Config) DateParser() normalize.DateParser {
	return normalize.DateParser{
		Now:          time.Now,
		YearsBack:    c.Dates.YearsBack,
		YearsForward: c.Dates.YearsForward,
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
