// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"BLOGIFY_DB_PATH" envDefault:"./data/blogify.db"`
	SessionSecret string `env:"BLOGIFY_SESSION_SECRET,required"`
	ServerHost    string `env:"BLOGIFY_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"BLOGIFY_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"BLOGIFY_ENV" envDefault:"development"`
	LogLevel      string `env:"BLOGIFY_LOG_LEVEL" envDefault:"info"`

	// Admin seeding configuration
	AdminEmail    string `env:"BLOGIFY_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminName     string `env:"BLOGIFY_ADMIN_NAME" envDefault:"Administrator"`
	AdminPassword string `env:"BLOGIFY_ADMIN_PASSWORD" envDefault:"changeme"`

	// Mail relay configuration for the contact form
	SMTPHost     string `env:"BLOGIFY_SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"BLOGIFY_SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"BLOGIFY_SMTP_USER"`
	SMTPPassword string `env:"BLOGIFY_SMTP_PASSWORD"`
	ContactEmail string `env:"BLOGIFY_CONTACT_EMAIL"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MailEnabled returns true if SMTP credentials are configured.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPassword != ""
}

// OperatorEmail returns the address that receives contact-form notifications.
// Falls back to the SMTP account itself when no dedicated address is set.
func (c Config) OperatorEmail() string {
	if c.ContactEmail != "" {
		return c.ContactEmail
	}
	return c.SMTPUser
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("BLOGIFY_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	cfg.Env = strings.ToLower(cfg.Env)

	return cfg, nil
}
