package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs. It is built once in main and
// passed down explicitly; no package reads the environment on its own.
type Config struct {
	Addr string
	DSN  string

	JWTSecret     string
	JWTAudience   string
	JWTIssuer     string
	TokenLifetime time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string

	CodeTTL time.Duration

	LoginRate  float64
	LoginBurst int
}

// Load reads .env (if present) and the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		Addr:          os.Getenv("ADDR"),
		DSN:           os.Getenv("DSN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTAudience:   os.Getenv("JWT_AUDIENCE"),
		JWTIssuer:     os.Getenv("JWT_ISSUER"),
		TokenLifetime: 7 * 24 * time.Hour,
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		CodeTTL:       5 * time.Minute,
		LoginRate:     0.2,
		LoginBurst:    10,
	}

	if c.DSN == "" {
		return nil, fmt.Errorf("DSN is required")
	}
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.JWTAudience == "" {
		c.JWTAudience = "todomarket:auth"
	}
	if c.JWTIssuer == "" {
		c.JWTIssuer = "todomarket"
	}

	if v := os.Getenv("TOKEN_LIFETIME_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_LIFETIME_HOURS: %w", err)
		}
		c.TokenLifetime = time.Duration(hours) * time.Hour
	}
	if v := os.Getenv("CODE_TTL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CODE_TTL_SECONDS: %w", err)
		}
		c.CodeTTL = time.Duration(secs) * time.Second
	}

	return c, nil
}
