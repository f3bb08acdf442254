package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration read from the environment.
type Config struct {
	DatabaseURL string
	Port        string
	JWTSecret   string

	// Payment provider settings. PaymentProvider selects which gateway
	// checkout uses for card payments.
	PaymentProvider        string // flutterwave | paystack
	FlutterwaveSecretKey   string
	FlutterwaveWebhookHash string
	PaystackSecretKey      string
}

// Load reads a .env file if present and builds the configuration from
// environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine in production; env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		Port:                   os.Getenv("APP_PORT"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		PaymentProvider:        os.Getenv("PAYMENT_PROVIDER"),
		FlutterwaveSecretKey:   os.Getenv("FLW_SECRET_KEY"),
		FlutterwaveWebhookHash: os.Getenv("FLW_WEBHOOK_HASH"),
		PaystackSecretKey:      os.Getenv("PAYSTACK_SECRET_KEY"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.PaymentProvider == "" {
		cfg.PaymentProvider = "flutterwave"
	}
	return cfg, nil
}
