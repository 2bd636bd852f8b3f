package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration. It is resolved once at startup and
// passed into each component at construction; nothing reads the environment
// after Load returns.
type Config struct {
	Port   string
	AppEnv string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	PaymentAPIURL        string
	PaymentSecretKey     string
	PaymentWebhookSecret string
	PaymentTimeoutSec    int

	CheckoutSuccessURL string
	CheckoutCancelURL  string

	SendgridAPIKey string
	EmailSender    string
}

// IsProduction reports whether the process runs with a production profile.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load initializes configuration from environment variables or defaults.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port:   getEnv("PORT", "3000"),
		AppEnv: getEnv("APP_ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "coursepay"),
		DBPort:     getEnv("DB_PORT", "5432"),

		PaymentAPIURL:        getEnv("PAYMENT_API_URL", "https://api.paylane.dev"),
		PaymentSecretKey:     getEnv("PAYMENT_SECRET_KEY", ""),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),
		PaymentTimeoutSec:    getEnvInt("PAYMENT_TIMEOUT_SECONDS", 10),

		CheckoutSuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/payment/success"),
		CheckoutCancelURL:  getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/payment/cancel"),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", ""),
	}

	// Validate critical configuration
	if cfg.PaymentSecretKey == "" {
		return nil, errors.New("PAYMENT_SECRET_KEY is required")
	}
	if cfg.PaymentWebhookSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("PAYMENT_WEBHOOK_SECRET is required in production")
		}
		log.Println("Warning: PAYMENT_WEBHOOK_SECRET not set. Webhook signature verification is DISABLED (dev only).")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
