package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret           string
	JWTAccessExpiry     time.Duration
	JWTRefreshExpiry    time.Duration
	CustomerTokenExpiry time.Duration

	// Stripe
	StripeSecretKey      string
	StripeWebhookSecret  string
	StripePriceVitrine   string
	StripePricePrateleira string
	StripePriceMercado   string
	CheckoutSuccessURL   string
	CheckoutCancelURL    string

	// Object storage (S3 or compatible)
	S3Bucket    string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3BaseURL   string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "pedeai"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:           getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:     parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry:    parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),
		CustomerTokenExpiry: parseDuration(getEnv("CUSTOMER_TOKEN_EXPIRY", "720h")),

		StripeSecretKey:       getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:   getEnv("STRIPE_WEBHOOK_SECRET", ""),
		StripePriceVitrine:    getEnv("STRIPE_PRICE_VITRINE", ""),
		StripePricePrateleira: getEnv("STRIPE_PRICE_PRATELEIRA", ""),
		StripePriceMercado:    getEnv("STRIPE_PRICE_MERCADO", ""),
		CheckoutSuccessURL:    getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/sucesso"),
		CheckoutCancelURL:     getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/cancelado"),

		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3BaseURL:   getEnv("S3_BASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// PriceIDFor maps a plan key (vitrine, prateleira, mercado) to its Stripe
// price id. Empty string means the plan is unknown or unconfigured.
func (c *Config) PriceIDFor(plano string) string {
	switch plano {
	case "vitrine":
		return c.StripePriceVitrine
	case "prateleira":
		return c.StripePricePrateleira
	case "mercado":
		return c.StripePriceMercado
	}
	return ""
}

// PlanForPriceID is the inverse mapping used by the webhook path.
func (c *Config) PlanForPriceID(priceID string) string {
	switch priceID {
	case c.StripePriceVitrine:
		return "plan-vitrine"
	case c.StripePricePrateleira:
		return "plan-prateleira"
	case c.StripePriceMercado:
		return "plan-mercado"
	}
	return ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}
