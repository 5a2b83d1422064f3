package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the api and worker binaries read from the
// environment.
type Config struct {
	Addr          string
	RunLocal      bool
	PublicBaseURL string

	Tables  TablesConfig
	Stripe  StripeConfig
	JWT     JWTConfig
	Events  EventsConfig
	Logger  LoggerConfig
	Metrics MetricsConfig
}

// TablesConfig names the DynamoDB tables backing each collection.
type TablesConfig struct {
	Users               string
	Products            string
	CartItems           string
	Orders              string
	PaymentTransactions string
	Reviews             string
}

type StripeConfig struct {
	APIKey        string
	WebhookSecret string
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type EventsConfig struct {
	// OrderQueueURL is optional; when empty no order events are published.
	OrderQueueURL string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MetricsConfig struct {
	Namespace string
}

// Load reads configuration from the environment, loading a .env file first if
// one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:          getEnv("ADDR", ":8080"),
		RunLocal:      getEnvBool("RUN_LOCAL", false),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		Tables: TablesConfig{
			Users:               getEnv("USERS_TABLE", "users"),
			Products:            getEnv("PRODUCTS_TABLE", "products"),
			CartItems:           getEnv("CART_ITEMS_TABLE", "cart_items"),
			Orders:              getEnv("ORDERS_TABLE", "orders"),
			PaymentTransactions: getEnv("PAYMENT_TRANSACTIONS_TABLE", "payment_transactions"),
			Reviews:             getEnv("REVIEWS_TABLE", "reviews"),
		},
		Stripe: StripeConfig{
			APIKey:        getEnv("STRIPE_API_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET_KEY", "dev-secret-change-in-production"),
			TokenTTL: getEnvDuration("JWT_TOKEN_TTL", 30*24*time.Hour),
		},
		Events: EventsConfig{
			OrderQueueURL: getEnv("ORDER_EVENTS_QUEUE_URL", ""),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOGGER_LEVEL", "info"),
			Encoding: getEnv("LOGGER_ENCODING", "json"),
		},
		Metrics: MetricsConfig{
			Namespace: getEnv("METRICS_NAMESPACE", "Storefront"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
