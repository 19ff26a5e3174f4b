package main

import (
	"fmt"
	"os"
	"time"
)

// Config holds the orders service settings read from the environment.
type Config struct {
	Port         string
	ServiceName  string
	OtlpEndpoint string

	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string

	CarrierBaseURL   string
	CarrierShopToken string
	CarrierShopID    string
	CarrierTimeout   time.Duration
}

// LoadConfig reads the configuration. Carrier credentials have no default.
func LoadConfig() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("CARRIER_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CARRIER_TIMEOUT: %w", err)
	}

	config := &Config{
		Port:             getEnv("PORT", "8080"),
		ServiceName:      getEnv("SERVICE_NAME", "orders-service"),
		OtlpEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		DatabaseHost:     getEnv("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnv("DATABASE_PORT", "5432"),
		DatabaseUser:     getEnv("DATABASE_USER", "root"),
		DatabasePassword: getEnv("DATABASE_PASSWORD", "pass"),
		DatabaseName:     getEnv("DATABASE_NAME", "orders_db"),
		CarrierBaseURL:   getEnv("CARRIER_BASE_URL", "https://dev-online-gateway.ghn.vn/shiip/public-api/v2"),
		CarrierShopToken: os.Getenv("CARRIER_SHOP_TOKEN"),
		CarrierShopID:    os.Getenv("CARRIER_SHOP_ID"),
		CarrierTimeout:   timeout,
	}

	if config.CarrierShopToken == "" {
		return nil, fmt.Errorf("CARRIER_SHOP_TOKEN environment variable is required")
	}
	if config.CarrierShopID == "" {
		return nil, fmt.Errorf("CARRIER_SHOP_ID environment variable is required")
	}

	return config, nil
}

// DSN builds a pgx connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&pool_max_conns=25&pool_min_conns=5",
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
