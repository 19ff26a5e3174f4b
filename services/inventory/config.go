package main

import (
	"fmt"
	"os"
)

// Config holds the inventory service settings read from the environment.
type Config struct {
	Port         string
	ServiceName  string
	OtlpEndpoint string

	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
}

// LoadConfig reads the configuration, falling back to local defaults.
func LoadConfig() *Config {
	return &Config{
		Port:             getEnv("PORT", "8081"),
		ServiceName:      getEnv("SERVICE_NAME", "inventory-service"),
		OtlpEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		DatabaseHost:     getEnv("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnv("DATABASE_PORT", "5432"),
		DatabaseUser:     getEnv("DATABASE_USER", "root"),
		DatabasePassword: getEnv("DATABASE_PASSWORD", "pass"),
		DatabaseName:     getEnv("DATABASE_NAME", "inventory_db"),
	}
}

// DSN builds a lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
