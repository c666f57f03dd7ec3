package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	Redis RedisConfig
	Demo  DemoConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DemoConfig holds demo driver configuration
type DemoConfig struct {
	Scope string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Demo: DemoConfig{
			Scope: getEnvOrDefault("DEMO_SCOPE", "demo-encounter"),
		},
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
