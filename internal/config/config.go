package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Following 12-factor app principles, all config is loaded from environment
// variables; a local .env file is read first when present.
type Config struct {
	Server   ServerConfig
	Admin    AdminConfig
	Mongo    MongoConfig
	Storage  StorageConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AdminConfig struct {
	APIKeys []string // Valid API keys for the admin console
}

type MongoConfig struct {
	// URI is the MongoDB connection string. Empty means run on the seeded
	// in-memory repositories instead of a database.
	URI      string
	Database string
}

type StorageConfig struct {
	// ImageDir is where uploaded image objects live on disk.
	ImageDir string
	// ImageBaseURL is the public prefix image URLs are built from.
	ImageBaseURL string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Optional; absent .env files are fine.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Admin: AdminConfig{
			APIKeys: getEnvAsSlice("ADMIN_API_KEYS", []string{"apitest"}),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DATABASE", "catalog"),
		},
		Storage: StorageConfig{
			ImageDir:     getEnv("IMAGE_DIR", "./data/images"),
			ImageBaseURL: getEnv("IMAGE_BASE_URL", "/media"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Admin.APIKeys) == 0 {
		return fmt.Errorf("at least one admin API key must be configured")
	}

	if c.Mongo.Database == "" {
		return fmt.Errorf("MONGO_DATABASE is required")
	}

	if c.Storage.ImageDir == "" {
		return fmt.Errorf("IMAGE_DIR is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
