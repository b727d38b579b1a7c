// Package config provides configuration for the food tracker backend.
// Environment variables are the source of truth; an optional YAML file
// overlays them for local development.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	TableName string `yaml:"tableName"`
	Region    string `yaml:"region"`
	LogLevel  string `yaml:"logLevel"`
	Port      string `yaml:"port"`
	JWTSecret string `yaml:"jwtSecret"`
}

// New creates a new configuration from environment variables.
func New() *Config {
	return &Config{
		TableName: getEnv("TABLE_NAME", "food-records"),
		Region:    getEnv("AWS_REGION", "us-east-1"),
		LogLevel:  getEnv("LOG_LEVEL", "INFO"),
		Port:      getEnv("PORT", "8080"),
		JWTSecret: getEnv("JWT_SECRET", ""),
	}
}

// LoadFile overlays values from a YAML file onto the receiver. Fields absent
// from the file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.TableName == "" {
		return fmt.Errorf("table name must not be empty")
	}
	if c.Region == "" {
		return fmt.Errorf("region must not be empty")
	}
	return nil
}

// getEnv gets an environment variable with a fallback default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
