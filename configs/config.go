package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port               string
	Environment        string
	SalesDataPath      string
	SampleRecordCount  int
	CORSAllowedOrigins string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		SalesDataPath:      getEnv("SALES_DATA_PATH", "data/sales_data.json"),
		SampleRecordCount:  getEnvInt("SAMPLE_RECORD_COUNT", 50),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
