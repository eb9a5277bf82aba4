package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Colab model server
	ColabAPIURL     string
	GenerateTimeout time.Duration
	StatusTimeout   time.Duration

	// Frontend
	FrontendDir   string
	AllowedOrigin string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port: getEnvOrDefault("PORT", "8080"),
		Env:  getEnvOrDefault("ENV", "development"),

		// Empty means "unconfigured": the relay still starts, and every
		// generation/status call degrades instead of failing at boot.
		ColabAPIURL:     os.Getenv("COLAB_API_URL"),
		GenerateTimeout: time.Duration(getEnvAsIntOrDefault("GENERATE_TIMEOUT_SECONDS", 300)) * time.Second,
		StatusTimeout:   time.Duration(getEnvAsIntOrDefault("STATUS_TIMEOUT_SECONDS", 10)) * time.Second,

		FrontendDir:   getEnvOrDefault("FRONTEND_DIR", "./frontend"),
		AllowedOrigin: getEnvOrDefault("ALLOWED_ORIGIN", "*"),
	}

	return cfg
}

// ColabConfigured reports whether an upstream base address was supplied.
func (c *Config) ColabConfigured() bool {
	return c.ColabAPIURL != ""
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
