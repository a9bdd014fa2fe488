// Package config loads application configuration from a .env file and
// environment variables.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the binary needs at startup.
type Config struct {
	Port     string
	DBPath   string
	LogLevel string

	// OpenWeatherMap key. When empty the deterministic stub weather
	// source is used instead of the live API.
	WeatherAPIKey string

	// VAPID key pair for web push. When either is empty, push delivery
	// is disabled and reminders are WebSocket-only.
	VAPIDPublicKey  string
	VAPIDPrivateKey string
}

// Load reads .env (if present) and the environment.
func Load() Config {
	// Missing .env is fine; env vars win either way.
	_ = godotenv.Load()

	return Config{
		Port:            getenv("PREPCHECK_PORT", "8080"),
		DBPath:          getenv("PREPCHECK_DB_PATH", "prepcheck.db"),
		LogLevel:        getenv("PREPCHECK_LOG_LEVEL", "info"),
		WeatherAPIKey:   os.Getenv("OPENWEATHER_API_KEY"),
		VAPIDPublicKey:  os.Getenv("PREPCHECK_VAPID_PUBLIC"),
		VAPIDPrivateKey: os.Getenv("PREPCHECK_VAPID_PRIVATE"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
