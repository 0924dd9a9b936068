package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, sourced from environment
// variables with sensible defaults for local development.
type Config struct {
	Port          string
	DBPath        string
	TemplateDir   string
	StaticDir     string
	SecureCookie  bool
	AdminUser     string
	AdminPassword string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "voyago.db"),
		TemplateDir:   getEnv("TEMPLATE_DIR", "web/templates"),
		StaticDir:     getEnv("STATIC_DIR", "web/static"),
		SecureCookie:  os.Getenv("SECURE_COOKIE") == "true",
		AdminUser:     os.Getenv("ADMIN_USER"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
