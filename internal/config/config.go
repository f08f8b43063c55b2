package config

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	WebhookSecret string
	AdminAPIKey   string
	ServerPort    string
	CORSOrigins   string
	SeedFile      string
	SessionTTL    string
}

func Load() *Config {
	return &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "flashcards"),
		JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-me"),
		WebhookSecret: getEnv("IDENTITY_WEBHOOK_SECRET", ""),
		AdminAPIKey:   getEnv("ADMIN_API_KEY", "admin-api-key-change-me"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		SeedFile:      getEnv("SEED_FILE", ""),
		SessionTTL:    getEnv("SESSION_TTL_MINUTES", "120"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
