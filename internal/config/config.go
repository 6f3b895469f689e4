package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	// Upload handling
	UploadDir string
	// Session cookie lifetime
	SessionTTL time.Duration
	// Maximum number of files returned per folder listing
	FileListLimit int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:          getEnv("PORT", "3001"),
		Environment:   env,
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		SessionTTL:    getDurationEnv("SESSION_TTL", 7*24*time.Hour),
		FileListLimit: getIntEnv("FILE_LIST_LIMIT", 100),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
