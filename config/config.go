package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	AuthUser     string
	AuthPass     string
	CacheSize    int
	HistorySize  int
	DefaultSize  int
	MaxLogoBytes int
	LogLevel     string
}

func LoadConfig() Config {
	// A missing .env file is fine; the environment wins either way
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	cacheSize, _ := strconv.Atoi(getEnv("CACHE_SIZE", "100"))
	historySize, _ := strconv.Atoi(getEnv("HISTORY_SIZE", "20"))
	defaultSize, _ := strconv.Atoi(getEnv("QR_DEFAULT_SIZE", "256"))
	maxLogoBytes, _ := strconv.Atoi(getEnv("MAX_LOGO_BYTES", "1048576"))

	return Config{
		Port:         port,
		DatabaseURL:  getEnv("DATABASE_URL", "file::memory:?cache=shared"),
		AuthUser:     getEnv("AUTH_USER", "admin"),
		AuthPass:     getEnv("AUTH_PASS", "password"),
		CacheSize:    cacheSize,
		HistorySize:  historySize,
		DefaultSize:  defaultSize,
		MaxLogoBytes: maxLogoBytes,
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
