package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL  string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	ServerPort   string
	PingInterval int // seconds between liveness probes
}

func Load() *Config {
	// Local development keeps credentials in a .env file; absence is fine.
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		DBHost:       getEnv("PGHOST", "localhost"),
		DBPort:       getEnv("PGPORT", "5432"),
		DBUser:       getEnv("PGUSER", "postgres"),
		DBPassword:   getEnv("PGPASSWORD", "postgres"),
		DBName:       getEnv("PGDATABASE", "quizapp"),
		DBSSLMode:    getEnv("PGSSLMODE", "disable"),
		ServerPort:   getEnv("PORT", "8000"),
		PingInterval: getEnvInt("PING_INTERVAL", 30),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
