package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIKey is used when API_KEY is not set. It is only meant for local runs.
const DefaultAPIKey = "YOURSECRETKEY"

type Config struct {
	HTTPPort        string
	APIKey          string
	APIKeyHeader    string
	RedisAddr       string
	TempDir         string
	MaxRequestBytes int64
	AnalysisTimeout time.Duration
	AllowedOrigins  string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("PORT", "8080"),
		APIKey:          getEnv("API_KEY", DefaultAPIKey),
		APIKeyHeader:    getEnv("API_KEY_HEADER", "x-api-key"),
		RedisAddr:       getEnv("REDIS_URI", ""),
		TempDir:         getEnv("TEMP_DIR", os.TempDir()),
		MaxRequestBytes: getEnvInt64("MAX_REQUEST_BYTES", 25<<20),
		AnalysisTimeout: getEnvDuration("ANALYSIS_TIMEOUT", 30*time.Second),
		AllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}

	if cfg.APIKey == DefaultAPIKey {
		log.Println("Warning: API_KEY not set, using default key")
	}

	// Remove redis:// prefix if present
	if len(cfg.RedisAddr) > 8 && cfg.RedisAddr[:8] == "redis://" {
		cfg.RedisAddr = cfg.RedisAddr[8:]
	}

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using default %d", key, val, defaultVal)
		return defaultVal
	}
	return n
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s=%q, using default %s", key, val, defaultVal)
		return defaultVal
	}
	return d
}
