package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	FormatsDir string
	RedisURL   string

	MetadataTTL  time.Duration
	FetchTimeout time.Duration
	WarmInterval time.Duration
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:       getEnv("PORT", "8080"),
		FormatsDir: getEnv("FORMATS_DIR", "data/formats"),
		RedisURL:   getEnv("REDIS_URL", ""),

		MetadataTTL:  getEnvDuration("METADATA_TTL", time.Hour),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 8*time.Second),
		WarmInterval: getEnvDuration("VIDEO_WARM_INTERVAL", 30*time.Minute),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
