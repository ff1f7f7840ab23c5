package config

import (
	"os"
	"time"
)

type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	RedisAddr string
	JWTSecret string
	JWTTTL    time.Duration
	CacheTTL  time.Duration
}

func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", ":8080"),
		MongoURI:  getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:   getEnv("MONGO_DB", "eventapp"),
		RedisAddr: getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		JWTSecret: getEnv("JWT_SECRET", "supersecret"),
		JWTTTL:    getEnvDuration("JWT_TTL", 2*time.Hour),
		CacheTTL:  getEnvDuration("CACHE_TTL", 30*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
