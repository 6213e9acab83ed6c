package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Hospital  HospitalConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type AuthConfig struct {
	JWTSecret string
}

// HospitalConfig holds the facility defaults used by navigation guidance
// and reminder messages.
type HospitalConfig struct {
	Name            string
	DefaultBuilding string
	DefaultFloor    int
}

type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 8080),
			Env:  getEnv("ENV", "development"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-prod"),
		},
		Hospital: HospitalConfig{
			Name:            getEnv("HOSPITAL_NAME", "Ospedale Demo"),
			DefaultBuilding: getEnv("NAV_DEFAULT_BUILDING", "Corpo A"),
			DefaultFloor:    getEnvInt("NAV_DEFAULT_FLOOR", 2),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvInt("RATE_LIMIT_RPS", 50),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 100),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
