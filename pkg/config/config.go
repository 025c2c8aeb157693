package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full application configuration, loaded once at startup.
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Notify   NotifyConfig
	OTP      OTPConfig
}

// Load reads every section from the environment.
func Load() *Config {
	return &Config{
		Server:   loadServerConfig(),
		Redis:    loadRedisConfig(),
		Database: loadDatabaseConfig(),
		Notify:   loadNotifyConfig(),
		OTP:      loadOTPConfig(),
	}
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port        string
	CORSOrigins string
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
