package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIURL         string
	ListenAddr     string
	MetricsAddr    string
	RequestTimeout time.Duration
	LogLevel       slog.Level
	Temporal       TemporalConfig
}

type TemporalConfig struct {
	HostPort  string
	Namespace string
	TaskQueue string
}

// Load reads configuration from the environment, after applying a .env file
// in the working directory if there is one.
func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("RESTAURANT_REQUEST_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("RESTAURANT_REQUEST_TIMEOUT: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(getEnv("RESTAURANT_LOG_LEVEL", "info")))); err != nil {
		return nil, fmt.Errorf("RESTAURANT_LOG_LEVEL: %w", err)
	}

	return &Config{
		APIURL:         getEnv("RESTAURANT_API_URL", "http://localhost:8084"),
		ListenAddr:     getEnv("RESTAURANT_LISTEN_ADDR", "0.0.0.0:8084"),
		MetricsAddr:    getEnv("RESTAURANT_METRICS_ADDR", "0.0.0.0:9092"),
		RequestTimeout: timeout,
		LogLevel:       level,
		Temporal: TemporalConfig{
			HostPort:  getEnv("TEMPORAL_ADDRESS", ""),
			Namespace: getEnv("TEMPORAL_NAMESPACE", "default"),
			TaskQueue: getEnv("RESTAURANT_TASK_QUEUE", "restaurant"),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
