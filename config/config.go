package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// TwitterConfig points the engine at the remote status API. Base URLs are
// overridable so staging can target a recorded fixture server.
type TwitterConfig struct {
	SearchBaseURL string
	APIBaseURL    string
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	AlertWebhookURL    string

	// Aggregation tuning
	FetchWorkers        int           // Concurrent fetch strategies per pass
	PassWorkers         int           // Concurrent posts per scheduler tick
	AggregationInterval time.Duration // Scheduler tick; 0 disables the scheduler

	TwitterConfig TwitterConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	// Core required configuration
	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	fetchWorkers, err := getEnvIntWithDefault("FETCH_WORKERS", 4)
	if err != nil {
		return nil, err
	}

	passWorkers, err := getEnvIntWithDefault("PASS_WORKERS", 2)
	if err != nil {
		return nil, err
	}

	aggregationInterval, err := getEnvDurationWithDefault("AGGREGATION_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		AlertWebhookURL:    getEnvWithDefault("ALERT_WEBHOOK_URL", ""),

		FetchWorkers:        fetchWorkers,
		PassWorkers:         passWorkers,
		AggregationInterval: aggregationInterval,

		TwitterConfig: TwitterConfig{
			SearchBaseURL: getEnvWithDefault("TWITTER_SEARCH_BASE_URL", ""),
			APIBaseURL:    getEnvWithDefault("TWITTER_API_BASE_URL", ""),
		},
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 5m: %w", key, err)
	}
	return parsed, nil
}
