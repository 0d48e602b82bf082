package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Application settings
type Config struct {
	Server     ServerConfig
	Logging    LoggingConfig
	Cloudbeds  CloudbedsConfig
	Analytics  AnalyticsConfig
	Properties []PropertyConfig
}

// Server settings
type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
}

// Logging settings
type LoggingConfig struct {
	Level string
}

// Cloudbeds API settings
type CloudbedsConfig struct {
	BaseURL        string
	PageSize       int
	PageDelay      time.Duration
	BatchSize      int
	RequestTimeout time.Duration
}

// Google Analytics settings. ServiceAccount holds the raw service-account
// JSON blob (client_email + private_key) used for the token exchange.
type AnalyticsConfig struct {
	PropertyID     string
	ServiceAccount string
	TokenURL       string
	APIURL         string
}

// One registered hotel property with its API credential.
type PropertyConfig struct {
	ID       string
	Name     string
	APIKey   string
	Capacity int
}

// Room capacity per property; static, keyed by property id. Overridable
// per slot via PROPERTY_n_CAPACITY.
var propertyCapacity = map[string]int{
	"311271": 176, // Azzurro Pod Hotel Darling Harbour
	"311267": 48,  // Azzurro Pod Hotel Central Sydney
	"311134": 69,  // Azzurro Boutique Hotel Surry Hills
	"311272": 107, // Azzurro Pod Hotel Potts Point
	"311268": 14,  // The Pyrmont Budget Hotel
}

const maxPropertySlots = 5

func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: getDurationEnv("SERVER_TIMEOUT", "90s"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Cloudbeds: CloudbedsConfig{
			BaseURL:        getEnv("CLOUDBEDS_API_URL", "https://api.cloudbeds.com/api/v1.3"),
			PageSize:       getIntEnv("CLOUDBEDS_PAGE_SIZE", 100),
			PageDelay:      getDurationEnv("CLOUDBEDS_PAGE_DELAY", "150ms"),
			BatchSize:      getIntEnv("CLOUDBEDS_BATCH_SIZE", 2),
			RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", "30s"),
		},
		Analytics: AnalyticsConfig{
			PropertyID:     getEnv("GA_PROPERTY_ID", ""),
			ServiceAccount: getEnv("GOOGLE_SERVICE_ACCOUNT", ""),
			TokenURL:       getEnv("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token"),
			APIURL:         getEnv("GA_API_URL", "https://analyticsdata.googleapis.com/v1beta"),
		},
		Properties: loadProperties(),
	}

	if config.Cloudbeds.BatchSize < 1 {
		return nil, fmt.Errorf("invalid CLOUDBEDS_BATCH_SIZE: must be at least 1")
	}
	if config.Cloudbeds.PageSize < 1 {
		return nil, fmt.Errorf("invalid CLOUDBEDS_PAGE_SIZE: must be at least 1")
	}

	return config, nil
}

// loadProperties reads PROPERTY_1..5_{ID,NAME,API_KEY}; a slot registers
// only when all three values are present.
func loadProperties() []PropertyConfig {
	var properties []PropertyConfig

	for i := 1; i <= maxPropertySlots; i++ {
		id := getEnv(fmt.Sprintf("PROPERTY_%d_ID", i), "")
		name := getEnv(fmt.Sprintf("PROPERTY_%d_NAME", i), "")
		apiKey := getEnv(fmt.Sprintf("PROPERTY_%d_API_KEY", i), "")
		if id == "" || name == "" || apiKey == "" {
			continue
		}

		capacity := getIntEnv(fmt.Sprintf("PROPERTY_%d_CAPACITY", i), propertyCapacity[id])
		properties = append(properties, PropertyConfig{
			ID:       id,
			Name:     name,
			APIKey:   apiKey,
			Capacity: capacity,
		})
	}

	return properties
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
