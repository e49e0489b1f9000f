package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port                string        `envconfig:"PORT" default:"8080"`
	Environment         string        `envconfig:"ENVIRONMENT" default:"production"`
	AnalyticsServiceURL string        `envconfig:"ANALYTICS_SERVICE_URL"`
	FirestoreProject    string        `envconfig:"FIRESTORE_PROJECT_ID" default:"quantdash-analytics"`
	CacheTTL            time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	RequestTimeout      time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	LogLevel            string        `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Validate required fields
	if cfg.AnalyticsServiceURL == "" {
		return nil, fmt.Errorf("ANALYTICS_SERVICE_URL is required")
	}

	return &cfg, nil
}
