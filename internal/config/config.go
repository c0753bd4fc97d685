// Package config provides skill configuration loaded from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ErrNoEndpointSource is returned when neither the table nor the catalog bucket is set
var ErrNoEndpointSource = errors.New("DYNAMODB_TABLE or CATALOG_BUCKET is required")

// Config holds smart-home skill configuration.
type Config struct {
	// Endpoint registry: DynamoDB table, or a static catalog object in S3
	TableName     string `envconfig:"DYNAMODB_TABLE"`
	CatalogBucket string `envconfig:"CATALOG_BUCKET"`
	CatalogKey    string `envconfig:"CATALOG_KEY" default:"endpoints.json"`

	// Optional sinks (empty = disabled)
	MetricNamespace    string `envconfig:"METRIC_NAMESPACE"`
	StateEventQueueURL string `envconfig:"STATE_EVENT_QUEUE_URL"`

	// AsyncResponse echoes the full inbound endpoint in responses
	AsyncResponse bool `envconfig:"ASYNC_RESPONSE" default:"false"`

	DeviceCloudTimeout time.Duration `envconfig:"DEVICE_CLOUD_TIMEOUT" default:"5s"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &c, nil
}

// Validate checks the configuration required to serve directives.
func (c *Config) Validate() error {
	if c.TableName == "" && c.CatalogBucket == "" {
		return ErrNoEndpointSource
	}
	if c.CatalogBucket != "" && c.CatalogKey == "" {
		return errors.New("CATALOG_KEY is required with CATALOG_BUCKET")
	}
	if c.DeviceCloudTimeout <= 0 {
		return errors.New("DEVICE_CLOUD_TIMEOUT must be positive")
	}
	return nil
}

// UseCatalog reports whether endpoints come from the S3 catalog rather than DynamoDB
func (c *Config) UseCatalog() bool {
	return c.TableName == "" && c.CatalogBucket != ""
}
