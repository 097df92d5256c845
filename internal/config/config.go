// Package config loads service configuration from the environment, with
// defaults suitable for local development against Azurite.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the handlers and service clients need. It is
// loaded once in main and injected; nothing reads the environment after
// startup.
type Config struct {
	Port string

	TableServiceURL string
	BlobServiceURL  string
	QueueServiceURL string

	TransactionsTable string
	AlertQueue        string
	ArchiveContainer  string

	RetentionWindow time.Duration

	// AlertEndpoint is the push notification URL hit by the queue trigger.
	// Empty disables alert dispatch.
	AlertEndpoint string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("FUNCTIONS_CUSTOMHANDLER_PORT", "8080")
	v.SetDefault("TRANSACTIONS_TABLE", "transactions")
	v.SetDefault("ALERT_QUEUE", "alerts")
	v.SetDefault("ARCHIVE_CONTAINER", "sms-archive")
	v.SetDefault("RETENTION_HOURS", 24)
	v.SetDefault("ALERT_ENDPOINT", "")

	cfg := &Config{
		Port:              v.GetString("FUNCTIONS_CUSTOMHANDLER_PORT"),
		TableServiceURL:   v.GetString("TABLE_SERVICE_URL"),
		BlobServiceURL:    v.GetString("BLOB_SERVICE_URL"),
		QueueServiceURL:   v.GetString("QUEUE_SERVICE_URL"),
		TransactionsTable: v.GetString("TRANSACTIONS_TABLE"),
		AlertQueue:        v.GetString("ALERT_QUEUE"),
		ArchiveContainer:  v.GetString("ARCHIVE_CONTAINER"),
		RetentionWindow:   time.Duration(v.GetInt("RETENTION_HOURS")) * time.Hour,
		AlertEndpoint:     v.GetString("ALERT_ENDPOINT"),
	}

	if cfg.TableServiceURL == "" {
		return nil, fmt.Errorf("TABLE_SERVICE_URL environment variable is required")
	}
	if cfg.BlobServiceURL == "" {
		return nil, fmt.Errorf("BLOB_SERVICE_URL environment variable is required")
	}
	if cfg.QueueServiceURL == "" {
		return nil, fmt.Errorf("QUEUE_SERVICE_URL environment variable is required")
	}

	return cfg, nil
}
