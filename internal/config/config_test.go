package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TABLE_SERVICE_URL", "http://127.0.0.1:10002/devstoreaccount1")
	t.Setenv("BLOB_SERVICE_URL", "http://127.0.0.1:10000/devstoreaccount1")
	t.Setenv("QUEUE_SERVICE_URL", "http://127.0.0.1:10001/devstoreaccount1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.TransactionsTable != "transactions" {
		t.Errorf("Expected default table 'transactions', got %s", cfg.TransactionsTable)
	}
	if cfg.AlertQueue != "alerts" {
		t.Errorf("Expected default queue 'alerts', got %s", cfg.AlertQueue)
	}
	if cfg.ArchiveContainer != "sms-archive" {
		t.Errorf("Expected default container 'sms-archive', got %s", cfg.ArchiveContainer)
	}
	if cfg.RetentionWindow != 24*time.Hour {
		t.Errorf("Expected default retention 24h, got %s", cfg.RetentionWindow)
	}
	if cfg.AlertEndpoint != "" {
		t.Errorf("Expected alert endpoint disabled by default, got %s", cfg.AlertEndpoint)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TABLE_SERVICE_URL", "https://acct.table.core.windows.net")
	t.Setenv("BLOB_SERVICE_URL", "https://acct.blob.core.windows.net")
	t.Setenv("QUEUE_SERVICE_URL", "https://acct.queue.core.windows.net")
	t.Setenv("RETENTION_HOURS", "48")
	t.Setenv("ALERT_ENDPOINT", "https://alerts.example.com/push")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.RetentionWindow != 48*time.Hour {
		t.Errorf("Expected retention 48h, got %s", cfg.RetentionWindow)
	}
	if cfg.AlertEndpoint != "https://alerts.example.com/push" {
		t.Errorf("Expected alert endpoint override, got %s", cfg.AlertEndpoint)
	}
}

func TestLoad_MissingTableURL(t *testing.T) {
	t.Setenv("TABLE_SERVICE_URL", "")
	t.Setenv("BLOB_SERVICE_URL", "http://127.0.0.1:10000/devstoreaccount1")
	t.Setenv("QUEUE_SERVICE_URL", "http://127.0.0.1:10001/devstoreaccount1")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error when TABLE_SERVICE_URL is missing")
	}
}
