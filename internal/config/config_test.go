package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	envVars := []string{
		"TRIAGE_PORT", "TRIAGE_METRICS_PORT", "TRIAGE_ADMIN_TOKEN",
		"TRIAGE_RATE_PER_MINUTE", "TRIAGE_DATABASE_URL", "TRIAGE_HERMES_URL",
		"TRIAGE_ORACLE_URL", "TRIAGE_ORACLE_API_KEY", "TRIAGE_ORACLE_MODEL",
		"TRIAGE_ASSISTANT_CONTEXT_SIZE", "TRIAGE_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RatePerMinute != 120 {
		t.Errorf("expected rate 120, got %d", cfg.Server.RatePerMinute)
	}
	if cfg.Hermes.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Hermes.URL)
	}
	if cfg.Oracle.URL != "https://api.openai.com" {
		t.Errorf("expected oracle URL, got %s", cfg.Oracle.URL)
	}
	if cfg.Oracle.Model != "gpt-4o-mini" {
		t.Errorf("expected default model, got %s", cfg.Oracle.Model)
	}
	if cfg.Scoring.AssistantContextSize != 10 {
		t.Errorf("expected context size 10, got %d", cfg.Scoring.AssistantContextSize)
	}
	if len(cfg.Scoring.HighFrictionKeywords) != 3 {
		t.Errorf("expected 3 high friction keywords, got %v", cfg.Scoring.HighFrictionKeywords)
	}
	if len(cfg.Scoring.LowFrictionKeywords) != 2 {
		t.Errorf("expected 2 low friction keywords, got %v", cfg.Scoring.LowFrictionKeywords)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TRIAGE_PORT", "9100")
	t.Setenv("TRIAGE_METRICS_PORT", "9101")
	t.Setenv("TRIAGE_ADMIN_TOKEN", "secret-token")
	t.Setenv("TRIAGE_RATE_PER_MINUTE", "30")
	t.Setenv("TRIAGE_DATABASE_URL", "postgres://localhost/triage_test")
	t.Setenv("TRIAGE_HERMES_URL", "nats://nats:4222")
	t.Setenv("TRIAGE_ORACLE_URL", "http://oracle:8080")
	t.Setenv("TRIAGE_ORACLE_API_KEY", "oracle-secret")
	t.Setenv("TRIAGE_ORACLE_MODEL", "gpt-4o")
	t.Setenv("TRIAGE_ASSISTANT_CONTEXT_SIZE", "5")
	t.Setenv("TRIAGE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9101 {
		t.Errorf("expected metrics port 9101, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token, got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Server.RatePerMinute != 30 {
		t.Errorf("expected rate 30, got %d", cfg.Server.RatePerMinute)
	}
	if cfg.Database.URL != "postgres://localhost/triage_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.Hermes.URL != "nats://nats:4222" {
		t.Errorf("expected hermes URL, got '%s'", cfg.Hermes.URL)
	}
	if cfg.Oracle.URL != "http://oracle:8080" {
		t.Errorf("expected oracle URL, got '%s'", cfg.Oracle.URL)
	}
	if cfg.Oracle.APIKey != "oracle-secret" {
		t.Errorf("expected oracle key, got '%s'", cfg.Oracle.APIKey)
	}
	if cfg.Oracle.Model != "gpt-4o" {
		t.Errorf("expected overridden model, got '%s'", cfg.Oracle.Model)
	}
	if cfg.Scoring.AssistantContextSize != 5 {
		t.Errorf("expected context size 5, got %d", cfg.Scoring.AssistantContextSize)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
server:
  port: 8800
  admin_token: file-token
database:
  url: postgres://db/triage
scoring:
  high_friction_keywords: [dentist, visa]
  low_friction_keywords: [text]
  assistant_context_size: 20
logging:
  level: warn
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8800 {
		t.Errorf("expected port 8800, got %d", cfg.Server.Port)
	}
	if cfg.Server.AdminToken != "file-token" {
		t.Errorf("expected file token, got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://db/triage" {
		t.Errorf("expected database URL from file, got '%s'", cfg.Database.URL)
	}
	if len(cfg.Scoring.HighFrictionKeywords) != 2 || cfg.Scoring.HighFrictionKeywords[0] != "dentist" {
		t.Errorf("expected file keywords, got %v", cfg.Scoring.HighFrictionKeywords)
	}
	if cfg.Scoring.AssistantContextSize != 20 {
		t.Errorf("expected context size 20, got %d", cfg.Scoring.AssistantContextSize)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got '%s'", cfg.Logging.Level)
	}
	// Untouched sections keep defaults
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port, got %d", cfg.Server.MetricsPort)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
