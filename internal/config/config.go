package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Oracle   OracleConfig   `yaml:"oracle"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port          int    `yaml:"port"`
	MetricsPort   int    `yaml:"metrics_port"`
	AdminToken    string `yaml:"admin_token"`
	RatePerMinute int    `yaml:"rate_per_minute"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type OracleConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type ScoringConfig struct {
	HighFrictionKeywords []string `yaml:"high_friction_keywords"`
	LowFrictionKeywords  []string `yaml:"low_friction_keywords"`
	AssistantContextSize int      `yaml:"assistant_context_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:          8700,
			MetricsPort:   8701,
			RatePerMinute: 120,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Oracle: OracleConfig{
			URL:   "https://api.openai.com",
			Model: "gpt-4o-mini",
		},
		Scoring: ScoringConfig{
			HighFrictionKeywords: []string{"tax", "accounting", "legal"},
			LowFrictionKeywords:  []string{"call", "email"},
			AssistantContextSize: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TRIAGE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("TRIAGE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("TRIAGE_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("TRIAGE_RATE_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RatePerMinute = n
		}
	}
	if v := os.Getenv("TRIAGE_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("TRIAGE_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("TRIAGE_ORACLE_URL"); v != "" {
		cfg.Oracle.URL = v
	}
	if v := os.Getenv("TRIAGE_ORACLE_API_KEY"); v != "" {
		cfg.Oracle.APIKey = v
	}
	if v := os.Getenv("TRIAGE_ORACLE_MODEL"); v != "" {
		cfg.Oracle.Model = v
	}
	if v := os.Getenv("TRIAGE_ASSISTANT_CONTEXT_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.AssistantContextSize = n
		}
	}
	if v := os.Getenv("TRIAGE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
