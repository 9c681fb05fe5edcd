package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SaiyamJain468/Paylockr/internal/corrective"
)

// Config holds service configuration. Values come from defaults, then
// an optional YAML file, then environment variables, in that order.
type Config struct {
	Port      string `yaml:"port"`
	GCSBucket string `yaml:"gcs_bucket"`
	LogLevel  string `yaml:"log_level"`
	QueueSize int    `yaml:"queue_size"`
	Workers   int    `yaml:"workers"`

	Corrective CorrectiveConfig `yaml:"corrective"`
}

// CorrectiveConfig configures the optional model-backed corrective pass.
type CorrectiveConfig struct {
	Enabled        bool   `yaml:"enabled"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load builds the configuration. path may be empty or point to a YAML
// file; a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:      "8080",
		LogLevel:  "info",
		QueueSize: 100,
		Workers:   5,
		Corrective: CorrectiveConfig{
			Model:          corrective.DefaultModel,
			TimeoutSeconds: int(corrective.DefaultTimeout / time.Second),
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 5
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("GCS_BUCKET"); v != "" {
		c.GCSBucket = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("QUEUE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.QueueSize = n
		}
	}
	if v := os.Getenv("WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv("LLM_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Corrective.Enabled = b
		}
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Corrective.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.Corrective.Model = v
	}
}

// CorrectiveOptions converts the corrective section into the refiner's
// own config type.
func (c *Config) CorrectiveOptions() corrective.Config {
	return corrective.Config{
		Enabled: c.Corrective.Enabled,
		APIKey:  c.Corrective.APIKey,
		Model:   c.Corrective.Model,
		Timeout: time.Duration(c.Corrective.TimeoutSeconds) * time.Second,
	}
}
