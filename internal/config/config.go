// Package config loads brevo-mcp configuration from an optional YAML file and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all configuration for the server
type Config struct {
	Server ServerConfig `yaml:"server"`
	Brevo  BrevoConfig  `yaml:"brevo"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Name         string `yaml:"name" validate:"required"`
	Version      string `yaml:"version" validate:"required"`
	Description  string `yaml:"description"`
	Instructions string `yaml:"instructions"`
	Transport    string `yaml:"transport" validate:"oneof=stdio http"`
	Addr         string `yaml:"addr" validate:"required_if=Transport http"`
	MountPath    string `yaml:"mount_path" validate:"startswith=/"`
}

type BrevoConfig struct {
	APIKey     string        `yaml:"api_key"`
	BaseURL    string        `yaml:"base_url" validate:"required,url"`
	Timeout    time.Duration `yaml:"timeout" validate:"gt=0"`
	MaxRetries uint          `yaml:"max_retries"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      "brevo-mcp",
			Version:   "1.0.0",
			Transport: TransportStdio,
			Addr:      ":8080",
			MountPath: "/mcp",
		},
		Brevo: BrevoConfig{
			BaseURL:    "https://api.brevo.com/v3",
			Timeout:    30 * time.Second,
			MaxRetries: 3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (when not empty) with ${VAR} expansion, then applies environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}

		// Expand ${VAR} references in the YAML
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parse config YAML: %w", err)
		}
	}

	cfg.Brevo.APIKey = envOrDefault("BREVO_API_KEY", cfg.Brevo.APIKey)
	cfg.Brevo.BaseURL = envOrDefault("BREVO_BASE_URL", cfg.Brevo.BaseURL)
	cfg.Server.Transport = envOrDefault("MCP_TRANSPORT", cfg.Server.Transport)
	cfg.Server.Addr = envOrDefault("MCP_ADDR", cfg.Server.Addr)
	cfg.Log.Level = envOrDefault("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envOrDefault("LOG_FORMAT", cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return fmt.Errorf("invalid config: %s failed on %s", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// SetupLogging configures the standard logrus logger. Output goes to stderr so stdout stays free for the stdio transport.
func SetupLogging(cfg LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	log.SetOutput(os.Stderr)
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
