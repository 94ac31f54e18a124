// Package config loads the application configuration from an optional
// YAML file with AITUTOR_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/aitutor/internal/llm"
)

// Session backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	Server struct {
		Addr    string `yaml:"addr"`
		BaseURL string `yaml:"base_url"`
		// Timeout bounds each request when set. Empty means no limit.
		Timeout string `yaml:"timeout"`
		// CORSOrigins lists browser origins allowed to call the API.
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Session struct {
		Backend       string `yaml:"backend"`
		TTL           string `yaml:"ttl"`
		SweepInterval string `yaml:"sweep_interval"`
	} `yaml:"session"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Share struct {
		Dir string `yaml:"dir"`
	} `yaml:"share"`
	Quiz struct {
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"quiz"`
	DB  string     `yaml:"db"`
	LLM llm.Config `yaml:"llm"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.Server.Addr = ":8080"
	c.Server.BaseURL = "http://localhost:8080"
	c.Server.CORSOrigins = []string{"*"}
	c.Session.Backend = BackendMemory
	c.Session.TTL = "2h"
	c.Session.SweepInterval = "5m"
	c.Redis.Addr = "localhost:6379"
	c.Share.Dir = "memlog"
	c.Quiz.MaxTokens = 2048
	c.Quiz.Temperature = 0.7
	c.LLM = llm.DefaultConfig()
	return c
}

// Load reads YAML config from path over the defaults, then applies the
// environment. A missing file is not an error when path is empty.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg = cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

// ApplyEnv overlays AITUTOR_* environment variables onto c.
func (c Config) ApplyEnv() Config {
	if v := os.Getenv("AITUTOR_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("AITUTOR_BASE_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("AITUTOR_REQUEST_TIMEOUT"); v != "" {
		c.Server.Timeout = v
	}
	if v := os.Getenv("AITUTOR_SESSION_BACKEND"); v != "" {
		c.Session.Backend = v
	}
	if v := os.Getenv("AITUTOR_SESSION_TTL"); v != "" {
		c.Session.TTL = v
	}
	if v := os.Getenv("AITUTOR_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("AITUTOR_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("AITUTOR_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = n
		}
	}
	if v := os.Getenv("AITUTOR_SHARE_DIR"); v != "" {
		c.Share.Dir = v
	}
	if v := os.Getenv("AITUTOR_DB"); v != "" {
		c.DB = v
	}
	c.LLM = c.LLM.ApplyEnv()
	return c
}

// Validate checks values that cannot be fixed by falling back. Provider
// keys are not checked here since they may arrive per request.
func (c Config) Validate() error {
	var errs []error
	switch c.Session.Backend {
	case BackendMemory, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown session backend %q", c.Session.Backend))
	}
	for name, raw := range map[string]string{
		"session.ttl":            c.Session.TTL,
		"session.sweep_interval": c.Session.SweepInterval,
		"server.timeout":         c.Server.Timeout,
	} {
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// SessionTTL is the parsed session TTL.
func (c Config) SessionTTL() time.Duration {
	return TTLDuration(c.Session.TTL, 2*time.Hour)
}

// SweepInterval is how often the memory store drops expired sessions.
func (c Config) SweepInterval() time.Duration {
	return TTLDuration(c.Session.SweepInterval, 5*time.Minute)
}

// RequestTimeout is zero when no timeout is configured.
func (c Config) RequestTimeout() time.Duration {
	return TTLDuration(c.Server.Timeout, 0)
}

// TTLDuration parses a duration string or returns the fallback if empty
// or invalid.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
