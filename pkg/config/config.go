// Package config loads pipeline configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Durability policy names accepted in configuration files.
const (
	DurabilityBestEffort = "best-effort"
	DurabilityStrict     = "strict"
)

// Config is the top-level configuration file.
type Config struct {
	Cache    CacheConfig    `yaml:"cache"`
	Generate GenerateConfig `yaml:"generate"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CacheConfig configures the content cache.
type CacheConfig struct {
	// Dir is the disk tier root directory.
	Dir string `yaml:"dir"`

	// MemoryCapacity is the maximum memory-tier entry count.
	MemoryCapacity int `yaml:"memory_capacity"`

	// TTLSeconds is the entry time-to-live in seconds.
	TTLSeconds int `yaml:"ttl_seconds"`

	// Durability is "best-effort" (default) or "strict".
	Durability string `yaml:"durability"`

	// Redis, when Addr is set, replaces the disk tier with a shared
	// Redis-backed persistent tier.
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig configures the optional Redis persistent tier.
type RedisConfig struct {
	Addr   string `yaml:"addr"`
	DB     int    `yaml:"db"`
	Prefix string `yaml:"prefix"`
}

// GenerateConfig configures chapter generation.
type GenerateConfig struct {
	MaxWorkers     int `yaml:"max_workers"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Dir:            ".cache",
			MemoryCapacity: 100,
			TTLSeconds:     86400,
			Durability:     DurabilityBestEffort,
		},
		Generate: GenerateConfig{
			MaxWorkers:     3,
			TimeoutSeconds: 300,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML configuration file, layering it over the defaults.
// Validation failures are fatal; a half-valid configuration is never
// returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks invariants the rest of the pipeline relies on.
func (c Config) Validate() error {
	if c.Cache.Dir == "" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.dir must be set when no redis address is configured")
	}
	if c.Cache.MemoryCapacity <= 0 {
		return fmt.Errorf("cache.memory_capacity must be positive (got %d)", c.Cache.MemoryCapacity)
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache.ttl_seconds must be positive (got %d)", c.Cache.TTLSeconds)
	}
	switch c.Cache.Durability {
	case DurabilityBestEffort, DurabilityStrict:
	default:
		return fmt.Errorf("cache.durability must be %q or %q (got %q)",
			DurabilityBestEffort, DurabilityStrict, c.Cache.Durability)
	}
	if c.Generate.MaxWorkers <= 0 {
		return fmt.Errorf("generate.max_workers must be positive (got %d)", c.Generate.MaxWorkers)
	}
	return nil
}

// TTL returns the configured time-to-live as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Timeout returns the per-chapter generation timeout as a duration.
func (c GenerateConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
