// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package config loads and validates server configuration from layered
// sources: built-in defaults, an optional YAML file, then environment
// variables, with later layers overriding earlier ones.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the complete server configuration.
type Config struct {
	Server       ServerConfig       `koanf:"server"`
	Database     DatabaseConfig     `koanf:"database"`
	Search       SearchConfig       `koanf:"search"`
	Cache        CacheConfig        `koanf:"cache"`
	Security     SecurityConfig     `koanf:"security"`
	Logging      LoggingConfig      `koanf:"logging"`
	ExtendedInfo ExtendedInfoConfig `koanf:"extended_info"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig selects and tunes the spot store.
type DatabaseConfig struct {
	// Driver is "duckdb" for persistent storage or "memory" for an
	// in-process store (tests, ephemeral deployments).
	Driver  string `koanf:"driver"`
	Path    string `koanf:"path"`
	Threads int    `koanf:"threads"`
}

// SearchConfig bounds search quota resolution.
type SearchConfig struct {
	DefaultLimit   int `koanf:"default_limit"`
	MaxExplicitIDs int `koanf:"max_explicit_ids"`
}

// CacheConfig tunes the serialized-spot result cache.
type CacheConfig struct {
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// SecurityConfig holds authentication and rate limit settings.
type SecurityConfig struct {
	// AuthMode is "jwt" or "none". "none" leaves every endpoint open and
	// is meant for development only.
	AuthMode        string        `koanf:"auth_mode"`
	JWTSecret       string        `koanf:"jwt_secret"`
	SessionTimeout  time.Duration `koanf:"session_timeout"`
	AdminUsername   string        `koanf:"admin_username"`
	AdminPassword   string        `koanf:"admin_password"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// LoggingConfig controls the global zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ExtendedInfoConfig constrains spot extended-info keys. Keys maps an
// attribute name to a rule ("any", "bool", "int", "oneof:a|b|c"). An empty
// map accepts any key with any value.
type ExtendedInfoConfig struct {
	Keys map[string]string `koanf:"keys"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:  "duckdb",
			Path:    "/data/spotseeker.duckdb",
			Threads: 0, // 0 = runtime.NumCPU()
		},
		Search: SearchConfig{
			DefaultLimit:   20,
			MaxExplicitIDs: 20,
		},
		Cache: CacheConfig{
			TTL:             5 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Security: SecurityConfig{
			AuthMode:        "jwt",
			JWTSecret:       "",
			SessionTimeout:  24 * time.Hour,
			AdminUsername:   "",
			AdminPassword:   "",
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		ExtendedInfo: ExtendedInfoConfig{
			Keys: map[string]string{},
		},
	}
}

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}

	switch c.Database.Driver {
	case "duckdb":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the duckdb driver")
		}
	case "memory":
	default:
		return fmt.Errorf("database.driver %q is not one of duckdb, memory", c.Database.Driver)
	}

	if c.Search.DefaultLimit < 1 {
		return fmt.Errorf("search.default_limit must be at least 1")
	}
	if c.Search.MaxExplicitIDs < 1 {
		return fmt.Errorf("search.max_explicit_ids must be at least 1")
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}

	switch c.Security.AuthMode {
	case "jwt":
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters in jwt mode")
		}
	case "none":
	default:
		return fmt.Errorf("security.auth_mode %q is not one of jwt, none", c.Security.AuthMode)
	}

	if level := strings.ToLower(c.Logging.Level); level != "" {
		switch level {
		case "trace", "debug", "info", "warn", "error", "fatal":
		default:
			return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
		}
	}

	return nil
}
