// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = strings.Repeat("s", 32)
	return cfg
}

func TestDefaultsValidateInNoneMode(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.AuthMode = "none"
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults with auth disabled should validate: %v", err)
	}
}

func TestValidateJWTSecretLength(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("jwt mode with empty secret should fail validation")
	}

	cfg.Security.JWTSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Error("jwt mode with short secret should fail validation")
	}

	cfg.Security.JWTSecret = strings.Repeat("s", 32)
	if err := cfg.Validate(); err != nil {
		t.Errorf("32-char secret should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }},
		{"duckdb without path", func(c *Config) { c.Database.Path = "" }},
		{"zero default limit", func(c *Config) { c.Search.DefaultLimit = 0 }},
		{"zero id ceiling", func(c *Config) { c.Search.MaxExplicitIDs = 0 }},
		{"zero cache ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"unknown auth mode", func(c *Config) { c.Security.AuthMode = "basic" }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMemoryDriverNeedsNoPath(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "memory"
	cfg.Database.Path = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("memory driver should not require a path: %v", err)
	}
}

func TestLoadLayersEnvironment(t *testing.T) {
	t.Setenv("AUTH_MODE", "none")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("cache ttl = %v", cfg.Cache.TTL)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("cors origins = %v", cfg.Security.CORSOrigins)
	}
	// Unset values keep their defaults.
	if cfg.Search.DefaultLimit != 20 {
		t.Errorf("default limit = %d, want 20", cfg.Search.DefaultLimit)
	}
}

func TestAddr(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := cfg.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("addr = %q", got)
	}
}
