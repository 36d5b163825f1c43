// Copyright (C) 2025 The FAN Project
//
// This file is part of fan-go.
//
// fan-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fan-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with fan-go.  If not, see <https://www.gnu.org/licenses/>.

// Package config holds the daemon configuration. Values come from an
// optional YAML file over built-in defaults; command-line flags override
// both (see cmd/fan).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the daemon configuration.
type Config struct {
	// Listen is the addr:port the HTTP server binds
	Listen string `yaml:"listen"`

	// Root is the directory the filesystem driver serves from
	Root string `yaml:"root"`

	// SigningKey is the path to the private JWK used to sign user documents
	SigningKey string `yaml:"signing_key"`

	// CBOR selects CBOR as the on-disk document format
	CBOR bool `yaml:"cbor"`

	// LogLevel is a zerolog level name (trace..panic)
	LogLevel string `yaml:"log_level"`

	// RateLimit is the global requests-per-second cap; 0 disables limiting
	RateLimit float64 `yaml:"rate_limit"`

	// RateBurst is the burst size allowed on top of RateLimit
	RateBurst int `yaml:"rate_burst"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:     "0.0.0.0:80",
		Root:       "/etc/fan/root",
		SigningKey: "/etc/fan/signing.jwk",
		LogLevel:   "info",
		RateBurst:  10,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration for values the daemon cannot start
// with.
func (c Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.Root == "" {
		return fmt.Errorf("document root is required")
	}
	if c.SigningKey == "" {
		return fmt.Errorf("signing key path is required")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative")
	}
	return nil
}
