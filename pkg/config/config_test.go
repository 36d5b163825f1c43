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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "0.0.0.0:80", cfg.Listen)
	assert.Equal(t, "/etc/fan/root", cfg.Root)
	assert.Equal(t, "/etc/fan/signing.jwk", cfg.SigningKey)
	assert.False(t, cfg.CBOR)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
listen: 127.0.0.1:8080
cbor: true
rate_limit: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.True(t, cfg.CBOR)
	assert.Equal(t, float64(50), cfg.RateLimit)

	// untouched keys keep their defaults
	assert.Equal(t, "/etc/fan/root", cfg.Root)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `rate_limit: -1`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "rate limit")

	path = writeConfig(t, `listen: ""`)
	_, err = Load(path)
	assert.ErrorContains(t, err, "listen")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "listen: [")
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse")
}
