// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, "json", cfg.From)
	assert.Equal(t, "json", cfg.To)
	assert.Equal(t, "none", cfg.Keys)
	assert.Zero(t, cfg.Indent)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Load(t *testing.T) {
	path := writeFile(t, "jvfmt.yaml", `
from: xml
indent: 2
keys: snake
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "xml", cfg.From)
	assert.Equal(t, "json", cfg.To, "unset values keep their defaults")
	assert.Equal(t, 2, cfg.Indent)
	assert.Equal(t, "snake", cfg.Keys)
}

func TestConfig_LoadErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yaml", "from: [unclosed"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "invalid.yaml", "from: csv"))
	assert.ErrorContains(t, err, `unknown input format "csv"`)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"BadFrom", func(c *Config) { c.From = "yaml" }, "unknown input format"},
		{"BadTo", func(c *Config) { c.To = "http" }, "unknown output format"},
		{"BadKeys", func(c *Config) { c.Keys = "SCREAMING" }, "unknown key style"},
		{"BadIndent", func(c *Config) { c.Indent = -3 }, "invalid indent"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfig()
			tc.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}
}
