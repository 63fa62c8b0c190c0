// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config holds the settings for a conversion. Values are read from an
// optional YAML file and then overridden by command-line flags.
type Config struct {
	From   string `yaml:"from"`   // input format
	To     string `yaml:"to"`     // output format
	Indent int    `yaml:"indent"` // spaces per level, 0 for compact output
	Keys   string `yaml:"keys"`   // key case style
	Tag    string `yaml:"tag"`    // root element name for XML output
}

var (
	inputFormats  = []string{"json", "xml", "cookie", "cookie-list", "http"}
	outputFormats = []string{"json", "xml"}
	keyStyles     = []string{"none", "snake", "camel", "pascal", "kebab"}
)

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{From: "json", To: "json", Keys: "none"}
}

// LoadConfig reads a YAML configuration file. Settings absent from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate reports an error if any setting of c is not valid.
func (c *Config) Validate() error {
	switch {
	case !slices.Contains(inputFormats, c.From):
		return fmt.Errorf("unknown input format %q", c.From)
	case !slices.Contains(outputFormats, c.To):
		return fmt.Errorf("unknown output format %q", c.To)
	case !slices.Contains(keyStyles, c.Keys):
		return fmt.Errorf("unknown key style %q", c.Keys)
	case c.Indent < 0:
		return fmt.Errorf("invalid indent %d", c.Indent)
	}
	return nil
}
