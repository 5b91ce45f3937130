// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package toss is the application layer of the toss CLI: registry
// configuration, console progress rendering, and the per-file publish
// loop.
package toss

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pkgtoss/toss/pkg/publish"
)

const configName = "registries.toml"

// Config is the persisted registry configuration, normally at
// ~/.toss/registries.toml.
type Config struct {
	Registries []RegistryEntry `toml:"registry"`
}

// RegistryEntry is one named registry. Passwords are deliberately not
// part of the file; they come from the environment, a prompt, or a
// downstream authentication layer.
type RegistryEntry struct {
	Name     string `toml:"name"`
	URL      string `toml:"url"`
	Username string `toml:"username,omitempty"`
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	return filepath.Join(os.Getenv("HOME"), ".toss", configName)
}

// LoadConfig reads the config file at path. A missing file yields an
// empty config, not an error.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Lookup finds a registry entry by name.
func (c *Config) Lookup(name string) (*RegistryEntry, bool) {
	for i := range c.Registries {
		if c.Registries[i].Name == name {
			return &c.Registries[i], true
		}
	}
	return nil, false
}

// ResolveTarget combines an explicit registry (either a config entry name
// or a URL), credentials, and the environment into a publish target.
// Flags win over environment variables, which win over the config file.
func ResolveTarget(cfg *Config, registry, username, password string) (*publish.Target, error) {
	if registry == "" {
		registry = os.Getenv("TOSS_REGISTRY")
	}
	if registry == "" {
		return nil, errors.New("no registry specified: pass --registry or set TOSS_REGISTRY")
	}

	rawURL := registry
	if !strings.Contains(registry, "://") {
		entry, ok := cfg.Lookup(registry)
		if !ok {
			return nil, fmt.Errorf("unknown registry %q: not a URL and not in %s", registry, ConfigPath())
		}
		rawURL = entry.URL
		if username == "" {
			username = entry.Username
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid registry URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid registry URL %q: expected http or https", rawURL)
	}

	if username == "" {
		username = os.Getenv("TOSS_USERNAME")
	}
	if password == "" {
		password = os.Getenv("TOSS_PASSWORD")
	}
	return &publish.Target{URL: u, Username: username, Password: password}, nil
}
