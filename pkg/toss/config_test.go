// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toss

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registries.toml")
	data := `
[[registry]]
name = "testpypi"
url = "https://test.pypi.org/legacy/"
username = "__token__"

[[registry]]
name = "internal"
url = "https://pkgs.example.com/simple/"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := &Config{
		Registries: []RegistryEntry{
			{Name: "testpypi", URL: "https://test.pypi.org/legacy/", Username: "__token__"},
			{Name: "internal", URL: "https://pkgs.example.com/simple/"},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Registries) != 0 {
		t.Errorf("registries = %v, want empty", cfg.Registries)
	}
}

func TestResolveTarget(t *testing.T) {
	cfg := &Config{
		Registries: []RegistryEntry{
			{Name: "testpypi", URL: "https://test.pypi.org/legacy/", Username: "ferris"},
		},
	}

	t.Run("by name", func(t *testing.T) {
		target, err := ResolveTarget(cfg, "testpypi", "", "F3RR!S")
		if err != nil {
			t.Fatalf("ResolveTarget: %v", err)
		}
		if got := target.URL.String(); got != "https://test.pypi.org/legacy/" {
			t.Errorf("url = %q", got)
		}
		if target.Username != "ferris" || target.Password != "F3RR!S" {
			t.Errorf("credentials = %q/%q", target.Username, target.Password)
		}
	})

	t.Run("flag username wins over config", func(t *testing.T) {
		target, err := ResolveTarget(cfg, "testpypi", "other", "")
		if err != nil {
			t.Fatalf("ResolveTarget: %v", err)
		}
		if target.Username != "other" {
			t.Errorf("username = %q, want other", target.Username)
		}
	})

	t.Run("by url", func(t *testing.T) {
		target, err := ResolveTarget(cfg, "https://upload.pypi.org/legacy/", "", "")
		if err != nil {
			t.Fatalf("ResolveTarget: %v", err)
		}
		if got := target.URL.Host; got != "upload.pypi.org" {
			t.Errorf("host = %q", got)
		}
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("TOSS_REGISTRY", "https://pkgs.example.com/legacy/")
		t.Setenv("TOSS_USERNAME", "envuser")
		t.Setenv("TOSS_PASSWORD", "envpass")
		target, err := ResolveTarget(cfg, "", "", "")
		if err != nil {
			t.Fatalf("ResolveTarget: %v", err)
		}
		if target.URL.Host != "pkgs.example.com" || target.Username != "envuser" || target.Password != "envpass" {
			t.Errorf("target = %+v", target)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		if _, err := ResolveTarget(cfg, "nope", "", ""); err == nil {
			t.Fatal("ResolveTarget succeeded, want error")
		}
	})

	t.Run("no registry anywhere", func(t *testing.T) {
		t.Setenv("TOSS_REGISTRY", "")
		if _, err := ResolveTarget(cfg, "", "", ""); err == nil {
			t.Fatal("ResolveTarget succeeded, want error")
		}
	})

	t.Run("bad scheme", func(t *testing.T) {
		if _, err := ResolveTarget(cfg, "ftp://pkgs.example.com/", "", ""); err == nil {
			t.Fatal("ResolveTarget succeeded, want error")
		}
	})
}
