// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Project.ManifestFile != "Cargo.toml" {
		t.Errorf("ManifestFile = %q, want %q", cfg.Project.ManifestFile, "Cargo.toml")
	}
	if cfg.Project.ToolchainFile != "rust-toolchain.toml" {
		t.Errorf("ToolchainFile = %q, want %q", cfg.Project.ToolchainFile, "rust-toolchain.toml")
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q, want %q", cfg.UI.ColorScheme, ColorSchemeAuto)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	content := `project: {
	manifest_file: "crate/Cargo.toml"
}

ui: {
	verbose: true
}
`
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Project.ManifestFile != "crate/Cargo.toml" {
		t.Errorf("ManifestFile = %q, want override", cfg.Project.ManifestFile)
	}
	// Unset fields keep defaults.
	if cfg.Project.LockfileFile != "Cargo.lock" {
		t.Errorf("LockfileFile = %q, want default", cfg.Project.LockfileFile)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true from config file")
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	content := `ui: color_scheme: "neon"`
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load accepted a config violating the schema")
	}
}

func TestLoadExplicitConfigFileMustExist(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "nope.cue"))
	t.Cleanup(Reset)

	if _, err := Load(); err == nil {
		t.Error("Load succeeded with a missing --config file")
	}
}

func TestColorSchemeIsValid(t *testing.T) {
	tests := []struct {
		scheme ColorScheme
		want   bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"neon", false},
		{"", false},
	}

	for _, tt := range tests {
		valid, errs := tt.scheme.IsValid()
		if valid != tt.want {
			t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.scheme, valid, tt.want)
		}
		if !valid && !errors.Is(errs[0], ErrInvalidColorScheme) {
			t.Errorf("invalid scheme error = %v, want ErrInvalidColorScheme", errs[0])
		}
	}
}

func TestProjectConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if valid, errs := cfg.IsValid(); !valid {
		t.Fatalf("default config invalid: %v", errs)
	}

	cfg.Project.LockfileFile = "  "
	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("config with whitespace lockfile name reported valid")
	}
	if !errors.Is(errs[0], ErrInvalidProjectFile) {
		t.Errorf("error = %v, want ErrInvalidProjectFile", errs[0])
	}
}

func TestEnsureConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "crateforge")
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if err := EnsureConfigDir(); err != nil {
		t.Fatalf("EnsureConfigDir failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("config dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}

	// Idempotent on an existing directory.
	if err := EnsureConfigDir(); err != nil {
		t.Errorf("EnsureConfigDir on existing dir failed: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	want := DefaultConfig()
	want.Project.ForgeFile = "build/forge.cue"
	want.UI.ColorScheme = ColorSchemeDark

	if err := Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load after Save failed: %v", err)
	}
	if got.Project.ForgeFile != "build/forge.cue" {
		t.Errorf("ForgeFile = %q, want %q", got.Project.ForgeFile, "build/forge.cue")
	}
	if got.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ColorScheme = %q, want %q", got.UI.ColorScheme, ColorSchemeDark)
	}
}
