// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidProjectFile is returned when a project file name is empty
	// or whitespace-only.
	ErrInvalidProjectFile = errors.New("invalid project file name")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// recognized. It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidProjectFileError is returned when a project file name is
	// empty or whitespace-only.
	InvalidProjectFileError struct {
		Field string
		Value string
	}

	// Config holds the application configuration.
	Config struct {
		// Project names the input files read from the crate root.
		Project ProjectConfig `json:"project" mapstructure:"project"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ProjectConfig names the project input files, relative to the crate root.
	ProjectConfig struct {
		// ManifestFile is the crate manifest file name.
		ManifestFile string `json:"manifest_file" mapstructure:"manifest_file"`
		// LockfileFile is the dependency lock file name.
		LockfileFile string `json:"lockfile_file" mapstructure:"lockfile_file"`
		// ToolchainFile is the pinned toolchain file name.
		ToolchainFile string `json:"toolchain_file" mapstructure:"toolchain_file"`
		// ForgeFile is the optional project descriptor file name.
		ForgeFile string `json:"forge_file" mapstructure:"forge_file"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color
// schemes, and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// Error implements the error interface for InvalidProjectFileError.
func (e *InvalidProjectFileError) Error() string {
	return fmt.Sprintf("invalid project file name for %s: %q must be non-empty", e.Field, e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidProjectFileError) Unwrap() error { return ErrInvalidProjectFile }

// IsValid returns whether the ProjectConfig has valid fields. Every file
// name must be non-empty and not whitespace-only.
func (p ProjectConfig) IsValid() (bool, []error) {
	var errs []error
	fields := []struct {
		name  string
		value string
	}{
		{"project.manifest_file", p.ManifestFile},
		{"project.lockfile_file", p.LockfileFile},
		{"project.toolchain_file", p.ToolchainFile},
		{"project.forge_file", p.ForgeFile},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, &InvalidProjectFileError{Field: f.name, Value: f.value})
		}
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Project.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			ManifestFile:  "Cargo.toml",
			LockfileFile:  "Cargo.lock",
			ToolchainFile: "rust-toolchain.toml",
			ForgeFile:     "forge.cue",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
