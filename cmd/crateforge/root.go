// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for crateforge.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"crateforge/internal/config"
	"crateforge/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// loadedConfig is the configuration read during initialization.
	// Subcommands fall back to defaults when loading failed.
	loadedConfig *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "crateforge",
		Short: "Reproducible multi-platform build matrices for Rust crates",
		Long: TitleStyle.Render("crateforge") + SubtitleStyle.Render(" - Reproducible multi-platform build matrices for Rust crates") + `

crateforge reads a crate's manifest, its dependency lock, and its pinned
toolchain, then evaluates package, dev-shell, and container-image
descriptors for every supported platform in one pass. The same inputs
always yield the same descriptors.

Project inputs live in the crate root: Cargo.toml, Cargo.lock,
rust-toolchain.toml, and an optional forge.cue descriptor in CUE format.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Pin a toolchain channel in rust-toolchain.toml
  2. Commit the Cargo.lock produced by 'cargo generate-lockfile'
  3. Evaluate the matrix with: crateforge eval

` + SubtitleStyle.Render("Examples:") + `
  crateforge eval                 Evaluate every artifact for every platform
  crateforge eval --platform aarch64-darwin
                                  Evaluate a single platform
  crateforge show platforms       List the supported platform set
  crateforge show toolchain       Show the pinned toolchain per platform
  crateforge config show          Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/crateforge/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration. Loading errors are surfaced but never fatal;
	// evaluation proceeds with defaults.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	loadedConfig = cfg

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// projectConfig returns the project file names to read, from the loaded
// configuration or the defaults.
func projectConfig() config.ProjectConfig {
	if loadedConfig != nil {
		return loadedConfig.Project
	}
	return config.DefaultConfig().Project
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
