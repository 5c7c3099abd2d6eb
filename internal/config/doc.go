// SPDX-License-Identifier: MPL-2.0

// Package config loads and persists the crateforge configuration.
//
// Configuration lives in a CUE file in the platform config directory and
// is validated against an embedded schema before being merged into Viper
// on top of the defaults. The config carries the project input file names
// (manifest, lockfile, toolchain pin, forgefile) and UI preferences; the
// platform set itself is not configurable.
package config
