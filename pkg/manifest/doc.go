// SPDX-License-Identifier: MPL-2.0

// Package manifest reads the crate manifest (Cargo.toml).
//
// The manifest is parsed once per evaluation and shared read-only by every
// artifact descriptor, so the package name and version used for the build
// artifact, the dev shell, and the image reference always agree.
package manifest
