// SPDX-License-Identifier: MPL-2.0

// Package evaluate drives one configuration evaluation: read the project
// inputs once, resolve a per-platform environment through the toolchain
// overlay, and fan the three artifact descriptors out across the
// platform set.
//
// An evaluation is a single pass. Inputs are read up front and shared
// read-only; any configuration error (missing manifest, incomplete lock,
// broken pin) aborts the whole evaluation with no partial output.
package evaluate
