// SPDX-License-Identifier: MPL-2.0

// Package artifact holds the three per-platform artifact descriptors:
// the package build specification, the development shell, and the
// container image specification.
//
// Descriptors do not run compilers or assemble image layers; they emit
// complete, deterministic specifications for external executors. The one
// deliberate exception to determinism is the image creation timestamp,
// which is stamped from the wall clock at build time.
package artifact
