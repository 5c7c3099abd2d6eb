// SPDX-License-Identifier: MPL-2.0

// Package toolchain reads the pinned compiler toolchain configuration and
// turns it into an environment overlay.
//
// The pin file (rust-toolchain.toml) is read once per evaluation, never
// per platform. The pin is platform-parametric: every platform resolves
// the same channel and component set, differing only in the target triple
// that selects the binary artifact. Changing the pin file therefore moves
// every platform at once; no platform can lag behind another within one
// evaluation.
package toolchain
