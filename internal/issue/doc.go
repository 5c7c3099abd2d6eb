// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error context and the catalog of
// known failure modes.
//
// ActionableError carries what operation failed, which resource was
// involved, and suggestions for fixing it; the CLI layer formats it for
// display. The Issue catalog holds longer markdown help pages for the
// recurring configuration failures (missing manifest, incomplete lock,
// broken toolchain pin), rendered with glamour.
package issue
