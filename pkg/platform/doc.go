// SPDX-License-Identifier: MPL-2.0

// Package platform defines the fixed set of target platforms crateforge
// evaluates for, and the per-platform identity used to key every output
// mapping.
//
// A Platform is an (architecture, OS) pair. The set of supported platforms
// is declared once, in order, and never changes during an evaluation. All
// three artifact mappings (packages, dev shells, images) are keyed by the
// platform ID, so the set is the single source of truth for which keys
// those mappings contain.
package platform
