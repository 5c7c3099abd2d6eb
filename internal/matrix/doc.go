// SPDX-License-Identifier: MPL-2.0

// Package matrix fans per-platform construction logic out across the
// declared platform set.
//
// ForAll is the only entry point: it applies a builder function to every
// platform in a set and collects the results into a total mapping keyed by
// platform ID. Builders must not share mutable state across platforms;
// each invocation sees only its own platform.
package matrix
