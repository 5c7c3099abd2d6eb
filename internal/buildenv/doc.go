// SPDX-License-Identifier: MPL-2.0

// Package buildenv models the per-platform tool environment that artifact
// construction runs against.
//
// An Environment is a bag of tools scoped to one platform. It is built by
// a Resolver: a platform-specific base environment folded through an
// ordered chain of overlays. Overlays are pure transformations; they
// return a new Environment and never mutate their input, so environments
// for different platforms share no state and can be resolved in any order
// (or in parallel by an external scheduler). Chain order only matters for
// override precedence: a later overlay wins when two overlays provide the
// same tool.
package buildenv
