// SPDX-License-Identifier: MPL-2.0

// Package forgefile reads the optional per-project forge.cue descriptor.
//
// The forgefile declares what a project wants on top of the resolved
// build environment: extra dev-shell tools, platform-conditional tool
// rules, and an optional shell hook. It is schema-validated CUE, like
// every other crateforge input surface. A project without a forge.cue
// gets the defaults.
package forgefile
