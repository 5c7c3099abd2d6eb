// SPDX-License-Identifier: MPL-2.0

// Package lockfile imports the crate's dependency lock (Cargo.lock).
//
// The lock is consumed opaquely: crateforge enumerates the pinned
// dependency closure and checks that it covers the manifest's declared
// dependencies, but never resolves versions itself. Resolution belongs to
// the external lock producer. An absent, malformed, or incomplete lock is
// a hard configuration error.
package lockfile
