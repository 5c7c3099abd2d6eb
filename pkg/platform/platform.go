// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"fmt"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Arch name constants. These follow the toolchain naming convention
// (aarch64/x86_64), not Go's (arm64/amd64); OCI() translates.
const (
	ArchAarch64 Arch = "aarch64"
	ArchX8664   Arch = "x86_64"
)

// OS name constants.
const (
	Darwin OS = "darwin"
	Linux  OS = "linux"
)

type (
	// Arch identifies a CPU architecture.
	Arch string

	// OS identifies an operating system family.
	OS string

	// ID is the opaque token identifying one (architecture, OS) pair,
	// e.g. "aarch64-darwin". IDs key every per-platform output mapping.
	ID string

	// Platform is one (architecture, OS) target pair.
	Platform struct {
		Arch Arch
		OS   OS
	}

	// Predicate reports whether a platform satisfies some condition.
	// Predicates drive platform-conditional tool rules in dev shells.
	Predicate func(Platform) bool

	// UnknownPlatformError is returned when an ID does not name a member
	// of the declared platform set.
	UnknownPlatformError struct {
		Value ID
	}
)

// defaultSet is the fixed ordered set of supported target platforms.
// Adding a platform means editing this list; there is no dynamic discovery.
var defaultSet = []Platform{
	{Arch: ArchAarch64, OS: Darwin},
	{Arch: ArchX8664, OS: Darwin},
	{Arch: ArchAarch64, OS: Linux},
	{Arch: ArchX8664, OS: Linux},
}

// Set returns the declared platform set in declaration order.
// The returned slice is a copy; callers may not grow or mutate the set.
func Set() []Platform {
	out := make([]Platform, len(defaultSet))
	copy(out, defaultSet)
	return out
}

// Parse resolves an ID to its Platform. An ID outside the declared set is
// a configuration error.
func Parse(id ID) (Platform, error) {
	for _, p := range defaultSet {
		if p.ID() == id {
			return p, nil
		}
	}
	return Platform{}, &UnknownPlatformError{Value: id}
}

// ID returns the platform's identity token, e.g. "x86_64-linux".
func (p Platform) ID() ID {
	return ID(string(p.Arch) + "-" + string(p.OS))
}

// String returns the same token as ID, for logging and error messages.
func (p Platform) String() string { return string(p.ID()) }

// Triple returns the toolchain target triple for the platform,
// e.g. "aarch64-apple-darwin" or "x86_64-unknown-linux-gnu".
func (p Platform) Triple() string {
	switch p.OS {
	case Darwin:
		return string(p.Arch) + "-apple-darwin"
	default:
		return string(p.Arch) + "-unknown-linux-gnu"
	}
}

// OCI returns the platform in OCI image-spec terms. OCI uses Go-style
// architecture names, so aarch64 becomes arm64 and x86_64 becomes amd64.
func (p Platform) OCI() ocispec.Platform {
	arch := "amd64"
	if p.Arch == ArchAarch64 {
		arch = "arm64"
	}
	return ocispec.Platform{
		Architecture: arch,
		OS:           string(p.OS),
	}
}

// OSIs returns a predicate matching platforms whose OS equals os.
func OSIs(os OS) Predicate {
	return func(p Platform) bool { return p.OS == os }
}

// Error implements the error interface for UnknownPlatformError.
func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("unknown platform %q (supported: %s)", e.Value, supportedList())
}

func supportedList() string {
	s := ""
	for i, p := range defaultSet {
		if i > 0 {
			s += ", "
		}
		s += string(p.ID())
	}
	return s
}
