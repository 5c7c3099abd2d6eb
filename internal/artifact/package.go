// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"encoding/json"
	"fmt"

	"github.com/opencontainers/go-digest"

	"crateforge/internal/buildenv"
	"crateforge/internal/lockfile"
	"crateforge/pkg/manifest"
	"crateforge/pkg/platform"
)

// PackageSpec is the reproducible build specification for one platform:
// everything an external build executor needs, pinned. Two evaluations
// with identical manifest, lockfile, source tree, and toolchain pin
// produce byte-identical specs (checkable via Digest).
type PackageSpec struct {
	// Name and Version come from the manifest.
	Name    string `json:"name"`
	Version string `json:"version"`

	// Platform is the target this spec builds for.
	Platform platform.Platform `json:"platform"`

	// ToolchainChannel and TargetTriple identify the pinned compiler
	// binary that must perform the build.
	ToolchainChannel string `json:"toolchain_channel"`
	TargetTriple     string `json:"target_triple"`

	// Source is the crate root directory.
	Source string `json:"source"`

	// Closure is the pinned dependency closure, sorted "name version"
	// entries imported from the lockfile.
	Closure []string `json:"closure"`
}

// BuildPackage composes the package build specification for one platform.
//
// The environment must already carry the pinned toolchain (the resolver's
// toolchain overlay provides it); an environment without one cannot
// produce a reproducible spec and is rejected. The lock must cover every
// dependency the manifest declares.
func BuildPackage(env buildenv.Environment, m *manifest.Manifest, source string, lock *lockfile.Lockfile) (*PackageSpec, error) {
	rustc, ok := env.Lookup("rustc")
	if !ok {
		return nil, fmt.Errorf("environment for %s has no pinned toolchain", env.Platform)
	}

	if err := lock.Covers(m.Dependencies); err != nil {
		return nil, fmt.Errorf("import dependency lock for %s %s: %w", m.Name, m.Version, err)
	}

	return &PackageSpec{
		Name:             m.Name,
		Version:          m.Version,
		Platform:         env.Platform,
		ToolchainChannel: rustc.Version,
		TargetTriple:     rustc.Source,
		Source:           source,
		Closure:          lock.Closure(),
	}, nil
}

// BinPath returns the installed location of the package's primary
// executable. The image descriptor derives its entrypoint from this, so
// the two can never disagree.
func (s *PackageSpec) BinPath() string {
	return "/bin/" + s.Name
}

// Digest returns a content digest over the spec's canonical encoding.
// Equal specs have equal digests, which is how reproducibility of the
// build specification is verified.
func (s *PackageSpec) Digest() digest.Digest {
	// json.Marshal field order follows the struct declaration, so the
	// encoding is canonical for a given spec value.
	data, err := json.Marshal(s)
	if err != nil {
		// PackageSpec contains only marshalable fields.
		panic(fmt.Sprintf("encode package spec: %v", err))
	}
	return digest.FromBytes(data)
}
