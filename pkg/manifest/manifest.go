// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Manifest is the crate's declared identity plus the names of its
	// direct dependencies. It is a value: re-derived fresh on every
	// evaluation, never mutated.
	Manifest struct {
		// Name is the package name; it names the build artifact, the
		// image, and the installed executable.
		Name string
		// Version is the package version (semver); it tags the image.
		Version string
		// Dependencies are the direct dependency names declared in the
		// manifest, sorted. Used only to check lockfile coverage; the
		// lock's own resolution is external.
		Dependencies []string
	}

	// manifestFile mirrors the Cargo.toml layout we consume.
	manifestFile struct {
		Package struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"package"`
		Dependencies      map[string]any `toml:"dependencies"`
		BuildDependencies map[string]any `toml:"build-dependencies"`
	}
)

// Read reads and parses the manifest at path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest at %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses manifest content from bytes. The name and version fields
// are required; the version must be valid semver.
func Parse(data []byte, path string) (*Manifest, error) {
	var file manifestFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse manifest at %s: %w", path, err)
	}

	if file.Package.Name == "" {
		return nil, fmt.Errorf("manifest at %s: missing package.name", path)
	}
	if file.Package.Version == "" {
		return nil, fmt.Errorf("manifest at %s: missing package.version", path)
	}
	if _, err := semver.StrictNewVersion(file.Package.Version); err != nil {
		return nil, fmt.Errorf("manifest at %s: package.version %q is not valid semver: %w",
			path, file.Package.Version, err)
	}

	deps := maps.Keys(file.Dependencies)
	deps = append(deps, maps.Keys(file.BuildDependencies)...)
	slices.Sort(deps)
	deps = slices.Compact(deps)

	return &Manifest{
		Name:         file.Package.Name,
		Version:      file.Package.Version,
		Dependencies: deps,
	}, nil
}
