// SPDX-License-Identifier: MPL-2.0

package lockfile

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/slices"
)

type (
	// Lockfile is the imported dependency lock: the full pinned closure
	// for the crate's source tree.
	Lockfile struct {
		// Version is the lock format version.
		Version int
		// Packages are the pinned entries, in file order. The root crate
		// itself appears here alongside its dependencies.
		Packages []Package
	}

	// Package is one pinned entry in the lock.
	Package struct {
		Name     string `toml:"name"`
		Version  string `toml:"version"`
		Source   string `toml:"source"`
		Checksum string `toml:"checksum"`
		// Dependencies are the entry's own edges in the pinned graph,
		// carried opaquely: imported, never resolved here.
		Dependencies []string `toml:"dependencies"`
	}

	// UncoveredError is returned when the lock does not pin every
	// dependency the manifest declares.
	UncoveredError struct {
		Missing []string
	}

	lockFileDoc struct {
		Version  int       `toml:"version"`
		Packages []Package `toml:"package"`
	}
)

// Read reads and parses the lock at path. A missing lock is a hard error:
// without it the build specification cannot be reproducible.
func Read(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile at %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses lock content from bytes.
func Parse(data []byte, path string) (*Lockfile, error) {
	var doc lockFileDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse lockfile at %s: %w", path, err)
	}
	if len(doc.Packages) == 0 {
		return nil, fmt.Errorf("lockfile at %s: no package entries", path)
	}
	for i, pkg := range doc.Packages {
		if pkg.Name == "" || pkg.Version == "" {
			return nil, fmt.Errorf("lockfile at %s: package[%d] is missing name or version", path, i)
		}
	}
	return &Lockfile{Version: doc.Version, Packages: doc.Packages}, nil
}

// Closure returns the pinned dependency closure as sorted "name version"
// entries. The enumeration is deterministic: the same lock always yields
// the same closure, which is what makes the package specification
// reproducible across evaluations.
func (l *Lockfile) Closure() []string {
	out := make([]string, 0, len(l.Packages))
	for _, pkg := range l.Packages {
		out = append(out, pkg.Name+" "+pkg.Version)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Covers checks that every named dependency is pinned by the lock.
// Returns an UncoveredError listing the missing names otherwise.
func (l *Lockfile) Covers(deps []string) error {
	pinned := make(map[string]bool, len(l.Packages))
	for _, pkg := range l.Packages {
		pinned[pkg.Name] = true
	}

	var missing []string
	for _, dep := range deps {
		if !pinned[dep] {
			missing = append(missing, dep)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return &UncoveredError{Missing: missing}
	}
	return nil
}

// Error implements the error interface for UncoveredError.
func (e *UncoveredError) Error() string {
	return fmt.Sprintf("lockfile does not cover %d declared dependency(ies): %v", len(e.Missing), e.Missing)
}
