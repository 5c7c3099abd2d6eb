// SPDX-License-Identifier: MPL-2.0

package buildenv

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"crateforge/pkg/platform"
)

type (
	// Tool is one entry in an environment's tool bag.
	Tool struct {
		// Name is the tool's identifier within the environment (e.g. "cargo").
		Name string
		// Version is the tool's declared version, if pinned.
		Version string
		// Source notes where the tool came from (base set, overlay name,
		// target triple). Informational only.
		Source string
	}

	// Environment is the composed tool bag for one platform.
	Environment struct {
		Platform platform.Platform
		tools    map[string]Tool
	}

	// Overlay transforms an Environment into a new Environment. Overlays
	// must be pure: no I/O, no mutation of the input.
	Overlay func(Environment) Environment

	// BaseFunc produces the starting environment for a platform, before
	// any overlays apply.
	BaseFunc func(platform.Platform) Environment

	// Resolver composes a base environment with an ordered overlay chain.
	Resolver struct {
		Base     BaseFunc
		Overlays []Overlay
	}
)

// New returns an empty environment for the given platform.
func New(p platform.Platform) Environment {
	return Environment{Platform: p, tools: map[string]Tool{}}
}

// With returns a copy of the environment with the given tools added.
// A tool whose name is already present is replaced.
func (e Environment) With(tools ...Tool) Environment {
	next := Environment{Platform: e.Platform, tools: maps.Clone(e.tools)}
	if next.tools == nil {
		next.tools = map[string]Tool{}
	}
	for _, t := range tools {
		next.tools[t.Name] = t
	}
	return next
}

// Lookup returns the named tool and whether it is present.
func (e Environment) Lookup(name string) (Tool, bool) {
	t, ok := e.tools[name]
	return t, ok
}

// Has reports whether the named tool is present.
func (e Environment) Has(name string) bool {
	_, ok := e.tools[name]
	return ok
}

// ToolNames returns the names of all tools in the environment, sorted.
func (e Environment) ToolNames() []string {
	names := maps.Keys(e.tools)
	slices.Sort(names)
	return names
}

// Resolve builds the environment for one platform: the base environment
// folded left-to-right through the overlay chain.
func (r Resolver) Resolve(p platform.Platform) Environment {
	base := r.Base
	if base == nil {
		base = DefaultBase
	}
	env := base(p)
	for _, overlay := range r.Overlays {
		env = overlay(env)
	}
	return env
}

// DefaultBase is the system-provided baseline: the minimal tool set every
// platform starts from before overlays add anything.
func DefaultBase(p platform.Platform) Environment {
	return New(p).With(
		Tool{Name: "sh", Source: "base"},
		Tool{Name: "coreutils", Source: "base"},
		Tool{Name: "cc", Source: "base"},
	)
}
