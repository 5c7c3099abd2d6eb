// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"mvdan.cc/sh/v3/syntax"

	"crateforge/internal/buildenv"
	"crateforge/pkg/platform"
)

type (
	// DevShell is the development-environment descriptor for one
	// platform: the resolved environment's tools plus the project's
	// additions.
	DevShell struct {
		// Platform is the target the shell is scoped to.
		Platform platform.Platform

		// Tools is the composed tool set, sorted and deduplicated. A
		// tool contributed by several sources appears once.
		Tools []string

		// Hook is the shell snippet run when the shell starts, if any.
		Hook string
	}

	// ToolRule adds tools only on platforms the predicate matches.
	// Rules are independent: each is evaluated against the platform on
	// its own, and matching rules' tools are unioned into the set.
	ToolRule struct {
		When  platform.Predicate
		Tools []string
	}
)

// BuildDevShell composes the dev shell for one platform: the
// environment's base tools, the unconditional extras, and the tools of
// every rule whose predicate matches the platform.
//
// The hook, when present, must be valid shell; a hook that does not
// parse is a configuration error.
func BuildDevShell(env buildenv.Environment, extra []string, rules []ToolRule, hook string) (*DevShell, error) {
	if hook != "" {
		parser := syntax.NewParser()
		if _, err := parser.Parse(strings.NewReader(hook), "hook"); err != nil {
			return nil, fmt.Errorf("dev shell hook is not valid shell: %w", err)
		}
	}

	set := make(map[string]struct{})
	for _, name := range env.ToolNames() {
		set[name] = struct{}{}
	}
	for _, name := range extra {
		set[name] = struct{}{}
	}
	for _, rule := range rules {
		if rule.When == nil || !rule.When(env.Platform) {
			continue
		}
		for _, name := range rule.Tools {
			set[name] = struct{}{}
		}
	}

	tools := maps.Keys(set)
	slices.Sort(tools)

	return &DevShell{
		Platform: env.Platform,
		Tools:    tools,
		Hook:     hook,
	}, nil
}

// Has reports whether the shell's tool set contains name.
func (d *DevShell) Has(name string) bool {
	_, found := slices.BinarySearch(d.Tools, name)
	return found
}
