// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"crateforge/internal/buildenv"
	"crateforge/pkg/platform"
)

type (
	// Pin is the parsed toolchain pin: one release channel plus the
	// component set every platform receives.
	Pin struct {
		// Channel is the pinned release, e.g. "1.79.0" or "stable".
		Channel string
		// Profile selects the component preset ("minimal", "default", "complete").
		Profile string
		// Components are additional components installed on top of the profile.
		Components []string
		// Targets are extra cross-compilation targets beyond the host triple.
		Targets []string
	}

	// Toolchain is the pin resolved for one platform: same channel and
	// components as every other platform, platform-specific triple.
	Toolchain struct {
		Channel    string
		Triple     string
		Components []string
	}

	// pinFile mirrors the rust-toolchain.toml layout.
	pinFile struct {
		Toolchain pinTable `toml:"toolchain"`
	}

	pinTable struct {
		Channel    string   `toml:"channel"`
		Profile    string   `toml:"profile"`
		Components []string `toml:"components"`
		Targets    []string `toml:"targets"`
	}
)

// ReadPin reads and parses the toolchain pin file. A missing or malformed
// pin is a configuration error: without it no platform's environment can
// be resolved reproducibly.
func ReadPin(path string) (*Pin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read toolchain pin at %s: %w", path, err)
	}
	return ParsePin(data, path)
}

// ParsePin parses toolchain pin content from bytes.
func ParsePin(data []byte, path string) (*Pin, error) {
	var file pinFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse toolchain pin at %s: %w", path, err)
	}

	pin := &Pin{
		Channel:    strings.TrimSpace(file.Toolchain.Channel),
		Profile:    file.Toolchain.Profile,
		Components: file.Toolchain.Components,
		Targets:    file.Toolchain.Targets,
	}
	if pin.Channel == "" {
		return nil, fmt.Errorf("toolchain pin at %s: missing toolchain.channel", path)
	}
	if pin.Profile == "" {
		pin.Profile = "default"
	}
	return pin, nil
}

// For resolves the pin for one platform. Only the triple varies by
// platform; channel and components are identical across the set.
func (p *Pin) For(target platform.Platform) Toolchain {
	components := make([]string, len(p.Components))
	copy(components, p.Components)
	return Toolchain{
		Channel:    p.Channel,
		Triple:     target.Triple(),
		Components: components,
	}
}

// Overlay returns the environment overlay that injects the pinned
// toolchain. The overlay captures the already-read pin; applying it
// performs no I/O.
func Overlay(pin *Pin) buildenv.Overlay {
	return func(env buildenv.Environment) buildenv.Environment {
		tc := pin.For(env.Platform)
		tools := []buildenv.Tool{
			{Name: "rustc", Version: tc.Channel, Source: tc.Triple},
			{Name: "cargo", Version: tc.Channel, Source: tc.Triple},
		}
		for _, component := range tc.Components {
			tools = append(tools, buildenv.Tool{
				Name:    component,
				Version: tc.Channel,
				Source:  tc.Triple,
			})
		}
		return env.With(tools...)
	}
}
