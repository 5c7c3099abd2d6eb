// SPDX-License-Identifier: MPL-2.0

package forgefile

import (
	_ "embed"
	"fmt"
	"os"

	"crateforge/pkg/cueutil"
)

//go:embed forgefile_schema.cue
var forgefileSchema string

type (
	// Forgefile is a parsed forge.cue project descriptor.
	Forgefile struct {
		// DevShell configures the development-environment artifact.
		DevShell DevShellSpec `json:"devshell"`

		// FilePath is where the descriptor was loaded from, or "" for
		// the built-in defaults.
		FilePath string `json:"-"`
	}

	// DevShellSpec declares the project's dev-shell additions.
	DevShellSpec struct {
		// Tools are added to every platform's dev shell.
		Tools []string `json:"tools"`
		// Rules add tools only on platforms whose OS matches.
		Rules []Rule `json:"rules"`
		// Hook is a shell snippet run when the dev shell starts.
		Hook string `json:"hook"`
	}

	// Rule is one platform-conditional tool addition.
	Rule struct {
		OS    string   `json:"os"`
		Tools []string `json:"tools"`
	}
)

// Default returns the descriptor used when a project has no forge.cue:
// the usual crate development tools everywhere, plus libiconv on darwin,
// where the linker wants it.
func Default() *Forgefile {
	return &Forgefile{
		DevShell: DevShellSpec{
			Tools: []string{"cargo-watch", "rust-analyzer"},
			Rules: []Rule{
				{OS: "darwin", Tools: []string{"libiconv"}},
			},
		},
	}
}

// Parse reads and parses a forgefile from the given path.
func Parse(path string) (*Forgefile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read forgefile at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses forgefile content from bytes, validating against the
// #Forge schema.
func ParseBytes(data []byte, path string) (*Forgefile, error) {
	result, err := cueutil.ParseAndDecodeString[Forgefile](
		forgefileSchema,
		data,
		"#Forge",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return nil, err
	}

	ff := result.Value
	ff.FilePath = path
	return ff, nil
}
