// SPDX-License-Identifier: MPL-2.0

package forgefile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleForgefile = `devshell: {
	tools: ["cargo-watch", "just"]
	rules: [
		{os: "darwin", tools: ["libiconv"]},
	]
	hook: """
		export RUST_BACKTRACE=1
		"""
}
`

func TestParseBytes(t *testing.T) {
	ff, err := ParseBytes([]byte(sampleForgefile), "forge.cue")
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	if want := []string{"cargo-watch", "just"}; !reflect.DeepEqual(ff.DevShell.Tools, want) {
		t.Errorf("Tools = %v, want %v", ff.DevShell.Tools, want)
	}
	if len(ff.DevShell.Rules) != 1 {
		t.Fatalf("Rules has %d entries, want 1", len(ff.DevShell.Rules))
	}
	rule := ff.DevShell.Rules[0]
	if rule.OS != "darwin" || !reflect.DeepEqual(rule.Tools, []string{"libiconv"}) {
		t.Errorf("Rules[0] = %+v, want darwin/libiconv", rule)
	}
	if ff.DevShell.Hook != "export RUST_BACKTRACE=1" {
		t.Errorf("Hook = %q, want the export line", ff.DevShell.Hook)
	}
	if ff.FilePath != "forge.cue" {
		t.Errorf("FilePath = %q, want %q", ff.FilePath, "forge.cue")
	}
}

func TestParseBytesSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown os", `devshell: rules: [{os: "windows", tools: ["x"]}]`},
		{"empty tool name", `devshell: tools: [""]`},
		{"rule without tools", `devshell: rules: [{os: "darwin", tools: []}]`},
		{"unknown field", `devshell: packages: ["x"]`},
		{"syntax error", `devshell: {`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBytes([]byte(tt.data), "forge.cue"); err == nil {
				t.Error("ParseBytes succeeded, want error")
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "forge.cue")); err == nil {
		t.Error("Parse succeeded for a missing file, want error")
	}
}

func TestParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.cue")
	if err := os.WriteFile(path, []byte(sampleForgefile), 0o644); err != nil {
		t.Fatal(err)
	}

	ff, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if ff.FilePath != path {
		t.Errorf("FilePath = %q, want %q", ff.FilePath, path)
	}
}

func TestDefault(t *testing.T) {
	ff := Default()

	if len(ff.DevShell.Tools) == 0 {
		t.Error("default forgefile has no dev-shell tools")
	}
	found := false
	for _, rule := range ff.DevShell.Rules {
		if rule.OS == "darwin" {
			found = true
			for _, tool := range rule.Tools {
				if tool == "libiconv" {
					return
				}
			}
		}
	}
	if !found {
		t.Error("default forgefile has no darwin rule")
	}
	t.Error("default darwin rule does not add libiconv")
}
