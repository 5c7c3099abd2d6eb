// SPDX-License-Identifier: MPL-2.0

package evaluate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"crateforge/internal/config"
	"crateforge/internal/issue"
	"crateforge/pkg/platform"
)

const (
	testCargoToml = `[package]
name = "vrenv"
version = "1.2.0"

[dependencies]
anyhow = "1.0"
serde_json = "1.0"
`

	testCargoLock = `version = 4

[[package]]
name = "anyhow"
version = "1.0.86"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "b3d1d046238990b9cf5bcde22a3fb3584ee5cf65fb2765f454ed428c7a0063da"

[[package]]
name = "serde_json"
version = "1.0.120"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "4e0d21c9a8cae1235ad58a00c11cb40d4b1e5c784f1ef2c537876ed6ffd8b7c5"

[[package]]
name = "vrenv"
version = "1.2.0"
`

	testToolchainToml = `[toolchain]
channel = "1.79.0"
profile = "minimal"
components = ["rustfmt", "clippy"]
`

	testForgeCue = `devshell: {
	tools: ["cargo-watch", "rust-analyzer"]
	rules: [
		{os: "darwin", tools: ["libiconv"]},
	]
}
`
)

// writeProject lays out a complete crate root in a temp dir.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func fullProject(t *testing.T) string {
	return writeProject(t, map[string]string{
		"Cargo.toml":          testCargoToml,
		"Cargo.lock":          testCargoLock,
		"rust-toolchain.toml": testToolchainToml,
		"forge.cue":           testForgeCue,
	})
}

func TestLoadAndOutputs(t *testing.T) {
	root := fullProject(t)

	eval, err := Load(root, config.DefaultConfig().Project)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	eval.Clock = func() time.Time { return fixed }

	outputs, err := eval.Outputs()
	if err != nil {
		t.Fatalf("Outputs failed: %v", err)
	}

	set := platform.Set()
	for _, mapping := range []int{len(outputs.Packages), len(outputs.DevShells), len(outputs.Images)} {
		if mapping != len(set) {
			t.Fatalf("mapping has %d entries, want %d", mapping, len(set))
		}
	}

	for _, p := range set {
		id := p.ID()

		pkg := outputs.Packages[id]
		if pkg == nil {
			t.Fatalf("no package spec for %s", id)
		}
		if pkg.Name != "vrenv" || pkg.Version != "1.2.0" {
			t.Errorf("package[%s] named %s %s, want vrenv 1.2.0", id, pkg.Name, pkg.Version)
		}
		if pkg.ToolchainChannel != "1.79.0" {
			t.Errorf("package[%s] channel = %q, want pinned 1.79.0", id, pkg.ToolchainChannel)
		}

		img := outputs.Images[id]
		if img == nil {
			t.Fatalf("no image spec for %s", id)
		}
		if img.Reference() != "vrenv:1.2.0" {
			t.Errorf("image[%s] reference = %q, want vrenv:1.2.0", id, img.Reference())
		}
		if len(img.Image.Config.Entrypoint) != 1 || img.Image.Config.Entrypoint[0] != "/bin/vrenv" {
			t.Errorf("image[%s] entrypoint = %v, want [/bin/vrenv]", id, img.Image.Config.Entrypoint)
		}
		if !img.Image.Created.Equal(fixed) {
			t.Errorf("image[%s] created = %v, want injected clock time", id, img.Image.Created)
		}

		shell := outputs.DevShells[id]
		if shell == nil {
			t.Fatalf("no dev shell for %s", id)
		}
		for _, tool := range []string{"cargo-watch", "rust-analyzer", "rustc", "cargo"} {
			if !shell.Has(tool) {
				t.Errorf("devshell[%s] missing %q", id, tool)
			}
		}
		wantIconv := p.OS == platform.Darwin
		if got := shell.Has("libiconv"); got != wantIconv {
			t.Errorf("devshell[%s] has libiconv = %v, want %v", id, got, wantIconv)
		}
	}
}

func TestOutputsSpecsReproducible(t *testing.T) {
	root := fullProject(t)
	project := config.DefaultConfig().Project

	digests := make(map[platform.ID]string)
	for run := 0; run < 2; run++ {
		eval, err := Load(root, project)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		outputs, err := eval.Outputs()
		if err != nil {
			t.Fatalf("Outputs failed: %v", err)
		}
		for id, pkg := range outputs.Packages {
			d := pkg.Digest().String()
			if prev, seen := digests[id]; seen && prev != d {
				t.Errorf("package spec for %s changed across evaluations", id)
			}
			digests[id] = d
		}
	}
}

func TestLoadWithoutForgefileUsesDefaults(t *testing.T) {
	root := writeProject(t, map[string]string{
		"Cargo.toml":          testCargoToml,
		"Cargo.lock":          testCargoLock,
		"rust-toolchain.toml": testToolchainToml,
	})

	eval, err := Load(root, config.DefaultConfig().Project)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if eval.Forgefile.FilePath != "" {
		t.Errorf("Forgefile.FilePath = %q, want built-in defaults", eval.Forgefile.FilePath)
	}
	if len(eval.Forgefile.DevShell.Tools) == 0 {
		t.Error("default forgefile has no dev-shell tools")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		wantIssue issue.Id
	}{
		{
			"missing manifest",
			map[string]string{
				"Cargo.lock":          testCargoLock,
				"rust-toolchain.toml": testToolchainToml,
			},
			issue.ManifestNotFoundId,
		},
		{
			"malformed manifest",
			map[string]string{
				"Cargo.toml":          "[package]\nname = \"vrenv\"\n",
				"Cargo.lock":          testCargoLock,
				"rust-toolchain.toml": testToolchainToml,
			},
			issue.ManifestInvalidId,
		},
		{
			"missing lockfile",
			map[string]string{
				"Cargo.toml":          testCargoToml,
				"rust-toolchain.toml": testToolchainToml,
			},
			issue.LockfileMissingId,
		},
		{
			"missing toolchain pin",
			map[string]string{
				"Cargo.toml": testCargoToml,
				"Cargo.lock": testCargoLock,
			},
			issue.ToolchainPinMissingId,
		},
		{
			"malformed forgefile",
			map[string]string{
				"Cargo.toml":          testCargoToml,
				"Cargo.lock":          testCargoLock,
				"rust-toolchain.toml": testToolchainToml,
				"forge.cue":           "devshell: {",
			},
			issue.ForgefileInvalidId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeProject(t, tt.files)
			_, err := Load(root, config.DefaultConfig().Project)
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}

			// Every load failure routes to its catalog page.
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("error = %v, want ActionableError", err)
			}
			if ae.IssueID != tt.wantIssue {
				t.Errorf("IssueID = %d, want %d", ae.IssueID, tt.wantIssue)
			}
			if issue.Get(ae.IssueID) == nil {
				t.Errorf("IssueID %d has no catalog entry", ae.IssueID)
			}
		})
	}
}

func TestOutputsFailsWhenLockIncomplete(t *testing.T) {
	// Manifest declares tokio; the lock does not pin it.
	root := writeProject(t, map[string]string{
		"Cargo.toml":          testCargoToml + "tokio = \"1\"\n",
		"Cargo.lock":          testCargoLock,
		"rust-toolchain.toml": testToolchainToml,
	})

	eval, err := Load(root, config.DefaultConfig().Project)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	outputs, err := eval.Outputs()
	if err == nil {
		t.Fatal("Outputs succeeded with an incomplete lock")
	}
	if outputs != nil {
		t.Error("Outputs returned partial results alongside an error")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueID != issue.LockfileIncompleteId {
		t.Errorf("error = %v, want ActionableError with LockfileIncompleteId", err)
	}
}
