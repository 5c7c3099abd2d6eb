// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeCrate lays out a minimal valid crate root in a temp dir.
func writeCrate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"Cargo.toml": `[package]
name = "vrenv"
version = "1.2.0"

[dependencies]
anyhow = "1.0"
`,
		"Cargo.lock": `version = 4

[[package]]
name = "anyhow"
version = "1.0.86"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "b3d1d046238990b9cf5bcde22a3fb3584ee5cf65fb2765f454ed428c7a0063da"

[[package]]
name = "vrenv"
version = "1.2.0"
`,
		"rust-toolchain.toml": `[toolchain]
channel = "1.79.0"
`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// runEvalCapture runs the eval command against root with captured output.
func runEvalCapture(t *testing.T, root string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		evalPlatformFlag = ""
		evalKindFlag = ""
	})

	var stdout, stderr bytes.Buffer
	evalCmd.SetOut(&stdout)
	evalCmd.SetErr(&stderr)
	t.Cleanup(func() {
		evalCmd.SetOut(nil)
		evalCmd.SetErr(nil)
	})

	err := runEval(evalCmd, []string{root})
	return stdout.String() + stderr.String(), err
}

func TestRunEvalFullMatrix(t *testing.T) {
	out, err := runEvalCapture(t, writeCrate(t))
	if err != nil {
		t.Fatalf("runEval failed: %v", err)
	}

	for _, want := range []string{
		"vrenv", "1.2.0",
		"aarch64-darwin", "x86_64-darwin", "aarch64-linux", "x86_64-linux",
		"vrenv:1.2.0", "/bin/vrenv",
		"Evaluated 4 platform(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("eval output missing %q", want)
		}
	}
}

func TestRunEvalSinglePlatform(t *testing.T) {
	evalPlatformFlag = "x86_64-linux"
	out, err := runEvalCapture(t, writeCrate(t))
	if err != nil {
		t.Fatalf("runEval failed: %v", err)
	}

	if !strings.Contains(out, "x86_64-linux") {
		t.Error("eval output missing the requested platform")
	}
	if strings.Contains(out, "aarch64-darwin") {
		t.Error("eval output contains a filtered-out platform")
	}
	if !strings.Contains(out, "Evaluated 1 platform(s)") {
		t.Error("eval output missing the single-platform summary")
	}
}

func TestRunEvalRejectsUnknownPlatform(t *testing.T) {
	evalPlatformFlag = "riscv64-linux"
	out, err := runEvalCapture(t, writeCrate(t))
	if err == nil {
		t.Fatal("runEval accepted an unsupported platform")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Errorf("err = %v, want ExitError with code 1", err)
	}
	// The catalog help page lists the supported set.
	if !strings.Contains(out, "aarch64-darwin") {
		t.Errorf("output does not include the supported-platform help page:\n%s", out)
	}
}

func TestRunEvalRejectsUnknownKind(t *testing.T) {
	evalKindFlag = "sbom"
	if _, err := runEvalCapture(t, writeCrate(t)); err == nil {
		t.Error("runEval accepted an unknown artifact kind")
	}
}

func TestRunEvalMissingProjectExitsNonZero(t *testing.T) {
	out, err := runEvalCapture(t, t.TempDir())
	if err == nil {
		t.Fatal("runEval succeeded on an empty directory")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Errorf("err = %v, want ExitError with code 1", err)
	}
	if out == "" {
		t.Error("no error output rendered")
	}
	// The missing-manifest catalog page is rendered after the error.
	if !strings.Contains(out, "No manifest found") {
		t.Errorf("output does not include the manifest help page:\n%s", out)
	}
}
