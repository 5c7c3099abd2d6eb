// SPDX-License-Identifier: MPL-2.0

package evaluate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"crateforge/internal/artifact"
	"crateforge/internal/buildenv"
	"crateforge/internal/config"
	"crateforge/internal/issue"
	"crateforge/internal/lockfile"
	"crateforge/internal/matrix"
	"crateforge/internal/toolchain"
	"crateforge/pkg/forgefile"
	"crateforge/pkg/manifest"
	"crateforge/pkg/platform"
)

type (
	// Evaluation holds the inputs of one configuration evaluation,
	// read once and shared read-only by every descriptor.
	Evaluation struct {
		// Root is the crate root directory.
		Root string

		Manifest  *manifest.Manifest
		Lock      *lockfile.Lockfile
		Pin       *toolchain.Pin
		Forgefile *forgefile.Forgefile

		// Platforms is the set evaluated over.
		Platforms []platform.Platform

		// Clock stamps image creation times. Defaults to time.Now.
		Clock artifact.Clock
	}

	// Outputs are the three total artifact mappings, each keyed by
	// exactly the platform set.
	Outputs struct {
		Packages  map[platform.ID]*artifact.PackageSpec
		DevShells map[platform.ID]*artifact.DevShell
		Images    map[platform.ID]*artifact.ImageSpec
	}
)

// ReadManifest reads the crate manifest at path. Failures carry the
// matching issue catalog entry: one page for a missing file, another
// for a file that does not parse.
func ReadManifest(path string) (*manifest.Manifest, error) {
	m, err := manifest.Read(path)
	if err != nil {
		id := issue.ManifestInvalidId
		if errors.Is(err, fs.ErrNotExist) {
			id = issue.ManifestNotFoundId
		}
		return nil, issue.NewErrorContext().
			WithOperation("read manifest").
			WithResource(path).
			WithSuggestion("Run crateforge from the crate root, or pass the crate directory").
			WithSuggestion("The manifest needs package.name and package.version").
			WithIssue(id).
			Wrap(err).
			BuildError()
	}
	return m, nil
}

// ReadLock imports the dependency lock at path.
func ReadLock(path string) (*lockfile.Lockfile, error) {
	lock, err := lockfile.Read(path)
	if err != nil {
		ctx := issue.NewErrorContext().
			WithOperation("import dependency lock").
			WithResource(path).
			WithSuggestion("Run 'cargo generate-lockfile' and commit the result").
			Wrap(err)
		if errors.Is(err, fs.ErrNotExist) {
			ctx = ctx.WithIssue(issue.LockfileMissingId)
		}
		return nil, ctx.BuildError()
	}
	return lock, nil
}

// ReadPin reads the toolchain pin at path.
func ReadPin(path string) (*toolchain.Pin, error) {
	pin, err := toolchain.ReadPin(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read toolchain pin").
			WithResource(path).
			WithSuggestion("Pin a toolchain channel in rust-toolchain.toml").
			WithIssue(issue.ToolchainPinMissingId).
			Wrap(err).
			BuildError()
	}
	return pin, nil
}

// ReadForgefile parses the project descriptor at path.
func ReadForgefile(path string) (*forgefile.Forgefile, error) {
	ff, err := forgefile.Parse(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse forgefile").
			WithResource(path).
			WithSuggestion("Check the CUE syntax against the #Forge schema").
			WithIssue(issue.ForgefileInvalidId).
			Wrap(err).
			BuildError()
	}
	return ff, nil
}

// Load reads the project inputs from root. The manifest, lockfile, and
// toolchain pin are required; the forgefile is optional and falls back
// to defaults.
func Load(root string, project config.ProjectConfig) (*Evaluation, error) {
	m, err := ReadManifest(filepath.Join(root, project.ManifestFile))
	if err != nil {
		return nil, err
	}

	lock, err := ReadLock(filepath.Join(root, project.LockfileFile))
	if err != nil {
		return nil, err
	}

	pin, err := ReadPin(filepath.Join(root, project.ToolchainFile))
	if err != nil {
		return nil, err
	}

	ff := forgefile.Default()
	forgePath := filepath.Join(root, project.ForgeFile)
	if _, statErr := os.Stat(forgePath); statErr == nil {
		ff, err = ReadForgefile(forgePath)
		if err != nil {
			return nil, err
		}
	}

	log.Debug("loaded project inputs",
		"crate", m.Name, "version", m.Version,
		"locked", len(lock.Packages), "channel", pin.Channel)

	return &Evaluation{
		Root:      root,
		Manifest:  m,
		Lock:      lock,
		Pin:       pin,
		Forgefile: ff,
		Platforms: platform.Set(),
	}, nil
}

// Outputs evaluates the full matrix: every artifact kind for every
// platform. The returned mappings are total over the platform set; any
// per-platform failure aborts the evaluation.
func (e *Evaluation) Outputs() (*Outputs, error) {
	resolver := buildenv.Resolver{
		Overlays: []buildenv.Overlay{toolchain.Overlay(e.Pin)},
	}
	rules := toolRules(e.Forgefile)

	packages, err := matrix.ForAll(e.Platforms, func(p platform.Platform) (*artifact.PackageSpec, error) {
		return artifact.BuildPackage(resolver.Resolve(p), e.Manifest, e.Root, e.Lock)
	})
	if err != nil {
		ctx := issue.NewErrorContext().
			WithOperation("evaluate package matrix").
			Wrap(err)
		var uncovered *lockfile.UncoveredError
		if errors.As(err, &uncovered) {
			ctx = ctx.WithIssue(issue.LockfileIncompleteId).
				WithSuggestion("Regenerate Cargo.lock with 'cargo update'")
		}
		return nil, ctx.BuildError()
	}

	devShells, err := matrix.ForAll(e.Platforms, func(p platform.Platform) (*artifact.DevShell, error) {
		return artifact.BuildDevShell(resolver.Resolve(p),
			e.Forgefile.DevShell.Tools, rules, e.Forgefile.DevShell.Hook)
	})
	if err != nil {
		return nil, issue.WrapWithOperation(err, "evaluate dev shell matrix")
	}

	images, err := matrix.ForAll(e.Platforms, func(p platform.Platform) (*artifact.ImageSpec, error) {
		return artifact.BuildImage(packages[p.ID()], e.Manifest, e.Clock)
	})
	if err != nil {
		return nil, issue.WrapWithOperation(err, "evaluate image matrix")
	}

	log.Debug("evaluated matrix",
		"platforms", len(e.Platforms),
		"image", e.Manifest.Name+":"+e.Manifest.Version)

	return &Outputs{
		Packages:  packages,
		DevShells: devShells,
		Images:    images,
	}, nil
}

// toolRules converts the forgefile's declarative OS rules into
// predicate-based tool rules.
func toolRules(ff *forgefile.Forgefile) []artifact.ToolRule {
	rules := make([]artifact.ToolRule, 0, len(ff.DevShell.Rules))
	for _, rule := range ff.DevShell.Rules {
		rules = append(rules, artifact.ToolRule{
			When:  platform.OSIs(platform.OS(rule.OS)),
			Tools: rule.Tools,
		})
	}
	return rules
}
