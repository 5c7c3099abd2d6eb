// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ManifestNotFoundId Id = iota + 1
	ManifestInvalidId
	LockfileMissingId
	LockfileIncompleteId
	ToolchainPinMissingId
	ForgefileInvalidId
	UnknownPlatformId
	ConfigLoadFailedId
)

type MarkdownMsg string

// Issue is one cataloged failure mode with a rendered help page.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No manifest found!

crateforge needs the crate manifest (Cargo.toml) to name and version
every artifact it describes.

## Things you can try:
- Run crateforge from the crate root:
~~~
$ cd /path/to/your/crate
$ crateforge eval
~~~
- Point at the crate explicitly:
~~~
$ crateforge eval /path/to/your/crate
~~~`,
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# Invalid manifest!

The crate manifest could not be parsed, or its package table is incomplete.

## Requirements:
- A ` + "`[package]`" + ` table with both ` + "`name`" + ` and ` + "`version`" + `
- The version must be valid semver (e.g. "1.2.0")

## Example:
~~~toml
[package]
name = "vrenv"
version = "1.2.0"
~~~`,
	}

	lockfileMissingIssue = &Issue{
		id: LockfileMissingId,
		mdMsg: `
# No lockfile found!

Without a lockfile (Cargo.lock) the dependency closure is not pinned and
the build specification cannot be reproducible. crateforge refuses to
evaluate without one.

## Things you can try:
- Generate the lockfile:
~~~
$ cargo generate-lockfile
~~~
- Commit Cargo.lock to the repository so every evaluation sees the same
  pinned closure.`,
	}

	lockfileIncompleteIssue = &Issue{
		id: LockfileIncompleteId,
		mdMsg: `
# Lockfile does not cover all dependencies!

The manifest declares dependencies that the lockfile does not pin. The
two files are out of sync.

## Things you can try:
- Regenerate the lockfile:
~~~
$ cargo update
~~~
- Check that Cargo.lock was committed after the last manifest change.`,
	}

	toolchainPinMissingIssue = &Issue{
		id: ToolchainPinMissingId,
		mdMsg: `
# No toolchain pin found!

The pinned toolchain file (rust-toolchain.toml) fixes the compiler
version for every platform in the matrix. Without it, builds are not
reproducible across machines and time.

## Example rust-toolchain.toml:
~~~toml
[toolchain]
channel = "1.79.0"
profile = "minimal"
components = ["rustfmt", "clippy"]
~~~`,
	}

	forgefileInvalidIssue = &Issue{
		id: ForgefileInvalidId,
		mdMsg: `
# Failed to parse forge.cue!

Your project descriptor contains syntax errors or invalid configuration.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Unknown field names
- A rule with an OS other than "darwin" or "linux"
- Empty tool names

## Example of a valid forge.cue:
~~~cue
devshell: {
	tools: ["cargo-watch", "rust-analyzer"]
	rules: [
		{os: "darwin", tools: ["libiconv"]},
	]
}
~~~`,
	}

	unknownPlatformIssue = &Issue{
		id: UnknownPlatformId,
		mdMsg: `
# Unknown platform!

The platform you named is not in the supported set.

## Supported platforms:
- aarch64-darwin
- x86_64-darwin
- aarch64-linux
- x86_64-linux

The set is fixed at build time; adding a platform means changing
crateforge itself, not configuration.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the crateforge configuration file.

## Configuration file locations:
- Linux: ~/.config/crateforge/config.cue
- macOS: ~/Library/Application Support/crateforge/config.cue
- Windows: %APPDATA%\crateforge\config.cue

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():    manifestNotFoundIssue,
		manifestInvalidIssue.Id():     manifestInvalidIssue,
		lockfileMissingIssue.Id():     lockfileMissingIssue,
		lockfileIncompleteIssue.Id():  lockfileIncompleteIssue,
		toolchainPinMissingIssue.Id(): toolchainPinMissingIssue,
		forgefileInvalidIssue.Id():    forgefileInvalidIssue,
		unknownPlatformIssue.Id():     unknownPlatformIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
	}
)

func Values() []*Issue {
	vals := maps.Values(issues)
	slices.SortFunc(vals, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return vals
}

func Get(id Id) *Issue {
	return issues[id]
}
