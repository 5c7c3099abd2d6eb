// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"crateforge/internal/evaluate"
	"crateforge/internal/issue"
	"crateforge/pkg/platform"

	"github.com/spf13/cobra"
)

var (
	// evalPlatformFlag restricts output to one platform ID.
	evalPlatformFlag string
	// evalKindFlag restricts output to one artifact kind.
	evalKindFlag string

	evalCmd = &cobra.Command{
		Use:   "eval [dir]",
		Short: "Evaluate the artifact matrix for a crate",
		Long: `Evaluate the full artifact matrix for a crate.

Reads the crate manifest, dependency lock, pinned toolchain, and the
optional forge.cue descriptor from the given directory (default: the
current directory), then composes a package spec, a dev shell, and a
container image spec for every supported platform.

Evaluation is all-or-nothing: any broken input or failing platform
aborts the run with no partial output.

Examples:
  crateforge eval                          Evaluate the crate in .
  crateforge eval ./my-crate               Evaluate another directory
  crateforge eval --platform x86_64-linux  One platform only
  crateforge eval --kind devshells         One artifact kind only`,
		Args: cobra.MaximumNArgs(1),
		RunE: runEval,
	}
)

func init() {
	evalCmd.Flags().StringVar(&evalPlatformFlag, "platform", "", "restrict output to one platform ID (e.g. aarch64-darwin)")
	evalCmd.Flags().StringVar(&evalKindFlag, "kind", "", "restrict output to one artifact kind: packages, devshells, images")
}

func runEval(cmd *cobra.Command, args []string) error {
	stdout := cmd.OutOrStdout()

	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve crate root: %w", err)
	}

	// Validate filters before touching the project.
	platforms := platform.Set()
	if evalPlatformFlag != "" {
		p, parseErr := platform.Parse(platform.ID(evalPlatformFlag))
		if parseErr != nil {
			return renderFailure(cmd, issue.NewErrorContext().
				WithOperation("select platform").
				WithResource(evalPlatformFlag).
				WithIssue(issue.UnknownPlatformId).
				Wrap(parseErr).
				BuildError())
		}
		platforms = []platform.Platform{p}
	}
	switch evalKindFlag {
	case "", "packages", "devshells", "images":
	default:
		return fmt.Errorf("unknown artifact kind %q: expected packages, devshells, or images", evalKindFlag)
	}

	eval, err := evaluate.Load(root, projectConfig())
	if err != nil {
		return renderFailure(cmd, err)
	}

	outputs, err := eval.Outputs()
	if err != nil {
		return renderFailure(cmd, err)
	}

	fmt.Fprintln(stdout, TitleStyle.Render("Artifact Matrix"))
	fmt.Fprintf(stdout, "%s Crate: %s %s\n", infoIcon,
		RefStyle.Render(eval.Manifest.Name), eval.Manifest.Version)
	fmt.Fprintf(stdout, "%s Toolchain: %s (%s profile)\n", infoIcon,
		RefStyle.Render(eval.Pin.Channel), eval.Pin.Profile)
	fmt.Fprintf(stdout, "%s Lock: %d pinned package(s)\n", infoIcon, len(eval.Lock.Packages))

	for _, p := range platforms {
		id := p.ID()

		fmt.Fprintln(stdout)
		fmt.Fprintf(stdout, "%s  %s\n", PlatformStyle.Render(string(id)), SubtitleStyle.Render(p.Triple()))

		if evalKindFlag == "" || evalKindFlag == "packages" {
			renderPackage(cmd, outputs, id)
		}
		if evalKindFlag == "" || evalKindFlag == "devshells" {
			renderDevShell(cmd, outputs, id)
		}
		if evalKindFlag == "" || evalKindFlag == "images" {
			renderImage(cmd, outputs, id)
		}
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s Evaluated %d platform(s)\n", successIcon, len(platforms))
	return nil
}

func renderPackage(cmd *cobra.Command, outputs *evaluate.Outputs, id platform.ID) {
	stdout := cmd.OutOrStdout()
	pkg := outputs.Packages[id]

	fmt.Fprintf(stdout, "  package   %s %s  closure: %d  %s\n",
		RefStyle.Render(pkg.Name), pkg.Version, len(pkg.Closure),
		SubtitleStyle.Render(pkg.Digest().String()))
	if verbose {
		fmt.Fprintf(stdout, "            %s\n", VerboseStyle.Render("target "+pkg.TargetTriple))
		fmt.Fprintf(stdout, "            %s\n", VerboseStyle.Render("source "+pkg.Source))
	}
}

func renderDevShell(cmd *cobra.Command, outputs *evaluate.Outputs, id platform.ID) {
	stdout := cmd.OutOrStdout()
	shell := outputs.DevShells[id]

	fmt.Fprintf(stdout, "  devshell  %d tool(s)\n", len(shell.Tools))
	if verbose {
		fmt.Fprintf(stdout, "            %s\n", VerboseStyle.Render(strings.Join(shell.Tools, ", ")))
		if shell.Hook != "" {
			fmt.Fprintf(stdout, "            %s\n", VerboseStyle.Render("hook: "+strings.TrimSpace(shell.Hook)))
		}
	}
}

func renderImage(cmd *cobra.Command, outputs *evaluate.Outputs, id platform.ID) {
	stdout := cmd.OutOrStdout()
	img := outputs.Images[id]

	fmt.Fprintf(stdout, "  image     %s  entrypoint %s  %s/%s\n",
		RefStyle.Render(img.Reference()),
		strings.Join(img.Image.Config.Entrypoint, " "),
		img.Image.OS, img.Image.Architecture)
	if verbose && img.Image.Created != nil {
		fmt.Fprintf(stdout, "            %s\n", VerboseStyle.Render("created "+img.Image.Created.UTC().Format("2006-01-02T15:04:05Z")))
	}
}
