// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"crateforge/internal/evaluate"
	"crateforge/pkg/platform"

	"github.com/spf13/cobra"
)

// showCmd is the `crateforge show` command tree: inspection of single
// project inputs without a full matrix evaluation.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Inspect project inputs and the platform set",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	showCmd.AddCommand(newShowPlatformsCommand())
	showCmd.AddCommand(newShowManifestCommand())
	showCmd.AddCommand(newShowToolchainCommand())
	showCmd.AddCommand(newShowLockCommand())
}

// crateRoot resolves the optional directory argument to an absolute path.
func crateRoot(args []string) (string, error) {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	return filepath.Abs(root)
}

func newShowPlatformsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List the supported platform set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()

			fmt.Fprintln(stdout, TitleStyle.Render("Supported Platforms"))
			fmt.Fprintln(stdout)
			for _, p := range platform.Set() {
				oci := p.OCI()
				fmt.Fprintf(stdout, "  %s  triple %s  oci %s/%s\n",
					PlatformStyle.Render(string(p.ID())),
					p.Triple(), oci.OS, oci.Architecture)
			}
			return nil
		},
	}
}

func newShowManifestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest [dir]",
		Short: "Show the crate manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()

			root, err := crateRoot(args)
			if err != nil {
				return err
			}
			m, err := evaluate.ReadManifest(filepath.Join(root, projectConfig().ManifestFile))
			if err != nil {
				return renderFailure(cmd, err)
			}

			fmt.Fprintln(stdout, TitleStyle.Render("Crate Manifest"))
			fmt.Fprintf(stdout, "%s Name: %s\n", infoIcon, RefStyle.Render(m.Name))
			fmt.Fprintf(stdout, "%s Version: %s\n", infoIcon, m.Version)
			if len(m.Dependencies) == 0 {
				fmt.Fprintf(stdout, "%s Dependencies: %s\n", infoIcon, SubtitleStyle.Render("(none)"))
			} else {
				fmt.Fprintf(stdout, "%s Dependencies: %s\n", infoIcon, strings.Join(m.Dependencies, ", "))
			}
			return nil
		},
	}
}

func newShowToolchainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toolchain [dir]",
		Short: "Show the pinned toolchain, resolved per platform",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()

			root, err := crateRoot(args)
			if err != nil {
				return err
			}
			pin, err := evaluate.ReadPin(filepath.Join(root, projectConfig().ToolchainFile))
			if err != nil {
				return renderFailure(cmd, err)
			}

			fmt.Fprintln(stdout, TitleStyle.Render("Pinned Toolchain"))
			fmt.Fprintf(stdout, "%s Channel: %s\n", infoIcon, RefStyle.Render(pin.Channel))
			fmt.Fprintf(stdout, "%s Profile: %s\n", infoIcon, pin.Profile)
			if len(pin.Components) > 0 {
				fmt.Fprintf(stdout, "%s Components: %s\n", infoIcon, strings.Join(pin.Components, ", "))
			}
			fmt.Fprintln(stdout)
			for _, p := range platform.Set() {
				tc := pin.For(p)
				fmt.Fprintf(stdout, "  %s  %s\n",
					PlatformStyle.Render(string(p.ID())), tc.Triple)
			}
			return nil
		},
	}
}

func newShowLockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lock [dir]",
		Short: "Show the pinned dependency closure",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()

			root, err := crateRoot(args)
			if err != nil {
				return err
			}
			lock, err := evaluate.ReadLock(filepath.Join(root, projectConfig().LockfileFile))
			if err != nil {
				return renderFailure(cmd, err)
			}

			fmt.Fprintln(stdout, TitleStyle.Render("Dependency Closure"))
			fmt.Fprintf(stdout, "%s Lock format version %d, %d package(s)\n",
				infoIcon, lock.Version, len(lock.Packages))
			fmt.Fprintln(stdout)
			for _, entry := range lock.Closure() {
				fmt.Fprintf(stdout, "  %s\n", entry)
			}
			return nil
		},
	}
}
