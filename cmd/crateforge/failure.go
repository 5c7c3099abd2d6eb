// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"crateforge/internal/issue"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// renderFailure renders a fatal command failure: the styled error
// message first, then the issue catalog help page when the error chain
// carries one. It silences cobra's own reporting and converts the error
// into a non-zero exit.
func renderFailure(cmd *cobra.Command, err error) error {
	stderr := cmd.ErrOrStderr()

	fmt.Fprintf(stderr, "%s %s\n", errorIcon, formatErrorForDisplay(err, verbose))
	renderIssueHelp(stderr, err)

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: 1, Err: err}
}

// renderIssueHelp prints the catalog page for the error's issue ID, if any.
func renderIssueHelp(stderr io.Writer, err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueID == 0 {
		return
	}

	catalogEntry := issue.Get(ae.IssueID)
	if catalogEntry == nil {
		return
	}

	rendered, renderErr := catalogEntry.Render("dark")
	if renderErr != nil {
		log.Warn("failed to render issue catalog entry", "issueID", ae.IssueID, "error", renderErr)
		return
	}
	fmt.Fprint(stderr, rendered)
}
