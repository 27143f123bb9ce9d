// Package cli implements the meetchase command-line interface.
//
// # Commands
//
//   - field: run the hexagon field in a window
//   - availability: list free windows and bookable slots
//   - book: book a meeting
//   - serve: run the in-memory calendar API for local development
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed to commands through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. main
// calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCommand builds the command tree. Logs go to logOut.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "meetchase",
		Short:         "Meeting booking tools and the hexagon field background",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("meetchase %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newFieldCmd())
	root.AddCommand(newAvailabilityCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newServeCmd())

	return root
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}
