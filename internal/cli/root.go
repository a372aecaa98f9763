// Package cli implements the sigstyle command line: checking rule files and
// resolving class names against a simulated device.
package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/sigstyle/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "yaml" | "text"
}

var ValidFormats = []string{"yaml", "text"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sigstyle",
		Short: "Resolve compiled style rules",
		Long:  "Validate compiled style rule files and resolve class names against a simulated device.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log resolution details to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "yaml", "output format (yaml|text)")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewResolveCommand(opts))

	return cmd
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Verbose {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}
