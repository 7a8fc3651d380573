// Package cli implements the vindecode command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/WessleyAI/wessley-vin/engine/lookup"
	"github.com/WessleyAI/wessley-vin/engine/vin"
	"github.com/WessleyAI/wessley-vin/pkg/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Year    int    // current year for mileage estimates; 0 uses the clock
	Locale  string // BCP 47 tag for number formatting in text output
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the vindecode CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "vindecode",
		Short: "Decode Vehicle Identification Numbers",
		Long: `Decode 17-character VINs into vehicle profiles.

Manufacturer, model, engine, country, and plate are resolved from built-in
tables; mileage and condition are deterministic estimates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if _, err := language.Parse(opts.Locale); err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid locale %q", opts.Locale), err)
			}
			if opts.Year < 0 {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid year %d", opts.Year))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().IntVar(&opts.Year, "year", 0, "current year used for mileage estimates (0 = now)")
	cmd.PersistentFlags().StringVar(&opts.Locale, "locale", "en", "locale for number formatting in text output")

	cmd.AddCommand(NewDecodeCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewMakesCommand(opts))

	return cmd
}

// newService builds the decode service for one command invocation.
func newService(opts *RootOptions, lopts lookup.Options, errOut io.Writer) *lookup.Service {
	var decOpts []vin.Option
	if opts.Year > 0 {
		decOpts = append(decOpts, vin.WithYear(opts.Year))
	}
	lopts.Source = "cli"
	return lookup.New(vin.NewDecoder(nil, decOpts...), nil, newLogger(opts, errOut), lopts)
}

func newLogger(opts *RootOptions, errOut io.Writer) *slog.Logger {
	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	return logging.New(errOut, level, "text")
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		Locale:    language.Make(opts.Locale),
	}
}
