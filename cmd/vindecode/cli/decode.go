package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WessleyAI/wessley-vin/engine/lookup"
)

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <vin>...",
		Short: "Decode one or more VINs given as arguments",
		Long: `Decode one or more VINs given as arguments.

Input is trimmed and upper-cased before decoding. The exit status is 1 when
any VIN fails to decode.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(rootOpts, args, cmd)
		},
	}
}

func runDecode(opts *RootOptions, raws []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	svc := newService(opts, lookup.Options{}, cmd.ErrOrStderr())

	replies := make([]lookup.DecodeReply, len(raws))
	failed := 0
	for i, raw := range raws {
		replies[i] = lookup.ReplyFor(raw, svc.Stage()(cmd.Context(), raw))
		if replies[i].Code != "" {
			failed++
		}
	}
	if err := formatter.Replies(replies); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	formatter.VerboseLog("decoded %d VIN(s), %d failed", len(raws), failed)
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d VIN(s) failed to decode", failed, len(raws)))
	}
	return nil
}
