package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WessleyAI/wessley-vin/engine/lookup"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	File    string
	Workers int
	Max     int
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Decode VINs read one per line from stdin or a file",
		Long: `Decode VINs read one per line from stdin or --file.

Blank lines and lines starting with '#' are skipped. VINs are decoded
concurrently; output keeps input order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read VINs from file instead of stdin")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 8, "concurrent decoders")
	cmd.Flags().IntVar(&opts.Max, "max", 10000, "maximum number of VINs accepted")

	return cmd
}

func runBatch(rootOpts *RootOptions, opts *BatchOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	in := cmd.InOrStdin()
	if opts.File != "" {
		f, err := os.Open(opts.File)
		if err != nil {
			formatter.Error("input", err.Error())
			return WrapExitError(ExitCommandError, "open input", err)
		}
		defer f.Close()
		in = f
	}

	raws, err := readVINs(in)
	if err != nil {
		formatter.Error("input", err.Error())
		return WrapExitError(ExitCommandError, "read input", err)
	}
	formatter.VerboseLog("read %d VIN(s)", len(raws))

	svc := newService(rootOpts, lookup.Options{MaxBatch: opts.Max, Workers: opts.Workers}, cmd.ErrOrStderr())
	results, err := svc.DecodeBatch(cmd.Context(), raws)
	if err != nil {
		formatter.Error(lookup.ErrorCode(err), err.Error())
		return WrapExitError(ExitCommandError, "batch rejected", err)
	}

	replies := make([]lookup.DecodeReply, len(results))
	failed := 0
	for i, r := range results {
		replies[i] = lookup.ReplyFor(raws[i], r)
		if r.IsErr() {
			failed++
		}
	}
	if err := formatter.Replies(replies); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d VIN(s) failed to decode", failed, len(raws)))
	}
	return nil
}

// readVINs returns the non-blank, non-comment lines of r, trimmed.
func readVINs(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
