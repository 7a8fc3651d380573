// Command vindecode decodes VINs from the command line.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/WessleyAI/wessley-vin/cmd/vindecode/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Decode failures were already reported in the command output.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || exitErr.Code != cli.ExitFailure {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
