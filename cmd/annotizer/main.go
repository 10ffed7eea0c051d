package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/annotizer/internal/cli"
)

// Version is set at build time.
var Version = "dev"

func main() {
	cmd := cli.NewRootCommand()
	cmd.Version = Version

	if err := cmd.Execute(); err != nil {
		// Commands that already rendered their failure return a bare ExitError.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
