package main

import (
	"os"

	"github.com/sigil-lang/sigil/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Every subcommand sets SilenceUsage and SilenceErrors, so this
		// is the only place errors are printed. The structured envelope,
		// if any, already went to stdout; stderr gets the terse form.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(cli.GetExitCode(err))
	}
}
