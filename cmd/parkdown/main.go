// Package main is the entry point for the parkdown CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/parkdown/internal/cli"
	"github.com/yaklabco/parkdown/internal/logging"
)

// Build-time variables set through -ldflags by the stave Build target.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	logging.SetDefault(logging.NewInteractive())

	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := rootCmd.Execute(); err != nil {
		// Parse failures have already been reported with their source line.
		if !errors.Is(err, cli.ErrParseFailed) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFor(err)
	}

	return cli.ExitSuccess
}
