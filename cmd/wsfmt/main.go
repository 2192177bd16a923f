// Package main is the entry point for the wsfmt CLI.
package main

import (
	"os"

	"github.com/yaklabco/wsfmt/internal/cli"
	"github.com/yaklabco/wsfmt/internal/logging"

	// Register built-in languages via init().
	_ "github.com/yaklabco/wsfmt/pkg/lang/brace"
)

// Build-time variables set by GoReleaser via ldflags.
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
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		if !cli.IsSignal(err) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return cli.ExitSuccess
}
