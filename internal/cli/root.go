// Package cli provides the Cobra command structure for wsfmt.
package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wsfmt/internal/logging"
	"github.com/yaklabco/wsfmt/pkg/lang"
	_ "github.com/yaklabco/wsfmt/pkg/lang/brace" // Register built-in languages
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// colorModes are the accepted --color values; the first is the default.
//
//nolint:gochecknoglobals // Read-only lookup table.
var colorModes = []string{"auto", "always", "never"}

// NewRootCommand creates the root wsfmt command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "wsfmt",
		Short: "A whitespace formatter for brace-delimited languages",
		Long: `wsfmt rewrites the whitespace between tokens (spaces, line breaks and
indentation) and leaves every other character alone.

Languages plug in a parser and a set of formatting rules; the engine
computes the minimal edits, so formatted output never changes what the
program means. Run it in check mode in CI and in write mode locally.`,
		Version: info.Version,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !slices.Contains(colorModes, color) {
				return fmt.Errorf("%w: --color must be one of %s, got %q",
					ErrInvalidUsage, strings.Join(colorModes, ", "), color)
			}
			if debug {
				logging.SetLevel("debug")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", colorModes[0],
		"colorize output: "+strings.Join(colorModes, ", "))

	rootCmd.AddCommand(
		newFormatCommand(),
		newLanguagesCommand(),
		newInitCommand(),
		newVersionCommand(info),
	)

	NewHelpFormatter(lang.DefaultRegistry).ApplyToCommand(rootCmd)

	return rootCmd
}
