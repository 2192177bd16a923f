package cli

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/wsfmt/internal/logging"
)

// versionInfo is the JSON shape of `wsfmt version --json`.
type versionInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Built    string `json:"built"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

// resolveVersion fills in the module version for binaries installed with
// go install, which carry no ldflags.
func resolveVersion(info BuildInfo) BuildInfo {
	if info.Version != "" && info.Version != "dev" {
		return info
	}
	if build, ok := debug.ReadBuildInfo(); ok && build.Main.Version != "" && build.Main.Version != "(devel)" {
		info.Version = build.Main.Version
	}
	return info
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date, Go version and platform of wsfmt.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := resolveVersion(info)
			out := cmd.OutOrStdout()

			switch {
			case short:
				_, err := fmt.Fprintln(out, info.Version)
				return err
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(versionInfo{
					Version:  info.Version,
					Commit:   info.Commit,
					Built:    info.Date,
					Go:       runtime.Version(),
					Platform: runtime.GOOS + "/" + runtime.GOARCH,
				})
			}

			logger := log.NewWithOptions(out, log.Options{
				ReportTimestamp: false,
				ReportCaller:    false,
				Level:           log.InfoLevel,
			})
			logger.Info("wsfmt",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
				"go", runtime.Version(),
				"platform", runtime.GOOS+"/"+runtime.GOARCH,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print the version number only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	cmd.MarkFlagsMutuallyExclusive("short", "json")

	return cmd
}
