package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/wsfmt/internal/logging"
	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/lang"
)

type languagesFlags struct {
	format string
}

const formatJSON = "json"

// languageInfo represents a language in JSON output.
type languageInfo struct {
	Name       string         `json:"name"`
	Extensions []string       `json:"extensions"`
	Aliases    []string       `json:"aliases"`
	Options    map[string]any `json:"options"`
}

func newLanguagesCommand() *cobra.Command {
	flags := &languagesFlags{}

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Long: `List every registered language with its file extensions, aliases
and formatting options (shown with their default values).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles := lang.DefaultRegistry.Profiles()

			if flags.format == formatJSON {
				return outputLanguagesJSON(cmd.OutOrStdout(), profiles)
			}
			if flags.format != "text" {
				return fmt.Errorf("%w: invalid format %q: must be text or json", ErrInvalidUsage, flags.format)
			}

			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{
				ReportTimestamp: false,
				ReportCaller:    false,
				Level:           log.InfoLevel,
			})

			if len(profiles) == 0 {
				logger.Info("no languages registered")
				return nil
			}

			for _, profile := range profiles {
				logger.Info(profile.Name(),
					logging.FieldExtensions, strings.Join(profile.Extensions(), " "),
					logging.FieldAliases, strings.Join(profile.Aliases(), " "),
					logging.FieldOptions, describeOptions(profile.DefaultOptions()),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// describeOptions renders options as sorted key=value pairs.
func describeOptions(options map[string]any) string {
	keys := slices.Sorted(maps.Keys(options))
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, options[key]))
	}
	return strings.Join(parts, " ")
}

// outputLanguagesJSON writes languages as a JSON array.
func outputLanguagesJSON(w io.Writer, profiles []lang.Profile) error {
	infos := make([]languageInfo, 0, len(profiles))
	for _, profile := range profiles {
		infos = append(infos, languageInfo{
			Name:       profile.Name(),
			Extensions: profile.Extensions(),
			Aliases:    profile.Aliases(),
			Options:    profile.DefaultOptions(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding languages: %w", err)
	}
	return nil
}

// templateLanguages describes registered languages for config templates.
func templateLanguages(registry *lang.Registry) []config.LanguageInfo {
	profiles := registry.Profiles()
	infos := make([]config.LanguageInfo, 0, len(profiles))
	for _, profile := range profiles {
		infos = append(infos, config.LanguageInfo{
			Name:       profile.Name(),
			Extensions: profile.Extensions(),
			Options:    profile.DefaultOptions(),
		})
	}
	return infos
}
