package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wsfmt/internal/configloader"
	"github.com/yaklabco/wsfmt/internal/logging"
	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/lang"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force    bool
	full     bool
	resolved bool
	format   string
	output   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new wsfmt configuration file",
		Long: `Create a new .wsfmt.yml configuration file in the current directory
with sensible defaults. The file can be customized to change indentation,
line endings, ignored paths and per-language options.

Examples:
  wsfmt init                      Create minimal .wsfmt.yml
  wsfmt init --full               Create full config with every language documented
  wsfmt init --resolved           Write the configuration currently in effect
  wsfmt init --format json        Create .wsfmt.json instead
  wsfmt init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runInit(cmd.Context(), flags, configPath)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every language documented")
	cmd.Flags().BoolVar(&flags.resolved, "resolved", false, "Write the merged configuration currently in effect")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .wsfmt.yml or .wsfmt.json)")

	return cmd
}

func runInit(ctx context.Context, flags *initFlags, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, flags.format)
	}
	if flags.resolved && flags.format == formatJSON {
		return fmt.Errorf("%w: --resolved writes YAML only", ErrInvalidUsage)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == formatJSON {
			outputPath = ".wsfmt.json"
		} else {
			outputPath = ".wsfmt.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if flags.resolved {
		loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
			ExplicitPath: configPath,
			Registry:     lang.DefaultRegistry,
		})
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := configloader.WriteConfig(loadResult.Config, absPath); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		logger.Info("wrote resolved configuration",
			logging.FieldPath, outputPath,
			logging.FieldPaths, loadResult.LoadedFrom,
		)
		return nil
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:      flags.full,
		Format:    flags.format,
		Languages: templateLanguages(lang.DefaultRegistry),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template documents every language and its options")
	}

	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'wsfmt languages' to see all supported languages")

	return nil
}
