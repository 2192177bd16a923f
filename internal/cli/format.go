package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wsfmt/internal/configloader"
	"github.com/yaklabco/wsfmt/internal/logging"
	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/lang"
	"github.com/yaklabco/wsfmt/pkg/reporter"
	"github.com/yaklabco/wsfmt/pkg/runner"
)

// stdinPath is the path argument that reads source from standard input.
const stdinPath = "-"

// formatFlags holds the flags for the format command.
type formatFlags struct {
	write         bool
	check         bool
	diff          bool
	format        string
	indentSize    int
	tabSize       int
	useTabs       bool
	newline       string
	jobs          int
	ignore        []string
	language      string
	lines         string
	noBackups     bool
	verbose       bool
	compact       bool
	noContext     bool
	stdinFilename string
}

func newFormatCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:     "format [paths...]",
		Aliases: []string{"fmt"},
		Short:   "Format source files",
		Long: `Format source files of every registered language.

By default the changes formatting would make are reported and nothing is
written. Use --write to rewrite files in place, --check to fail when any
file needs formatting, or --diff to print unified diffs.

Pass "-" as the only path to format standard input; the formatted text is
written to standard output.

Examples:
  wsfmt format                       Report changes under the current directory
  wsfmt format --check src/          Exit 1 if anything under src/ is unformatted
  wsfmt format --write main.bc       Rewrite main.bc in place
  wsfmt format --lines 10:20 a.bc    Only format lines 10 to 20
  cat a.bc | wsfmt format -          Format standard input`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit with status 1 if any file needs formatting")
	cmd.Flags().BoolVarP(&flags.diff, "diff", "d", false, "print unified diffs (same as --format diff)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: text, json, diff, summary")
	cmd.Flags().IntVar(&flags.indentSize, "indent-size", 0, "columns per indentation level")
	cmd.Flags().IntVar(&flags.tabSize, "tab-size", 0, "column width of a tab")
	cmd.Flags().BoolVar(&flags.useTabs, "use-tabs", false, "indent with tabs")
	cmd.Flags().StringVar(&flags.newline, "newline", "", "line terminator for inserted breaks: auto, lf, crlf, cr")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "files formatted in parallel (0 means one per CPU)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns of files to skip")
	cmd.Flags().StringVarP(&flags.language, "language", "l", "", "force a language instead of detecting it")
	cmd.Flags().StringVar(&flags.lines, "lines", "", "only format lines start:end (single file only)")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "do not create backups when writing")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "also list unchanged and skipped files")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minified JSON output")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "do not show source lines under changes")
	cmd.Flags().StringVar(&flags.stdinFilename, "stdin-filename", "", "file name used to detect the language of standard input")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, flags *formatFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	if flags.write && flags.check {
		return fmt.Errorf("%w: --write and --check cannot be combined", ErrInvalidUsage)
	}

	cliCfg, err := buildCLIConfig(cmd, flags)
	if err != nil {
		return err
	}

	configPath, _ := cmd.Flags().GetString("config")
	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: configPath,
		Registry:     lang.DefaultRegistry,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	cfg := loadResult.Config

	logger.Debug("configuration resolved",
		logging.FieldPaths, loadResult.LoadedFrom,
		logging.FieldWrite, cfg.Write,
		logging.FieldCheck, cfg.Check,
		logging.FieldJobs, cfg.Workers(),
	)

	var lines *runner.LineRange
	if flags.lines != "" {
		lineRange, err := runner.ParseLineRange(flags.lines)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		lines = &lineRange
	}

	color, _ := cmd.Flags().GetString("color")
	repOpts := reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      reporter.Format(cfg.Format),
		Color:       color,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		Written:     cfg.Write,
	}

	if len(args) == 1 && args[0] == stdinPath {
		return runFormatStdin(ctx, cmd, cfg, lines, flags.stdinFilename, repOpts)
	}
	for _, arg := range args {
		if arg == stdinPath {
			return fmt.Errorf("%w: %q must be the only path", ErrInvalidUsage, stdinPath)
		}
	}

	result, err := runner.Run(ctx, runner.Options{
		Paths:        args,
		Registry:     lang.DefaultRegistry,
		ExcludeGlobs: cfg.Ignore,
		Lines:        lines,
		Config:       cfg,
	})
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}

	return report(ctx, result, cfg.Check, repOpts)
}

// buildCLIConfig collects the flags the user actually set so unset flags
// never override configuration files.
func buildCLIConfig(cmd *cobra.Command, flags *formatFlags) (*config.Config, error) {
	cfg := &config.Config{
		Write:     flags.write,
		Check:     flags.check,
		NoBackups: flags.noBackups,
		Language:  flags.language,
	}

	changed := cmd.Flags().Changed

	if changed("indent-size") {
		if flags.indentSize < 1 {
			return nil, fmt.Errorf("%w: --indent-size must be positive", ErrInvalidUsage)
		}
		cfg.IndentSize = flags.indentSize
	}
	if changed("tab-size") {
		if flags.tabSize < 1 {
			return nil, fmt.Errorf("%w: --tab-size must be positive", ErrInvalidUsage)
		}
		cfg.TabSize = flags.tabSize
	}
	if changed("use-tabs") {
		useTabs := flags.useTabs
		cfg.UseTabs = &useTabs
	}
	if changed("newline") {
		cfg.NewLine = config.NewLine(flags.newline)
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}

	switch {
	case flags.diff && flags.format != "" && flags.format != string(config.FormatDiff):
		return nil, fmt.Errorf("%w: --diff conflicts with --format %s", ErrInvalidUsage, flags.format)
	case flags.diff:
		cfg.Format = config.FormatDiff
	case flags.format != "":
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		cfg.Format = config.OutputFormat(format)
	}

	return cfg, nil
}

// runFormatStdin formats standard input. Without --check or a report
// format the formatted text goes to standard output.
func runFormatStdin(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	lines *runner.LineRange,
	filename string,
	repOpts reporter.Options,
) error {
	if cfg.Write {
		return fmt.Errorf("%w: --write cannot be used with standard input", ErrInvalidUsage)
	}
	if filename == "" {
		if cfg.Language == "" {
			return fmt.Errorf("%w: standard input needs --language or --stdin-filename", ErrInvalidUsage)
		}
		filename = "stdin"
	}

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read standard input: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	formatter := runner.NewFormatter(lang.DefaultRegistry, cfg, cfg.Workers()).
		WithLines(lines).
		WithWorkingDir(workDir)

	fileResult, err := formatter.FormatContent(ctx, path, content)

	explicitFormat := cmd.Flags().Changed("format") || cmd.Flags().Changed("diff")
	if cfg.Check || explicitFormat {
		return report(ctx, runner.NewResult(runner.FileOutcome{
			Path:   path,
			Result: fileResult,
			Error:  err,
		}), cfg.Check, repOpts)
	}
	if err != nil {
		return fmt.Errorf("format standard input: %w", err)
	}

	output := fileResult.Formatted
	if fileResult.Skipped {
		output = content
	}
	if _, err := repOpts.Writer.Write(output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// report renders the result and turns it into the command's error.
func report(ctx context.Context, result *runner.Result, check bool, opts reporter.Options) error {
	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	var errs []error
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logging.FromContext(ctx).Debug("file failed",
				logging.FieldPath, outcome.Path,
				logging.FieldError, outcome.Error,
			)
			errs = append(errs, outcome.Error)
		}
	}

	switch ExitCodeFromResult(result, check) {
	case ExitFileErrors:
		return fmt.Errorf("%w: %w", ErrFileErrors, errors.Join(errs...))
	case ExitUnformatted:
		return ErrUnformatted
	default:
		return nil
	}
}
