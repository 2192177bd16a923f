// Package runner formats many files: it discovers them, runs each through
// the formatting engine on a bounded pool of goroutines and collects the
// outcomes in a deterministic order.
package runner

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/wsfmt/internal/logging"
)

// ErrLinesNeedSingleFile is returned when a line range is given for more
// than one file.
var ErrLinesNeedSingleFile = errors.New("a line range needs exactly one file")

// Run discovers files under opts.Paths and formats them concurrently.
// A file that fails is recorded in its FileOutcome and does not stop the
// run; cancellation does.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}
	if opts.Lines != nil && len(files) != 1 {
		return nil, fmt.Errorf("%w: %d files matched", ErrLinesNeedSingleFile, len(files))
	}

	cfg := opts.config()
	workers := cfg.Workers()

	// A single file gets the parallelism inside the engine instead.
	engineJobs := 1
	if len(files) == 1 {
		engineJobs = workers
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	formatter := NewFormatter(opts.registry(), cfg, engineJobs).
		WithLines(opts.Lines).
		WithWorkingDir(workDir)

	logger.Debug("formatting files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, workers,
		logging.FieldWrite, cfg.Write,
	)

	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			outcome := FileOutcome{Path: path}
			fileResult, err := formatter.FormatFile(groupCtx, path)
			if err != nil {
				outcome.Error = err
			} else {
				outcome.Result = fileResult
			}
			outcomes[i] = outcome
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	logger.Debug("formatting complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldEditsTotal, result.Stats.ChangesTotal,
	)

	return result, nil
}
