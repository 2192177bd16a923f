package runner

// FileOutcome wraps a FileResult with its path.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil when the file could not be processed.
	Result *FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files formatted without error.
	FilesProcessed int

	// FilesSkipped counts skipped files: binary, generated, disabled
	// languages or concurrent modification.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesChanged is the number of files whose formatting differs.
	FilesChanged int

	// FilesWritten is the number of files rewritten on disk.
	FilesWritten int

	// ChangesTotal is the number of text edits across all files.
	ChangesTotal int

	// RejectedTotal counts spacing requests declined by trivia.
	RejectedTotal int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasChanges reports whether any file is not formatted.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Changed returns the outcomes of files whose formatting differs.
func (r *Result) Changed() []FileOutcome {
	var changed []FileOutcome
	for _, outcome := range r.Files {
		if outcome.Result.Changed() {
			changed = append(changed, outcome)
		}
	}
	return changed
}

// NewResult builds a Result from outcomes that were produced outside Run,
// such as formatting standard input.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Stats: Stats{FilesDiscovered: len(outcomes)}}
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.Changed() {
		r.Stats.FilesChanged++
	}
	if outcome.Result.Written {
		r.Stats.FilesWritten++
	}

	r.Stats.ChangesTotal += len(outcome.Result.Changes)
	r.Stats.RejectedTotal += outcome.Result.Stats.Rejected
}
