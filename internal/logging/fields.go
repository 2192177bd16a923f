package logging

// Structured log keys. Every key is snake_case so text and JSON output
// agree on field names.
const (
	FieldPath     = "path"
	FieldPaths    = "paths"
	FieldLanguage = "language"
	FieldError    = "error"
	FieldErrors   = "errors"
)

// Run configuration keys.
const (
	FieldWrite = "write"
	FieldCheck = "check"
	FieldJobs  = "jobs"
)

// Formatting engine keys, logged once per phase of a file.
const (
	FieldPhase    = "phase"
	FieldPair     = "pair"
	FieldPairs    = "pairs"
	FieldTokens   = "tokens"
	FieldChanges  = "changes"
	FieldRejected = "rejected"
	FieldElapsed  = "elapsed"
)

// Run totals.
const (
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldEditsTotal      = "edits_total"
)

// Build and language profile keys.
const (
	FieldVersion    = "version"
	FieldCommit     = "commit"
	FieldBuilt      = "built"
	FieldExtensions = "extensions"
	FieldAliases    = "aliases"
	FieldOptions    = "options"
)
