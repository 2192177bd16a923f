package format

import "errors"

// Sentinel errors returned by the engine.
var (
	// ErrInvalidRange indicates the requested token range is not an ordered
	// pair of tokens belonging to the tree.
	ErrInvalidRange = errors.New("invalid formatting range")

	// ErrCancelled indicates the context was cancelled before formatting
	// completed. It wraps the context's error.
	ErrCancelled = errors.New("formatting cancelled")

	// ErrInvalidOptions indicates the formatting options are unusable.
	ErrInvalidOptions = errors.New("invalid formatting options")
)
