// Package lang connects languages to the formatting engine. A Profile
// knows how to parse a language and which rules format it; the Registry
// finds the profile for a file.
package lang

import (
	"context"

	"github.com/yaklabco/wsfmt/pkg/format"
	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// Profile describes one formattable language.
type Profile interface {
	// Name is the canonical, lower-case language name.
	Name() string

	// Extensions lists file extensions, with the leading dot.
	Extensions() []string

	// Aliases lists other names the language is known by, including the
	// names language detection reports for it.
	Aliases() []string

	// DefaultOptions returns the language options with their defaults.
	DefaultOptions() map[string]any

	// Parse builds a syntax tree. Recoverable syntax errors do not fail
	// the parse.
	Parse(ctx context.Context, path string, content []byte) (*syntax.Tree, error)

	// Rules returns the formatting rules for the given language options.
	Rules(options map[string]any) ([]format.Rule, error)
}
