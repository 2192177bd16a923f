package brace

import (
	"context"

	"github.com/yaklabco/wsfmt/internal/logging"
	"github.com/yaklabco/wsfmt/pkg/format"
	"github.com/yaklabco/wsfmt/pkg/lang"
	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// Name is the language name.
const Name = "brace"

//nolint:gochecknoinits // built-in languages register themselves
func init() {
	lang.DefaultRegistry.Register(Profile{})
}

// Profile plugs the language into the lang registry.
type Profile struct{}

var _ lang.Profile = Profile{}

// Name returns the language name.
func (Profile) Name() string { return Name }

// Extensions returns the file extensions of the language.
func (Profile) Extensions() []string { return []string{".brace", ".bc"} }

// Aliases returns other names of the language.
func (Profile) Aliases() []string { return []string{"braces", "c-like"} }

// DefaultOptions returns the default language options.
func (Profile) DefaultOptions() map[string]any { return DefaultOptions().AsMap() }

// Parse parses content and logs recovered syntax errors at debug level.
func (Profile) Parse(ctx context.Context, path string, content []byte) (*syntax.Tree, error) {
	tree, errs, err := Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		logger := logging.FromContext(ctx)
		logger.Debug("recovered from syntax errors",
			logging.FieldPath, path,
			logging.FieldErrors, len(errs))
		for _, serr := range errs {
			logger.Debug(serr.Message, logging.FieldPath, path, "line", serr.Line, "column", serr.Column)
		}
	}
	return tree, nil
}

// Rules decodes the options and returns the rule chain.
func (Profile) Rules(options map[string]any) ([]format.Rule, error) {
	opts, err := DecodeOptions(options)
	if err != nil {
		return nil, err
	}
	return Rules(opts), nil
}
