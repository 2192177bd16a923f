package brace

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// BraceStyle selects where an opening brace goes.
type BraceStyle string

// Brace styles.
const (
	// BraceStyleKR keeps the brace on the line of its statement.
	BraceStyleKR BraceStyle = "kr"

	// BraceStyleAllman puts the brace on its own line.
	BraceStyleAllman BraceStyle = "allman"
)

// ErrInvalidOption is returned for language options that fail validation.
var ErrInvalidOption = errors.New("invalid brace option")

// Options are the language-specific formatting settings.
type Options struct {
	BraceStyle           BraceStyle `yaml:"brace_style"`
	SpaceAroundOperators bool       `yaml:"space_around_operators"`
	KeepSingleLineBlocks bool       `yaml:"keep_single_line_blocks"`
	InsertFinalNewline   bool       `yaml:"insert_final_newline"`
}

// DefaultOptions returns the default language options.
func DefaultOptions() Options {
	return Options{
		BraceStyle:           BraceStyleKR,
		SpaceAroundOperators: true,
		KeepSingleLineBlocks: true,
		InsertFinalNewline:   true,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	switch o.BraceStyle {
	case BraceStyleKR, BraceStyleAllman:
		return nil
	default:
		return fmt.Errorf("%w: brace_style %q (want %q or %q)", ErrInvalidOption, o.BraceStyle, BraceStyleKR, BraceStyleAllman)
	}
}

// DecodeOptions overlays raw configuration values on the defaults.
// Unknown keys are rejected.
func DecodeOptions(raw map[string]any) (Options, error) {
	opts := DefaultOptions()
	if len(raw) == 0 {
		return opts, nil
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return opts, fmt.Errorf("encoding brace options: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return opts, fmt.Errorf("decoding brace options: %w", err)
	}
	if err := checkKeys(&node); err != nil {
		return opts, err
	}
	if err := node.Decode(&opts); err != nil {
		return opts, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	return opts, opts.Validate()
}

func checkKeys(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for idx := 0; idx < len(node.Content); idx += 2 {
		switch key := node.Content[idx].Value; key {
		case "brace_style", "space_around_operators", "keep_single_line_blocks", "insert_final_newline":
		default:
			return fmt.Errorf("%w: unknown key %q", ErrInvalidOption, key)
		}
	}
	return nil
}

// AsMap returns the options as configuration values.
func (o Options) AsMap() map[string]any {
	return map[string]any{
		"brace_style":             string(o.BraceStyle),
		"space_around_operators":  o.SpaceAroundOperators,
		"keep_single_line_blocks": o.KeepSingleLineBlocks,
		"insert_final_newline":    o.InsertFinalNewline,
	}
}
