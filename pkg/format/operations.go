package format

import (
	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// SuppressOption is a set of flags describing what a SuppressOperation
// protects.
type SuppressOption uint8

// Suppression flags.
const (
	// SuppressNoSpacing freezes every separator inside the span.
	SuppressNoSpacing SuppressOption = 1 << iota

	// SuppressNoWrapping blocks line-break changes inside the span.
	SuppressNoWrapping

	// SuppressNoSpacingIfOnSingleLine is SuppressNoSpacing, active only when
	// the span originally fit on one line.
	SuppressNoSpacingIfOnSingleLine

	// SuppressNoWrappingIfOnSingleLine is SuppressNoWrapping, active only
	// when the span originally fit on one line.
	SuppressNoWrappingIfOnSingleLine

	// SuppressDisableFormatting freezes the span, elastic trivia included.
	SuppressDisableFormatting

	// SuppressAll combines unconditional spacing and wrapping suppression.
	SuppressAll = SuppressNoSpacing | SuppressNoWrapping
)

// Has reports whether every flag in other is set.
func (o SuppressOption) Has(other SuppressOption) bool {
	return o&other == other
}

// SuppressOperation protects the separators between Start and End
// (inclusive token range).
type SuppressOperation struct {
	Start  *syntax.Token
	End    *syntax.Token
	Option SuppressOption
}

// NewSuppressOperation creates a suppression over [start, end].
func NewSuppressOperation(start, end *syntax.Token, option SuppressOption) *SuppressOperation {
	return &SuppressOperation{Start: start, End: end, Option: option}
}

// IndentBlockOption selects how an indentation block computes its baseline.
type IndentBlockOption uint8

// Indentation block options.
const (
	// IndentRelativeToContext indents Delta levels past the enclosing block.
	IndentRelativeToContext IndentBlockOption = iota

	// IndentRelativePosition indents Delta levels past the current column
	// of the base token.
	IndentRelativePosition

	// IndentRelativeToFirstTokenOnBaseTokenLine indents Delta levels past
	// the current column of the first token on the base token's line.
	IndentRelativeToFirstTokenOnBaseTokenLine

	// IndentAbsolutePosition uses Delta as an absolute column.
	IndentAbsolutePosition
)

// IsRelative reports whether the block's indentation depends on a token's
// current column.
func (o IndentBlockOption) IsRelative() bool {
	return o == IndentRelativePosition || o == IndentRelativeToFirstTokenOnBaseTokenLine
}

// IndentBlockOperation sets the indentation of line-starting tokens between
// Start and End (inclusive).
type IndentBlockOperation struct {
	// Base is the token relative blocks measure from. Nil for blocks that
	// are not relative.
	Base *syntax.Token

	Start *syntax.Token
	End   *syntax.Token

	// Delta is a number of indentation levels, or a column for
	// IndentAbsolutePosition.
	Delta  int
	Option IndentBlockOption
}

// NewIndentBlockOperation creates a block indented delta levels past its
// enclosing block.
func NewIndentBlockOperation(start, end *syntax.Token, delta int) *IndentBlockOperation {
	return &IndentBlockOperation{Start: start, End: end, Delta: delta, Option: IndentRelativeToContext}
}

// NewRelativeIndentBlockOperation creates a block indented relative to base.
func NewRelativeIndentBlockOperation(base, start, end *syntax.Token, delta int, option IndentBlockOption) *IndentBlockOperation {
	return &IndentBlockOperation{Base: base, Start: start, End: end, Delta: delta, Option: option}
}

// NewAbsoluteIndentBlockOperation creates a block at a fixed column.
func NewAbsoluteIndentBlockOperation(start, end *syntax.Token, column int) *IndentBlockOperation {
	return &IndentBlockOperation{Start: start, End: end, Delta: column, Option: IndentAbsolutePosition}
}

// AnchorIndentationOperation makes line-starting tokens after Start up to
// End move by the same amount as Anchor.
type AnchorIndentationOperation struct {
	Anchor *syntax.Token
	Start  *syntax.Token
	End    *syntax.Token
}

// NewAnchorIndentationOperation creates an anchor over [start, end].
func NewAnchorIndentationOperation(anchor, start, end *syntax.Token) *AnchorIndentationOperation {
	return &AnchorIndentationOperation{Anchor: anchor, Start: start, End: end}
}

// AlignTokensOption selects the column an alignment group lines up with.
type AlignTokensOption uint8

// Alignment options.
const (
	// AlignToBaseToken aligns with the base token's column.
	AlignToBaseToken AlignTokensOption = iota

	// AlignToFirstTokenOnBaseTokenLine aligns with the first token on the
	// base token's line.
	AlignToFirstTokenOnBaseTokenLine
)

// AlignTokensOperation aligns every line-starting token in Tokens with Base.
type AlignTokensOperation struct {
	Base   *syntax.Token
	Tokens []*syntax.Token
	Option AlignTokensOption
}

// NewAlignTokensOperation creates an alignment group.
func NewAlignTokensOperation(base *syntax.Token, tokens []*syntax.Token, option AlignTokensOption) *AlignTokensOperation {
	return &AlignTokensOperation{Base: base, Tokens: tokens, Option: option}
}

// SpaceOption selects how AdjustSpacesOperation applies.
type SpaceOption uint8

// Space options.
const (
	// SpaceForce sets exactly Space columns, joining lines if needed.
	SpaceForce SpaceOption = iota

	// SpacePreserve raises the spacing to at least Space on a shared line.
	SpacePreserve

	// SpaceForceIfOnSingleLine sets exactly Space columns when the tokens
	// share a line.
	SpaceForceIfOnSingleLine

	// SpaceDynamicToIndentation pads the second token out to its block
	// indentation, with Space as the minimum, when the tokens share a line.
	SpaceDynamicToIndentation
)

// AdjustSpacesOperation requests spacing between two tokens.
type AdjustSpacesOperation struct {
	Space  int
	Option SpaceOption
}

// LineOption selects how AdjustNewLinesOperation applies.
type LineOption uint8

// Line options.
const (
	// LineForce sets exactly Line line breaks.
	LineForce LineOption = iota

	// LinePreserve raises the line breaks to at least Line.
	LinePreserve

	// LineForceIfOnSingleLine sets Line line breaks when the tokens share a
	// line.
	LineForceIfOnSingleLine
)

// AdjustNewLinesOperation requests line breaks between two tokens.
type AdjustNewLinesOperation struct {
	Line   int
	Option LineOption
}

const cachedOperations = 4

//nolint:gochecknoglobals // immutable shared operation values
var (
	spaceOperations [SpaceDynamicToIndentation + 1][cachedOperations]*AdjustSpacesOperation
	lineOperations  [LineForceIfOnSingleLine + 1][cachedOperations]*AdjustNewLinesOperation
)

//nolint:gochecknoinits // fills the shared operation tables
func init() {
	for option := range spaceOperations {
		for count := range cachedOperations {
			spaceOperations[option][count] = &AdjustSpacesOperation{Space: count, Option: SpaceOption(option)}
		}
	}
	for option := range lineOperations {
		for count := range cachedOperations {
			lineOperations[option][count] = &AdjustNewLinesOperation{Line: count, Option: LineOption(option)}
		}
	}
}

// Spaces returns a spacing operation, shared for small counts.
func Spaces(space int, option SpaceOption) *AdjustSpacesOperation {
	if space >= 0 && space < cachedOperations && int(option) < len(spaceOperations) {
		return spaceOperations[option][space]
	}
	return &AdjustSpacesOperation{Space: space, Option: option}
}

// NewLines returns a line-break operation, shared for small counts.
func NewLines(line int, option LineOption) *AdjustNewLinesOperation {
	if line >= 0 && line < cachedOperations && int(option) < len(lineOperations) {
		return lineOperations[option][line]
	}
	return &AdjustNewLinesOperation{Line: line, Option: option}
}
