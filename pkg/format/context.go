package format

import (
	"fmt"

	"github.com/yaklabco/wsfmt/internal/interval"
	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// FormattingContext answers indentation and suppression queries for one
// run. Intervals are closed ranges of tree token indices.
type FormattingContext struct {
	opts   *Options
	stream *TokenStream

	indentation interval.Nesting[*indentationData]
	relative    []*indentationData
	anchors     interval.Nesting[*AnchorIndentationOperation]

	noSpacing  interval.Nesting[*SuppressOperation]
	noWrapping interval.Nesting[*SuppressOperation]
	disabled   interval.Nesting[*SuppressOperation]
}

// indentationData is one indentation block with its resolved baseline.
type indentationData struct {
	fc     *FormattingContext
	op     *IndentBlockOperation
	parent *indentationData

	// relativeChain is set when this block or one it inherits from reads a
	// token's current column.
	relativeChain bool

	value    int
	resolved bool
}

// indentation resolves the block's column. Blocks whose chain is not
// relative are resolved while the context is built; relative ones resolve
// on first use and keep that value.
func (d *indentationData) indentation() int {
	if d.resolved {
		return d.value
	}

	size := d.fc.opts.IndentSize
	var value int
	switch {
	case d.op.Option == IndentAbsolutePosition:
		value = d.op.Delta
	case d.op.Option.IsRelative():
		value = d.fc.stream.CurrentColumn(d.fc.relativeBase(d.op)) + d.op.Delta*size
	case d.parent != nil:
		value = d.parent.indentation() + d.op.Delta*size
	default:
		value = d.op.Delta * size
	}

	d.value, d.resolved = max(value, 0), true
	return d.value
}

func newFormattingContext(opts *Options, stream *TokenStream, ops *NodeOperations) *FormattingContext {
	fc := &FormattingContext{opts: opts, stream: stream}

	for _, op := range ops.IndentBlocks {
		start, end := spanIndices("indent block", op.Start, op.End)
		data := &indentationData{fc: fc, op: op}
		if parent, ok := fc.indentation.Innermost(start, start, nil); ok {
			data.parent = parent.Value
		}
		switch {
		case op.Option.IsRelative():
			data.relativeChain = true
			fc.relative = append(fc.relative, data)
		case op.Option != IndentAbsolutePosition && data.parent != nil:
			data.relativeChain = data.parent.relativeChain
		}
		fc.indentation.Insert(start, end, data)
		if !data.relativeChain {
			data.indentation()
		}
	}

	for _, op := range ops.Anchors {
		if op.Anchor == nil {
			panic("format: anchor operation without anchor token")
		}
		start, end := spanIndices("anchor", op.Start, op.End)
		fc.anchors.Insert(start, end, op)
	}

	for _, op := range ops.Suppress {
		start, end := spanIndices("suppress", op.Start, op.End)
		option := op.Option
		if option&(SuppressNoSpacingIfOnSingleLine|SuppressNoWrappingIfOnSingleLine) != 0 &&
			stream.OriginallyOnSameLine(op.Start, op.End) {
			if option.Has(SuppressNoSpacingIfOnSingleLine) {
				option |= SuppressNoSpacing
			}
			if option.Has(SuppressNoWrappingIfOnSingleLine) {
				option |= SuppressNoWrapping
			}
		}
		if option.Has(SuppressNoSpacing) {
			fc.noSpacing.Insert(start, end, op)
		}
		if option.Has(SuppressNoWrapping) {
			fc.noWrapping.Insert(start, end, op)
		}
		if option.Has(SuppressDisableFormatting) {
			fc.disabled.Insert(start, end, op)
		}
	}

	return fc
}

func spanIndices(kind string, start, end *syntax.Token) (int, int) {
	if start == nil || end == nil {
		panic(fmt.Sprintf("format: %s operation with nil token", kind))
	}
	return start.Index, end.Index
}

// relativeBase returns the token a relative block measures from.
func (fc *FormattingContext) relativeBase(op *IndentBlockOperation) *syntax.Token {
	base := op.Base
	if base == nil {
		base = op.Start
	}
	if op.Option == IndentRelativeToFirstTokenOnBaseTokenLine {
		base = fc.stream.FirstTokenOfLine(base)
	}
	return base
}

// Indentation returns the column a line-starting tok should be indented to.
func (fc *FormattingContext) Indentation(tok *syntax.Token) int {
	if tok == nil {
		return 0
	}
	if entry, ok := fc.indentation.Innermost(tok.Index, tok.Index, nil); ok {
		return entry.Value.indentation()
	}
	return 0
}

// DependsOnColumns reports whether the indentation of tok is derived from
// the current column of some token.
func (fc *FormattingContext) DependsOnColumns(tok *syntax.Token) bool {
	if tok == nil {
		return false
	}
	entry, ok := fc.indentation.Innermost(tok.Index, tok.Index, nil)
	return ok && entry.Value.relativeChain
}

// Anchor returns the innermost anchor whose dependent range covers tok,
// excluding anchors that start at tok or are anchored on it.
func (fc *FormattingContext) Anchor(tok *syntax.Token) *AnchorIndentationOperation {
	entry, ok := fc.anchors.Innermost(tok.Index, tok.Index, func(e *interval.Entry[*AnchorIndentationOperation]) bool {
		return e.Start < tok.Index && e.Value.Anchor != tok
	})
	if !ok {
		return nil
	}
	return entry.Value
}

// pairSpan returns the tree token indices around a pair.
func (fc *FormattingContext) pairSpan(pair int) (int, int) {
	before, after := fc.stream.PairTokens(pair)
	switch {
	case before == nil:
		return after.Index, after.Index
	case after == nil:
		return before.Index, before.Index
	}
	return before.Index, after.Index
}

// IsFormattingDisabled reports whether a pair lies in a region where
// formatting is switched off.
func (fc *FormattingContext) IsFormattingDisabled(pair int) bool {
	start, end := fc.pairSpan(pair)
	return fc.disabled.HasContaining(start, end, nil)
}

// IsSpacingSuppressed reports whether a pair lies in a no-spacing region.
// Elastic trivia is never suppressed.
func (fc *FormattingContext) IsSpacingSuppressed(pair int, elastic bool) bool {
	if elastic {
		return false
	}
	start, end := fc.pairSpan(pair)
	return fc.noSpacing.HasContaining(start, end, nil)
}

// IsWrappingSuppressed reports whether line breaks of a pair are frozen.
// Elastic trivia is never suppressed.
func (fc *FormattingContext) IsWrappingSuppressed(pair int, elastic bool) bool {
	if elastic {
		return false
	}
	start, end := fc.pairSpan(pair)
	return fc.noWrapping.HasContaining(start, end, nil)
}

// RelativeIndentBlocks returns relative blocks ordered by start token.
func (fc *FormattingContext) RelativeIndentBlocks() []*IndentBlockOperation {
	ops := make([]*IndentBlockOperation, len(fc.relative))
	for idx, data := range fc.relative {
		ops[idx] = data.op
	}
	return ops
}
