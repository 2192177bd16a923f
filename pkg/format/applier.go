package format

import (
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/wsfmt/internal/logging"
	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// movedTokens records, for every token moved by the anchor, alignment and
// cascade steps, the indentation it had before its first move.
type movedTokens map[*syntax.Token]int

// applier applies operations to the token stream's overlay.
type applier struct {
	fc       *FormattingContext
	stream   *TokenStream
	logger   *log.Logger
	rejected atomic.Int64
}

func newApplier(fc *FormattingContext, stream *TokenStream, logger *log.Logger) *applier {
	return &applier{fc: fc, stream: stream, logger: logger}
}

// change records next for a pair unless it is the current value itself.
func (a *applier) change(pair int, current, next TriviaData) {
	if next == current {
		return
	}
	a.stream.ApplyChange(pair, next)
}

// skip reports pairs no phase may touch: pairs next to a missing token and
// pairs where formatting is disabled.
func (a *applier) skip(pair int) bool {
	before, after := a.stream.PairTokens(pair)
	if (before != nil && before.Missing) || (after != nil && after.Missing) {
		return true
	}
	return a.fc.IsFormattingDisabled(pair)
}

// frozenSpacing reports pairs whose spaces and indentation must stay as
// they are. Line operations may still apply to them.
func (a *applier) frozenSpacing(pair int) bool {
	return a.skip(pair) || a.fc.IsSpacingSuppressed(pair, a.stream.TriviaData(pair).IsElastic())
}

// applyPair runs phase one for a single pair. A line operation that
// settles the pair on separate lines takes precedence over the space
// operation, even when it changed nothing.
func (a *applier) applyPair(ops pairOperations) {
	if a.skip(ops.pair) {
		return
	}

	elastic := a.stream.TriviaData(ops.pair).IsElastic()
	if ops.lines != nil && !a.fc.IsWrappingSuppressed(ops.pair, elastic) {
		if a.applyLines(ops.pair, ops.lines) {
			return
		}
	}
	if ops.spaces != nil && !a.fc.IsSpacingSuppressed(ops.pair, elastic) {
		a.applySpaces(ops.pair, ops.spaces)
	}
}

// applyLines applies a line operation and reports whether the pair ends up
// on separate lines because of it.
func (a *applier) applyLines(pair int, op *AdjustNewLinesOperation) bool {
	data := a.stream.TriviaData(pair)
	_, after := a.stream.PairTokens(pair)

	switch op.Option {
	case LineForce:
		if op.Line <= 0 {
			if data.LineBreaks() > 0 {
				a.changeSpaces(pair, data, 0)
			}
			return false
		}
		a.change(pair, data, data.WithLine(op.Line, a.fc.Indentation(after)))
		return true

	case LinePreserve:
		lines := op.Line
		if !data.IsElastic() {
			lines = max(lines, data.LineBreaks())
		}
		if lines <= 0 {
			return false
		}
		indentation := a.fc.Indentation(after)
		if data.LineBreaks() == lines && !data.IsElastic() {
			a.change(pair, data, data.WithIndentation(indentation))
		} else {
			a.change(pair, data, data.WithLine(lines, indentation))
		}
		return true

	case LineForceIfOnSingleLine:
		if op.Line <= 0 || (data.LineBreaks() > 0 && !data.IsElastic()) {
			return false
		}
		a.change(pair, data, data.WithLine(op.Line, a.fc.Indentation(after)))
		return true
	}
	return false
}

// applySpaces applies a space operation. Pairs already split across lines
// are only joined by SpaceForce.
func (a *applier) applySpaces(pair int, op *AdjustSpacesOperation) {
	data := a.stream.TriviaData(pair)
	if data.LineBreaks() > 0 && op.Option != SpaceForce {
		return
	}

	switch op.Option {
	case SpaceForce, SpaceForceIfOnSingleLine:
		a.changeSpaces(pair, data, op.Space)

	case SpacePreserve:
		if data.Spaces() >= op.Space && data.LineBreaks() == 0 && !data.IsElastic() {
			return
		}
		a.changeSpaces(pair, data, op.Space)

	case SpaceDynamicToIndentation:
		before, after := a.stream.PairTokens(pair)
		width, broken := lastLineWidth(before.Text, a.fc.opts.TabSize)
		end := width
		if !broken {
			end += a.stream.CurrentColumn(before)
		}
		a.changeSpaces(pair, data, max(a.fc.Indentation(after)-end, op.Space))
	}
}

func (a *applier) changeSpaces(pair int, data TriviaData, space int) {
	next := data.WithSpace(space)
	if next == data && !data.IsWhitespaceOnly() {
		a.reject(pair, "spacing around comments")
		return
	}
	a.change(pair, data, next)
}

// reject counts a mutation that complex trivia cannot express. The pair is
// left as it is.
func (a *applier) reject(pair int, reason string) {
	a.rejected.Add(1)
	a.logger.Debug("trivia left unchanged", logging.FieldPair, pair, "reason", reason)
}

// isAnchorCandidate reports whether the anchor step may move the second
// token of a pair: it starts a line and no line operation placed it.
func (a *applier) isAnchorCandidate(ops pairOperations) bool {
	if ops.lines == nil {
		return a.stream.IsFirstTokenOnLine(ops.pair + 1)
	}
	if ops.lines.Option == LineForceIfOnSingleLine {
		return !a.stream.TwoTokensOnSameLine(ops.pair, ops.pair+1, true) &&
			a.stream.IsFirstTokenOnLine(ops.pair+1)
	}
	return false
}

// applyAnchor shifts the second token of a pair by the distance its anchor
// token has moved.
func (a *applier) applyAnchor(pair int, moved movedTokens) {
	tok := a.stream.Token(pair + 1)
	op := a.fc.Anchor(tok)
	if op == nil {
		return
	}

	delta := a.stream.CurrentColumn(op.Anchor) - a.stream.OriginalColumn(op.Anchor)
	if delta == 0 {
		return
	}

	data := a.stream.TriviaData(pair)
	if _, ok := moved[tok]; !ok {
		moved[tok] = data.Spaces()
	}
	a.change(pair, data, data.WithIndentation(max(data.Spaces()+delta, 0)))
}

// applyAlignment moves every line-starting token of the group to the base
// column.
func (a *applier) applyAlignment(op *AlignTokensOperation, moved movedTokens) {
	base := op.Base
	if op.Option == AlignToFirstTokenOnBaseTokenLine {
		base = a.stream.FirstTokenOfLine(base)
	}
	column := a.stream.CurrentColumn(base)

	for _, tok := range op.Tokens {
		idx := a.stream.IndexOf(tok)
		if idx <= 0 || !a.stream.IsFirstTokenOnLine(idx) || a.frozenSpacing(idx-1) {
			continue
		}
		data := a.stream.TriviaData(idx - 1)
		if data.Spaces() == column {
			continue
		}
		if _, ok := moved[tok]; !ok {
			moved[tok] = data.Spaces()
		}
		a.change(idx-1, data, data.WithIndentation(column))
	}
}

// cascadeRelativeBlocks shifts relative indentation blocks whose base line
// was moved. The delta of a block is the delta of the nearest moved token
// at or before its base token on the same line. Tokens already moved keep
// their position.
func (a *applier) cascadeRelativeBlocks(moved movedTokens) {
	if len(moved) == 0 {
		return
	}

	for _, op := range a.fc.RelativeIndentBlocks() {
		baseIdx := a.stream.IndexOf(a.fc.relativeBase(op))
		if baseIdx < 0 {
			continue
		}

		moverIdx := -1
		for idx := baseIdx; ; idx-- {
			if _, ok := moved[a.stream.Token(idx)]; ok {
				moverIdx = idx
				break
			}
			if idx == 0 || a.stream.IsFirstTokenOnLine(idx) || hasLineBreak(a.stream.Token(idx-1).Text) {
				break
			}
		}
		if moverIdx <= 0 {
			continue
		}

		mover := a.stream.Token(moverIdx)
		delta := a.stream.TriviaData(moverIdx-1).Spaces() - moved[mover]
		if delta == 0 {
			continue
		}

		from, to, ok := a.streamRange(op.Start, op.End)
		if !ok {
			continue
		}
		for idx := max(from, 1); idx <= to; idx++ {
			tok := a.stream.Token(idx)
			if _, ok := moved[tok]; ok {
				continue
			}
			if !a.stream.IsFirstTokenOnLine(idx) || a.frozenSpacing(idx-1) {
				continue
			}
			data := a.stream.TriviaData(idx - 1)
			moved[tok] = data.Spaces()
			a.change(idx-1, data, data.WithIndentation(max(data.Spaces()+delta, 0)))
		}
	}
}

// streamRange clamps a tree token range to stream indices.
func (a *applier) streamRange(start, end *syntax.Token) (int, int, bool) {
	first := a.stream.Token(0).Index
	last := first + a.stream.Len() - 1
	from := max(start.Index, first) - first
	to := min(end.Index, last) - first
	return from, to, from <= to
}

// formatLeftover renders the canonical form of a pair's trivia. Pairs
// with suppressed spacing are only finished when a line operation already
// rewrote them.
func (a *applier) formatLeftover(pair int) {
	if a.frozenSpacing(pair) && !a.stream.HasChange(pair) {
		return
	}
	data := a.stream.TriviaData(pair)
	a.change(pair, data, data.Format())
}

// formatBeginningOfTree removes indentation before the first token.
func (a *applier) formatBeginningOfTree() {
	if a.frozenSpacing(PairBeginning) {
		return
	}
	data := a.stream.TriviaData(PairBeginning)
	switch {
	case data.IsWhitespaceOnly():
		a.change(PairBeginning, data, data.WithSpace(0))
	case data.LineBreaks() > 0:
		a.change(PairBeginning, data, data.WithIndentation(0))
	}
}

// formatEndOfTree removes indentation and trailing spaces before EOF.
func (a *applier) formatEndOfTree() {
	pair := a.stream.Pairs() - 1
	if pair < 0 || a.frozenSpacing(pair) {
		return
	}
	data := a.stream.TriviaData(pair)
	switch {
	case data.LineBreaks() > 0:
		a.change(pair, data, data.WithIndentation(0))
	case data.IsWhitespaceOnly():
		a.change(pair, data, data.WithSpace(0))
	}
}
