package format

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// Sentinel pair indices for the trivia outside the formatted span.
const (
	// PairBeginning is the trivia before the first token of the span.
	PairBeginning = -1

	// PairEnd is the trivia after the last token of the span.
	PairEnd = -2
)

// Change is one entry of the overlay: the trivia now separating Before and
// After. Before is nil at the start of the tree and After is nil past the
// end of the tree.
type Change struct {
	Pair   int
	Before *syntax.Token
	After  *syntax.Token
	Data   TriviaData
}

type triviaBox struct {
	data TriviaData
}

// TokenStream holds the tokens of the formatted span together with their
// original trivia and the overlay of changes made by the engine.
type TokenStream struct {
	tree    *syntax.Tree
	data    TreeData
	factory *TriviaDataFactory
	tokens  []*syntax.Token

	// originals has one lazily filled slot per pair followed by the two
	// sentinel slots.
	originals []atomic.Pointer[triviaBox]
	changes   changeSet
}

// NewTokenStream collects the tokens tree.Tokens[first..last] (inclusive).
func NewTokenStream(tree *syntax.Tree, data TreeData, factory *TriviaDataFactory, first, last int) *TokenStream {
	tokens := tree.Tokens[first : last+1]
	return &TokenStream{
		tree:      tree,
		data:      data,
		factory:   factory,
		tokens:    tokens,
		originals: make([]atomic.Pointer[triviaBox], len(tokens)+1),
	}
}

// Len returns the number of tokens in the stream.
func (s *TokenStream) Len() int {
	return len(s.tokens)
}

// Pairs returns the number of adjacent token pairs.
func (s *TokenStream) Pairs() int {
	return len(s.tokens) - 1
}

// Token returns the token at stream index idx.
func (s *TokenStream) Token(idx int) *syntax.Token {
	return s.tokens[idx]
}

// Tree returns the tree the stream was built from.
func (s *TokenStream) Tree() *syntax.Tree {
	return s.tree
}

// IndexOf returns the stream index of tok, or -1 when tok is outside the
// stream.
func (s *TokenStream) IndexOf(tok *syntax.Token) int {
	if tok == nil {
		return -1
	}
	idx := tok.Index - s.tokens[0].Index
	if idx < 0 || idx >= len(s.tokens) || s.tokens[idx] != tok {
		return -1
	}
	return idx
}

// Contains reports whether tok is part of the stream.
func (s *TokenStream) Contains(tok *syntax.Token) bool {
	return s.IndexOf(tok) >= 0
}

// IsFirstTokenInTree reports whether the stream starts at the tree's first
// token.
func (s *TokenStream) IsFirstTokenInTree() bool {
	return s.tokens[0].Index == 0
}

// IsLastTokenInTree reports whether the stream ends with the EOF token.
func (s *TokenStream) IsLastTokenInTree() bool {
	return s.tokens[len(s.tokens)-1].IsEOF()
}

func (s *TokenStream) slot(pair int) int {
	switch {
	case pair == PairBeginning:
		return len(s.tokens) - 1
	case pair == PairEnd:
		return len(s.tokens)
	case pair < 0 || pair >= len(s.tokens)-1:
		panic(fmt.Sprintf("format: pair index %d out of range [0, %d)", pair, len(s.tokens)-1))
	}
	return pair
}

// pairBefore returns the pair index of the trivia before stream index idx.
func pairBefore(idx int) int {
	if idx == 0 {
		return PairBeginning
	}
	return idx - 1
}

// PairTokens returns the tokens around a pair. Sentinel pairs return nil
// for a side outside the tree.
func (s *TokenStream) PairTokens(pair int) (*syntax.Token, *syntax.Token) {
	switch pair {
	case PairBeginning:
		return s.tree.PrevToken(s.tokens[0]), s.tokens[0]
	case PairEnd:
		last := s.tokens[len(s.tokens)-1]
		return last, s.tree.NextToken(last)
	}
	s.slot(pair)
	return s.tokens[pair], s.tokens[pair+1]
}

// OriginalTriviaData returns the trivia of a pair before any change.
func (s *TokenStream) OriginalTriviaData(pair int) TriviaData {
	slot := &s.originals[s.slot(pair)]
	if box := slot.Load(); box != nil {
		return box.data
	}

	var data TriviaData
	before, after := s.PairTokens(pair)
	switch {
	case before == nil:
		data = s.factory.CreateLeading(after)
	case after == nil:
		data = s.factory.CreateTrailing(before)
	default:
		data = s.factory.Create(before, after)
	}

	slot.CompareAndSwap(nil, &triviaBox{data: data})
	return slot.Load().data
}

// TriviaData returns the current trivia of a pair: the overlay value if the
// pair changed, the original otherwise.
func (s *TokenStream) TriviaData(pair int) TriviaData {
	s.slot(pair)
	if data, ok := s.changes.get(pair); ok {
		return data
	}
	return s.OriginalTriviaData(pair)
}

func (s *TokenStream) triviaData(pair int, original bool) TriviaData {
	if original {
		return s.OriginalTriviaData(pair)
	}
	return s.TriviaData(pair)
}

// ApplyChange records new trivia for a pair. A value equal to the original
// removes any overlay entry instead. Calls for distinct pairs may run
// concurrently.
func (s *TokenStream) ApplyChange(pair int, data TriviaData) {
	if sameTrivia(s.OriginalTriviaData(pair), data) {
		s.changes.remove(pair)
		return
	}
	s.changes.set(pair, data)
}

// HasChange reports whether a pair differs from its original.
func (s *TokenStream) HasChange(pair int) bool {
	s.slot(pair)
	_, ok := s.changes.get(pair)
	return ok
}

// ChangeCount returns the number of pairs in the overlay.
func (s *TokenStream) ChangeCount() int {
	return s.changes.len()
}

// Changes returns the overlay in source order.
func (s *TokenStream) Changes() []Change {
	keys := s.changes.keys()
	changes := make([]Change, 0, len(keys))

	// Sentinel keys are negative; emit the beginning first and the end last.
	var end *Change
	for _, key := range keys {
		data, ok := s.changes.get(key)
		if !ok {
			continue
		}
		before, after := s.PairTokens(key)
		change := Change{Pair: key, Before: before, After: after, Data: data}
		switch key {
		case PairEnd:
			end = &change
		case PairBeginning:
			changes = append([]Change{change}, changes...)
		default:
			changes = append(changes, change)
		}
	}
	if end != nil {
		changes = append(changes, *end)
	}
	return changes
}

// IsFirstTokenOnLine reports whether the token at stream index idx starts a
// line after the changes made so far.
func (s *TokenStream) IsFirstTokenOnLine(idx int) bool {
	if idx == 0 && s.IsFirstTokenInTree() {
		return true
	}
	return s.TriviaData(pairBefore(idx)).LineBreaks() > 0
}

// CurrentColumn returns the column of tok after the changes made so far.
// Tokens outside the stream report their original column.
func (s *TokenStream) CurrentColumn(tok *syntax.Token) int {
	idx := s.IndexOf(tok)
	if idx < 0 {
		return s.data.OriginalColumn(s.factory.opts.TabSize, tok)
	}
	return s.column(idx, false)
}

// OriginalColumn returns the column of tok before any change.
func (s *TokenStream) OriginalColumn(tok *syntax.Token) int {
	idx := s.IndexOf(tok)
	if idx < 0 {
		return s.data.OriginalColumn(s.factory.opts.TabSize, tok)
	}
	return s.column(idx, true)
}

// column walks backwards from idx summing separator widths and token widths
// until it finds the pair that starts the line.
func (s *TokenStream) column(idx int, original bool) int {
	tabSize := s.factory.opts.TabSize
	column := 0
	for cur := idx; ; cur-- {
		data := s.triviaData(pairBefore(cur), original)
		if data.LineBreaks() > 0 {
			return column + data.Spaces()
		}

		if cur == 0 {
			if s.IsFirstTokenInTree() {
				return column + data.Spaces()
			}
			// Trivia before the stream is never changed mid-line.
			return column + s.data.OriginalColumn(tabSize, s.tokens[0])
		}
		column += data.Spaces()

		width, broken := lastLineWidth(s.tokens[cur-1].Text, tabSize)
		column += width
		if broken {
			return column
		}
	}
}

// FirstTokenOnLine returns the stream index of the first token on the line
// of the token at idx.
func (s *TokenStream) FirstTokenOnLine(idx int) int {
	for idx > 0 && !s.IsFirstTokenOnLine(idx) && !strings.ContainsAny(s.tokens[idx-1].Text, "\r\n") {
		idx--
	}
	return idx
}

// FirstTokenOfLine returns the first token on tok's line. Tokens outside the
// stream are resolved against the original text.
func (s *TokenStream) FirstTokenOfLine(tok *syntax.Token) *syntax.Token {
	if idx := s.IndexOf(tok); idx >= 0 {
		return s.tokens[s.FirstTokenOnLine(idx)]
	}
	for prev := s.tree.PrevToken(tok); prev != nil; prev = s.tree.PrevToken(prev) {
		if hasLineBreak(s.data.TextBetween(prev, tok)) || hasLineBreak(prev.Text) {
			return tok
		}
		tok = prev
	}
	return tok
}

// TwoTokensOnSameLine reports whether no line break separates the tokens at
// stream indices from and to (from <= to). With original set, only the
// original trivia is consulted.
func (s *TokenStream) TwoTokensOnSameLine(from, to int, original bool) bool {
	for pair := from; pair < to; pair++ {
		if s.triviaData(pair, original).LineBreaks() > 0 {
			return false
		}
		if pair+1 < to && hasLineBreak(s.tokens[pair+1].Text) {
			return false
		}
	}
	return true
}

// OriginallyOnSameLine reports whether two tree tokens (a before b) were on
// one line in the source. Either may lie outside the stream.
func (s *TokenStream) OriginallyOnSameLine(a, b *syntax.Token) bool {
	if a == b {
		return true
	}
	return !hasLineBreak(s.data.TextBetween(a, b))
}
