package format

import (
	"sync"
	"time"

	"github.com/yaklabco/wsfmt/pkg/syntax"
	"github.com/yaklabco/wsfmt/pkg/textedit"
)

// Stats summarizes one formatting run.
type Stats struct {
	// Tokens is the number of tokens in the formatted span.
	Tokens int

	// Pairs is the number of separators between those tokens.
	Pairs int

	// Changes is the number of separators whose text changed.
	Changes int

	// Rejected counts requests a trivia value declined, such as spacing
	// around a comment.
	Rejected int

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// Result is the outcome of formatting a tree: the changed separators and
// the ways to consume them.
type Result struct {
	tree    *syntax.Tree
	data    TreeData
	changes []Change
	stats   Stats

	textOnce    sync.Once
	textChanges []textedit.Change
}

func newResult(tree *syntax.Tree, data TreeData, changes []Change, stats Stats) *Result {
	r := &Result{
		tree:    tree,
		data:    data,
		changes: changes,
		stats:   stats,
	}
	r.stats.Changes = len(r.TextChanges())
	return r
}

// Tree returns the tree that was formatted.
func (r *Result) Tree() *syntax.Tree {
	return r.tree
}

// Changes returns the changed separators in source order.
func (r *Result) Changes() []Change {
	return r.changes
}

// Stats returns the run statistics.
func (r *Result) Stats() Stats {
	return r.stats
}

// ContainsChanges reports whether formatting changed any text.
func (r *Result) ContainsChanges() bool {
	return len(r.TextChanges()) > 0
}

// TextChanges returns minimal byte edits against the original text, in
// ascending and non-overlapping order.
func (r *Result) TextChanges() []textedit.Change {
	r.textOnce.Do(func() {
		for _, c := range r.changes {
			oldText := r.data.TextBetween(c.Before, c.After)
			newText := c.Data.Text()
			if oldText == newText {
				continue
			}
			start := 0
			if c.Before != nil {
				start = c.Before.End()
			}
			r.textChanges = append(r.textChanges, textedit.Narrow(start, oldText, newText))
		}
	})
	return r.textChanges
}

// Text returns the formatted source text.
func (r *Result) Text() (string, error) {
	return textedit.ApplyString(r.tree.Text(), r.TextChanges())
}

// FormattedTree returns a new tree whose tokens carry the changed trivia.
// New trivia up to and including the first line break trails the earlier
// token; the rest leads the later one. The original tree is not modified.
func (r *Result) FormattedTree() *syntax.Tree {
	tokens := make([]*syntax.Token, len(r.tree.Tokens))
	for i, tok := range r.tree.Tokens {
		tokens[i] = tok.Clone()
	}

	for _, c := range r.changes {
		pieces := c.Data.Trivia()
		switch {
		case c.Before == nil:
			tokens[c.After.Index].Leading = pieces
		case c.After == nil:
			tokens[c.Before.Index].Trailing = pieces
		default:
			trailing, leading := splitAtFirstLineBreak(pieces)
			tokens[c.Before.Index].Trailing = trailing
			tokens[c.After.Index].Leading = leading
		}
	}

	return r.tree.WithTokens(tokens)
}

func splitAtFirstLineBreak(pieces []syntax.Trivia) ([]syntax.Trivia, []syntax.Trivia) {
	for i, piece := range pieces {
		if piece.Kind == syntax.TriviaEndOfLine {
			return pieces[:i+1:i+1], pieces[i+1:]
		}
	}
	return pieces, nil
}
