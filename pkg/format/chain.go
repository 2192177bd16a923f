package format

import "github.com/yaklabco/wsfmt/pkg/syntax"

// Chain is an ordered rule list with each extension point resolved once.
// Only rules implementing a hook are visited for it.
type Chain struct {
	rules    []Rule
	suppress []SuppressRule
	indent   []IndentBlockRule
	anchor   []AnchorIndentationRule
	align    []AlignTokensRule
	spaces   []AdjustSpacesRule
	lines    []AdjustNewLinesRule
}

// NewChain builds a chain over rules in order. Nil rules are skipped.
func NewChain(rules []Rule) *Chain {
	chain := &Chain{}
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		chain.rules = append(chain.rules, rule)
		if r, ok := rule.(SuppressRule); ok {
			chain.suppress = append(chain.suppress, r)
		}
		if r, ok := rule.(IndentBlockRule); ok {
			chain.indent = append(chain.indent, r)
		}
		if r, ok := rule.(AnchorIndentationRule); ok {
			chain.anchor = append(chain.anchor, r)
		}
		if r, ok := rule.(AlignTokensRule); ok {
			chain.align = append(chain.align, r)
		}
		if r, ok := rule.(AdjustSpacesRule); ok {
			chain.spaces = append(chain.spaces, r)
		}
		if r, ok := rule.(AdjustNewLinesRule); ok {
			chain.lines = append(chain.lines, r)
		}
	}
	return chain
}

// Rules returns the rules in chain order.
func (c *Chain) Rules() []Rule {
	return c.rules
}

// SuppressOperations runs the suppress chain for node.
func (c *Chain) SuppressOperations(list []*SuppressOperation, node *syntax.Node) []*SuppressOperation {
	return c.suppressFrom(0, list, node)
}

func (c *Chain) suppressFrom(idx int, list []*SuppressOperation, node *syntax.Node) []*SuppressOperation {
	if idx >= len(c.suppress) {
		return list
	}
	return c.suppress[idx].AddSuppressOperations(list, node, func(list []*SuppressOperation) []*SuppressOperation {
		return c.suppressFrom(idx+1, list, node)
	})
}

// IndentBlockOperations runs the indent block chain for node.
func (c *Chain) IndentBlockOperations(list []*IndentBlockOperation, node *syntax.Node) []*IndentBlockOperation {
	return c.indentFrom(0, list, node)
}

func (c *Chain) indentFrom(idx int, list []*IndentBlockOperation, node *syntax.Node) []*IndentBlockOperation {
	if idx >= len(c.indent) {
		return list
	}
	return c.indent[idx].AddIndentBlockOperations(list, node, func(list []*IndentBlockOperation) []*IndentBlockOperation {
		return c.indentFrom(idx+1, list, node)
	})
}

// AnchorIndentationOperations runs the anchor chain for node.
func (c *Chain) AnchorIndentationOperations(list []*AnchorIndentationOperation, node *syntax.Node) []*AnchorIndentationOperation {
	return c.anchorFrom(0, list, node)
}

func (c *Chain) anchorFrom(idx int, list []*AnchorIndentationOperation, node *syntax.Node) []*AnchorIndentationOperation {
	if idx >= len(c.anchor) {
		return list
	}
	return c.anchor[idx].AddAnchorIndentationOperations(list, node, func(list []*AnchorIndentationOperation) []*AnchorIndentationOperation {
		return c.anchorFrom(idx+1, list, node)
	})
}

// AlignTokensOperations runs the alignment chain for node.
func (c *Chain) AlignTokensOperations(list []*AlignTokensOperation, node *syntax.Node) []*AlignTokensOperation {
	return c.alignFrom(0, list, node)
}

func (c *Chain) alignFrom(idx int, list []*AlignTokensOperation, node *syntax.Node) []*AlignTokensOperation {
	if idx >= len(c.align) {
		return list
	}
	return c.align[idx].AddAlignTokensOperations(list, node, func(list []*AlignTokensOperation) []*AlignTokensOperation {
		return c.alignFrom(idx+1, list, node)
	})
}

// AdjustSpacesOperation runs the spacing chain for a token pair.
func (c *Chain) AdjustSpacesOperation(prev, cur *syntax.Token) *AdjustSpacesOperation {
	return c.spacesFrom(0, prev, cur)
}

func (c *Chain) spacesFrom(idx int, prev, cur *syntax.Token) *AdjustSpacesOperation {
	if idx >= len(c.spaces) {
		return nil
	}
	return c.spaces[idx].AdjustSpacesOperation(prev, cur, func() *AdjustSpacesOperation {
		return c.spacesFrom(idx+1, prev, cur)
	})
}

// AdjustNewLinesOperation runs the line-break chain for a token pair.
func (c *Chain) AdjustNewLinesOperation(prev, cur *syntax.Token) *AdjustNewLinesOperation {
	return c.linesFrom(0, prev, cur)
}

func (c *Chain) linesFrom(idx int, prev, cur *syntax.Token) *AdjustNewLinesOperation {
	if idx >= len(c.lines) {
		return nil
	}
	return c.lines[idx].AdjustNewLinesOperation(prev, cur, func() *AdjustNewLinesOperation {
		return c.linesFrom(idx+1, prev, cur)
	})
}
