package brace

import (
	"strings"

	"github.com/yaklabco/wsfmt/pkg/format"
	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// Rules returns the formatting rules for the options, in chain order.
func Rules(opts Options) []format.Rule {
	return []format.Rule{
		&suppressRule{opts: opts},
		&indentRule{},
		&anchorRule{},
		&alignRule{},
		&spacingRule{opts: opts},
		&lineRule{opts: opts},
	}
}

// suppressRule freezes fmt:off regions and keeps single-line blocks on
// one line.
type suppressRule struct {
	opts Options
}

func (r *suppressRule) Name() string { return "suppress" }

func (r *suppressRule) AddSuppressOperations(list []*format.SuppressOperation, node *syntax.Node, next format.NextSuppress) []*format.SuppressOperation {
	list = next(list)

	switch {
	case node.Kind == syntax.NodeRoot:
		list = append(list, formatOffRegions(node.Tokens())...)
	case node.Kind == NodeBlock && r.opts.KeepSingleLineBlocks:
		start := node.First()
		if isBody(node) {
			start = node.Parent.First()
		}
		list = append(list, format.NewSuppressOperation(start, node.Last(), format.SuppressNoWrappingIfOnSingleLine))
	}
	return list
}

// formatOffRegions returns a suppression for every region between a
// "// fmt:off" comment and the next "// fmt:on" comment (or the end of
// the file). The separator holding fmt:off is frozen with the region, so
// the first disabled line keeps its indentation. The separator holding
// fmt:on is formatted again.
func formatOffRegions(tokens []*syntax.Token) []*format.SuppressOperation {
	var ops []*format.SuppressOperation

	start := -1
	visit := func(idx int, pieces []syntax.Trivia) {
		for _, piece := range pieces {
			switch formatDirective(piece) {
			case "fmt:off":
				if start < 0 {
					start = max(idx-1, 0)
				}
			case "fmt:on":
				if start >= 0 && idx-1 > start {
					ops = append(ops, format.NewSuppressOperation(tokens[start], tokens[idx-1], format.SuppressDisableFormatting))
				}
				start = -1
			}
		}
	}

	for idx, tok := range tokens {
		if idx > 0 {
			visit(idx, tokens[idx-1].Trailing)
		}
		visit(idx, tok.Leading)
	}
	if start >= 0 && start < len(tokens)-1 {
		ops = append(ops, format.NewSuppressOperation(tokens[start], tokens[len(tokens)-1], format.SuppressDisableFormatting))
	}
	return ops
}

func formatDirective(piece syntax.Trivia) string {
	if piece.Kind != syntax.TriviaLineComment {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(piece.Text, "//"))
}

// indentRule indents block contents, non-block bodies and call arguments.
type indentRule struct{}

func (r *indentRule) Name() string { return "indent" }

func (r *indentRule) AddIndentBlockOperations(list []*format.IndentBlockOperation, node *syntax.Node, next format.NextIndentBlock) []*format.IndentBlockOperation {
	list = next(list)

	switch node.Kind {
	case NodeBlock:
		tokens := node.Tokens()
		if len(tokens) > 2 {
			list = append(list, format.NewIndentBlockOperation(tokens[1], tokens[len(tokens)-2], 1))
		}

	case NodeIf, NodeWhile, NodeElse:
		body := node.LastChild
		if node.Kind == NodeIf && node.FirstChild != nil {
			body = node.FirstChild.Next
		}
		if body != nil && !body.IsEmpty() && body.Kind != NodeBlock && !isElseIf(body) {
			list = append(list, format.NewIndentBlockOperation(body.First(), body.Last(), 1))
		}

	case NodeArgs:
		if node.HasChildren() {
			list = append(list, format.NewRelativeIndentBlockOperation(
				node.First(), node.FirstChild.First(), node.LastChild.Last(), 1,
				format.IndentRelativeToFirstTokenOnBaseTokenLine))
		}
	}
	return list
}

// anchorRule keeps continuation lines of a statement at their offset
// from the statement's first token.
type anchorRule struct{}

func (r *anchorRule) Name() string { return "anchor" }

func (r *anchorRule) AddAnchorIndentationOperations(list []*format.AnchorIndentationOperation, node *syntax.Node, next format.NextAnchorIndentation) []*format.AnchorIndentationOperation {
	list = next(list)
	if isStatement(node.Kind) && node.Kind != NodeBlock && !node.IsEmpty() {
		list = append(list, format.NewAnchorIndentationOperation(node.First(), node.First(), node.Last()))
	}
	return list
}

// alignRule lines up wrapped arguments and parameters with the first one.
type alignRule struct{}

func (r *alignRule) Name() string { return "align" }

func (r *alignRule) AddAlignTokensOperations(list []*format.AlignTokensOperation, node *syntax.Node, next format.NextAlignTokens) []*format.AlignTokensOperation {
	list = next(list)

	var heads []*syntax.Token
	switch node.Kind {
	case NodeArgs:
		for _, child := range node.Children() {
			heads = append(heads, child.First())
		}
	case NodeParams:
		for _, tok := range node.Tokens() {
			if tok.Kind == TokenIdent {
				heads = append(heads, tok)
			}
		}
	}
	if len(heads) > 1 {
		list = append(list, format.NewAlignTokensOperation(heads[0], heads[1:], format.AlignToBaseToken))
	}
	return list
}

// spacingRule decides the spaces between tokens that share a line.
type spacingRule struct {
	opts Options
}

func (r *spacingRule) Name() string { return "spacing" }

func (r *spacingRule) AdjustSpacesOperation(prev, cur *syntax.Token, next format.NextAdjustSpaces) *format.AdjustSpacesOperation {
	switch {
	case cur.IsEOF():
		return next()
	case prev.Kind == TokenIf || prev.Kind == TokenWhile:
		return format.Spaces(1, format.SpaceForce)
	case prev.Kind == TokenLParen || cur.Kind == TokenRParen:
		return format.Spaces(0, format.SpaceForceIfOnSingleLine)
	case cur.Kind == TokenComma || cur.Kind == TokenSemicolon:
		return format.Spaces(0, format.SpaceForceIfOnSingleLine)
	case prev.Kind == TokenComma:
		return format.Spaces(1, format.SpaceForceIfOnSingleLine)
	case prev.Kind == TokenSemicolon:
		return format.Spaces(1, format.SpacePreserve)
	case prev.Kind == TokenLBrace && cur.Kind == TokenRBrace:
		return format.Spaces(0, format.SpaceForceIfOnSingleLine)
	case isUnaryOperator(prev):
		return format.Spaces(0, format.SpaceForceIfOnSingleLine)
	case isBinaryOperator(prev) || isBinaryOperator(cur):
		if r.opts.SpaceAroundOperators {
			return format.Spaces(1, format.SpaceForceIfOnSingleLine)
		}
		return format.Spaces(0, format.SpaceForceIfOnSingleLine)
	case cur.Kind == TokenLParen && (prev.Kind == TokenIdent || prev.Kind == TokenRParen):
		return format.Spaces(0, format.SpaceForceIfOnSingleLine)
	}
	return format.Spaces(1, format.SpaceForceIfOnSingleLine)
}

// lineRule places statements, braces and the final newline.
type lineRule struct {
	opts Options
}

func (r *lineRule) Name() string { return "lines" }

func (r *lineRule) AdjustNewLinesOperation(prev, cur *syntax.Token, next format.NextAdjustNewLines) *format.AdjustNewLinesOperation {
	switch {
	case cur.IsEOF():
		if r.opts.InsertFinalNewline {
			return format.NewLines(1, format.LineForce)
		}
		return next()
	case cur.Kind == TokenElse:
		if prev.Kind == TokenRBrace && r.opts.BraceStyle == BraceStyleKR {
			return format.NewLines(0, format.LineForce)
		}
		return format.NewLines(1, format.LinePreserve)
	}

	if stmt := statementAt(cur); stmt != nil {
		switch {
		case isElseIf(stmt):
			return next()
		case stmt.Kind == NodeBlock && isBody(stmt) && r.opts.BraceStyle == BraceStyleKR:
			return format.NewLines(0, format.LineForce)
		}
		return format.NewLines(1, format.LinePreserve)
	}

	switch {
	case cur.Kind == TokenRBrace && cur.Parent != nil && cur.Parent.Kind == NodeBlock:
		if prev.Kind == TokenLBrace && prev.Parent == cur.Parent {
			return next()
		}
		return format.NewLines(1, format.LinePreserve)
	case prev.Kind == TokenLParen && inArgs(prev), cur.Kind == TokenRParen && inArgs(cur):
		return format.NewLines(0, format.LinePreserve)
	}
	return next()
}

// statementAt returns the statement that begins with tok, or nil.
func statementAt(tok *syntax.Token) *syntax.Node {
	n := tok.Parent
	if n == nil || n.Kind == syntax.NodeRoot || n.FirstToken != tok.Index {
		return nil
	}
	for n.Parent != nil && n.Parent.Kind != syntax.NodeRoot && n.Parent.FirstToken == tok.Index {
		n = n.Parent
	}
	if !isStatement(n.Kind) {
		return nil
	}
	return n
}

// isBody reports whether n is the body of a compound statement.
func isBody(n *syntax.Node) bool {
	if n.Parent == nil {
		return false
	}
	switch n.Parent.Kind {
	case NodeIf, NodeWhile, NodeElse, NodeFunc:
		return true
	}
	return false
}

func isElseIf(n *syntax.Node) bool {
	return n.Kind == NodeIf && n.Parent != nil && n.Parent.Kind == NodeElse
}

func inArgs(tok *syntax.Token) bool {
	return tok.Parent != nil && tok.Parent.Kind == NodeArgs
}

func isUnaryOperator(tok *syntax.Token) bool {
	return tok.Kind == TokenOperator && tok.Parent != nil &&
		tok.Parent.Kind == NodeUnary && tok.Parent.FirstToken == tok.Index
}

func isBinaryOperator(tok *syntax.Token) bool {
	return tok.Kind == TokenOperator && tok.Parent != nil && tok.Parent.Kind == NodeBinary
}
