package brace

import (
	"context"
	"fmt"

	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// SyntaxError describes a recovered parse error. Line and Column are
// 1-based; Column counts bytes.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Parse builds a syntax tree for content. Syntax errors do not stop the
// parse: the parser inserts zero-width missing tokens or wraps stray
// tokens in error nodes, and reports what it recovered from.
func Parse(ctx context.Context, path string, content []byte) (*syntax.Tree, []SyntaxError, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("parse cancelled: %w", err)
	}

	p := &parser{in: Lex(content)}
	root := syntax.NewNode(syntax.NodeRoot)
	for !p.at(syntax.TokenEOF) {
		syntax.AppendChild(root, p.statement(false))
	}
	p.out = append(p.out, p.peek())
	syntax.SetTokenRange(root, 0, len(p.out)-1)

	tree := syntax.NewTree(path, p.out, root)

	errs := make([]SyntaxError, 0, len(p.errors))
	for _, perr := range p.errors {
		line, col := tree.LineAt(tree.Tokens[perr.token].Offset)
		errs = append(errs, SyntaxError{Line: line, Column: col, Message: perr.message})
	}
	return tree, errs, nil
}

type parseError struct {
	token   int
	message string
}

type parser struct {
	in  []*syntax.Token
	pos int

	out    []*syntax.Token
	errors []parseError
}

func (p *parser) peek() *syntax.Token {
	return p.in[p.pos]
}

func (p *parser) at(kind syntax.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *parser) atOperator(text string) bool {
	tok := p.peek()
	return tok.Kind == TokenOperator && tok.Text == text
}

// advance moves the current token to the output. EOF is never consumed.
func (p *parser) advance() {
	tok := p.peek()
	if tok.IsEOF() {
		return
	}
	p.out = append(p.out, tok)
	p.pos++
}

func (p *parser) expect(kind syntax.TokenKind) {
	if p.at(kind) {
		p.advance()
		return
	}
	p.missing(kind)
}

func (p *parser) missing(kind syntax.TokenKind) {
	p.out = append(p.out, &syntax.Token{Kind: kind, Missing: true})
	p.errors = append(p.errors, parseError{
		token:   len(p.out) - 1,
		message: fmt.Sprintf("expected %s, found %s", TokenName(kind), TokenName(p.peek().Kind)),
	})
}

func (p *parser) open(kind syntax.NodeKind) *syntax.Node {
	n := syntax.NewNode(kind)
	n.FirstToken = len(p.out)
	return n
}

func (p *parser) close(n *syntax.Node) *syntax.Node {
	n.LastToken = len(p.out) - 1
	return n
}

// statement parses one statement. Embedded statements (if and while
// bodies) never consume a closing brace.
func (p *parser) statement(embedded bool) *syntax.Node {
	switch tok := p.peek(); {
	case tok.Kind == TokenLBrace:
		return p.block()
	case tok.Kind == TokenIf:
		return p.ifStatement()
	case tok.Kind == TokenWhile:
		return p.whileStatement()
	case tok.Kind == TokenReturn:
		return p.returnStatement()
	case tok.Kind == TokenFunc:
		return p.funcDecl()
	case tok.Kind == TokenSemicolon:
		n := p.open(NodeEmptyStmt)
		p.advance()
		return p.close(n)
	case startsExpression(tok):
		n := p.open(NodeExprStmt)
		syntax.AppendChild(n, p.expression(0))
		p.expect(TokenSemicolon)
		return p.close(n)
	case embedded && (tok.Kind == TokenRBrace || tok.IsEOF()):
		n := p.open(NodeEmptyStmt)
		p.missing(TokenSemicolon)
		return p.close(n)
	}

	n := p.open(NodeError)
	p.errors = append(p.errors, parseError{
		token:   len(p.out),
		message: "unexpected " + TokenName(p.peek().Kind),
	})
	p.advance()
	return p.close(n)
}

func (p *parser) block() *syntax.Node {
	n := p.open(NodeBlock)
	p.expect(TokenLBrace)
	for !p.at(TokenRBrace) && !p.at(syntax.TokenEOF) {
		syntax.AppendChild(n, p.statement(false))
	}
	p.expect(TokenRBrace)
	return p.close(n)
}

// condition parses a parenthesized condition.
func (p *parser) condition() *syntax.Node {
	n := p.open(NodeParen)
	p.expect(TokenLParen)
	syntax.AppendChild(n, p.expression(0))
	p.expect(TokenRParen)
	return p.close(n)
}

func (p *parser) ifStatement() *syntax.Node {
	n := p.open(NodeIf)
	p.advance()
	syntax.AppendChild(n, p.condition())
	syntax.AppendChild(n, p.statement(true))
	if p.at(TokenElse) {
		clause := p.open(NodeElse)
		p.advance()
		syntax.AppendChild(clause, p.statement(true))
		syntax.AppendChild(n, p.close(clause))
	}
	return p.close(n)
}

func (p *parser) whileStatement() *syntax.Node {
	n := p.open(NodeWhile)
	p.advance()
	syntax.AppendChild(n, p.condition())
	syntax.AppendChild(n, p.statement(true))
	return p.close(n)
}

func (p *parser) returnStatement() *syntax.Node {
	n := p.open(NodeReturn)
	p.advance()
	if startsExpression(p.peek()) {
		syntax.AppendChild(n, p.expression(0))
	}
	p.expect(TokenSemicolon)
	return p.close(n)
}

func (p *parser) funcDecl() *syntax.Node {
	n := p.open(NodeFunc)
	p.advance()
	p.expect(TokenIdent)

	params := p.open(NodeParams)
	p.expect(TokenLParen)
	if !p.at(TokenRParen) {
		p.expect(TokenIdent)
		for p.at(TokenComma) {
			p.advance()
			p.expect(TokenIdent)
		}
	}
	p.expect(TokenRParen)
	syntax.AppendChild(n, p.close(params))

	syntax.AppendChild(n, p.block())
	return p.close(n)
}

// Binary operator precedence; higher binds tighter.
var precedence = map[string]int{
	"=":  1,
	"||": 2,
	"&&": 3,
	"==": 4, "!=": 4,
	"<": 5, ">": 5, "<=": 5, ">=": 5,
	"+": 6, "-": 6,
	"*": 7, "/": 7, "%": 7,
}

// expression parses a binary expression whose operators bind at least as
// tightly as minPrec. Assignment is right-associative.
func (p *parser) expression(minPrec int) *syntax.Node {
	left := p.unary()
	for {
		tok := p.peek()
		prec, ok := precedence[tok.Text]
		if tok.Kind != TokenOperator || !ok || prec < minPrec {
			return left
		}

		n := syntax.NewNode(NodeBinary)
		n.FirstToken = left.FirstToken
		syntax.AppendChild(n, left)
		p.advance()

		next := prec + 1
		if tok.Text == "=" {
			next = prec
		}
		syntax.AppendChild(n, p.expression(next))
		left = p.close(n)
	}
}

func (p *parser) unary() *syntax.Node {
	if p.atOperator("!") || p.atOperator("-") {
		n := p.open(NodeUnary)
		p.advance()
		syntax.AppendChild(n, p.unary())
		return p.close(n)
	}

	expr := p.primary()
	for p.at(TokenLParen) {
		call := syntax.NewNode(NodeCall)
		call.FirstToken = expr.FirstToken
		syntax.AppendChild(call, expr)
		syntax.AppendChild(call, p.arguments())
		expr = p.close(call)
	}
	return expr
}

func (p *parser) arguments() *syntax.Node {
	n := p.open(NodeArgs)
	p.expect(TokenLParen)
	if !p.at(TokenRParen) {
		syntax.AppendChild(n, p.expression(0))
		for p.at(TokenComma) {
			p.advance()
			syntax.AppendChild(n, p.expression(0))
		}
	}
	p.expect(TokenRParen)
	return p.close(n)
}

func (p *parser) primary() *syntax.Node {
	switch p.peek().Kind {
	case TokenIdent:
		n := p.open(NodeName)
		p.advance()
		return p.close(n)
	case TokenNumber, TokenString:
		n := p.open(NodeLiteral)
		p.advance()
		return p.close(n)
	case TokenLParen:
		n := p.open(NodeParen)
		p.advance()
		syntax.AppendChild(n, p.expression(0))
		p.expect(TokenRParen)
		return p.close(n)
	}

	n := p.open(NodeName)
	p.missing(TokenIdent)
	return p.close(n)
}

func startsExpression(tok *syntax.Token) bool {
	switch tok.Kind {
	case TokenIdent, TokenNumber, TokenString, TokenLParen:
		return true
	case TokenOperator:
		return tok.Text == "!" || tok.Text == "-"
	}
	return false
}
