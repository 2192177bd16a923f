// Package brace implements a small C-like language and its formatting
// rules. It serves as the reference language for the formatting engine.
package brace

import "github.com/yaklabco/wsfmt/pkg/syntax"

// Token kinds.
const (
	TokenIdent syntax.TokenKind = syntax.TokenFirstLanguageKind + iota
	TokenNumber
	TokenString
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenSemicolon
	TokenComma
	TokenOperator
	TokenIf
	TokenElse
	TokenWhile
	TokenReturn
	TokenFunc
)

var keywords = map[string]syntax.TokenKind{
	"if":     TokenIf,
	"else":   TokenElse,
	"while":  TokenWhile,
	"return": TokenReturn,
	"func":   TokenFunc,
}

// TokenName returns a readable name for a token kind.
func TokenName(kind syntax.TokenKind) string {
	switch kind {
	case syntax.TokenEOF:
		return "EOF"
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenLBrace:
		return "'{'"
	case TokenRBrace:
		return "'}'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenSemicolon:
		return "';'"
	case TokenComma:
		return "','"
	case TokenOperator:
		return "operator"
	case TokenIf:
		return "if"
	case TokenElse:
		return "else"
	case TokenWhile:
		return "while"
	case TokenReturn:
		return "return"
	case TokenFunc:
		return "func"
	default:
		return "unknown"
	}
}

// Node kinds.
const (
	NodeBlock syntax.NodeKind = syntax.NodeRoot + 1 + iota
	NodeIf
	NodeElse
	NodeWhile
	NodeReturn
	NodeFunc
	NodeParams
	NodeExprStmt
	NodeEmptyStmt
	NodeCall
	NodeArgs
	NodeBinary
	NodeUnary
	NodeParen
	NodeName
	NodeLiteral
	NodeError
)

// KindName returns a readable name for a node kind.
func KindName(kind syntax.NodeKind) string {
	switch kind {
	case syntax.NodeRoot:
		return "Program"
	case NodeBlock:
		return "Block"
	case NodeIf:
		return "If"
	case NodeElse:
		return "Else"
	case NodeWhile:
		return "While"
	case NodeReturn:
		return "Return"
	case NodeFunc:
		return "Func"
	case NodeParams:
		return "Params"
	case NodeExprStmt:
		return "ExprStmt"
	case NodeEmptyStmt:
		return "EmptyStmt"
	case NodeCall:
		return "Call"
	case NodeArgs:
		return "Args"
	case NodeBinary:
		return "Binary"
	case NodeUnary:
		return "Unary"
	case NodeParen:
		return "Paren"
	case NodeName:
		return "Name"
	case NodeLiteral:
		return "Literal"
	case NodeError:
		return "Error"
	default:
		return "Unknown"
	}
}

// isStatement reports whether a node kind is a statement.
func isStatement(kind syntax.NodeKind) bool {
	switch kind {
	case NodeBlock, NodeIf, NodeWhile, NodeReturn, NodeFunc, NodeExprStmt, NodeEmptyStmt, NodeError:
		return true
	}
	return false
}
