package syntax

import "strings"

// TokenKind classifies a token. Language packages define their own kinds
// starting at TokenFirstLanguageKind.
type TokenKind uint16

// Token kinds shared by every language.
const (
	// TokenEOF terminates every token stream. Its leading trivia holds the
	// trivia that follows the last real token of the file.
	TokenEOF TokenKind = iota

	// TokenFirstLanguageKind is the first kind available to language packages.
	TokenFirstLanguageKind
)

// TriviaKind classifies a piece of trivia.
type TriviaKind uint8

// Trivia kinds.
const (
	TriviaWhitespace TriviaKind = iota
	TriviaEndOfLine
	TriviaLineComment
	TriviaBlockComment
	TriviaDirective
	TriviaSkipped
)

// String returns a short name for the trivia kind.
func (k TriviaKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "whitespace"
	case TriviaEndOfLine:
		return "eol"
	case TriviaLineComment:
		return "line-comment"
	case TriviaBlockComment:
		return "block-comment"
	case TriviaDirective:
		return "directive"
	case TriviaSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Trivia is a run of non-token text attached to a token.
type Trivia struct {
	Kind TriviaKind
	Text string

	// Elastic marks synthesized trivia that must be reformatted regardless
	// of its current shape.
	Elastic bool
}

// IsNoise reports whether the trivia carries content other than whitespace
// and line breaks.
func (tr Trivia) IsNoise() bool {
	return tr.Kind != TriviaWhitespace && tr.Kind != TriviaEndOfLine
}

// Whitespace returns a whitespace trivia piece.
func Whitespace(text string) Trivia {
	return Trivia{Kind: TriviaWhitespace, Text: text}
}

// EndOfLine returns an end-of-line trivia piece.
func EndOfLine(text string) Trivia {
	return Trivia{Kind: TriviaEndOfLine, Text: text}
}

// Token is an atomic lexical unit with its surrounding trivia.
//
// Trailing trivia runs up to and including the first end-of-line after the
// token; everything after that belongs to the next token's leading trivia.
type Token struct {
	// Kind classifies the token.
	Kind TokenKind

	// Text is the token's source text. Empty for missing tokens and EOF.
	Text string

	// Leading and Trailing hold the attached trivia in source order.
	Leading  []Trivia
	Trailing []Trivia

	// Missing marks a zero-width token inserted by the parser to recover
	// from a syntax error.
	Missing bool

	// Index is the position of the token in Tree.Tokens.
	Index int

	// Offset is the byte index of the first byte of Text.
	Offset int

	// Parent is the innermost node whose range includes the token.
	Parent *Node
}

// End returns the byte index just past Text.
func (t *Token) End() int {
	return t.Offset + len(t.Text)
}

// FullStart returns the byte index where the leading trivia begins.
func (t *Token) FullStart() int {
	return t.Offset - TriviaLen(t.Leading)
}

// FullEnd returns the byte index just past the trailing trivia.
func (t *Token) FullEnd() int {
	return t.End() + TriviaLen(t.Trailing)
}

// IsEOF reports whether the token terminates the stream.
func (t *Token) IsEOF() bool {
	return t.Kind == TokenEOF
}

// LeadingText returns the concatenated leading trivia.
func (t *Token) LeadingText() string {
	return TriviaText(t.Leading)
}

// TrailingText returns the concatenated trailing trivia.
func (t *Token) TrailingText() string {
	return TriviaText(t.Trailing)
}

// FullText returns leading trivia, token text, and trailing trivia.
func (t *Token) FullText() string {
	var sb strings.Builder
	sb.Grow(t.FullEnd() - t.FullStart())
	writeTrivia(&sb, t.Leading)
	sb.WriteString(t.Text)
	writeTrivia(&sb, t.Trailing)
	return sb.String()
}

// Clone returns a shallow copy of the token with its own trivia slices.
func (t *Token) Clone() *Token {
	clone := *t
	clone.Leading = append([]Trivia(nil), t.Leading...)
	clone.Trailing = append([]Trivia(nil), t.Trailing...)
	return &clone
}

// TriviaText concatenates the text of a trivia list.
func TriviaText(list []Trivia) string {
	switch len(list) {
	case 0:
		return ""
	case 1:
		return list[0].Text
	}
	var sb strings.Builder
	writeTrivia(&sb, list)
	return sb.String()
}

// TriviaLen returns the byte length of a trivia list.
func TriviaLen(list []Trivia) int {
	n := 0
	for _, tr := range list {
		n += len(tr.Text)
	}
	return n
}

func writeTrivia(sb *strings.Builder, list []Trivia) {
	for _, tr := range list {
		sb.WriteString(tr.Text)
	}
}
