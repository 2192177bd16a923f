package brace

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// Lex splits content into tokens with attached trivia. The result always
// ends with an EOF token whose leading trivia holds the end of the file.
// Characters that cannot start a token become skipped-text trivia.
func Lex(content []byte) []*syntax.Token {
	lex := &lexer{src: string(content), lineStart: true}

	var tokens []*syntax.Token
	for {
		leading := lex.trivia(false)
		if lex.pos >= len(lex.src) {
			return append(tokens, &syntax.Token{Kind: syntax.TokenEOF, Leading: leading})
		}
		tok := lex.token()
		tok.Leading = leading
		tok.Trailing = lex.trivia(true)
		tokens = append(tokens, tok)
	}
}

type lexer struct {
	src string
	pos int

	// lineStart is true while only whitespace has been seen on the line.
	lineStart bool
}

// trivia scans trivia at the current position. Trailing trivia stops after
// the first line break.
func (l *lexer) trivia(trailing bool) []syntax.Trivia {
	var pieces []syntax.Trivia
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\f' || c == '\v':
			pieces = append(pieces, syntax.Whitespace(l.run(isBlank)))

		case c == '\n' || c == '\r':
			pieces = append(pieces, syntax.EndOfLine(l.newline()))
			l.lineStart = true
			if trailing {
				return pieces
			}

		case strings.HasPrefix(l.src[l.pos:], "//"):
			pieces = append(pieces, l.piece(syntax.TriviaLineComment, l.lineEnd()))

		case strings.HasPrefix(l.src[l.pos:], "/*"):
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				end = len(l.src)
			} else {
				end += l.pos + 4
			}
			pieces = append(pieces, l.piece(syntax.TriviaBlockComment, end))

		case c == '#' && l.lineStart:
			pieces = append(pieces, l.piece(syntax.TriviaDirective, l.lineEnd()))

		case startsToken(l.src[l.pos:]):
			return pieces

		default:
			start := l.pos
			for l.pos < len(l.src) && !l.boundary() {
				_, size := utf8.DecodeRuneInString(l.src[l.pos:])
				l.pos += size
			}
			l.lineStart = false
			pieces = append(pieces, syntax.Trivia{Kind: syntax.TriviaSkipped, Text: l.src[start:l.pos]})
		}
	}
	return pieces
}

// boundary reports whether skipped text ends at the current position.
func (l *lexer) boundary() bool {
	rest := l.src[l.pos:]
	c := rest[0]
	return isBlank(c) || c == '\n' || c == '\r' || startsToken(rest) ||
		strings.HasPrefix(rest, "//") || strings.HasPrefix(rest, "/*")
}

func (l *lexer) piece(kind syntax.TriviaKind, end int) syntax.Trivia {
	text := l.src[l.pos:end]
	l.pos = end
	l.lineStart = false
	return syntax.Trivia{Kind: kind, Text: text}
}

func (l *lexer) run(accept func(byte) bool) string {
	start := l.pos
	for l.pos < len(l.src) && accept(l.src[l.pos]) {
		l.pos++
	}
	return l.src[start:l.pos]
}

func (l *lexer) newline() string {
	if strings.HasPrefix(l.src[l.pos:], "\r\n") {
		l.pos += 2
		return "\r\n"
	}
	text := l.src[l.pos : l.pos+1]
	l.pos++
	return text
}

// lineEnd returns the offset of the next line break or the end of input.
func (l *lexer) lineEnd() int {
	if idx := strings.IndexAny(l.src[l.pos:], "\r\n"); idx >= 0 {
		return l.pos + idx
	}
	return len(l.src)
}

func (l *lexer) token() *syntax.Token {
	l.lineStart = false
	rest := l.src[l.pos:]
	start := l.pos

	r, size := utf8.DecodeRuneInString(rest)
	switch {
	case isIdentStart(r):
		l.pos += size
		for l.pos < len(l.src) {
			r, size = utf8.DecodeRuneInString(l.src[l.pos:])
			if !isIdentStart(r) && !unicode.IsDigit(r) {
				break
			}
			l.pos += size
		}
		text := l.src[start:l.pos]
		if kind, ok := keywords[text]; ok {
			return &syntax.Token{Kind: kind, Text: text}
		}
		return &syntax.Token{Kind: TokenIdent, Text: text}

	case isDigit(rest[0]):
		l.run(isDigit)
		if strings.HasPrefix(l.src[l.pos:], ".") && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
			l.pos++
			l.run(isDigit)
		}
		return &syntax.Token{Kind: TokenNumber, Text: l.src[start:l.pos]}

	case rest[0] == '"':
		l.pos++
		for l.pos < len(l.src) {
			c := l.src[l.pos]
			if c == '\n' || c == '\r' {
				break
			}
			l.pos++
			if c == '\\' && l.pos < len(l.src) {
				l.pos++
				continue
			}
			if c == '"' {
				break
			}
		}
		return &syntax.Token{Kind: TokenString, Text: l.src[start:l.pos]}
	}

	if kind, ok := punctuation[rest[0]]; ok {
		l.pos++
		return &syntax.Token{Kind: kind, Text: rest[:1]}
	}

	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			l.pos += len(op)
			return &syntax.Token{Kind: TokenOperator, Text: op}
		}
	}

	panic("brace: token() called at a position that starts no token")
}

var punctuation = map[byte]syntax.TokenKind{
	'{': TokenLBrace,
	'}': TokenRBrace,
	'(': TokenLParen,
	')': TokenRParen,
	';': TokenSemicolon,
	',': TokenComma,
}

// operators is ordered so longer spellings match first.
var operators = []string{"==", "!=", "<=", ">=", "&&", "||", "=", "+", "-", "*", "/", "%", "<", ">", "!"}

func startsToken(rest string) bool {
	r, _ := utf8.DecodeRuneInString(rest)
	if isIdentStart(r) || isDigit(rest[0]) || rest[0] == '"' {
		return true
	}
	if _, ok := punctuation[rest[0]]; ok {
		return true
	}
	if strings.HasPrefix(rest, "//") || strings.HasPrefix(rest, "/*") {
		return false
	}
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			return true
		}
	}
	return false
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f' || c == '\v'
}
