package parser

import (
	"fmt"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/token"
)

// lexer tokenizes HCL source in "source mode" (spec §4.1). Quoted
// strings and heredocs are captured whole as a single token.TemplateStr
// token; package parser re-scans their raw text on demand to build the
// structural Template AST (see template.go).
type lexer struct {
	c *cursor
}

func newLexer(filename string, src []byte) *lexer {
	return &lexer{c: newCursor(filename, src)}
}

func (l *lexer) next() (token.Token, error) {
	l.skipInsignificant()
	start := l.c.pos()
	if l.c.eof() {
		return token.Token{Type: token.EOF, Rng: l.c.rangeFrom(start)}, nil
	}

	b := l.c.peek()
	switch {
	case b == '\n':
		l.c.advance()
		return l.tok(token.Newline, start), nil
	case b == '"':
		return l.lexQuoted(start)
	case b == '<' && l.c.peekAt(1) == '<':
		return l.lexHeredocOpener(start)
	case isIdentStartByte(b):
		return l.lexIdentOrKeyword(start)
	case isDigit(b):
		return l.lexNumber(start)
	default:
		return l.lexPunctOrOperator(start)
	}
}

func (l *lexer) tok(t token.Type, start ast.Pos) token.Token {
	rng := l.c.rangeFrom(start)
	return token.Token{Type: t, Bytes: l.c.src[start.Byte:l.c.off], Rng: rng}
}

// skipInsignificant consumes whitespace (other than newlines, which are
// significant in body/attribute grammar) and comments.
func (l *lexer) skipInsignificant() {
	for {
		if l.c.eof() {
			return
		}
		b := l.c.peek()
		switch {
		case b == ' ' || b == '\t' || b == '\r':
			l.c.advance()
		case b == '#':
			l.skipLineComment()
		case b == '/' && l.c.peekAt(1) == '/':
			l.skipLineComment()
		case b == '/' && l.c.peekAt(1) == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *lexer) skipLineComment() {
	for !l.c.eof() && l.c.peek() != '\n' {
		l.c.advance()
	}
}

func (l *lexer) skipBlockComment() {
	l.c.advance() // /
	l.c.advance() // *
	for {
		if l.c.eof() {
			return
		}
		if l.c.peek() == '*' && l.c.peekAt(1) == '/' {
			l.c.advance()
			l.c.advance()
			return
		}
		l.c.advance()
	}
}

func (l *lexer) lexQuoted(start ast.Pos) (token.Token, error) {
	l.c.advance() // opening "
	raw, err := l.c.scanQuotedRaw()
	if err != nil {
		return token.Token{}, fmt.Errorf("lexical error: %w", err)
	}
	return token.Token{Type: token.TemplateStr, Bytes: []byte(raw), Rng: l.c.rangeFrom(start)}, nil
}

func (l *lexer) lexHeredocOpener(start ast.Pos) (token.Token, error) {
	l.c.advance() // <
	l.c.advance() // <
	flush := false
	if l.c.peek() == '-' {
		flush = true
		l.c.advance()
	}
	tagStart := l.c.off
	for !l.c.eof() && isIdentCont(l.c.peek()) {
		l.c.advance()
	}
	tag := string(l.c.src[tagStart:l.c.off])
	if tag == "" {
		return token.Token{}, fmt.Errorf("lexical error: missing heredoc tag at %s", l.c.rangeFrom(start))
	}
	// consume to end of opener line (any trailing whitespace), then the newline
	for !l.c.eof() && l.c.peek() != '\n' {
		if l.c.peek() != ' ' && l.c.peek() != '\t' && l.c.peek() != '\r' {
			return token.Token{}, fmt.Errorf("lexical error: unexpected content after heredoc tag %q", tag)
		}
		l.c.advance()
	}
	if l.c.eof() {
		return token.Token{}, fmt.Errorf("lexical error: unterminated heredoc %q: missing newline after opener", tag)
	}
	l.c.advance() // newline

	body, closeIndent, err := l.c.scanHeredocRaw(tag, flush)
	if err != nil {
		return token.Token{}, fmt.Errorf("lexical error: %w", err)
	}
	if flush {
		body = dedentHeredoc(body, closeIndent)
	}
	return token.Token{Type: token.TemplateStr, Bytes: []byte(body), Rng: l.c.rangeFrom(start), Heredoc: true, Flush: flush}, nil
}

func (l *lexer) lexIdentOrKeyword(start ast.Pos) (token.Token, error) {
	for !l.c.eof() && isIdentCont(l.c.peek()) {
		l.c.advance()
	}
	return l.tok(token.Ident, start), nil
}

func (l *lexer) lexNumber(start ast.Pos) (token.Token, error) {
	for !l.c.eof() && isDigit(l.c.peek()) {
		l.c.advance()
	}
	if l.c.peek() == '.' && isDigit(l.c.peekAt(1)) {
		l.c.advance()
		for !l.c.eof() && isDigit(l.c.peek()) {
			l.c.advance()
		}
	}
	if l.c.peek() == 'e' || l.c.peek() == 'E' {
		save := l.c.off
		savedLine, savedCol := l.c.line, l.c.col
		l.c.advance()
		if l.c.peek() == '+' || l.c.peek() == '-' {
			l.c.advance()
		}
		if isDigit(l.c.peek()) {
			for !l.c.eof() && isDigit(l.c.peek()) {
				l.c.advance()
			}
		} else {
			l.c.off, l.c.line, l.c.col = save, savedLine, savedCol
		}
	}
	return l.tok(token.Number, start), nil
}

func (l *lexer) lexPunctOrOperator(start ast.Pos) (token.Token, error) {
	b := l.c.advance()
	switch b {
	case '{':
		return l.tok(token.OBrace, start), nil
	case '}':
		return l.tok(token.CBrace, start), nil
	case '[':
		return l.tok(token.OBrack, start), nil
	case ']':
		return l.tok(token.CBrack, start), nil
	case '(':
		return l.tok(token.OParen, start), nil
	case ')':
		return l.tok(token.CParen, start), nil
	case ',':
		return l.tok(token.Comma, start), nil
	case '.':
		if l.c.peek() == '*' {
			l.c.advance()
			return l.tok(token.DotStar, start), nil
		}
		if l.c.peek() == '.' && l.c.peekAt(1) == '.' {
			l.c.advance()
			l.c.advance()
			return l.tok(token.Ellipsis, start), nil
		}
		return l.tok(token.Dot, start), nil
	case ':':
		return l.tok(token.Colon, start), nil
	case '?':
		return l.tok(token.Question, start), nil
	case '=':
		if l.c.peek() == '=' {
			l.c.advance()
			return l.tok(token.EqualEqual, start), nil
		}
		if l.c.peek() == '>' {
			l.c.advance()
			return l.tok(token.Arrow, start), nil
		}
		return l.tok(token.Equal, start), nil
	case '+':
		return l.tok(token.Plus, start), nil
	case '-':
		return l.tok(token.Minus, start), nil
	case '*':
		return l.tok(token.Star, start), nil
	case '/':
		return l.tok(token.Slash, start), nil
	case '%':
		return l.tok(token.Percent, start), nil
	case '!':
		if l.c.peek() == '=' {
			l.c.advance()
			return l.tok(token.NotEqual, start), nil
		}
		return l.tok(token.Bang, start), nil
	case '<':
		if l.c.peek() == '=' {
			l.c.advance()
			return l.tok(token.LessEqual, start), nil
		}
		return l.tok(token.LessThan, start), nil
	case '>':
		if l.c.peek() == '=' {
			l.c.advance()
			return l.tok(token.GreaterEqual, start), nil
		}
		return l.tok(token.GreaterThan, start), nil
	case '&':
		if l.c.peek() == '&' {
			l.c.advance()
			return l.tok(token.AndAnd, start), nil
		}
	case '|':
		if l.c.peek() == '|' {
			l.c.advance()
			return l.tok(token.OrOr, start), nil
		}
	}
	return token.Token{}, fmt.Errorf("lexical error: unexpected character %q at %s", b, l.c.rangeFrom(start))
}

func isIdentStartByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentCont(b byte) bool {
	return isIdentStartByte(b) || isDigit(b) || b == '-'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
