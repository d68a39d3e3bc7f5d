package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/token"
)

// exprFromTemplateToken decides, per spec §4.2, whether a TemplateStr
// token folds into a plain string LiteralValueExpr (when its raw text
// contains no unescaped "${" or "%{") or must be kept as a TemplateExpr
// for deferred structural parsing.
func exprFromTemplateToken(t token.Token, filename string) (ast.Expression, error) {
	raw := string(t.Bytes)
	if !containsInterpolationOrDirective(raw) {
		if t.Heredoc {
			// heredoc text keeps backslashes as written; only "$$"/"%%" decode
			unescaped := strings.NewReplacer("$$", "$", "%%", "%").Replace(raw)
			return &ast.LiteralValueExpr{Val: ast.String(unescaped), Rng: t.Rng}, nil
		}
		decoded, err := decodeQuotedEscapes(raw)
		if err != nil {
			return nil, fmt.Errorf("parse error: %w (at %s)", err, t.Rng)
		}
		return &ast.LiteralValueExpr{Val: ast.String(decoded), Rng: t.Rng}, nil
	}
	return &ast.TemplateExpr{Raw: raw, Quoted: !t.Heredoc, Rng: t.Rng}, nil
}

// containsInterpolationOrDirective reports whether raw contains an
// unescaped "${" or "%{" marker. "$$"/"%%" are the literal-preserving
// escapes (spec §4.1) and never count; backslash escapes are skipped so
// an escaped backslash just before a '$'/'%' doesn't suppress it.
func containsInterpolationOrDirective(raw string) bool {
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		switch b {
		case '\\':
			i++ // skip escaped byte
		case '$', '%':
			if i+1 < len(raw) && raw[i+1] == b {
				i++ // "$$" or "%%": literal escape, skip both
				continue
			}
			if i+1 < len(raw) && raw[i+1] == '{' {
				return true
			}
		}
	}
	return false
}

// decodeQuotedEscapes decodes the backslash escapes and the "$$"/"%%"
// literal-preserving escapes recognized inside quoted strings and quoted
// block labels (spec §4.1). Heredocs do not use it: their literal text
// only has the "$$"/"%%" escapes decoded (see exprFromTemplateToken).
func decodeQuotedEscapes(raw string) (string, error) {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			if (c == '$' || c == '%') && i+1 < len(raw) && raw[i+1] == c {
				b.WriteByte(c)
				i++
				continue
			}
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(raw) {
			return "", fmt.Errorf("unterminated escape sequence")
		}
		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '$':
			b.WriteByte('$')
		case '%':
			b.WriteByte('%')
		case 'u':
			r, consumed, err := decodeUnicodeEscape(raw[i+1:], 4)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += consumed
		case 'U':
			r, consumed, err := decodeUnicodeEscape(raw[i+1:], 8)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += consumed
		default:
			return "", fmt.Errorf("invalid escape sequence %q", "\\"+string(raw[i]))
		}
	}
	return b.String(), nil
}

// decodeUnicodeEscape parses exactly n hex digits from the start of s as
// a Unicode code point, returning the rune and how many bytes of s it
// consumed.
func decodeUnicodeEscape(s string, n int) (rune, int, error) {
	if len(s) < n {
		return 0, 0, fmt.Errorf("truncated unicode escape")
	}
	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid unicode escape %q: %w", s[:n], err)
	}
	return rune(v), n, nil
}
