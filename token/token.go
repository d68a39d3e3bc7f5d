// Package token defines the lexical token types produced by the
// top-level source-mode tokenizer in package parser (spec §4.1). Quoted
// strings and heredocs are captured whole, as a single atomic token
// carrying their raw, undecoded text; a separate on-demand template
// parser (also in package parser) re-scans that raw text to build the
// structural Template AST described in spec §3/§4.2.
package token

import "github.com/Yunsang-Jeong/hcl/ast"

// Type discriminates a Token.
type Type uint8

const (
	EOF Type = iota
	Invalid

	Ident
	Number

	// TemplateStr is an atomic quoted-string or heredoc literal. Bytes
	// holds the raw, undecoded inner text (escapes undecoded,
	// interpolations/directives unexpanded). Heredoc records whether it
	// came from a `<<`/`<<-` heredoc (true) or a `"..."` quoted string
	// (false).
	TemplateStr

	OBrace   // {
	CBrace   // }
	OBrack   // [
	CBrack   // ]
	OParen   // (
	CParen   // )
	Comma    // ,
	Dot      // .
	DotStar  // .*
	Colon    // :
	Question // ?
	Equal    // =
	Arrow    // =>
	Ellipsis // ...

	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %

	EqualEqual   // ==
	NotEqual     // !=
	LessThan     // <
	LessEqual    // <=
	GreaterThan  // >
	GreaterEqual // >=
	AndAnd       // &&
	OrOr         // ||
	Bang         // !

	Newline
)

func (t Type) String() string {
	names := map[Type]string{
		EOF: "EOF", Invalid: "<invalid>", Ident: "identifier", Number: "number",
		TemplateStr: "template string", OBrace: "{", CBrace: "}", OBrack: "[", CBrack: "]",
		OParen: "(", CParen: ")", Comma: ",", Dot: ".", DotStar: ".*", Colon: ":",
		Question: "?", Equal: "=", Arrow: "=>", Ellipsis: "...", Plus: "+", Minus: "-",
		Star: "*", Slash: "/", Percent: "%", EqualEqual: "==", NotEqual: "!=",
		LessThan: "<", LessEqual: "<=", GreaterThan: ">", GreaterEqual: ">=",
		AndAnd: "&&", OrOr: "||", Bang: "!", Newline: "newline",
	}
	if s, ok := names[t]; ok {
		return s
	}
	return "<unknown token>"
}

// Token is a single lexical token with its source span.
type Token struct {
	Type    Type
	Bytes   []byte
	Rng     ast.Range
	Heredoc bool // meaningful only when Type == TemplateStr
	Flush   bool // meaningful only when Heredoc: true for `<<-` (indented) heredocs
}

func (t Token) String() string { return string(t.Bytes) }
