// Package parser implements the tokenizer and recursive-descent/Pratt
// parser described in spec §4.1–§4.2: it turns HCL source bytes into the
// ast.Body/ast.Expression/ast.Template tree, and the reverse on-demand
// template-structural parse (TemplateExpr.Raw -> *ast.Template).
package parser

import (
	"fmt"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/diag"
	"github.com/Yunsang-Jeong/hcl/ident"
	"github.com/Yunsang-Jeong/hcl/token"
)

// Parser holds the tokenizer state and a small lookahead buffer; it
// reports the first error it encounters and does not attempt recovery
// (spec §4.2 "Failure semantics").
type Parser struct {
	lex      *lexer
	buf      []token.Token
	filename string
}

func newParser(filename string, src []byte) *Parser {
	return &Parser{lex: newLexer(filename, src), filename: filename}
}

func (p *Parser) peekN(n int) (token.Token, error) {
	for len(p.buf) <= n {
		t, err := p.lex.next()
		if err != nil {
			return token.Token{}, err
		}
		p.buf = append(p.buf, t)
		if t.Type == token.EOF {
			break
		}
	}
	if n >= len(p.buf) {
		return p.buf[len(p.buf)-1], nil
	}
	return p.buf[n], nil
}

func (p *Parser) peek() (token.Token, error) { return p.peekN(0) }

func (p *Parser) advance() (token.Token, error) {
	t, err := p.peek()
	if err != nil {
		return token.Token{}, err
	}
	if len(p.buf) > 0 {
		p.buf = p.buf[1:]
	}
	return t, nil
}

func (p *Parser) expect(tt token.Type) (token.Token, error) {
	t, err := p.peek()
	if err != nil {
		return token.Token{}, err
	}
	if t.Type != tt {
		return token.Token{}, fmt.Errorf("parse error: expected %s, found %s (at %s)", tt, t.Type, t.Rng)
	}
	return p.advance()
}

// skipNewlines consumes zero or more Newline tokens.
func (p *Parser) skipNewlines() error {
	for {
		t, err := p.peek()
		if err != nil {
			return err
		}
		if t.Type != token.Newline {
			return nil
		}
		if _, err := p.advance(); err != nil {
			return err
		}
	}
}

// ParseBody parses src as a top-level HCL body.
func ParseBody(src []byte, filename string) (*ast.Body, diag.Diagnostics) {
	p := newParser(filename, src)
	body, err := p.parseBody(token.EOF, nil)
	if err != nil {
		return nil, diag.Diagnostics{toDiagnostic(diag.Parse, err)}
	}
	return body, nil
}

// ParseExpression parses src as a single standalone expression,
// consuming the entire input.
func ParseExpression(src []byte, filename string) (ast.Expression, diag.Diagnostics) {
	p := newParser(filename, src)
	if err := p.skipNewlines(); err != nil {
		return nil, diag.Diagnostics{toDiagnostic(diag.Parse, err)}
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, diag.Diagnostics{toDiagnostic(diag.Parse, err)}
	}
	if err := p.skipNewlines(); err != nil {
		return nil, diag.Diagnostics{toDiagnostic(diag.Parse, err)}
	}
	t, err := p.peek()
	if err != nil {
		return nil, diag.Diagnostics{toDiagnostic(diag.Parse, err)}
	}
	if t.Type != token.EOF {
		return nil, diag.Diagnostics{toDiagnostic(diag.Parse, fmt.Errorf("parse error: unexpected trailing content at %s", t.Rng))}
	}
	return expr, nil
}

func toDiagnostic(kind diag.Kind, err error) *diag.Diagnostic {
	if d, ok := err.(*diag.Diagnostic); ok {
		return d
	}
	return &diag.Diagnostic{Kind: kind, Summary: err.Error()}
}

// parseBody parses structures until it sees closeType (token.EOF for the
// top-level body, token.CBrace for a nested block body) or EOF.
// oneLineOut, if non-nil, is set to true iff no Newline token appeared
// before, between or after this body's structures; newlines inside an
// attribute's expression are not counted (used to set a Block's OneLine
// formatter hint).
func (p *Parser) parseBody(closeType token.Type, oneLineOut *bool) (*ast.Body, error) {
	startTok, err := p.peek()
	if err != nil {
		return nil, err
	}
	start := startTok.Rng.Start

	body := &ast.Body{}
	seen := map[string]*ast.Attribute{}
	sawNewline := false

	for {
		if err := p.skipNewlinesTracking(&sawNewline); err != nil {
			return nil, err
		}
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Type == closeType || t.Type == token.EOF {
			break
		}
		structure, err := p.parseStructure()
		if err != nil {
			return nil, err
		}
		if attr, ok := structure.(*ast.Attribute); ok {
			if prior, dup := seen[attr.Name.String()]; dup {
				return nil, &diag.Diagnostic{
					Kind:    diag.Parse,
					Summary: fmt.Sprintf("duplicate attribute %q", attr.Name.String()),
					Detail:  fmt.Sprintf("first defined at %s", prior.Rng),
					Subject: attr.Rng,
				}
			}
			seen[attr.Name.String()] = attr
		}
		body.Structures = append(body.Structures, structure)
	}

	endTok, err := p.peek()
	if err != nil {
		return nil, err
	}
	body.Rng = ast.Range{Filename: p.filename, Start: start, End: endTok.Rng.Start}
	if oneLineOut != nil {
		*oneLineOut = !sawNewline
	}
	return body, nil
}

func (p *Parser) skipNewlinesTracking(saw *bool) error {
	for {
		t, err := p.peek()
		if err != nil {
			return err
		}
		if t.Type != token.Newline {
			return nil
		}
		*saw = true
		if _, err := p.advance(); err != nil {
			return err
		}
	}
}

func (p *Parser) parseStructure() (ast.Structure, error) {
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	name, err := ident.TryNew(string(nameTok.Bytes))
	if err != nil {
		return nil, fmt.Errorf("parse error: %w (at %s)", err, nameTok.Rng)
	}

	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	if next.Type == token.Equal {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Attribute{
			Name:  name,
			Value: value,
			Rng:   ast.Range{Filename: p.filename, Start: nameTok.Rng.Start, End: value.Range().End},
		}, nil
	}

	return p.parseBlockTail(name, nameTok.Rng.Start)
}

func (p *Parser) parseBlockTail(name ident.Ident, start ast.Pos) (*ast.Block, error) {
	var labels []ast.BlockLabel
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch t.Type {
		case token.Ident:
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			labels = append(labels, ast.BlockLabel{Value: string(t.Bytes), IsQuoted: false, Rng: t.Rng})
		case token.TemplateStr:
			if t.Heredoc {
				return nil, fmt.Errorf("parse error: heredoc not permitted as a block label (at %s)", t.Rng)
			}
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			decoded, err := decodeQuotedEscapes(string(t.Bytes))
			if err != nil {
				return nil, fmt.Errorf("parse error: %w (at %s)", err, t.Rng)
			}
			labels = append(labels, ast.BlockLabel{Value: decoded, IsQuoted: true, Rng: t.Rng})
		case token.OBrace:
			goto haveLabels
		default:
			return nil, fmt.Errorf("parse error: expected block label or '{', found %s (at %s)", t.Type, t.Rng)
		}
	}
haveLabels:
	if _, err := p.expect(token.OBrace); err != nil {
		return nil, err
	}
	var oneLine bool
	body, err := p.parseBody(token.CBrace, &oneLine)
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expect(token.CBrace)
	if err != nil {
		return nil, err
	}
	return &ast.Block{
		Type:    name,
		Labels:  labels,
		Body:    body,
		OneLine: oneLine,
		Rng:     ast.Range{Filename: p.filename, Start: start, End: closeTok.Rng.End},
	}, nil
}
