package parser

import (
	"fmt"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/ident"
	"github.com/Yunsang-Jeong/hcl/token"
)

// parseTupleOrForTuple parses a `[...]` construct, which is either a
// TupleConsExpr or, when it opens with the `for` keyword, the tuple form
// of a ForExpr (spec §4.2 "for expressions").
func (p *Parser) parseTupleOrForTuple(openTok token.Token) (ast.Expression, error) {
	if _, err := p.expect(token.OBrack); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	if t, err := p.peek(); err != nil {
		return nil, err
	} else if t.Type == token.Ident && string(t.Bytes) == "for" {
		return p.parseForTail(openTok, token.CBrack, false)
	}

	var exprs []ast.Expression
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Type == token.CBrack {
			break
		}
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		t, err = p.peek()
		if err != nil {
			return nil, err
		}
		if t.Type == token.Comma {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.skipNewlines(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	closeTok, err := p.expect(token.CBrack)
	if err != nil {
		return nil, err
	}
	return &ast.TupleConsExpr{Exprs: exprs, Rng: ast.Range{Filename: p.filename, Start: openTok.Rng.Start, End: closeTok.Rng.End}}, nil
}

// parseObjectOrForObject parses a `{...}` construct, which is either an
// ObjectConsExpr or, when it opens with the `for` keyword, the object
// form of a ForExpr.
func (p *Parser) parseObjectOrForObject(openTok token.Token) (ast.Expression, error) {
	if _, err := p.expect(token.OBrace); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	if t, err := p.peek(); err != nil {
		return nil, err
	} else if t.Type == token.Ident && string(t.Bytes) == "for" {
		return p.parseForTail(openTok, token.CBrace, true)
	}

	var items []ast.ObjectConsItem
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Type == token.CBrace {
			break
		}
		item, err := p.parseObjectItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if err := p.skipItemSeparator(); err != nil {
			return nil, err
		}
	}
	closeTok, err := p.expect(token.CBrace)
	if err != nil {
		return nil, err
	}
	return &ast.ObjectConsExpr{Items: items, Rng: ast.Range{Filename: p.filename, Start: openTok.Rng.Start, End: closeTok.Rng.End}}, nil
}

// parseObjectItem parses one `key = value` or `key: value` pair. A bare
// identifier key becomes a literal string key rather than a variable
// reference (spec §4.2), and is marked with IdentKey.
func (p *Parser) parseObjectItem() (ast.ObjectConsItem, error) {
	t, err := p.peek()
	if err != nil {
		return ast.ObjectConsItem{}, err
	}

	var keyExpr ast.Expression
	identKey := false
	if t.Type == token.Ident {
		nxt, err := p.peekN(1)
		if err != nil {
			return ast.ObjectConsItem{}, err
		}
		if nxt.Type == token.Equal || nxt.Type == token.Colon {
			if _, err := p.advance(); err != nil {
				return ast.ObjectConsItem{}, err
			}
			id, err := ident.TryNew(string(t.Bytes))
			if err != nil {
				return ast.ObjectConsItem{}, fmt.Errorf("parse error: %w (at %s)", err, t.Rng)
			}
			keyExpr = &ast.LiteralValueExpr{Val: ast.String(id.String()), Rng: t.Rng}
			identKey = true
		}
	}
	if keyExpr == nil {
		e, err := p.parseExpression()
		if err != nil {
			return ast.ObjectConsItem{}, err
		}
		keyExpr = e
	}

	sep, err := p.peek()
	if err != nil {
		return ast.ObjectConsItem{}, err
	}
	if sep.Type != token.Equal && sep.Type != token.Colon {
		return ast.ObjectConsItem{}, fmt.Errorf("parse error: expected '=' or ':' in object item, found %s (at %s)", sep.Type, sep.Rng)
	}
	if _, err := p.advance(); err != nil {
		return ast.ObjectConsItem{}, err
	}
	if err := p.skipNewlines(); err != nil {
		return ast.ObjectConsItem{}, err
	}
	valueExpr, err := p.parseExpression()
	if err != nil {
		return ast.ObjectConsItem{}, err
	}
	return ast.ObjectConsItem{KeyExpr: keyExpr, ValueExpr: valueExpr, IdentKey: identKey}, nil
}

// skipItemSeparator consumes the comma or newline(s) that separate
// object items; HCL permits either.
func (p *Parser) skipItemSeparator() error {
	t, err := p.peek()
	if err != nil {
		return err
	}
	switch t.Type {
	case token.Comma:
		if _, err := p.advance(); err != nil {
			return err
		}
	case token.Newline:
	default:
		return nil
	}
	return p.skipNewlines()
}

// parseForTail parses the shared portion of a for-expression after its
// opening bracket/brace has been consumed and the `for` keyword has been
// peeked (not yet consumed): `for [k,] v in coll : ...`. object is true
// for the object form (`{for ...}`), which additionally requires `=>`
// and accepts a trailing grouping `...`.
func (p *Parser) parseForTail(openTok token.Token, closeType token.Type, object bool) (ast.Expression, error) {
	if _, err := p.advance(); err != nil { // consume "for"
		return nil, err
	}

	first, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	firstID, err := ident.TryNew(string(first.Bytes))
	if err != nil {
		return nil, fmt.Errorf("parse error: %w (at %s)", err, first.Rng)
	}

	var keyVar *ident.Ident
	valVar := firstID

	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.Type == token.Comma {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		second, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		secondID, err := ident.TryNew(string(second.Bytes))
		if err != nil {
			return nil, fmt.Errorf("parse error: %w (at %s)", err, second.Rng)
		}
		keyVar = &firstID
		valVar = secondID
	}

	if err := p.expectKeyword("in"); err != nil {
		return nil, err
	}
	collection, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	var keyExpr, valExpr ast.Expression
	if object {
		keyExpr, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Arrow); err != nil {
			return nil, err
		}
		valExpr, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	} else {
		valExpr, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	grouping := false
	if object {
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		if nt, err := p.peek(); err != nil {
			return nil, err
		} else if nt.Type == token.Ellipsis {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			grouping = true
		}
	}

	var condExpr ast.Expression
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	if nt, err := p.peek(); err != nil {
		return nil, err
	} else if nt.Type == token.Ident && string(nt.Bytes) == "if" {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		condExpr, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	closeTok, err := p.expect(closeType)
	if err != nil {
		return nil, err
	}

	return &ast.ForExpr{
		KeyVar: keyVar, ValVar: valVar, Collection: collection,
		KeyExpr: keyExpr, ValExpr: valExpr, CondExpr: condExpr, Grouping: grouping,
		Rng: ast.Range{Filename: p.filename, Start: openTok.Rng.Start, End: closeTok.Rng.End},
	}, nil
}

func (p *Parser) expectKeyword(kw string) error {
	t, err := p.peek()
	if err != nil {
		return err
	}
	if t.Type != token.Ident || string(t.Bytes) != kw {
		return fmt.Errorf("parse error: expected %q, found %s (at %s)", kw, t.Type, t.Rng)
	}
	_, err = p.advance()
	return err
}
