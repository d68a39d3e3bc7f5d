package parser

import (
	"bytes"
	"fmt"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/ident"
	"github.com/Yunsang-Jeong/hcl/number"
	"github.com/Yunsang-Jeong/hcl/token"
)

// parseExpression parses a full expression, including the
// right-associative, lowest-precedence conditional operator (spec
// §4.2).
func (p *Parser) parseExpression() (ast.Expression, error) {
	cond, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.Type != token.Question {
		return cond, nil
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	trueExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	falseExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpr{
		Cond: cond, TrueExpr: trueExpr, FalseExpr: falseExpr,
		Rng: ast.Range{Filename: p.filename, Start: cond.Range().Start, End: falseExpr.Range().End},
	}, nil
}

// parseBinary implements precedence climbing over the binary operators;
// minPrec is the lowest precedence this call is willing to consume,
// giving left-associativity (operators of equal precedence bind left to
// right).
func (p *Parser) parseBinary(minPrec int) (ast.Expression, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok, err := p.peekBinaryOperator()
		if err != nil {
			return nil, err
		}
		prec := ast.BinaryPrecedence(op)
		if !ok || prec < minPrec {
			return lhs, nil
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		rhs, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryOpExpr{
			LHS: lhs, Op: op, RHS: rhs,
			Rng: ast.Range{Filename: p.filename, Start: lhs.Range().Start, End: rhs.Range().End},
		}
	}
}

func (p *Parser) peekBinaryOperator() (ast.Operator, bool, error) {
	t, err := p.peek()
	if err != nil {
		return 0, false, err
	}
	switch t.Type {
	case token.OrOr:
		return ast.OpLogicalOr, true, nil
	case token.AndAnd:
		return ast.OpLogicalAnd, true, nil
	case token.EqualEqual:
		return ast.OpEqual, true, nil
	case token.NotEqual:
		return ast.OpNotEqual, true, nil
	case token.LessThan:
		return ast.OpLessThan, true, nil
	case token.LessEqual:
		return ast.OpLessThanOrEqual, true, nil
	case token.GreaterThan:
		return ast.OpGreaterThan, true, nil
	case token.GreaterEqual:
		return ast.OpGreaterThanOrEqual, true, nil
	case token.Plus:
		return ast.OpAdd, true, nil
	case token.Minus:
		return ast.OpSub, true, nil
	case token.Star:
		return ast.OpMul, true, nil
	case token.Slash:
		return ast.OpDiv, true, nil
	case token.Percent:
		return ast.OpMod, true, nil
	default:
		return 0, false, nil
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch t.Type {
	case token.Bang:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpExpr{Op: ast.OpLogicalNot, Operand: operand,
			Rng: ast.Range{Filename: p.filename, Start: t.Rng.Start, End: operand.Range().End}}, nil
	case token.Minus:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		nt, err := p.peek()
		if err != nil {
			return nil, err
		}
		if nt.Type == token.Number {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			n, err := number.Parse(string(nt.Bytes))
			if err != nil {
				return nil, fmt.Errorf("parse error: %w (at %s)", err, nt.Rng)
			}
			return &ast.LiteralValueExpr{
				Val: ast.NumberValue(number.Neg(n)),
				Rng: ast.Range{Filename: p.filename, Start: t.Rng.Start, End: nt.Rng.End},
			}, nil
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpExpr{Op: ast.OpSub, Operand: operand,
			Rng: ast.Range{Filename: p.filename, Start: t.Rng.Start, End: operand.Range().End}}, nil
	default:
		return p.parsePrimaryWithTraversal()
	}
}

func (p *Parser) parsePrimaryWithTraversal() (ast.Expression, error) {
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	var ops []ast.TraverseOp
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch t.Type {
		case token.DotStar:
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			ops = append(ops, ast.TraverseAttrSplat{Rng: t.Rng})
		case token.Dot:
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			nt, err := p.peek()
			if err != nil {
				return nil, err
			}
			switch nt.Type {
			case token.Ident:
				if _, err := p.advance(); err != nil {
					return nil, err
				}
				id, err := ident.TryNew(string(nt.Bytes))
				if err != nil {
					return nil, fmt.Errorf("parse error: %w (at %s)", err, nt.Rng)
				}
				ops = append(ops, ast.TraverseAttr{Name: id, Rng: ast.Range{Filename: p.filename, Start: t.Rng.Start, End: nt.Rng.End}})
			case token.Number:
				if bytes.ContainsAny(nt.Bytes, ".eE") {
					return nil, fmt.Errorf("parse error: legacy index must be a plain integer (at %s)", nt.Rng)
				}
				if _, err := p.advance(); err != nil {
					return nil, err
				}
				n, err := number.Parse(string(nt.Bytes))
				if err != nil {
					return nil, fmt.Errorf("parse error: %w (at %s)", err, nt.Rng)
				}
				idx, _ := n.Int64()
				ops = append(ops, ast.TraverseLegacyIndex{Index: idx, Rng: ast.Range{Filename: p.filename, Start: t.Rng.Start, End: nt.Rng.End}})
			default:
				return nil, fmt.Errorf("parse error: expected attribute name or index after '.', found %s (at %s)", nt.Type, nt.Rng)
			}
		case token.OBrack:
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			star, err := p.peek()
			if err != nil {
				return nil, err
			}
			if star.Type == token.Star {
				if _, err := p.advance(); err != nil {
					return nil, err
				}
				closeTok, err := p.expect(token.CBrack)
				if err != nil {
					return nil, err
				}
				ops = append(ops, ast.TraverseSplat{Rng: ast.Range{Filename: p.filename, Start: t.Rng.Start, End: closeTok.Rng.End}})
				continue
			}
			keyExpr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			closeTok, err := p.expect(token.CBrack)
			if err != nil {
				return nil, err
			}
			ops = append(ops, ast.TraverseIndex{Key: keyExpr, Rng: ast.Range{Filename: p.filename, Start: t.Rng.Start, End: closeTok.Rng.End}})
		default:
			if len(ops) == 0 {
				return primary, nil
			}
			return &ast.TraversalExpr{
				Target: primary, Ops: ops,
				Rng: ast.Range{Filename: p.filename, Start: primary.Range().Start, End: ops[len(ops)-1].Range().End},
			}, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch t.Type {
	case token.Number:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		n, err := number.Parse(string(t.Bytes))
		if err != nil {
			return nil, fmt.Errorf("parse error: %w (at %s)", err, t.Rng)
		}
		return &ast.LiteralValueExpr{Val: ast.NumberValue(n), Rng: t.Rng}, nil
	case token.TemplateStr:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		return exprFromTemplateToken(t, p.filename)
	case token.OParen:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		closeTok, err := p.expect(token.CParen)
		if err != nil {
			return nil, err
		}
		return &ast.ParenthesesExpr{Inner: inner, Rng: ast.Range{Filename: p.filename, Start: t.Rng.Start, End: closeTok.Rng.End}}, nil
	case token.OBrack:
		return p.parseTupleOrForTuple(t)
	case token.OBrace:
		return p.parseObjectOrForObject(t)
	case token.Ident:
		return p.parseIdentPrimary(t)
	default:
		return nil, fmt.Errorf("parse error: unexpected token %s (at %s)", t.Type, t.Rng)
	}
}

func (p *Parser) parseIdentPrimary(t token.Token) (ast.Expression, error) {
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	name := string(t.Bytes)
	switch name {
	case "true":
		return &ast.LiteralValueExpr{Val: ast.Bool(true), Rng: t.Rng}, nil
	case "false":
		return &ast.LiteralValueExpr{Val: ast.Bool(false), Rng: t.Rng}, nil
	case "null":
		return &ast.LiteralValueExpr{Val: ast.Null, Rng: t.Rng}, nil
	}

	nt, err := p.peek()
	if err != nil {
		return nil, err
	}
	if nt.Type == token.OParen {
		return p.parseFunctionCallTail(t, name)
	}

	id, err := ident.TryNew(name)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w (at %s)", err, t.Rng)
	}
	return &ast.VariableExpr{Name: id, Rng: t.Rng}, nil
}

func (p *Parser) parseFunctionCallTail(nameTok token.Token, name string) (ast.Expression, error) {
	id, err := ident.TryNew(name)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w (at %s)", err, nameTok.Rng)
	}
	if _, err := p.expect(token.OParen); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	var args []ast.Expression
	expandFinal := false
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Type == token.CParen {
			break
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		t, err = p.peek()
		if err != nil {
			return nil, err
		}
		if t.Type == token.Ellipsis {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			expandFinal = true
			if err := p.skipNewlines(); err != nil {
				return nil, err
			}
			break
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
	closeTok, err := p.expect(token.CParen)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionCallExpr{
		Name: id, Args: args, ExpandFinal: expandFinal,
		Rng: ast.Range{Filename: p.filename, Start: nameTok.Rng.Start, End: closeTok.Rng.End},
	}, nil
}
