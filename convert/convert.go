// Package convert implements the Value↔AST bridge (spec §2 item 6): it
// converts a runtime Value into a literal Expression tree, and back, for
// callers (the external binding layer) that need to move between parsed
// syntax and evaluated data.
package convert

import (
	"fmt"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/ident"
)

// ValueToExpr renders v as a literal Expression tree: scalars become
// LiteralValueExpr, arrays become TupleConsExpr, objects become
// ObjectConsExpr with string-literal keys. The result has a zero Range,
// since it was not produced by parsing source text.
func ValueToExpr(v ast.Value) ast.Expression {
	switch v.Kind() {
	case ast.KindArray:
		arr := v.AsArray()
		exprs := make([]ast.Expression, len(arr))
		for i, el := range arr {
			exprs[i] = ValueToExpr(el)
		}
		return &ast.TupleConsExpr{Exprs: exprs}

	case ast.KindObject:
		obj := v.AsObject()
		items := make([]ast.ObjectConsItem, 0, obj.Len())
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			items = append(items, ast.ObjectConsItem{
				KeyExpr:   &ast.LiteralValueExpr{Val: ast.String(pair.Key)},
				ValueExpr: ValueToExpr(pair.Value),
				IdentKey:  ident.HasIdentSyntax(pair.Key),
			})
		}
		return &ast.ObjectConsExpr{Items: items}

	default:
		return &ast.LiteralValueExpr{Val: v}
	}
}

// ExprToValue reduces expr to a Value without any variable or function
// context: only the literal-shaped subset of the grammar (scalars,
// arrays, objects with statically resolvable keys, and parentheses) is
// accepted. Any other node — a variable reference, traversal, function
// call, template, conditional, operation, or for-expression — is
// rejected, since those require a Context to resolve (use package eval
// for those instead).
func ExprToValue(expr ast.Expression) (ast.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralValueExpr:
		return e.Val, nil

	case *ast.ParenthesesExpr:
		return ExprToValue(e.Inner)

	case *ast.TupleConsExpr:
		out := make([]ast.Value, len(e.Exprs))
		for i, sub := range e.Exprs {
			v, err := ExprToValue(sub)
			if err != nil {
				return ast.Value{}, err
			}
			out[i] = v
		}
		return ast.Array(out), nil

	case *ast.ObjectConsExpr:
		obj := ast.NewValueMap()
		for _, item := range e.Items {
			key, err := literalKey(item)
			if err != nil {
				return ast.Value{}, err
			}
			val, err := ExprToValue(item.ValueExpr)
			if err != nil {
				return ast.Value{}, err
			}
			obj.Set(key, val)
		}
		return ast.Object(obj), nil

	default:
		return ast.Value{}, fmt.Errorf("convert: %T is not a literal-shaped expression (requires an evaluation Context)", expr)
	}
}

func literalKey(item ast.ObjectConsItem) (string, error) {
	lit, ok := item.KeyExpr.(*ast.LiteralValueExpr)
	if !ok {
		return "", fmt.Errorf("convert: object key is not a literal expression, cannot resolve without a Context")
	}
	switch lit.Val.Kind() {
	case ast.KindString:
		return lit.Val.AsString(), nil
	case ast.KindNumber:
		return lit.Val.AsNumber().String(), nil
	default:
		return "", fmt.Errorf("convert: object key must be string or number, got %s", lit.Val.Kind())
	}
}

// TraversalForPath builds a TraversalExpr programmatically: root is the
// base variable name, path is a sequence of attribute names to chain as
// `.name` traversal steps. This is the construction-side counterpart to
// parsing `root.path[0].path[1]` from text, needed by host-language
// bindings that assemble traversals from a list of path segments rather
// than source syntax.
func TraversalForPath(root string, path ...string) (ast.Expression, error) {
	rootIdent, err := ident.TryNew(root)
	if err != nil {
		return nil, fmt.Errorf("convert: invalid root variable name: %w", err)
	}
	if len(path) == 0 {
		return &ast.VariableExpr{Name: rootIdent}, nil
	}
	ops := make([]ast.TraverseOp, len(path))
	for i, seg := range path {
		segIdent, err := ident.TryNew(seg)
		if err != nil {
			return nil, fmt.Errorf("convert: invalid path segment %q: %w", seg, err)
		}
		ops[i] = ast.TraverseAttr{Name: segIdent}
	}
	return &ast.TraversalExpr{
		Target: &ast.VariableExpr{Name: rootIdent},
		Ops:    ops,
	}, nil
}
