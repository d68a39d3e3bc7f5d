package eval

import (
	"strconv"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/number"
)

// Evaluate reduces expr to an ast.Value against ctx (spec §4.4
// "Expression rules"). Evaluation errors are fatal to the enclosing
// expression and carry the failing node's Range.
func Evaluate(expr ast.Expression, ctx *Context) (ast.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralValueExpr:
		return e.Val, nil

	case *ast.VariableExpr:
		v, ok := ctx.Variable(e.Name.String())
		if !ok {
			return ast.Value{}, resolutionErr(e.Rng, "no such variable %q", e.Name.String())
		}
		return v, nil

	case *ast.TupleConsExpr:
		vals := make([]ast.Value, 0, len(e.Exprs))
		for _, sub := range e.Exprs {
			v, err := Evaluate(sub, ctx)
			if err != nil {
				return ast.Value{}, err
			}
			vals = append(vals, v)
		}
		return ast.Array(vals), nil

	case *ast.ObjectConsExpr:
		obj := ast.NewValueMap()
		for _, item := range e.Items {
			keyVal, err := Evaluate(item.KeyExpr, ctx)
			if err != nil {
				return ast.Value{}, err
			}
			key, err := coerceObjectKey(keyVal, item.KeyExpr.Range())
			if err != nil {
				return ast.Value{}, err
			}
			valVal, err := Evaluate(item.ValueExpr, ctx)
			if err != nil {
				return ast.Value{}, err
			}
			obj.Set(key, valVal)
		}
		return ast.Object(obj), nil

	case *ast.TraversalExpr:
		target, err := Evaluate(e.Target, ctx)
		if err != nil {
			return ast.Value{}, err
		}
		return evalTraverseOps(target, e.Ops, ctx)

	case *ast.FunctionCallExpr:
		return evalFunctionCall(e, ctx)

	case *ast.ConditionalExpr:
		cond, err := Evaluate(e.Cond, ctx)
		if err != nil {
			return ast.Value{}, err
		}
		if cond.Kind() != ast.KindBool {
			return ast.Value{}, typeErr(e.Cond.Range(), "condition must be bool, got %s", cond.Kind())
		}
		if cond.AsBool() {
			return Evaluate(e.TrueExpr, ctx)
		}
		return Evaluate(e.FalseExpr, ctx)

	case *ast.UnaryOpExpr:
		return evalUnary(e, ctx)

	case *ast.BinaryOpExpr:
		return evalBinary(e, ctx)

	case *ast.ForExpr:
		return evalForExpr(e, ctx)

	case *ast.TemplateExpr:
		return evalTemplateExpr(e, ctx)

	case *ast.ParenthesesExpr:
		return Evaluate(e.Inner, ctx)

	default:
		return ast.Value{}, typeErr(expr.Range(), "unsupported expression node %T", expr)
	}
}

func coerceObjectKey(v ast.Value, rng ast.Range) (string, error) {
	switch v.Kind() {
	case ast.KindString:
		return v.AsString(), nil
	case ast.KindNumber:
		return v.AsNumber().String(), nil
	case ast.KindBool:
		return strconv.FormatBool(v.AsBool()), nil
	default:
		return "", typeErr(rng, "object key must be string, number or bool, got %s", v.Kind())
	}
}

func evalUnary(e *ast.UnaryOpExpr, ctx *Context) (ast.Value, error) {
	operand, err := Evaluate(e.Operand, ctx)
	if err != nil {
		return ast.Value{}, err
	}
	switch e.Op {
	case ast.OpLogicalNot:
		if operand.Kind() != ast.KindBool {
			return ast.Value{}, typeErr(e.Rng, "operand of '!' must be bool, got %s", operand.Kind())
		}
		return ast.Bool(!operand.AsBool()), nil
	case ast.OpSub:
		if operand.Kind() != ast.KindNumber {
			return ast.Value{}, typeErr(e.Rng, "operand of unary '-' must be a number, got %s", operand.Kind())
		}
		return ast.NumberValue(number.Neg(operand.AsNumber())), nil
	default:
		return ast.Value{}, typeErr(e.Rng, "invalid unary operator %s", e.Op)
	}
}

func evalBinary(e *ast.BinaryOpExpr, ctx *Context) (ast.Value, error) {
	if e.Op == ast.OpLogicalOr || e.Op == ast.OpLogicalAnd {
		lhs, err := Evaluate(e.LHS, ctx)
		if err != nil {
			return ast.Value{}, err
		}
		if lhs.Kind() != ast.KindBool {
			return ast.Value{}, typeErr(e.LHS.Range(), "operand must be bool, got %s", lhs.Kind())
		}
		if e.Op == ast.OpLogicalOr && lhs.AsBool() {
			return ast.Bool(true), nil
		}
		if e.Op == ast.OpLogicalAnd && !lhs.AsBool() {
			return ast.Bool(false), nil
		}
		rhs, err := Evaluate(e.RHS, ctx)
		if err != nil {
			return ast.Value{}, err
		}
		if rhs.Kind() != ast.KindBool {
			return ast.Value{}, typeErr(e.RHS.Range(), "operand must be bool, got %s", rhs.Kind())
		}
		return ast.Bool(rhs.AsBool()), nil
	}

	lhs, err := Evaluate(e.LHS, ctx)
	if err != nil {
		return ast.Value{}, err
	}
	rhs, err := Evaluate(e.RHS, ctx)
	if err != nil {
		return ast.Value{}, err
	}

	switch e.Op {
	case ast.OpEqual:
		return ast.Bool(lhs.Equal(rhs)), nil
	case ast.OpNotEqual:
		return ast.Bool(!lhs.Equal(rhs)), nil
	case ast.OpLessThan, ast.OpLessThanOrEqual, ast.OpGreaterThan, ast.OpGreaterThanOrEqual:
		if lhs.Kind() != ast.KindNumber || rhs.Kind() != ast.KindNumber {
			return ast.Value{}, typeErr(e.Rng, "comparison operators apply only to numbers, got %s and %s", lhs.Kind(), rhs.Kind())
		}
		cmp := lhs.AsNumber().Compare(rhs.AsNumber())
		switch e.Op {
		case ast.OpLessThan:
			return ast.Bool(cmp < 0), nil
		case ast.OpLessThanOrEqual:
			return ast.Bool(cmp <= 0), nil
		case ast.OpGreaterThan:
			return ast.Bool(cmp > 0), nil
		default:
			return ast.Bool(cmp >= 0), nil
		}
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		if lhs.Kind() != ast.KindNumber || rhs.Kind() != ast.KindNumber {
			return ast.Value{}, typeErr(e.Rng, "arithmetic operators apply only to numbers, got %s and %s", lhs.Kind(), rhs.Kind())
		}
		a, b := lhs.AsNumber(), rhs.AsNumber()
		switch e.Op {
		case ast.OpAdd:
			return ast.NumberValue(number.Add(a, b)), nil
		case ast.OpSub:
			return ast.NumberValue(number.Sub(a, b)), nil
		case ast.OpMul:
			return ast.NumberValue(number.Mul(a, b)), nil
		case ast.OpDiv:
			if b.Float64() == 0 {
				return ast.Value{}, semanticErr(e.Rng, "division by zero")
			}
			return ast.NumberValue(number.Div(a, b)), nil
		default: // OpMod
			if b.Float64() == 0 {
				return ast.Value{}, semanticErr(e.Rng, "division by zero")
			}
			return ast.NumberValue(number.Mod(a, b)), nil
		}
	default:
		return ast.Value{}, typeErr(e.Rng, "invalid binary operator %s", e.Op)
	}
}
