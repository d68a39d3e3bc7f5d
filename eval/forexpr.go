package eval

import "github.com/Yunsang-Jeong/hcl/ast"

// forPair is one (key, value) pair produced by iterating a collection in
// its native order (spec §4.4 "ForExpr"): array index for arrays,
// insertion-ordered key for objects.
type forPair struct {
	key ast.Value
	val ast.Value
}

func iteratePairs(v ast.Value, rng ast.Range) ([]forPair, error) {
	switch v.Kind() {
	case ast.KindArray:
		arr := v.AsArray()
		pairs := make([]forPair, len(arr))
		for i, el := range arr {
			pairs[i] = forPair{key: ast.Int(int64(i)), val: el}
		}
		return pairs, nil
	case ast.KindObject:
		obj := v.AsObject()
		pairs := make([]forPair, 0, obj.Len())
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			pairs = append(pairs, forPair{key: ast.String(pair.Key), val: pair.Value})
		}
		return pairs, nil
	default:
		return nil, typeErr(rng, "for expression requires an array or object collection, got %s", v.Kind())
	}
}

// bindLoopVars creates a child context with value_var (and key_var, if
// present) bound for one iteration.
func bindLoopVars(ctx *Context, keyVar *string, valVar string, p forPair) *Context {
	child := ctx.NewChild()
	if keyVar != nil {
		child.SetVariable(*keyVar, p.key)
	}
	child.SetVariable(valVar, p.val)
	return child
}

func evalForExpr(e *ast.ForExpr, ctx *Context) (ast.Value, error) {
	collVal, err := Evaluate(e.Collection, ctx)
	if err != nil {
		return ast.Value{}, err
	}
	pairs, err := iteratePairs(collVal, e.Collection.Range())
	if err != nil {
		return ast.Value{}, err
	}

	var keyVarName *string
	if e.KeyVar != nil {
		name := e.KeyVar.String()
		keyVarName = &name
	}
	valVarName := e.ValVar.String()

	if e.KeyExpr == nil {
		var out []ast.Value
		for _, p := range pairs {
			child := bindLoopVars(ctx, keyVarName, valVarName, p)
			ok, err := evalForCond(e.CondExpr, child)
			if err != nil {
				return ast.Value{}, err
			}
			if !ok {
				continue
			}
			v, err := Evaluate(e.ValExpr, child)
			if err != nil {
				return ast.Value{}, err
			}
			out = append(out, v)
		}
		return ast.Array(out), nil
	}

	obj := ast.NewValueMap()
	groups := ast.NewValueMap()
	for _, p := range pairs {
		child := bindLoopVars(ctx, keyVarName, valVarName, p)
		ok, err := evalForCond(e.CondExpr, child)
		if err != nil {
			return ast.Value{}, err
		}
		if !ok {
			continue
		}
		keyVal, err := Evaluate(e.KeyExpr, child)
		if err != nil {
			return ast.Value{}, err
		}
		key, err := coerceObjectKey(keyVal, e.KeyExpr.Range())
		if err != nil {
			return ast.Value{}, err
		}
		valVal, err := Evaluate(e.ValExpr, child)
		if err != nil {
			return ast.Value{}, err
		}
		if e.Grouping {
			existing, ok := groups.Get(key)
			if !ok {
				groups.Set(key, ast.Array([]ast.Value{valVal}))
				continue
			}
			groups.Set(key, ast.Array(append(existing.AsArray(), valVal)))
			continue
		}
		if _, dup := obj.Get(key); dup {
			return ast.Value{}, semanticErr(e.Rng, "duplicate key %q in for expression", key)
		}
		obj.Set(key, valVal)
	}
	if e.Grouping {
		return ast.Object(groups), nil
	}
	return ast.Object(obj), nil
}

func evalForCond(cond ast.Expression, ctx *Context) (bool, error) {
	if cond == nil {
		return true, nil
	}
	v, err := Evaluate(cond, ctx)
	if err != nil {
		return false, err
	}
	if v.Kind() != ast.KindBool {
		return false, typeErr(cond.Range(), "for expression condition must be bool, got %s", v.Kind())
	}
	return v.AsBool(), nil
}
