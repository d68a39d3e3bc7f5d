package eval

import "github.com/Yunsang-Jeong/hcl/ast"

// evalTraverseOps applies ops in order to cur (spec §4.4 "Traversal").
func evalTraverseOps(cur ast.Value, ops []ast.TraverseOp, ctx *Context) (ast.Value, error) {
	for i, op := range ops {
		switch o := op.(type) {
		case ast.TraverseAttr:
			if cur.Kind() != ast.KindObject {
				return ast.Value{}, typeErr(o.Rng, "attribute access requires an object, got %s", cur.Kind())
			}
			v, ok := cur.AsObject().Get(o.Name.String())
			if !ok {
				return ast.Value{}, resolutionErr(o.Rng, "object has no attribute %q", o.Name.String())
			}
			cur = v

		case ast.TraverseIndex:
			keyVal, err := Evaluate(o.Key, ctx)
			if err != nil {
				return ast.Value{}, err
			}
			v, err := indexInto(cur, keyVal, o.Rng)
			if err != nil {
				return ast.Value{}, err
			}
			cur = v

		case ast.TraverseLegacyIndex:
			if cur.Kind() != ast.KindArray {
				return ast.Value{}, typeErr(o.Rng, "legacy numeric index requires an array, got %s", cur.Kind())
			}
			arr := cur.AsArray()
			if o.Index < 0 || o.Index >= int64(len(arr)) {
				return ast.Value{}, rangeErr(o.Rng, "index %d out of bounds (array has %d elements)", o.Index, len(arr))
			}
			cur = arr[o.Index]

		case ast.TraverseSplat, ast.TraverseAttrSplat:
			if cur.IsNull() {
				return ast.Null, nil
			}
			elems := splatElements(cur)
			rest := ops[i+1:]
			out := make([]ast.Value, 0, len(elems))
			for _, el := range elems {
				v, err := evalTraverseOps(el, rest, ctx)
				if err != nil {
					return ast.Value{}, err
				}
				out = append(out, v)
			}
			return ast.Array(out), nil
		}
	}
	return cur, nil
}

// splatElements promotes a non-null scalar into a one-element array, or
// returns an array's elements unchanged.
func splatElements(v ast.Value) []ast.Value {
	if v.Kind() == ast.KindArray {
		return v.AsArray()
	}
	return []ast.Value{v}
}

func indexInto(cur, key ast.Value, rng ast.Range) (ast.Value, error) {
	switch cur.Kind() {
	case ast.KindArray:
		if key.Kind() != ast.KindNumber {
			return ast.Value{}, typeErr(rng, "array index must be a number, got %s", key.Kind())
		}
		idx, exact := key.AsNumber().Int64()
		if !exact {
			return ast.Value{}, typeErr(rng, "array index must be an integer")
		}
		arr := cur.AsArray()
		if idx < 0 || idx >= int64(len(arr)) {
			return ast.Value{}, rangeErr(rng, "index %d out of bounds (array has %d elements)", idx, len(arr))
		}
		return arr[idx], nil
	case ast.KindObject:
		if key.Kind() != ast.KindString {
			return ast.Value{}, typeErr(rng, "object index must be a string, got %s", key.Kind())
		}
		v, ok := cur.AsObject().Get(key.AsString())
		if !ok {
			return ast.Value{}, resolutionErr(rng, "object has no attribute %q", key.AsString())
		}
		return v, nil
	default:
		return ast.Value{}, typeErr(rng, "index operator requires an array or object, got %s", cur.Kind())
	}
}
