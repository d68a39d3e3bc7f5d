package eval

import (
	"fmt"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/diag"
)

// Param describes one declared function parameter: a name for error
// messages and the value kinds it accepts. A nil/empty Kinds means any
// kind is accepted.
type Param struct {
	Name  string
	Kinds []ast.ValueKind
}

func (p Param) accepts(v ast.Value) bool {
	if len(p.Kinds) == 0 {
		return true
	}
	for _, k := range p.Kinds {
		if k == v.Kind() {
			return true
		}
	}
	return false
}

// Function is the pluggable call protocol's callable descriptor (spec
// §4.4 "FuncCall"): a fixed parameter list, an optional variadic tail
// parameter, and the Go implementation.
type Function struct {
	Params   []Param
	VarParam *Param // nil if the function is not variadic
	Impl     func(args []ast.Value) (ast.Value, error)
}

// call checks arity and per-argument types, then invokes fn.Impl. rng
// is the call site's range, used only to attach a Range to any error.
func (fn *Function) call(name string, args []ast.Value, rng ast.Range) (ast.Value, error) {
	min := len(fn.Params)
	if fn.VarParam == nil {
		if len(args) != min {
			return ast.Value{}, &diag.Diagnostic{
				Kind:    diag.RangeKind,
				Summary: fmt.Sprintf("function %q expects %d argument(s), got %d", name, min, len(args)),
				Subject: rng,
			}
		}
	} else if len(args) < min {
		return ast.Value{}, &diag.Diagnostic{
			Kind:    diag.RangeKind,
			Summary: fmt.Sprintf("function %q expects at least %d argument(s), got %d", name, min, len(args)),
			Subject: rng,
		}
	}

	for i, p := range fn.Params {
		if !p.accepts(args[i]) {
			return ast.Value{}, &diag.Diagnostic{
				Kind:    diag.Type,
				Summary: fmt.Sprintf("function %q argument %d (%s): unexpected value kind %s", name, i+1, p.Name, args[i].Kind()),
				Subject: rng,
			}
		}
	}
	if fn.VarParam != nil {
		for i := min; i < len(args); i++ {
			if !fn.VarParam.accepts(args[i]) {
				return ast.Value{}, &diag.Diagnostic{
					Kind:    diag.Type,
					Summary: fmt.Sprintf("function %q argument %d (%s): unexpected value kind %s", name, i+1, fn.VarParam.Name, args[i].Kind()),
					Subject: rng,
				}
			}
		}
	}

	v, err := fn.Impl(args)
	if err != nil {
		return ast.Value{}, &diag.Diagnostic{Kind: diag.Semantic, Summary: fmt.Sprintf("function %q: %s", name, err.Error()), Subject: rng}
	}
	return v, nil
}

func evalFunctionCall(call *ast.FunctionCallExpr, ctx *Context) (ast.Value, error) {
	name := call.Name.String()
	fn, ok := ctx.Function(name)
	if !ok {
		return ast.Value{}, resolutionErr(call.Rng, "call to unknown function %q", name)
	}

	args := make([]ast.Value, 0, len(call.Args))
	for _, argExpr := range call.Args {
		v, err := Evaluate(argExpr, ctx)
		if err != nil {
			return ast.Value{}, err
		}
		args = append(args, v)
	}

	if call.ExpandFinal {
		if len(args) == 0 {
			return ast.Value{}, typeErr(call.Rng, "expand_final (...) requires at least one argument")
		}
		last := args[len(args)-1]
		if last.Kind() != ast.KindArray {
			return ast.Value{}, typeErr(call.Rng, "expand_final (...) argument must be an array, got %s", last.Kind())
		}
		args = append(args[:len(args)-1], last.AsArray()...)
	}

	return fn.call(name, args, call.Rng)
}
