package eval

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/number"
	"github.com/Yunsang-Jeong/hcl/parser"
)

func mustParseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	expr, diags := parser.ParseExpression([]byte(src), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	return expr
}

func TestEvaluate_Arithmetic(t *testing.T) {
	v, err := Evaluate(mustParseExpr(t, "1 + 2 * 3"), NewContext())
	require.NoError(t, err)
	i, _ := v.AsNumber().Int64()
	assert.Equal(t, int64(7), i)
}

func TestEvaluate_DivisionIsAlwaysFloat(t *testing.T) {
	v, err := Evaluate(mustParseExpr(t, "7 / 2"), NewContext())
	require.NoError(t, err)
	assert.True(t, v.AsNumber().IsFloat())
	assert.InDelta(t, 3.5, v.AsNumber().Float64(), 1e-9)
}

func TestEvaluate_DivisionByZeroIsError(t *testing.T) {
	_, err := Evaluate(mustParseExpr(t, "1 / 0"), NewContext())
	require.Error(t, err)
}

func TestEvaluate_LogicalShortCircuit(t *testing.T) {
	ctx := NewContext()
	ctx.SetFunction("boom", &Function{Impl: func(args []ast.Value) (ast.Value, error) {
		return ast.Value{}, fmt.Errorf("should not be called")
	}})
	v, err := Evaluate(mustParseExpr(t, "false && boom()"), ctx)
	require.NoError(t, err)
	assert.False(t, v.AsBool())

	v, err = Evaluate(mustParseExpr(t, "true || boom()"), ctx)
	require.NoError(t, err)
	assert.True(t, v.AsBool())
}

func TestEvaluate_EqualityNoCoercion(t *testing.T) {
	v, err := Evaluate(mustParseExpr(t, `1 == "1"`), NewContext())
	require.NoError(t, err)
	assert.False(t, v.AsBool())

	v, err = Evaluate(mustParseExpr(t, `1 != "1"`), NewContext())
	require.NoError(t, err)
	assert.True(t, v.AsBool())
}

func TestEvaluate_VariableLookup(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("name", ast.String("world"))
	v, err := Evaluate(mustParseExpr(t, "name"), ctx)
	require.NoError(t, err)
	assert.Equal(t, "world", v.AsString())
}

func TestEvaluate_UnknownVariableIsResolutionError(t *testing.T) {
	_, err := Evaluate(mustParseExpr(t, "missing"), NewContext())
	require.Error(t, err)
}

func TestEvaluate_Traversal(t *testing.T) {
	obj := ast.NewValueMap()
	obj.Set("b", ast.Int(42))
	ctx := NewContext()
	ctx.SetVariable("a", ast.Object(obj))
	v, err := Evaluate(mustParseExpr(t, "a.b"), ctx)
	require.NoError(t, err)
	i, _ := v.AsNumber().Int64()
	assert.Equal(t, int64(42), i)
}

func TestEvaluate_FullSplatPromotesScalarAndShortCircuitsNull(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("scalar", ast.Int(5))
	v, err := Evaluate(mustParseExpr(t, "scalar[*]"), ctx)
	require.NoError(t, err)
	require.Equal(t, ast.KindArray, v.Kind())
	require.Len(t, v.AsArray(), 1)

	ctx.SetVariable("n", ast.Null)
	v, err = Evaluate(mustParseExpr(t, "n[*]"), ctx)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestEvaluate_FunctionCallArityAndExpandFinal(t *testing.T) {
	ctx := NewContext()
	ctx.SetFunction("sum", &Function{
		VarParam: &Param{Name: "nums", Kinds: []ast.ValueKind{ast.KindNumber}},
		Impl: func(args []ast.Value) (ast.Value, error) {
			total := 0.0
			for _, a := range args {
				total += a.AsNumber().Float64()
			}
			return ast.NumberValue(number.MustFloat64(total)), nil
		},
	})
	v, err := Evaluate(mustParseExpr(t, "sum(1, 2, nums...)"), withListVar(ctx, "nums", 3, 4))
	require.NoError(t, err)
	assert.InDelta(t, 10, v.AsNumber().Float64(), 1e-9)
}

func withListVar(ctx *Context, name string, vals ...int64) *Context {
	elems := make([]ast.Value, len(vals))
	for i, v := range vals {
		elems[i] = ast.Int(v)
	}
	ctx.SetVariable(name, ast.Array(elems))
	return ctx
}

func TestEvaluate_ForExprTupleAndObjectAndGrouping(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("list", ast.Array([]ast.Value{ast.Int(1), ast.Int(2), ast.Int(3)}))
	v, err := Evaluate(mustParseExpr(t, "[for v in list : v * 2 if v != 2]"), ctx)
	require.NoError(t, err)
	require.Equal(t, ast.KindArray, v.Kind())
	require.Len(t, v.AsArray(), 2)

	m := ast.NewValueMap()
	m.Set("a", ast.Int(1))
	m.Set("b", ast.Int(1))
	ctx.SetVariable("m", ast.Object(m))
	v, err = Evaluate(mustParseExpr(t, "{for k, x in m : x => k...}"), ctx)
	require.NoError(t, err)
	require.Equal(t, ast.KindObject, v.Kind())
	grouped, ok := v.AsObject().Get("1")
	require.True(t, ok)
	assert.Len(t, grouped.AsArray(), 2)
}

func TestEvaluate_ForExprOverEmptyCollectionYieldsEmptyResult(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("list", ast.Array(nil))
	v, err := Evaluate(mustParseExpr(t, "[for v in list : v]"), ctx)
	require.NoError(t, err)
	require.Equal(t, ast.KindArray, v.Kind())
	assert.Len(t, v.AsArray(), 0)

	v, err = Evaluate(mustParseExpr(t, "{for k, x in list : k => x}"), ctx)
	require.NoError(t, err)
	require.Equal(t, ast.KindObject, v.Kind())
	assert.Equal(t, 0, v.AsObject().Len())
}

func TestEvaluate_ForExprDuplicateKeyWithoutGroupingErrors(t *testing.T) {
	ctx := NewContext()
	m := ast.NewValueMap()
	m.Set("a", ast.Int(1))
	m.Set("b", ast.Int(1))
	ctx.SetVariable("m", ast.Object(m))
	_, err := Evaluate(mustParseExpr(t, "{for k, x in m : x => k}"), ctx)
	require.Error(t, err)
}

func TestEvaluate_TemplateConcatenationAndUnwrap(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("name", ast.String("world"))
	v, err := Evaluate(mustParseExpr(t, `"hello ${name}"`), ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello world", v.AsString())

	ctx.SetVariable("n", ast.Int(5))
	v, err = Evaluate(mustParseExpr(t, `"${n}"`), ctx)
	require.NoError(t, err)
	require.Equal(t, ast.KindNumber, v.Kind())

	v, err = Evaluate(mustParseExpr(t, `"${(n)}"`), ctx)
	require.NoError(t, err)
	require.Equal(t, ast.KindString, v.Kind())
	assert.Equal(t, "5", v.AsString())
}

func TestEvaluate_TemplateInterpolatesArraysAndObjectsViaDebugString(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("x", ast.Array([]ast.Value{ast.Int(1), ast.Int(2), ast.Int(3)}))
	v, err := Evaluate(mustParseExpr(t, `"${(x)}"`), ctx)
	require.NoError(t, err)
	require.Equal(t, ast.KindString, v.Kind())
	assert.Equal(t, "[1, 2, 3]", v.AsString())
}

func TestEvaluate_TemplateIfDirective(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("ok", ast.Bool(true))
	v, err := Evaluate(mustParseExpr(t, `"%{ if ok }yes%{ else }no%{ endif }"`), ctx)
	require.NoError(t, err)
	assert.Equal(t, "yes", v.AsString())
}

func TestEvaluate_TemplateForDirective(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("list", ast.Array([]ast.Value{ast.Int(1), ast.Int(2)}))
	v, err := Evaluate(mustParseExpr(t, `"%{ for v in list }${v}-%{ endfor }"`), ctx)
	require.NoError(t, err)
	assert.Equal(t, "1-2-", v.AsString())
}

func TestEvaluate_TemplateWhitespaceStripping(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("ok", ast.Bool(true))
	v, err := Evaluate(mustParseExpr(t, "<<EOT\na\n%{~ if ok ~}\nb\n%{~ endif ~}\nc\nEOT\n"), ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc\n", v.AsString())
}
