package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/convert"
	"github.com/Yunsang-Jeong/hcl/eval"
	"github.com/Yunsang-Jeong/hcl/parser"
)

func TestValueToExprAndBack_RoundTrips(t *testing.T) {
	obj := ast.NewValueMap()
	obj.Set("a", ast.Int(1))
	obj.Set("b", ast.Array([]ast.Value{ast.String("x"), ast.Bool(true)}))
	v := ast.Object(obj)

	expr := convert.ValueToExpr(v)
	back, err := convert.ExprToValue(expr)
	require.NoError(t, err)
	assert.True(t, v.Equal(back))
}

func TestExprToValue_RejectsNonLiteralShapes(t *testing.T) {
	expr, diags := parser.ParseExpression([]byte("1 + 2"), "t.hcl")
	require.False(t, diags.HasErrors())
	_, err := convert.ExprToValue(expr)
	assert.Error(t, err)
}

func TestTraversalForPath_EvaluatesLikeParsedTraversal(t *testing.T) {
	expr, err := convert.TraversalForPath("a", "b", "c")
	require.NoError(t, err)

	ctx := eval.NewContext()
	inner := ast.NewValueMap()
	inner.Set("c", ast.Int(9))
	mid := ast.NewValueMap()
	mid.Set("b", ast.Object(inner))
	ctx.SetVariable("a", ast.Object(mid))

	v, err := eval.Evaluate(expr, ctx)
	require.NoError(t, err)
	i, _ := v.AsNumber().Int64()
	assert.Equal(t, int64(9), i)
}

func TestTraversalForPath_RejectsInvalidSegment(t *testing.T) {
	_, err := convert.TraversalForPath("a", "not valid")
	assert.Error(t, err)
}

func TestBodyToJSONValue_BlockCollapsingAndLabelNesting(t *testing.T) {
	src := `
name = "app"

resource "aws_instance" "one" {
  ami = "a1"
}

resource "aws_instance" "two" {
  ami = "a2"
}
`
	body, diags := parser.ParseBody([]byte(src), "t.hcl")
	require.False(t, diags.HasErrors(), diags.Error())

	v, err := convert.BodyToJSONValue(body, eval.NewContext())
	require.NoError(t, err)
	require.Equal(t, ast.KindObject, v.Kind())

	name, ok := v.AsObject().Get("name")
	require.True(t, ok)
	assert.Equal(t, "app", name.AsString())

	resource, ok := v.AsObject().Get("resource")
	require.True(t, ok)
	awsInstance, ok := resource.AsObject().Get("aws_instance")
	require.True(t, ok)
	require.Equal(t, ast.KindObject, awsInstance.Kind())

	one, ok := awsInstance.AsObject().Get("one")
	require.True(t, ok)
	ami, ok := one.AsObject().Get("ami")
	require.True(t, ok)
	assert.Equal(t, "a1", ami.AsString())
}

func TestMarshalJSON_ProducesCompactJSON(t *testing.T) {
	m := ast.NewValueMap()
	m.Set("a", ast.Int(1))
	out, err := convert.MarshalJSON(ast.Object(m), 0)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(out))
}
