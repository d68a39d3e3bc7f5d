package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yunsang-Jeong/hcl/ast"
)

func TestParseBody_SimpleAttribute(t *testing.T) {
	body, diags := ParseBody([]byte(`name = "value"`+"\n"), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	require.Len(t, body.Attributes(), 1)
	attr := body.Attribute("name")
	require.NotNil(t, attr)
	lit, ok := attr.Value.(*ast.LiteralValueExpr)
	require.True(t, ok)
	assert.Equal(t, "value", lit.Val.AsString())
}

func TestParseBody_DuplicateAttributeRejected(t *testing.T) {
	_, diags := ParseBody([]byte("a = 1\na = 2\n"), "test.hcl")
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.Error(), "duplicate attribute")
}

func TestParseBody_OneLineBlock(t *testing.T) {
	body, diags := ParseBody([]byte(`block { a = 1 b = 2 }`+"\n"), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	require.Len(t, body.Blocks(), 1)
	blk := body.Blocks()[0]
	assert.True(t, blk.OneLine)
	assert.Len(t, blk.Body.Attributes(), 2)
}

func TestParseBody_BlockWithLabelsAndNestedCollections(t *testing.T) {
	src := `resource "aws_instance" "web" {
  tags = { Name = "web", count = 2 }
  ports = [80, 443]
}
`
	body, diags := ParseBody([]byte(src), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	blocks := body.BlocksOfType("resource")
	require.Len(t, blocks, 1)
	blk := blocks[0]
	assert.Equal(t, []string{"aws_instance", "web"}, blk.LabelValues())

	tagsAttr := blk.Body.Attribute("tags")
	require.NotNil(t, tagsAttr)
	obj, ok := tagsAttr.Value.(*ast.ObjectConsExpr)
	require.True(t, ok)
	assert.Len(t, obj.Items, 2)
	assert.True(t, obj.Items[0].IdentKey)

	portsAttr := blk.Body.Attribute("ports")
	require.NotNil(t, portsAttr)
	tup, ok := portsAttr.Value.(*ast.TupleConsExpr)
	require.True(t, ok)
	assert.Len(t, tup.Exprs, 2)
}

func TestParseExpression_OperatorPrecedence(t *testing.T) {
	expr, diags := ParseExpression([]byte("1 + 2 * 3"), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	bin, ok := expr.(*ast.BinaryOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
	rhs, ok := bin.RHS.(*ast.BinaryOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, rhs.Op)
}

func TestParseExpression_ConditionalIsLowestPrecedence(t *testing.T) {
	expr, diags := ParseExpression([]byte("a == b ? 1 : 2"), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	cond, ok := expr.(*ast.ConditionalExpr)
	require.True(t, ok)
	_, ok = cond.Cond.(*ast.BinaryOpExpr)
	assert.True(t, ok)
}

func TestParseExpression_NegativeNumberLiteralFolds(t *testing.T) {
	expr, diags := ParseExpression([]byte("-5"), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	lit, ok := expr.(*ast.LiteralValueExpr)
	require.True(t, ok)
	i, exact := lit.Val.AsNumber().Int64()
	require.True(t, exact)
	assert.Equal(t, int64(-5), i)
}

func TestParseExpression_Traversal(t *testing.T) {
	expr, diags := ParseExpression([]byte(`a.b[0]["c"].*`), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	trav, ok := expr.(*ast.TraversalExpr)
	require.True(t, ok)
	require.Len(t, trav.Ops, 4)
	_, ok = trav.Ops[0].(ast.TraverseAttr)
	assert.True(t, ok)
	_, ok = trav.Ops[1].(ast.TraverseIndex)
	assert.True(t, ok)
	_, ok = trav.Ops[2].(ast.TraverseIndex)
	assert.True(t, ok)
	_, ok = trav.Ops[3].(ast.TraverseAttrSplat)
	assert.True(t, ok)
}

func TestParseExpression_FunctionCallWithExpandFinal(t *testing.T) {
	expr, diags := ParseExpression([]byte(`max(1, 2, list...)`), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	call, ok := expr.(*ast.FunctionCallExpr)
	require.True(t, ok)
	assert.Equal(t, "max", call.Name.String())
	assert.True(t, call.ExpandFinal)
	require.Len(t, call.Args, 3)
}

func TestParseExpression_ForExpressionTupleWithCondition(t *testing.T) {
	expr, diags := ParseExpression([]byte(`[for v in list : v if v != null]`), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	fe, ok := expr.(*ast.ForExpr)
	require.True(t, ok)
	assert.Nil(t, fe.KeyVar)
	assert.Equal(t, "v", fe.ValVar.String())
	assert.NotNil(t, fe.CondExpr)
	assert.False(t, fe.Grouping)
}

func TestParseExpression_ForExpressionObjectWithGrouping(t *testing.T) {
	expr, diags := ParseExpression([]byte(`{for k, v in m : k => v...}`), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	fe, ok := expr.(*ast.ForExpr)
	require.True(t, ok)
	require.NotNil(t, fe.KeyVar)
	assert.Equal(t, "k", fe.KeyVar.String())
	assert.Equal(t, "v", fe.ValVar.String())
	assert.True(t, fe.Grouping)
}

func TestParseExpression_ParenthesesArePreserved(t *testing.T) {
	expr, diags := ParseExpression([]byte("(a)"), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	_, ok := expr.(*ast.ParenthesesExpr)
	assert.True(t, ok)
}

func TestParseExpression_QuotedStringWithInterpolationStaysTemplate(t *testing.T) {
	expr, diags := ParseExpression([]byte(`"hello ${name}"`), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	tmpl, ok := expr.(*ast.TemplateExpr)
	require.True(t, ok)
	assert.True(t, tmpl.Quoted)
}

func TestParseExpression_PlainQuotedStringFoldsToLiteral(t *testing.T) {
	expr, diags := ParseExpression([]byte(`"hello world"`), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	lit, ok := expr.(*ast.LiteralValueExpr)
	require.True(t, ok)
	assert.Equal(t, "hello world", lit.Val.AsString())
}

func TestParseExpression_DollarDollarEscapeFoldsToLiteral(t *testing.T) {
	expr, diags := ParseExpression([]byte(`"$${not_interpolated}"`), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	lit, ok := expr.(*ast.LiteralValueExpr)
	require.True(t, ok)
	assert.Equal(t, "${not_interpolated}", lit.Val.AsString())
}

func TestParseExpression_HeredocIndentStripping(t *testing.T) {
	src := "<<-EOT\n  line one\n    line two\n  EOT\n"
	expr, diags := ParseExpression([]byte(src), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	lit, ok := expr.(*ast.LiteralValueExpr)
	require.True(t, ok)
	assert.Equal(t, "line one\n  line two\n", lit.Val.AsString())
}

func TestParseExpression_HeredocWithoutFlushKeepsIndent(t *testing.T) {
	src := "<<EOT\n  line one\n  EOT\n"
	expr, diags := ParseExpression([]byte(src), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	lit, ok := expr.(*ast.LiteralValueExpr)
	require.True(t, ok)
	assert.Equal(t, "  line one\n", lit.Val.AsString())
}

func TestParseTemplate_InterpolationAndDirectives(t *testing.T) {
	src := `prefix ${name} %{ if ok }yes%{ else }no%{ endif } suffix`
	tmpl, diags := ParseTemplate(src, ast.Range{Filename: "test.hcl"})
	require.False(t, diags.HasErrors(), diags.Error())
	require.Len(t, tmpl.Elements, 5)
	_, ok := tmpl.Elements[0].(*ast.Literal)
	assert.True(t, ok)
	_, ok = tmpl.Elements[1].(*ast.Interpolation)
	assert.True(t, ok)
	ifDir, ok := tmpl.Elements[3].(*ast.IfDirective)
	require.True(t, ok)
	require.NotNil(t, ifDir.False)
	_, ok = tmpl.Elements[4].(*ast.Literal)
	assert.True(t, ok)
}

func TestParseTemplate_ForDirective(t *testing.T) {
	src := `%{ for v in list }${v},%{ endfor }`
	tmpl, diags := ParseTemplate(src, ast.Range{Filename: "test.hcl"})
	require.False(t, diags.HasErrors(), diags.Error())
	require.Len(t, tmpl.Elements, 1)
	forDir, ok := tmpl.Elements[0].(*ast.ForDirective)
	require.True(t, ok)
	assert.Nil(t, forDir.KeyVar)
	assert.Equal(t, "v", forDir.ValVar)
	require.Len(t, forDir.Body.Elements, 2)
}

func TestParseExpression_SingleInterpolationUnwrapDetection(t *testing.T) {
	expr, diags := ParseExpression([]byte(`"${x}"`), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	tmplExpr, ok := expr.(*ast.TemplateExpr)
	require.True(t, ok)
	tmpl, diags := ParseTemplate(tmplExpr.Raw, tmplExpr.Rng)
	require.False(t, diags.HasErrors(), diags.Error())
	_, unwraps := tmpl.IsSingleInterpolation()
	assert.True(t, unwraps)

	parenExpr, diags := ParseExpression([]byte(`"${(x)}"`), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	parenTmplExpr := parenExpr.(*ast.TemplateExpr)
	parenTmpl, diags := ParseTemplate(parenTmplExpr.Raw, parenTmplExpr.Rng)
	require.False(t, diags.HasErrors(), diags.Error())
	_, unwraps = parenTmpl.IsSingleInterpolation()
	assert.False(t, unwraps)
}
