package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/ident"
	"github.com/Yunsang-Jeong/hcl/parser"
	"github.com/Yunsang-Jeong/hcl/printer"
)

func TestPrintBody_AttributeAndBlockRoundTrip(t *testing.T) {
	src := "name = \"web\"\n\nresource \"aws_instance\" \"app\" {\n  ami = \"abc\"\n  count = 2\n}\n"
	body, diags := parser.ParseBody([]byte(src), "test.hcl")
	require.False(t, diags.HasErrors())

	out, err := printer.PrintBody(body, printer.DefaultConfig())
	require.NoError(t, err)

	reparsed, diags2 := parser.ParseBody([]byte(out), "test.hcl")
	require.False(t, diags2.HasErrors(), diags2.Error())
	assert.Equal(t, len(body.Structures), len(reparsed.Structures))
	assert.Contains(t, out, `resource "aws_instance" "app" {`)
	assert.Contains(t, out, "ami = \"abc\"")
}

func TestPrintBody_OneLineBlockHint(t *testing.T) {
	attr := &ast.Attribute{
		Name:  ident.New("k"),
		Value: &ast.LiteralValueExpr{Val: ast.Int(1)},
	}
	blk := &ast.Block{
		Type:    ident.New("locals"),
		Body:    &ast.Body{Structures: []ast.Structure{attr}},
		OneLine: true,
	}
	body := &ast.Body{Structures: []ast.Structure{blk}}

	out, err := printer.PrintBody(body, printer.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "locals { k = 1 }\n", out)
}

func TestPrintBody_OneLineBlockMultiAttributeJoinsWithSpaceNotSemicolon(t *testing.T) {
	attrA := &ast.Attribute{Name: ident.New("a"), Value: &ast.LiteralValueExpr{Val: ast.Int(1)}}
	attrB := &ast.Attribute{Name: ident.New("b"), Value: &ast.LiteralValueExpr{Val: ast.Int(2)}}
	blk := &ast.Block{
		Type:    ident.New("locals"),
		Body:    &ast.Body{Structures: []ast.Structure{attrA, attrB}},
		OneLine: true,
	}
	body := &ast.Body{Structures: []ast.Structure{blk}}

	out, err := printer.PrintBody(body, printer.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "locals { a = 1 b = 2 }\n", out)
	assert.NotContains(t, out, ";")

	reparsed, diags := parser.ParseBody([]byte(out), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	assert.Len(t, reparsed.Structures, 1)
}

func TestPrintBody_StrictModeRejectsInvalidBlockLabel(t *testing.T) {
	blk := &ast.Block{
		Type:   ident.New("resource"),
		Labels: []ast.BlockLabel{{Value: "not valid", IsQuoted: true}},
		Body:   &ast.Body{},
	}
	body := &ast.Body{Structures: []ast.Structure{blk}}

	cfg := printer.DefaultConfig()
	cfg.StrictMode = true
	_, err := printer.PrintBody(body, cfg)
	assert.Error(t, err)

	_, err = printer.PrintBody(body, printer.DefaultConfig())
	assert.NoError(t, err)
}

func TestPrintValue_StrictModeRejectsInvalidObjectKey(t *testing.T) {
	m := ast.NewValueMap()
	m.Set("not valid", ast.Int(1))
	v := ast.Object(m)

	cfg := printer.DefaultConfig()
	cfg.StrictMode = true
	_, err := printer.PrintValue(v, cfg)
	assert.Error(t, err)
}

func TestPrintExpression_OperatorPrecedencePreserved(t *testing.T) {
	expr, diags := parser.ParseExpression([]byte("1 + 2 * 3"), "test.hcl")
	require.False(t, diags.HasErrors())
	out, err := printer.PrintExpression(expr, printer.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "1 + 2 * 3", out)
}

func TestPrintExpression_ExplicitParenthesesPreserved(t *testing.T) {
	expr, diags := parser.ParseExpression([]byte("(1 + 2) * 3"), "test.hcl")
	require.False(t, diags.HasErrors())
	out, err := printer.PrintExpression(expr, printer.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "(1 + 2) * 3", out)
}

func TestPrintExpression_FunctionCallAndTraversal(t *testing.T) {
	expr, diags := parser.ParseExpression([]byte("max(a.b[0], c...)"), "test.hcl")
	require.False(t, diags.HasErrors())
	out, err := printer.PrintExpression(expr, printer.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "max(a.b[0], c...)", out)
}

func TestPrintValue_CompactAndMultilineArrays(t *testing.T) {
	v := ast.Array([]ast.Value{ast.Int(1), ast.Int(2)})

	compact := printer.DefaultConfig()
	compact.CompactArrays = true
	out, err := printer.PrintValue(v, compact)
	require.NoError(t, err)
	assert.Equal(t, "[1, 2]", out)

	out2, err := printer.PrintValue(v, printer.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  2,\n]", out2)
}

func TestPrintValue_ObjectKeyQuotingRespectsConfig(t *testing.T) {
	m := ast.NewValueMap()
	m.Set("valid_ident", ast.Int(1))
	m.Set("not valid", ast.Int(2))
	v := ast.Object(m)

	cfg := printer.DefaultConfig()
	cfg.CompactObjects = true
	out, err := printer.PrintValue(v, cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "valid_ident = 1")
	assert.Contains(t, out, `"not valid" = 2`)
}

func TestPrintValue_StringEscaping(t *testing.T) {
	out, err := printer.PrintValue(ast.String("line1\nline2 \"quoted\" ${not_interp}"), printer.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, `"line1\nline2 \"quoted\" $${not_interp}"`, out)
}
