package hcl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hcl "github.com/Yunsang-Jeong/hcl"
	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/printer"
)

func TestParseAndEvaluateBody(t *testing.T) {
	src := `
greeting = "hello ${name}"
count = 1 + 2
`
	body, diags := hcl.Parse([]byte(src), "t.hcl")
	require.False(t, diags.HasErrors(), diags.Error())

	ctx := hcl.NewContext()
	ctx.SetVariable("name", ast.String("world"))

	v, err := hcl.EvaluateBody(body, ctx)
	require.NoError(t, err)

	greeting, ok := v.AsObject().Get("greeting")
	require.True(t, ok)
	assert.Equal(t, "hello world", greeting.AsString())

	count, ok := v.AsObject().Get("count")
	require.True(t, ok)
	i, _ := count.AsNumber().Int64()
	assert.Equal(t, int64(3), i)
}

func TestParseValue_WithNoFreeVariablesSucceeds(t *testing.T) {
	src := `a = 1
b = [1, 2, 3]
`
	v, err := hcl.ParseValue([]byte(src), "t.hcl")
	require.NoError(t, err)
	b, ok := v.AsObject().Get("b")
	require.True(t, ok)
	assert.Len(t, b.AsArray(), 3)
}

func TestParseValue_UnboundVariableIsError(t *testing.T) {
	_, err := hcl.ParseValue([]byte("a = undefined\n"), "t.hcl")
	assert.Error(t, err)
}

func TestPrintRoundTrip(t *testing.T) {
	body, diags := hcl.Parse([]byte("a = 1\nb = \"x\"\n"), "t.hcl")
	require.False(t, diags.HasErrors())

	out, err := hcl.Print(body, printer.DefaultConfig())
	require.NoError(t, err)

	reparsed, diags2 := hcl.Parse([]byte(out), "t.hcl")
	require.False(t, diags2.HasErrors())
	assert.Equal(t, len(body.Structures), len(reparsed.Structures))
}
