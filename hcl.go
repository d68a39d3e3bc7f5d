// Package hcl is the core HCL native-syntax library: parsing source
// bytes to an AST, evaluating expressions against a Context, and
// printing AST nodes or Values back to HCL text (spec §1, §6 "External
// interfaces"). Subpackages ast, diag, ident, number, token, parser,
// eval, printer and convert implement the pieces this file wires
// together into the programmatic parse/evaluate/serialize API.
package hcl

import (
	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/diag"
	"github.com/Yunsang-Jeong/hcl/eval"
	"github.com/Yunsang-Jeong/hcl/parser"
	"github.com/Yunsang-Jeong/hcl/printer"
)

// Parse parses src as an HCL body. On failure it returns nil and a
// Diagnostics holding the first syntax error found; parsing stops there.
func Parse(src []byte, filename string) (*ast.Body, diag.Diagnostics) {
	return parser.ParseBody(src, filename)
}

// ParseExpression parses src as a single HCL expression.
func ParseExpression(src []byte, filename string) (ast.Expression, diag.Diagnostics) {
	return parser.ParseExpression(src, filename)
}

// ParseValue parses src as a body and evaluates every attribute against
// an empty Context, for callers who only want pure data and have no
// variables or functions to supply (spec §6 "a matching function
// returns a Value by invoking the evaluator with an empty context").
func ParseValue(src []byte, filename string) (ast.Value, error) {
	body, diags := Parse(src, filename)
	if diags.HasErrors() {
		return ast.Value{}, diags
	}
	return EvaluateBody(body, eval.NewContext())
}

// EvaluateBody evaluates every attribute in body against ctx and returns
// the result as an object Value; nested blocks are not expanded here —
// use package convert's BodyToJSONValue for the block-aware JSON shape.
func EvaluateBody(body *ast.Body, ctx *eval.Context) (ast.Value, error) {
	obj := ast.NewValueMap()
	for _, attr := range body.Attributes() {
		v, err := eval.Evaluate(attr.Value, ctx)
		if err != nil {
			return ast.Value{}, err
		}
		obj.Set(attr.Name.String(), v)
	}
	return ast.Object(obj), nil
}

// NewContext returns a new, empty evaluation Context.
func NewContext() *eval.Context { return eval.NewContext() }

// Evaluate reduces expr to a Value against ctx.
func Evaluate(expr ast.Expression, ctx *eval.Context) (ast.Value, error) {
	return eval.Evaluate(expr, ctx)
}

// Print renders body as HCL source text using cfg.
func Print(body *ast.Body, cfg printer.Config) (string, error) {
	return printer.PrintBody(body, cfg)
}

// PrintValue renders v as an HCL expression literal using cfg.
func PrintValue(v ast.Value, cfg printer.Config) (string, error) {
	return printer.PrintValue(v, cfg)
}
