package eval

import (
	"strings"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/parser"
)

// evalTemplateExpr implements spec §4.4 "Template evaluation": parse the
// raw text into a structural Template, apply whitespace stripping, then
// either unwrap to the single interpolation's raw value or concatenate
// every element's rendering into one String.
func evalTemplateExpr(e *ast.TemplateExpr, ctx *Context) (ast.Value, error) {
	tmpl, diags := parser.ParseTemplate(e.Raw, e.Rng)
	if diags.HasErrors() {
		return ast.Value{}, diags[0]
	}
	applyWhitespaceStrip(tmpl)

	if interp, ok := tmpl.IsSingleInterpolation(); ok {
		return Evaluate(interp.Expr, ctx)
	}
	s, err := renderTemplate(tmpl, ctx)
	if err != nil {
		return ast.Value{}, err
	}
	return ast.String(s), nil
}

func renderTemplate(tmpl *ast.Template, ctx *Context) (string, error) {
	var b strings.Builder
	for _, el := range tmpl.Elements {
		s, err := renderElement(el, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func renderElement(el ast.Element, ctx *Context) (string, error) {
	switch e := el.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Interpolation:
		v, err := Evaluate(e.Expr, ctx)
		if err != nil {
			return "", err
		}
		return stringifyForTemplate(v, e.Rng)

	case *ast.IfDirective:
		cond, err := Evaluate(e.Cond, ctx)
		if err != nil {
			return "", err
		}
		if cond.Kind() != ast.KindBool {
			return "", typeErr(e.Cond.Range(), "if directive condition must be bool, got %s", cond.Kind())
		}
		if cond.AsBool() {
			return renderTemplate(e.True, ctx)
		}
		if e.False != nil {
			return renderTemplate(e.False, ctx)
		}
		return "", nil

	case *ast.ForDirective:
		collVal, err := Evaluate(e.Collection, ctx)
		if err != nil {
			return "", err
		}
		pairs, err := iteratePairs(collVal, e.Collection.Range())
		if err != nil {
			return "", err
		}
		var keyVarName *string
		if e.KeyVar != nil {
			k := *e.KeyVar
			keyVarName = &k
		}
		var b strings.Builder
		for _, p := range pairs {
			child := bindLoopVars(ctx, keyVarName, e.ValVar, p)
			s, err := renderTemplate(e.Body, child)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		}
		return b.String(), nil

	default:
		return "", typeErr(el.Range(), "unsupported template element %T", el)
	}
}

// stringifyForTemplate renders v for interpolation into a template
// string. Null is rejected (there is no sensible template rendering of
// an absent value); every other kind, including Array and Object, uses
// ast.Value.String()'s debug rendering (spec §8 scenario 2: interpolating
// `(x)` with `x = [1, 2, 3]` yields the string `"[1, 2, 3]"`).
func stringifyForTemplate(v ast.Value, rng ast.Range) (string, error) {
	switch v.Kind() {
	case ast.KindString:
		return v.AsString(), nil
	case ast.KindNumber:
		return v.AsNumber().String(), nil
	case ast.KindBool:
		if v.AsBool() {
			return "true", nil
		}
		return "false", nil
	case ast.KindNull:
		return "", typeErr(rng, "cannot interpolate a %s value into a template", v.Kind())
	default:
		return v.String(), nil
	}
}

// applyWhitespaceStrip implements spec §4.4 "Whitespace stripping" as a
// one-time static transform on the parsed Template: each interpolation
// or directive's left/right strip flags trim the adjacent Literal's
// text in place. Directive open/close markers compose as two
// independent edges: the opener's left strip and the closer's right
// strip reach outside the directive (into the surrounding sequence);
// the opener's right strip and the closer's left strip (and, for `if`,
// the `%{else}` marker's both edges) only trim inside the selected
// branch — the unselected branch is untouched either way.
func applyWhitespaceStrip(tmpl *ast.Template) {
	stripElements(tmpl.Elements)
}

func stripElements(elements []ast.Element) {
	for i, el := range elements {
		switch e := el.(type) {
		case *ast.Interpolation:
			if e.Strip.Left {
				trimTrailingNeighbor(elements, i)
			}
			if e.Strip.Right {
				trimLeadingNeighbor(elements, i)
			}

		case *ast.IfDirective:
			if e.StripIfOpen.Left {
				trimTrailingNeighbor(elements, i)
			}
			if e.StripEndif.Right {
				trimLeadingNeighbor(elements, i)
			}
			if e.True != nil {
				if e.StripIfOpen.Right {
					trimLeadingFirst(e.True.Elements)
				}
				lastStrip := e.StripEndif.Left
				if e.False != nil {
					lastStrip = e.StripElse.Left
				}
				if lastStrip {
					trimTrailingLast(e.True.Elements)
				}
				stripElements(e.True.Elements)
			}
			if e.False != nil {
				if e.StripElse.Right {
					trimLeadingFirst(e.False.Elements)
				}
				if e.StripEndif.Left {
					trimTrailingLast(e.False.Elements)
				}
				stripElements(e.False.Elements)
			}

		case *ast.ForDirective:
			if e.StripForOpen.Left {
				trimTrailingNeighbor(elements, i)
			}
			if e.StripEndfor.Right {
				trimLeadingNeighbor(elements, i)
			}
			if e.Body != nil {
				if e.StripForOpen.Right {
					trimLeadingFirst(e.Body.Elements)
				}
				if e.StripEndfor.Left {
					trimTrailingLast(e.Body.Elements)
				}
				stripElements(e.Body.Elements)
			}
		}
	}
}

func trimTrailingNeighbor(elements []ast.Element, i int) {
	if i == 0 {
		return
	}
	if lit, ok := elements[i-1].(*ast.Literal); ok {
		lit.Value = trimTrailingForStrip(lit.Value)
	}
}

func trimLeadingNeighbor(elements []ast.Element, i int) {
	if i+1 >= len(elements) {
		return
	}
	if lit, ok := elements[i+1].(*ast.Literal); ok {
		lit.Value = trimLeadingForStrip(lit.Value)
	}
}

func trimLeadingFirst(elements []ast.Element) {
	if len(elements) == 0 {
		return
	}
	if lit, ok := elements[0].(*ast.Literal); ok {
		lit.Value = trimLeadingForStrip(lit.Value)
	}
}

func trimTrailingLast(elements []ast.Element) {
	if len(elements) == 0 {
		return
	}
	if lit, ok := elements[len(elements)-1].(*ast.Literal); ok {
		lit.Value = trimTrailingForStrip(lit.Value)
	}
}

// trimTrailingForStrip removes trailing horizontal whitespace and, if one
// immediately precedes it, a single newline (plus the horizontal
// whitespace before that newline).
func trimTrailingForStrip(s string) string {
	end := len(s)
	for end > 0 && isHSpace(s[end-1]) {
		end--
	}
	if end > 0 && s[end-1] == '\n' {
		end--
		for end > 0 && isHSpace(s[end-1]) {
			end--
		}
	}
	return s[:end]
}

// trimLeadingForStrip removes all leading whitespace (spaces, tabs,
// newlines).
func trimLeadingForStrip(s string) string {
	i := 0
	for i < len(s) && (isHSpace(s[i]) || s[i] == '\n') {
		i++
	}
	return s[i:]
}

func isHSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }
