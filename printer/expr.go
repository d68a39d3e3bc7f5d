package printer

import (
	"fmt"
	"strings"

	"github.com/Yunsang-Jeong/hcl/ast"
)

// PrintExpression renders e as HCL source text (spec §4.5). The tree
// structure already encodes operator precedence unambiguously, so no
// extra parentheses are introduced beyond what the original source
// carried via explicit ParenthesesExpr nodes — this is what makes the
// result idempotent under parse→print→parse.
func PrintExpression(e ast.Expression, cfg Config) (string, error) {
	var b strings.Builder
	if err := writeExpr(&b, e, cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeExpr(b *strings.Builder, e ast.Expression, cfg Config) error {
	switch n := e.(type) {
	case *ast.LiteralValueExpr:
		s, err := renderValueLiteral(n.Val, cfg)
		if err != nil {
			return err
		}
		b.WriteString(s)

	case *ast.TemplateExpr:
		if n.Quoted {
			b.WriteString(`"` + n.Raw + `"`)
		} else {
			b.WriteString("<<EOT\n" + n.Raw + "EOT\n")
		}

	case *ast.VariableExpr:
		b.WriteString(n.Name.String())

	case *ast.TupleConsExpr:
		b.WriteByte('[')
		for i, sub := range n.Exprs {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := writeExpr(b, sub, cfg); err != nil {
				return err
			}
		}
		b.WriteByte(']')

	case *ast.ObjectConsExpr:
		b.WriteByte('{')
		for i, item := range n.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := writeObjectKey(b, item, cfg); err != nil {
				return err
			}
			b.WriteString(" = ")
			if err := writeExpr(b, item.ValueExpr, cfg); err != nil {
				return err
			}
		}
		b.WriteByte('}')

	case *ast.TraversalExpr:
		if err := writeExpr(b, n.Target, cfg); err != nil {
			return err
		}
		for _, op := range n.Ops {
			if err := writeTraverseOp(b, op, cfg); err != nil {
				return err
			}
		}

	case *ast.FunctionCallExpr:
		b.WriteString(n.Name.String())
		b.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := writeExpr(b, arg, cfg); err != nil {
				return err
			}
		}
		if n.ExpandFinal {
			b.WriteString("...")
		}
		b.WriteByte(')')

	case *ast.ConditionalExpr:
		if err := writeExpr(b, n.Cond, cfg); err != nil {
			return err
		}
		b.WriteString(" ? ")
		if err := writeExpr(b, n.TrueExpr, cfg); err != nil {
			return err
		}
		b.WriteString(" : ")
		if err := writeExpr(b, n.FalseExpr, cfg); err != nil {
			return err
		}

	case *ast.UnaryOpExpr:
		b.WriteString(n.Op.String())
		if err := writeExpr(b, n.Operand, cfg); err != nil {
			return err
		}

	case *ast.BinaryOpExpr:
		if err := writeExpr(b, n.LHS, cfg); err != nil {
			return err
		}
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		if err := writeExpr(b, n.RHS, cfg); err != nil {
			return err
		}

	case *ast.ForExpr:
		return writeForExpr(b, n, cfg)

	case *ast.ParenthesesExpr:
		b.WriteByte('(')
		if err := writeExpr(b, n.Inner, cfg); err != nil {
			return err
		}
		b.WriteByte(')')

	default:
		return fmt.Errorf("printer: unsupported expression node %T", e)
	}
	return nil
}

func writeObjectKey(b *strings.Builder, item ast.ObjectConsItem, cfg Config) error {
	if item.IdentKey {
		if lit, ok := item.KeyExpr.(*ast.LiteralValueExpr); ok && lit.Val.Kind() == ast.KindString {
			b.WriteString(lit.Val.AsString())
			return nil
		}
	}
	return writeExpr(b, item.KeyExpr, cfg)
}

func writeTraverseOp(b *strings.Builder, op ast.TraverseOp, cfg Config) error {
	switch o := op.(type) {
	case ast.TraverseAttr:
		b.WriteByte('.')
		b.WriteString(o.Name.String())
	case ast.TraverseIndex:
		b.WriteByte('[')
		if err := writeExpr(b, o.Key, cfg); err != nil {
			return err
		}
		b.WriteByte(']')
	case ast.TraverseSplat:
		b.WriteString("[*]")
	case ast.TraverseAttrSplat:
		b.WriteString(".*")
	case ast.TraverseLegacyIndex:
		b.WriteByte('.')
		fmt.Fprintf(b, "%d", o.Index)
	default:
		return fmt.Errorf("printer: unsupported traversal op %T", op)
	}
	return nil
}

func writeForExpr(b *strings.Builder, e *ast.ForExpr, cfg Config) error {
	openCh, closeCh := '[', ']'
	if e.KeyExpr != nil {
		openCh, closeCh = '{', '}'
	}
	b.WriteRune(openCh)
	b.WriteString("for ")
	if e.KeyVar != nil {
		b.WriteString(e.KeyVar.String())
		b.WriteString(", ")
	}
	b.WriteString(e.ValVar.String())
	b.WriteString(" in ")
	if err := writeExpr(b, e.Collection, cfg); err != nil {
		return err
	}
	b.WriteString(" : ")
	if e.KeyExpr != nil {
		if err := writeExpr(b, e.KeyExpr, cfg); err != nil {
			return err
		}
		b.WriteString(" => ")
	}
	if err := writeExpr(b, e.ValExpr, cfg); err != nil {
		return err
	}
	if e.Grouping {
		b.WriteString("...")
	}
	if e.CondExpr != nil {
		b.WriteString(" if ")
		if err := writeExpr(b, e.CondExpr, cfg); err != nil {
			return err
		}
	}
	b.WriteRune(closeCh)
	return nil
}

// renderValueLiteral prints a LiteralValueExpr's payload: null, a bool
// keyword, a number via its shortest round-trip form, or a quoted
// string.
func renderValueLiteral(v ast.Value, cfg Config) (string, error) {
	switch v.Kind() {
	case ast.KindNull:
		return "null", nil
	case ast.KindBool:
		if v.AsBool() {
			return "true", nil
		}
		return "false", nil
	case ast.KindNumber:
		return v.AsNumber().String(), nil
	case ast.KindString:
		return quotedString(v.AsString()), nil
	default:
		return "", fmt.Errorf("printer: a %s value cannot be a literal expression", v.Kind())
	}
}
