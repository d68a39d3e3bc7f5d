package printer

import (
	"fmt"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/diag"
	"github.com/Yunsang-Jeong/hcl/ident"
)

// PrintBody renders b as HCL source text: one structure per line, nested
// blocks indented by cfg.IndentWidth spaces per level (spec §4.5).
func PrintBody(b *ast.Body, cfg Config) (string, error) {
	w := newWriter(cfg)
	if err := writeBody(w, b, cfg); err != nil {
		return "", err
	}
	return w.String(), nil
}

func writeBody(w *writer, body *ast.Body, cfg Config) error {
	for _, s := range body.Structures {
		switch n := s.(type) {
		case *ast.Attribute:
			if err := writeAttribute(w, n, cfg); err != nil {
				return err
			}
		case *ast.Block:
			if err := writeBlock(w, n, cfg); err != nil {
				return err
			}
		default:
			return fmt.Errorf("printer: unsupported structure %T", s)
		}
	}
	return nil
}

func writeAttribute(w *writer, a *ast.Attribute, cfg Config) error {
	exprText, err := PrintExpression(a.Value, cfg)
	if err != nil {
		return err
	}
	w.writeIndent()
	w.writeString(a.Name.String())
	w.writeString(" = ")
	w.writeString(exprText)
	w.writeString("\n")
	return nil
}

func writeBlock(w *writer, blk *ast.Block, cfg Config) error {
	header, err := blockHeader(blk, cfg)
	if err != nil {
		return err
	}

	if blk.OneLine {
		inner, err := oneLineBody(blk.Body, cfg)
		if err != nil {
			return err
		}
		w.writeIndent()
		w.writeString(header)
		w.writeString(" { ")
		w.writeString(inner)
		w.writeString(" }\n")
		return nil
	}

	w.writeIndent()
	w.writeString(header)
	w.writeString(" {\n")
	w.push()
	if err := writeBody(w, blk.Body, cfg); err != nil {
		return err
	}
	w.pop()
	w.writeIndent()
	w.writeString("}\n")
	return nil
}

// blockHeader renders blk's type and labels. In strict mode, a label
// that is not a syntactically valid bare identifier makes serialization
// fail with a diag.Serialization error instead of silently falling back
// to a quoted string (spec §4.5 "strict_mode").
func blockHeader(blk *ast.Block, cfg Config) (string, error) {
	header := blk.Type.String()
	for _, lbl := range blk.Labels {
		if !ident.HasIdentSyntax(lbl.Value) {
			if cfg.StrictMode {
				return "", diag.New(diag.Serialization, lbl.Rng, "block label %q is not a valid identifier", lbl.Value)
			}
			header += " " + quotedString(lbl.Value)
			continue
		}
		if lbl.IsQuoted {
			header += " " + quotedString(lbl.Value)
		} else {
			header += " " + lbl.Value
		}
	}
	return header, nil
}

// oneLineBody renders blk's attributes (a one-line block's body is
// always attribute-only; a one-line block never has nested blocks) as
// `k = v k2 = v2`-style content (items separated by a single space) for
// the `ident "label" { ... }` form.
func oneLineBody(body *ast.Body, cfg Config) (string, error) {
	var out string
	for i, a := range body.Attributes() {
		if i > 0 {
			out += " "
		}
		exprText, err := PrintExpression(a.Value, cfg)
		if err != nil {
			return "", err
		}
		out += a.Name.String() + " = " + exprText
	}
	return out, nil
}
