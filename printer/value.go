package printer

import (
	"fmt"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/diag"
	"github.com/Yunsang-Jeong/hcl/ident"
)

// PrintValue renders v as an HCL expression literal (spec §4.5, §6
// "serialize API" applied to a bare Value rather than a Body). Arrays
// and objects print multi-line by default, or single-line `,`-separated
// when cfg.CompactArrays / cfg.CompactObjects is set.
func PrintValue(v ast.Value, cfg Config) (string, error) {
	w := newWriter(cfg)
	if err := writeValue(w, v, cfg); err != nil {
		return "", err
	}
	return w.String(), nil
}

func writeValue(w *writer, v ast.Value, cfg Config) error {
	switch v.Kind() {
	case ast.KindNull:
		w.writeString("null")
	case ast.KindBool:
		if v.AsBool() {
			w.writeString("true")
		} else {
			w.writeString("false")
		}
	case ast.KindNumber:
		w.writeString(v.AsNumber().String())
	case ast.KindString:
		return writeStringValue(w, v.AsString(), cfg)
	case ast.KindArray:
		return writeArrayValue(w, v.AsArray(), cfg)
	case ast.KindObject:
		return writeObjectValue(w, v.AsObject(), cfg)
	default:
		return fmt.Errorf("printer: unsupported value kind %s", v.Kind())
	}
	return nil
}

func writeStringValue(w *writer, s string, cfg Config) error {
	if cfg.UseHeredocForMultiline && containsNewline(s) {
		w.writeString(heredocForm(s))
		return nil
	}
	w.writeString(quotedString(s))
	return nil
}

func containsNewline(s string) bool {
	for _, r := range s {
		if r == '\n' {
			return true
		}
	}
	return false
}

// heredocForm emits s as a `<<-EOT ... EOT` heredoc: the opener line, s
// itself with no added indentation, a newline, and the closing `EOT`
// line. The body is written as-is: heredoc bodies never undergo the
// quoted-string escaping pass.
func heredocForm(s string) string {
	return "<<-EOT\n" + s + "\nEOT"
}

func writeArrayValue(w *writer, vs []ast.Value, cfg Config) error {
	if len(vs) == 0 {
		w.writeString("[]")
		return nil
	}
	if cfg.CompactArrays {
		w.writeString("[")
		for i, el := range vs {
			if i > 0 {
				w.writeString(", ")
			}
			if err := writeValue(w, el, cfg); err != nil {
				return err
			}
		}
		w.writeString("]")
		return nil
	}
	w.writeString("[\n")
	w.push()
	for _, el := range vs {
		w.writeIndent()
		if err := writeValue(w, el, cfg); err != nil {
			return err
		}
		w.writeString(",\n")
	}
	w.pop()
	w.writeIndent()
	w.writeString("]")
	return nil
}

func writeObjectValue(w *writer, m *ast.ValueMap, cfg Config) error {
	if m.Len() == 0 {
		w.writeString("{}")
		return nil
	}
	if cfg.CompactObjects {
		w.writeString("{")
		i := 0
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			if i > 0 {
				w.writeString(", ")
			}
			i++
			key, err := renderObjectKey(pair.Key, cfg)
			if err != nil {
				return err
			}
			w.writeString(key)
			w.writeString(" = ")
			if err := writeValue(w, pair.Value, cfg); err != nil {
				return err
			}
		}
		w.writeString("}")
		return nil
	}
	w.writeString("{\n")
	w.push()
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		w.writeIndent()
		key, err := renderObjectKey(pair.Key, cfg)
		if err != nil {
			return err
		}
		w.writeString(key)
		w.writeString(" = ")
		if err := writeValue(w, pair.Value, cfg); err != nil {
			return err
		}
		w.writeString("\n")
	}
	w.pop()
	w.writeIndent()
	w.writeString("}")
	return nil
}

// renderObjectKey decides whether key can be written bare (an
// identifier) or must be quoted, honoring cfg.PreferIdentKeys (spec
// §4.5 configuration options). In strict mode, a key that is not a
// syntactically valid bare identifier makes serialization fail with a
// diag.Serialization error instead of silently falling back to a
// quoted string.
func renderObjectKey(key string, cfg Config) (string, error) {
	if cfg.PreferIdentKeys && ident.HasIdentSyntax(key) {
		return key, nil
	}
	if cfg.StrictMode && !ident.HasIdentSyntax(key) {
		return "", diag.New(diag.Serialization, ast.Range{}, "object key %q is not a valid identifier", key)
	}
	return quotedString(key), nil
}
