package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Yunsang-Jeong/hcl/ast"
	"github.com/Yunsang-Jeong/hcl/eval"
)

// BodyToJSONValue implements the JSON compatibility shape described in
// spec §6: each attribute in body becomes a key (its evaluated Value),
// each block becomes a nested object keyed by the block's type; nested
// labels become nested objects keyed by label string, with the
// innermost object holding the block's own body's JSON shape. Sibling
// blocks that share a type but differ in labels become sibling keys of
// the nested objects; only blocks that agree on type and every label
// collapse into a JSON array of their body shapes (see mergeBlockShape).
// Attribute expressions are evaluated against ctx.
func BodyToJSONValue(body *ast.Body, ctx *eval.Context) (ast.Value, error) {
	out := ast.NewValueMap()

	for _, attr := range body.Attributes() {
		v, err := eval.Evaluate(attr.Value, ctx)
		if err != nil {
			return ast.Value{}, fmt.Errorf("convert: attribute %q: %w", attr.Name.String(), err)
		}
		out.Set(attr.Name.String(), v)
	}

	for _, blk := range body.Blocks() {
		leaf, err := BodyToJSONValue(blk.Body, ctx)
		if err != nil {
			return ast.Value{}, err
		}
		keys := append([]string{blk.Type.String()}, blk.LabelValues()...)
		mergeBlockShape(out, keys, leaf)
	}

	return ast.Object(out), nil
}

// mergeBlockShape inserts leaf (a block's own JSON shape) into dst along
// the key path type→label1→label2→…: every key but the last nests into
// a deeper object, keyed by the next path segment; the last key holds
// leaf directly, unless a sibling block already occupies it — a full
// type+label path collision — in which case the two (or more) leaves
// collapse into a JSON array, per spec §6's "multiple blocks with the
// same identifier collapse into an array" rule.
func mergeBlockShape(dst *ast.ValueMap, keys []string, leaf ast.Value) {
	key, rest := keys[0], keys[1:]
	if len(rest) == 0 {
		existing, ok := dst.Get(key)
		switch {
		case !ok:
			dst.Set(key, leaf)
		case existing.Kind() == ast.KindArray:
			dst.Set(key, ast.Array(append(existing.AsArray(), leaf)))
		default:
			dst.Set(key, ast.Array([]ast.Value{existing, leaf}))
		}
		return
	}

	var nested *ast.ValueMap
	if existing, ok := dst.Get(key); ok && existing.Kind() == ast.KindObject {
		nested = existing.AsObject()
	} else {
		nested = ast.NewValueMap()
	}
	mergeBlockShape(nested, rest, leaf)
	dst.Set(key, ast.Object(nested))
}

// ToJSONInterface converts v into plain Go values (map[string]any,
// []any, string, float64, bool, nil) suitable for encoding/json, the way
// the teacher's TerraformConfig.Summary encoder in pkg/parser/tfconfig.go
// builds a plain structure before marshaling.
func ToJSONInterface(v ast.Value) (any, error) {
	switch v.Kind() {
	case ast.KindNull:
		return nil, nil
	case ast.KindBool:
		return v.AsBool(), nil
	case ast.KindNumber:
		return v.AsNumber().Float64(), nil
	case ast.KindString:
		return v.AsString(), nil
	case ast.KindArray:
		arr := v.AsArray()
		out := make([]any, len(arr))
		for i, el := range arr {
			conv, err := ToJSONInterface(el)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case ast.KindObject:
		obj := v.AsObject()
		out := make(map[string]any, obj.Len())
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			conv, err := ToJSONInterface(pair.Value)
			if err != nil {
				return nil, err
			}
			out[pair.Key] = conv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("convert: unsupported value kind %s", v.Kind())
	}
}

// MarshalJSON renders v as JSON bytes, with HTML-escaping disabled and
// the requested indent width (0 for compact output) — mirroring the
// teacher's own json.NewEncoder(...).SetEscapeHTML(false) usage in
// pkg/parser/tfconfig.go.
func MarshalJSON(v ast.Value, indent int) ([]byte, error) {
	asInterface, err := ToJSONInterface(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(asInterface); err != nil {
		return nil, fmt.Errorf("convert: marshal json: %w", err)
	}
	out := buf.Bytes()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return out, nil
}
