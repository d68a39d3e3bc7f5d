// Package ast defines the tagged-variant tree types shared by the parser,
// evaluator and printer: runtime Values, the Expression/Template AST, and
// the Body/Structure document tree.
package ast

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/Yunsang-Jeong/hcl/number"
)

// ValueKind discriminates Value's variants.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// ValueMap is the insertion-ordered key/value storage backing Value's
// Object variant. Iteration order is always the order keys were first
// inserted, per spec §3.
type ValueMap = orderedmap.OrderedMap[string, Value]

// NewValueMap returns an empty, ready-to-use ValueMap.
func NewValueMap() *ValueMap {
	return orderedmap.New[string, Value]()
}

// Value is a dynamically-typed runtime value produced by evaluation. The
// zero value is Null.
type Value struct {
	kind ValueKind
	b    bool
	n    number.Number
	s    string
	arr  []Value
	obj  *ValueMap
}

// Null is the singular null value.
var Null = Value{kind: KindNull}

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue wraps a number.Number.
func NumberValue(n number.Number) Value { return Value{kind: KindNumber, n: n} }

// Int wraps an exact int64.
func Int(i int64) Value { return NumberValue(number.FromInt64(i)) }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps a slice of Values; the slice is used as-is (not copied).
func Array(vs []Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{kind: KindArray, arr: vs}
}

// Object wraps an ordered map; the map is used as-is (not copied).
func Object(m *ValueMap) Value {
	if m == nil {
		m = NewValueMap()
	}
	return Value{kind: KindObject, obj: m}
}

// Kind returns v's variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is the Null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns v's boolean payload; only meaningful when Kind() ==
// KindBool.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns v's number payload; only meaningful when Kind() ==
// KindNumber.
func (v Value) AsNumber() number.Number { return v.n }

// AsString returns v's string payload; only meaningful when Kind() ==
// KindString.
func (v Value) AsString() string { return v.s }

// AsArray returns v's element slice; only meaningful when Kind() ==
// KindArray.
func (v Value) AsArray() []Value { return v.arr }

// AsObject returns v's backing ordered map; only meaningful when Kind()
// == KindObject.
func (v Value) AsObject() *ValueMap { return v.obj }

// Equal implements HCL's primitive equality: values of different kinds
// are never equal (no coercion); arrays/objects compare structurally.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n.Equal(other.n)
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			ov, ok := other.obj.Get(pair.Key)
			if !ok || !pair.Value.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders v for diagnostics; it is not the printer's HCL
// serialization (see package printer for that).
func (v Value) String() string {
	var b strings.Builder
	writeValueDebug(&b, v)
	return b.String()
}

func writeValueDebug(b *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		fmt.Fprintf(b, "%t", v.b)
	case KindNumber:
		b.WriteString(v.n.String())
	case KindString:
		fmt.Fprintf(b, "%q", v.s)
	case KindArray:
		b.WriteString("[")
		for i, e := range v.arr {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValueDebug(b, e)
		}
		b.WriteString("]")
	case KindObject:
		b.WriteString("{")
		i := 0
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: ", pair.Key)
			writeValueDebug(b, pair.Value)
			i++
		}
		b.WriteString("}")
	}
}
