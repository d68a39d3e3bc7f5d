// Package number implements the finite numeric primitive used throughout
// the AST and value model: a three-way discriminated union over signed
// 64-bit integers, unsigned 64-bit integers and finite 64-bit floats.
// NaN and infinities are rejected at construction so downstream code
// never has to special-case them.
package number

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// kind discriminates Number's internal representation.
type kind uint8

const (
	kindInt kind = iota
	kindUint
	kindFloat
)

// Number is a finite numeric value. The zero value is the integer 0.
type Number struct {
	k kind
	i int64
	u uint64
	f float64
}

// FromInt64 builds a Number holding an exact signed integer.
func FromInt64(v int64) Number { return Number{k: kindInt, i: v} }

// FromUint64 builds a Number holding an exact unsigned integer.
func FromUint64(v uint64) Number { return Number{k: kindUint, u: v} }

// FromFloat64 builds a Number holding a float, or an error if f is NaN or
// infinite.
func FromFloat64(f float64) (Number, error) {
	if math.IsNaN(f) {
		return Number{}, fmt.Errorf("number: NaN is not a valid Number")
	}
	if math.IsInf(f, 0) {
		return Number{}, fmt.Errorf("number: infinite value is not a valid Number")
	}
	return Number{k: kindFloat, f: f}, nil
}

// MustFloat64 is like FromFloat64 but panics on NaN/Inf.
func MustFloat64(f float64) Number {
	n, err := FromFloat64(f)
	if err != nil {
		panic(err)
	}
	return n
}

// Parse parses a decimal number literal (as produced by the tokenizer:
// digits, optional fractional part, optional exponent) into a Number. It
// prefers an exact integer form and falls back to float when the literal
// contains a '.' or an exponent, or when it overflows int64/uint64.
func Parse(lit string) (Number, error) {
	hasDotOrExp := false
	for _, r := range lit {
		if r == '.' || r == 'e' || r == 'E' {
			hasDotOrExp = true
			break
		}
	}
	if !hasDotOrExp {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return FromInt64(i), nil
		}
		if u, err := strconv.ParseUint(lit, 10, 64); err == nil {
			return FromUint64(u), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Number{}, fmt.Errorf("number: invalid numeric literal %q: %w", lit, err)
	}
	return FromFloat64(f)
}

// IsFloat reports whether n's internal representation is a float.
func (n Number) IsFloat() bool { return n.k == kindFloat }

// IsInt reports whether n's internal representation is an exact integer
// (signed or unsigned).
func (n Number) IsInt() bool { return n.k == kindInt || n.k == kindUint }

// Float64 returns n as a float64, converting from whichever internal form
// it holds.
func (n Number) Float64() float64 {
	switch n.k {
	case kindInt:
		return float64(n.i)
	case kindUint:
		return float64(n.u)
	default:
		return n.f
	}
}

// Int64 returns n as an int64 and reports whether the conversion is
// exact (false if n is a float with a fractional part, or an unsigned
// value that overflows int64).
func (n Number) Int64() (int64, bool) {
	switch n.k {
	case kindInt:
		return n.i, true
	case kindUint:
		if n.u > math.MaxInt64 {
			return 0, false
		}
		return int64(n.u), true
	default:
		if n.f != math.Trunc(n.f) || n.f < math.MinInt64 || n.f > math.MaxInt64 {
			return 0, false
		}
		return int64(n.f), true
	}
}

// String renders n using the shortest round-trip decimal representation:
// integers print without a decimal point, floats use strconv's shortest
// 'g' form.
func (n Number) String() string {
	switch n.k {
	case kindInt:
		return strconv.FormatInt(n.i, 10)
	case kindUint:
		return strconv.FormatUint(n.u, 10)
	default:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
}

// Equal reports whether n and other have the same numeric value,
// regardless of internal representation.
func (n Number) Equal(other Number) bool {
	return compare(n, other) == 0
}

// Compare returns -1, 0 or 1 as n is numerically less than, equal to, or
// greater than other.
func (n Number) Compare(other Number) int {
	return compare(n, other)
}

func compare(a, b Number) int {
	if a.k != kindFloat && b.k != kindFloat {
		// both exact integers: compare via big.Int to avoid precision loss
		ai := bigIntOf(a)
		bi := bigIntOf(b)
		return ai.Cmp(bi)
	}
	af, bf := a.Float64(), b.Float64()
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

func bigIntOf(n Number) *big.Int {
	switch n.k {
	case kindInt:
		return big.NewInt(n.i)
	case kindUint:
		return new(big.Int).SetUint64(n.u)
	default:
		bi, _ := big.NewFloat(n.f).Int(nil)
		return bi
	}
}

// Add returns a+b. Two exact integers produce an exact integer unless the
// addition overflows, in which case the result falls back to float
// semantics. Any float operand forces a float result.
func Add(a, b Number) Number {
	if a.k != kindFloat && b.k != kindFloat {
		if r, ok := addInt(a, b); ok {
			return r
		}
	}
	return MustFloat64(a.Float64() + b.Float64())
}

// Sub returns a-b with the same promotion rules as Add.
func Sub(a, b Number) Number {
	if a.k != kindFloat && b.k != kindFloat {
		if r, ok := addInt(a, negate(b)); ok {
			return r
		}
	}
	return MustFloat64(a.Float64() - b.Float64())
}

// Mul returns a*b with the same promotion rules as Add.
func Mul(a, b Number) Number {
	if a.k != kindFloat && b.k != kindFloat {
		ai, bi := bigIntOf(a), bigIntOf(b)
		r := new(big.Int).Mul(ai, bi)
		if n, ok := numberFromBigInt(r); ok {
			return n
		}
	}
	return MustFloat64(a.Float64() * b.Float64())
}

// Div returns the float quotient a/b. Division always has floating-point
// semantics, regardless of operand kinds; integer division is never
// performed. The caller is responsible for rejecting b == 0 before
// calling Div (see spec §4.3: division by zero is an evaluation error).
func Div(a, b Number) Number {
	return MustFloat64(a.Float64() / b.Float64())
}

// Mod returns a%b, following the sign of the dividend (Go's float64 Mod
// via math.Mod already follows this convention).
func Mod(a, b Number) Number {
	if a.k != kindFloat && b.k != kindFloat {
		ai, bi := bigIntOf(a), bigIntOf(b)
		if bi.Sign() != 0 {
			r := new(big.Int).Rem(ai, bi)
			if n, ok := numberFromBigInt(r); ok {
				return n
			}
		}
	}
	return MustFloat64(math.Mod(a.Float64(), b.Float64()))
}

// Neg returns -n.
func Neg(n Number) Number {
	return negate(n)
}

func negate(n Number) Number {
	switch n.k {
	case kindInt:
		return FromInt64(-n.i)
	case kindUint:
		if n.u <= math.MaxInt64 {
			return FromInt64(-int64(n.u))
		}
		return MustFloat64(-float64(n.u))
	default:
		return MustFloat64(-n.f)
	}
}

func addInt(a, b Number) (Number, bool) {
	ai, bi := bigIntOf(a), bigIntOf(b)
	r := new(big.Int).Add(ai, bi)
	return numberFromBigInt(r)
}

func numberFromBigInt(r *big.Int) (Number, bool) {
	if r.IsInt64() {
		return FromInt64(r.Int64()), true
	}
	if r.IsUint64() {
		return FromUint64(r.Uint64()), true
	}
	return Number{}, false
}
