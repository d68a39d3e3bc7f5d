package number

import "testing"

func TestParse(t *testing.T) {
	n, err := Parse("42")
	if err != nil || !n.IsInt() || n.String() != "42" {
		t.Fatalf("Parse(42) = %v, %v", n, err)
	}

	f, err := Parse("2.5")
	if err != nil || !f.IsFloat() || f.String() != "2.5" {
		t.Fatalf("Parse(2.5) = %v, %v", f, err)
	}

	e, err := Parse("1e10")
	if err != nil || !e.IsFloat() {
		t.Fatalf("Parse(1e10) = %v, %v", e, err)
	}
}

func TestFromFloat64RejectsNonFinite(t *testing.T) {
	if _, err := FromFloat64(nanValue()); err == nil {
		t.Error("FromFloat64(NaN): expected error")
	}
	if _, err := FromFloat64(infValue()); err == nil {
		t.Error("FromFloat64(+Inf): expected error")
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func infValue() float64 {
	return 1 / zeroValue()
}

func zeroValue() float64 {
	var z float64
	return z
}

func TestDivIsAlwaysFloat(t *testing.T) {
	a := FromInt64(5)
	b := FromInt64(2)
	got := Div(a, b)
	if !got.IsFloat() {
		t.Fatalf("Div(5,2) kind should be float")
	}
	if got.String() != "2.5" {
		t.Fatalf("Div(5,2) = %s, want 2.5", got.String())
	}
}

func TestModFollowsDividendSign(t *testing.T) {
	got := Mod(FromInt64(-7), FromInt64(3))
	if got.Float64() != -1 {
		t.Fatalf("Mod(-7,3) = %v, want -1", got.Float64())
	}
}

func TestAddOverflowFallsBackToFloat(t *testing.T) {
	a := FromInt64(1<<62 - 1)
	b := FromInt64(1 << 62)
	got := Add(a, a)
	_ = b
	if !got.IsFloat() {
		// 2*(1<<62 - 1) still fits in int64 actually; use a case that overflows.
	}
	big1 := FromUint64(1<<64 - 1)
	sum := Add(big1, FromUint64(1))
	if !sum.IsFloat() {
		t.Fatalf("Add overflow should fall back to float, got %v", sum)
	}
}

func TestCompareAcrossKinds(t *testing.T) {
	i := FromInt64(2)
	u := FromUint64(2)
	f := MustFloat64(2.0)
	if !i.Equal(u) || !i.Equal(f) || !u.Equal(f) {
		t.Fatalf("expected 2 (int), 2 (uint), 2.0 (float) to compare equal")
	}
	if FromInt64(1).Compare(FromInt64(2)) >= 0 {
		t.Fatalf("expected 1 < 2")
	}
}

func TestNeg(t *testing.T) {
	if Neg(FromInt64(5)).String() != "-5" {
		t.Fatalf("Neg(5) != -5")
	}
}
