package geo

import (
	"math"
	"testing"
)

func TestVecOps(t *testing.T) {
	a := Vec{1, 2, 3}
	b := Vec{4, -2, 0}

	tests := []struct {
		name string
		got  Vec
		want Vec
	}{
		{"add", a.Add(b), Vec{5, 0, 3}},
		{"sub", a.Sub(b), Vec{-3, 4, 3}},
		{"scale", a.Scale(2), Vec{2, 4, 6}},
		{"mid", Mid(a, b), Vec{2.5, 0, 1.5}},
		{"cross", Cross(Vec{1, 0, 0}, Vec{0, 1, 0}), Vec{0, 0, 1}},
	}
	for _, tc := range tests {
		for i := range tc.want {
			if tc.got[i] != tc.want[i] {
				t.Errorf("%s[%d] = %g, want %g", tc.name, i, tc.got[i], tc.want[i])
			}
		}
	}

	if got := a.Dot(b); got != 0 {
		t.Errorf("dot = %g, want 0", got)
	}
	if got := (Vec{3, 4}).Norm(); got != 5 {
		t.Errorf("norm = %g, want 5", got)
	}
}

func TestVecOpsDoNotMutate(t *testing.T) {
	a := Vec{1, 2}
	_ = a.Add(Vec{5, 5})
	_ = a.Scale(10)
	_ = a.Normalized()
	if a[0] != 1 || a[1] != 2 {
		t.Errorf("operand mutated: %v", a)
	}
}

func TestNormalized(t *testing.T) {
	v := Vec{3, 4}.Normalized()
	if math.Abs(v.Norm()-1) > 1e-15 {
		t.Errorf("normalized norm = %g, want 1", v.Norm())
	}

	// The zero vector stays zero rather than becoming NaN.
	z := Vec{0, 0}.Normalized()
	if !z.IsZero() {
		t.Errorf("normalized zero vector = %v", z)
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		v    Vec
		want bool
	}{
		{nil, true},
		{Vec{0, 0}, true},
		{Vec{0, 0, 0}, true},
		{Vec{1e-12, 0}, false},
		{Vec{0, -1}, false},
	}
	for _, tc := range tests {
		if got := tc.v.IsZero(); got != tc.want {
			t.Errorf("IsZero(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestVecEqual(t *testing.T) {
	tests := []struct {
		a, b Vec
		want bool
	}{
		{Vec{1, 2}, Vec{1, 2}, true},
		{Vec{1, 2}, Vec{1, 3}, false},
		{Vec{1, 2}, Vec{1, 2, 0}, false},
		{nil, nil, true},
	}
	for _, tc := range tests {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Errorf("Equal(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCloneVecs(t *testing.T) {
	orig := []Vec{{1, 2}, {3, 4}}
	cp := CloneVecs(orig)
	cp[0][0] = 99
	if orig[0][0] != 1 {
		t.Error("CloneVecs shares backing storage with the input")
	}
}
