package geo

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// alignsXAxis checks that the first column of r is the unit direction of v
// and that r is orthonormal.
func alignsXAxis(t *testing.T, r *mat.Dense, v Vec) {
	t.Helper()
	dim := v.Dim()

	unit := v.Normalized()
	for i := 0; i < dim; i++ {
		if math.Abs(r.At(i, 0)-unit[i]) > 1e-12 {
			t.Errorf("column 0 of R = %v does not match direction %v", mat.Formatted(r), unit)
			return
		}
	}

	var rtr mat.Dense
	rtr.Mul(r.T(), r)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(rtr.At(i, j)-want) > 1e-12 {
				t.Errorf("RᵀR[%d,%d] = %g, want %g", i, j, rtr.At(i, j), want)
			}
		}
	}
}

func TestRotationFromVec2D(t *testing.T) {
	for _, v := range []Vec{{1, 0}, {0, 1}, {-1, 0}, {3, 4}, {-2, -7}} {
		alignsXAxis(t, RotationFromVec(v), v)
	}
}

func TestRotationFromVec3D(t *testing.T) {
	for _, v := range []Vec{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, -1},
		{1, 1, 1},
		{-3, 2, -0.5},
	} {
		alignsXAxis(t, RotationFromVec(v), v)
	}
}

func TestRotationX(t *testing.T) {
	// A quarter turn about x maps y to z.
	r := RotationX(math.Pi / 2)
	var out mat.VecDense
	out.MulVec(r, mat.NewVecDense(3, []float64{0, 1, 0}))
	want := Vec{0, 0, 1}
	for i := range want {
		if math.Abs(out.AtVec(i)-want[i]) > 1e-12 {
			t.Errorf("RotationX(π/2)·e_y[%d] = %g, want %g", i, out.AtVec(i), want[i])
		}
	}
}
