package geo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Ellipsoid is the set { C·u + d : |u| <= 1 } for a shape matrix C and
// center d. C is symmetric positive definite by construction: its
// eigenvalues are the semi-axis lengths and its eigenvectors the axis
// directions.
//
// The inverse of C is computed once at construction, so an Ellipsoid is
// immutable; growth algorithms replace the whole value.
type Ellipsoid struct {
	c    *mat.Dense
	cinv *mat.Dense
	d    Vec
}

// singularEpsilon is the relative eigenvalue floor below which a shape
// matrix counts as collapsed: an LU inverse of such a matrix can come back
// with finite garbage instead of an error, so the check runs on the
// eigenvalues, not on the inversion result.
const singularEpsilon = 1e-12

// NewEllipsoid constructs an ellipsoid with shape matrix c and center d.
// It fails if any semi-axis of c collapses to zero. Near-singular (very
// thin) shapes are accepted.
func NewEllipsoid(c *mat.Dense, d Vec) (Ellipsoid, error) {
	vals := symEigenvalues(c)
	if vals == nil {
		return Ellipsoid{}, fmt.Errorf("ellipsoid shape matrix: eigen factorization failed")
	}
	if vals[0] <= singularEpsilon*math.Abs(vals[len(vals)-1]) {
		return Ellipsoid{}, fmt.Errorf("ellipsoid shape matrix singular: axes %v", vals)
	}
	var inv mat.Dense
	if err := inv.Inverse(c); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return Ellipsoid{}, fmt.Errorf("ellipsoid shape matrix: %w", err)
		}
		// Thin ellipsoids invert with a poor condition number; the axes
		// are known positive at this point, so the inverse is usable.
	}
	return Ellipsoid{c: mat.DenseCopyOf(c), cinv: &inv, d: d.Clone()}, nil
}

// Dim returns the dimension of the ellipsoid.
func (e Ellipsoid) Dim() int { return len(e.d) }

// Shape returns a copy of the shape matrix C.
func (e Ellipsoid) Shape() *mat.Dense { return mat.DenseCopyOf(e.c) }

// Center returns a copy of the center d.
func (e Ellipsoid) Center() Vec { return e.d.Clone() }

// Dist returns the ellipsoidal distance |C⁻¹(pt−d)|: less than 1 inside,
// 1 on the boundary, greater than 1 outside.
func (e Ellipsoid) Dist(pt Vec) float64 {
	diff := mat.NewVecDense(len(e.d), pt.Sub(e.d))
	var out mat.VecDense
	out.MulVec(e.cinv, diff)
	return Vec(out.RawVector().Data).Norm()
}

// Contains reports whether pt is strictly inside the ellipsoid.
func (e Ellipsoid) Contains(pt Vec) bool { return e.Dist(pt) < 1 }

// PointsInside filters pts to those strictly inside, preserving order.
func (e Ellipsoid) PointsInside(pts []Vec) []Vec {
	out := make([]Vec, 0, len(pts))
	for _, pt := range pts {
		if e.Contains(pt) {
			out = append(out, pt)
		}
	}
	return out
}

// ClosestPoint returns the point of pts with the smallest ellipsoidal
// distance, or nil if pts is empty.
func (e Ellipsoid) ClosestPoint(pts []Vec) Vec {
	var best Vec
	bestDist := math.Inf(1)
	for _, pt := range pts {
		if d := e.Dist(pt); d < bestDist {
			bestDist = d
			best = pt
		}
	}
	return best
}

// ClosestHyperplane returns the supporting hyperplane at the closest of pts:
// anchored at that point, with normal C⁻ᵀC⁻¹(pt−d) normalized, the outward
// gradient of the ellipsoidal distance there.
func (e Ellipsoid) ClosestHyperplane(pts []Vec) Hyperplane {
	pw := e.ClosestPoint(pts)
	diff := mat.NewVecDense(len(e.d), pw.Sub(e.d))
	var tmp, nv mat.VecDense
	tmp.MulVec(e.cinv, diff)
	nv.MulVec(e.cinv.T(), &tmp)
	n := Vec(nv.RawVector().Data).Normalized()
	return NewHyperplane(pw.Clone(), n)
}

// Axes returns the semi-axis lengths (eigenvalues of C) in ascending order,
// or nil if the factorization fails.
func (e Ellipsoid) Axes() Vec { return symEigenvalues(e.c) }

// symEigenvalues returns the eigenvalues of c in ascending order after
// symmetrizing it, or nil if the factorization fails.
func symEigenvalues(c *mat.Dense) Vec {
	dim, _ := c.Dims()
	sym := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			sym.SetSym(i, j, 0.5*(c.At(i, j)+c.At(j, i)))
		}
	}
	var es mat.EigenSym
	if !es.Factorize(sym, false) {
		return nil
	}
	return Vec(es.Values(nil))
}

// Volume returns the volume (3D) or area (2D) of the ellipsoid.
func (e Ellipsoid) Volume() float64 {
	det := mat.Det(e.c)
	switch e.Dim() {
	case 2:
		return math.Pi * det
	case 3:
		return 4.0 / 3.0 * math.Pi * det
	}
	return 0
}

// Clone deep-copies the ellipsoid. The zero Ellipsoid clones to itself.
func (e Ellipsoid) Clone() Ellipsoid {
	if e.c == nil {
		return Ellipsoid{}
	}
	return Ellipsoid{
		c:    mat.DenseCopyOf(e.c),
		cinv: mat.DenseCopyOf(e.cinv),
		d:    e.d.Clone(),
	}
}
