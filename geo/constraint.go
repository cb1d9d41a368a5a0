package geo

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LinearConstraint is the inequality system A·x ≤ b describing one
// polyhedron, with every row oriented so the recorded interior point
// satisfies it. A and B are nil for a polyhedron with no faces.
type LinearConstraint struct {
	A        *mat.Dense
	B        *mat.VecDense
	Interior Vec
}

// NewLinearConstraint derives A·x ≤ b from a set of faces. Each face
// contributes one row: the face normal, flipped if it points away from the
// free side as judged by ptInside, scaled to unit length. clearance is
// subtracted from every right-hand side, pulling each constraint inward by
// that distance.
func NewLinearConstraint(ptInside Vec, planes []Hyperplane, clearance float64) LinearConstraint {
	lc := LinearConstraint{Interior: ptInside.Clone()}
	if len(planes) == 0 {
		return lc
	}
	dim := ptInside.Dim()
	lc.A = mat.NewDense(len(planes), dim, nil)
	lc.B = mat.NewVecDense(len(planes), nil)
	for i, pl := range planes {
		n := pl.N
		c := pl.P.Dot(n)
		if n.Dot(ptInside)-c > 0 {
			n = n.Scale(-1)
			c = -c
		}
		nn := n.Norm()
		lc.A.SetRow(i, n.Scale(1/nn))
		lc.B.SetVec(i, c/nn-clearance)
	}
	return lc
}

// Satisfies reports whether pt fulfils every row of the system, with the
// same boundary tolerance as Polyhedron.Inside.
func (l LinearConstraint) Satisfies(pt Vec) bool {
	if l.A == nil {
		return true
	}
	rows, _ := l.A.Dims()
	for i := 0; i < rows; i++ {
		if floats.Dot(l.A.RawRowView(i), pt)-l.B.AtVec(i) > insideEpsilon {
			return false
		}
	}
	return true
}

// Clone deep-copies the constraint system.
func (l LinearConstraint) Clone() LinearConstraint {
	out := LinearConstraint{Interior: l.Interior.Clone()}
	if l.A != nil {
		out.A = mat.DenseCopyOf(l.A)
		out.B = mat.VecDenseCopyOf(l.B)
	}
	return out
}
