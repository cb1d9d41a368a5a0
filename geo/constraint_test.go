package geo

import (
	"math"
	"testing"

	"github.com/banshee-data/corridor/internal/testutil"
)

func TestNewLinearConstraint(t *testing.T) {
	// Mixed stored orientations: one outward, one inward normal, one
	// scaled. The derived rows must all face away from the interior.
	planes := []Hyperplane{
		NewHyperplane(Vec{1, 0}, Vec{1, 0}),
		NewHyperplane(Vec{-1, 0}, Vec{1, 0}),  // points across the interior
		NewHyperplane(Vec{0, 1}, Vec{0, 3}),   // non-unit
		NewHyperplane(Vec{0, -1}, Vec{0, -1}),
	}
	lc := NewLinearConstraint(Vec{0, 0}, planes, 0)

	rows, cols := lc.A.Dims()
	if rows != 4 || cols != 2 {
		t.Fatalf("A is %dx%d, want 4x2", rows, cols)
	}

	wantRows := [][2]float64{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for i, want := range wantRows {
		testutil.VecInDelta(t, "row", lc.A.RawRowView(i), want[:], 1e-12)
		testutil.InDelta(t, "b", lc.B.AtVec(i), 1, 1e-12)
	}

	if !lc.Satisfies(Vec{0, 0}) {
		t.Error("interior point does not satisfy its own constraint system")
	}
	if lc.Satisfies(Vec{2, 0}) {
		t.Error("exterior point satisfies the constraint system")
	}
}

func TestLinearConstraintClearance(t *testing.T) {
	planes := []Hyperplane{NewHyperplane(Vec{1, 0}, Vec{2, 0})}
	lc := NewLinearConstraint(Vec{0, 0}, planes, 0.25)

	// Unit-normalized row with the right-hand side pulled in by 0.25.
	testutil.VecInDelta(t, "row", lc.A.RawRowView(0), []float64{1, 0}, 1e-12)
	testutil.InDelta(t, "b", lc.B.AtVec(0), 0.75, 1e-12)
}

func TestLinearConstraintMatchesTighten(t *testing.T) {
	// Extracting with clearance d must describe the same halfspace as
	// tightening the polyhedron by d and extracting with clearance 0.
	const d = 0.4
	inside := Vec{0, 0}
	planes := []Hyperplane{NewHyperplane(Vec{1, 0.5}, Vec{3, 0})}

	fromClearance := NewLinearConstraint(inside, planes, d)

	p := NewPolyhedron(planes[0].Clone())
	p.Tighten(inside, d)
	fromTightened := NewLinearConstraint(inside, p.Planes, 0)

	testutil.InDelta(t, "b", fromClearance.B.AtVec(0), fromTightened.B.AtVec(0), 1e-12)
	for i := 0; i < 2; i++ {
		if math.Abs(fromClearance.A.At(0, i)-fromTightened.A.At(0, i)) > 1e-12 {
			t.Errorf("A[0,%d] differs: %g vs %g", i,
				fromClearance.A.At(0, i), fromTightened.A.At(0, i))
		}
	}
}

func TestLinearConstraintNoFaces(t *testing.T) {
	lc := NewLinearConstraint(Vec{2, 0}, nil, 0)
	if lc.A != nil || lc.B != nil {
		t.Error("empty plane set should yield a nil system")
	}
	if !lc.Satisfies(Vec{1e6, 1e6}) {
		t.Error("empty system must be satisfied everywhere")
	}
	testutil.VecInDelta(t, "interior", lc.Interior, Vec{2, 0}, 0)
}
