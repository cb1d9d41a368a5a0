// Package decomp turns a waypoint path into a safe flight corridor: one
// convex region per path segment, each represented as a bounding ellipsoid
// and a polyhedron of supporting halfspaces, plus the linear inequality
// systems a trajectory optimizer consumes.
package decomp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/corridor/geo"
)

// shrinkEpsilon bounds the strict-inside test during ellipsoid shrinking:
// an obstacle still blocks while 1 − dist(p) > shrinkEpsilon.
const shrinkEpsilon = 1e-10

// LineSegment fits one convex region around a single path segment. The
// fitting runs in two phases: binding context (local box, shared obstacle
// store) is cheap and happens on the caller's goroutine; Dilate does the
// actual work and is what the decomposition workers run.
//
// A LineSegment is owned by exactly one worker during dilation and is
// read-only afterwards.
type LineSegment struct {
	p1, p2   geo.Vec
	localBox geo.Vec
	obsStore []geo.Vec
	obs      []geo.Vec

	ellipsoid  geo.Ellipsoid
	polyhedron geo.Polyhedron
}

// NewLineSegment creates a fitter for the segment from p1 to p2.
func NewLineSegment(p1, p2 geo.Vec) *LineSegment {
	return &LineSegment{p1: p1.Clone(), p2: p2.Clone()}
}

// SetLocalBox sets the per-axis half-extents of the local search box,
// expressed in the segment frame (x along the segment). A zero-norm box
// disables local bounding: every obstacle stays visible and no wall faces
// are added.
func (s *LineSegment) SetLocalBox(box geo.Vec) { s.localBox = box.Clone() }

// SetObstacleStore binds the shared obstacle cloud. The store is read by
// many workers concurrently and must not be mutated during dilation;
// filtering to the local box happens inside Dilate so the expensive pass
// runs on the worker.
func (s *LineSegment) SetObstacleStore(obs []geo.Vec) { s.obsStore = obs }

// Ellipsoid returns the fitted ellipsoid. Valid only after Dilate.
func (s *LineSegment) Ellipsoid() geo.Ellipsoid { return s.ellipsoid }

// Polyhedron returns the fitted polyhedron. Valid only after Dilate.
func (s *LineSegment) Polyhedron() geo.Polyhedron { return s.polyhedron }

// Dilate grows the segment's ellipsoid until blocked by obstacles, derives
// the separating polyhedron from it, and closes the region with local-box
// walls. offset is added to the long semi-axis before growth.
func (s *LineSegment) Dilate(offset float64) error {
	dim := s.p1.Dim()
	if dim != 2 && dim != 3 {
		return fmt.Errorf("line segment: unsupported dimension %d", dim)
	}
	s.filterObstacles()
	if err := s.findEllipsoid(offset); err != nil {
		return err
	}
	s.findPolyhedron()
	s.addLocalBox(&s.polyhedron)
	return nil
}

// filterObstacles narrows the bound store to the points inside the local
// box. With the box unset the wall set is empty and every point passes.
func (s *LineSegment) filterObstacles() {
	var walls geo.Polyhedron
	s.addLocalBox(&walls)
	s.obs = walls.PointsInside(s.obsStore)
}

// findEllipsoid starts from a sphere of radius f = |p2−p1|/2 centered on
// the segment midpoint, stretched to f+offset along the segment, then
// shrinks the short semi-axes until no filtered obstacle is strictly
// inside.
func (s *LineSegment) findEllipsoid(offset float64) error {
	dim := s.p1.Dim()
	f := s.p2.Sub(s.p1).Norm() / 2
	if f == 0 || f+offset <= 0 {
		return fmt.Errorf("degenerate segment %v -> %v", s.p1, s.p2)
	}
	axes := make(geo.Vec, dim)
	for i := range axes {
		axes[i] = f
	}
	axes[0] += offset
	ri := geo.RotationFromVec(s.p2.Sub(s.p1))
	center := geo.Mid(s.p1, s.p2)

	if dim == 2 {
		return s.findEllipsoid2D(axes, ri, center)
	}
	return s.findEllipsoid3D(axes, ri, center)
}

// findEllipsoid2D shrinks the single short semi-axis b so each blocking
// point in turn lands on the boundary, refiltering until none remains
// strictly inside.
func (s *LineSegment) findEllipsoid2D(axes geo.Vec, ri *mat.Dense, center geo.Vec) error {
	e, err := ellipsoidFrom(axes, ri, center)
	if err != nil {
		return err
	}
	obs := e.PointsInside(s.obs)
	for len(obs) > 0 {
		pw := e.ClosestPoint(obs)
		p := rotateInto(ri, pw.Sub(center))
		// A blocker on the segment axis collapses the short semi-axis to
		// zero: no ellipsoid around this segment can exclude it.
		if math.Abs(p[1]) <= shrinkEpsilon {
			return fmt.Errorf("obstacle %v lies on the axis of segment %v -> %v", pw, s.p1, s.p2)
		}
		if dd := 1 - (p[0]/axes[0])*(p[0]/axes[0]); p[0] < axes[0] && dd > shrinkEpsilon {
			axes[1] = math.Abs(p[1]) / math.Sqrt(dd)
		}
		if e, err = ellipsoidFrom(axes, ri, center); err != nil {
			return err
		}
		obs = strictlyInside(e, obs)
	}
	s.ellipsoid = e
	return nil
}

// findEllipsoid3D shrinks in two stages. First the two short semi-axes
// shrink together: the frame is rolled about the segment so the blocking
// point lies in its x-y plane, and b is solved as in 2D with c following b.
// Then, with the frame frozen, c alone shrinks against the obstacles that
// remain inside the stage-one spheroid.
func (s *LineSegment) findEllipsoid3D(axes geo.Vec, ri *mat.Dense, center geo.Vec) error {
	e, err := ellipsoidFrom(axes, ri, center)
	if err != nil {
		return err
	}
	rf := mat.DenseCopyOf(ri)

	obs := e.PointsInside(s.obs)
	for len(obs) > 0 {
		pw := e.ClosestPoint(obs)
		p := rotateInto(ri, pw.Sub(center))
		if math.Hypot(p[1], p[2]) <= shrinkEpsilon {
			return fmt.Errorf("obstacle %v lies on the axis of segment %v -> %v", pw, s.p1, s.p2)
		}
		roll := math.Atan2(p[2], p[1])
		rf.Mul(ri, geo.RotationX(roll))
		pb := rotateInto(rf, pw.Sub(center))
		if dd := 1 - (pb[0]/axes[0])*(pb[0]/axes[0]); pb[0] < axes[0] && dd > shrinkEpsilon {
			axes[1] = math.Abs(pb[1]) / math.Sqrt(dd)
		}
		axes[2] = axes[1]
		if e, err = ellipsoidFrom(axes, rf, center); err != nil {
			return err
		}
		obs = strictlyInside(e, obs)
	}

	obs = e.PointsInside(s.obs)
	for len(obs) > 0 {
		pw := e.ClosestPoint(obs)
		p := rotateInto(rf, pw.Sub(center))
		// Shrinking c cannot move a point lying in the frozen roll plane,
		// and stage one already left such points on the spheroid boundary.
		if math.Abs(p[2]) <= shrinkEpsilon {
			obs = withoutPoint(obs, pw)
			continue
		}
		dd := 1 - (p[0]/axes[0])*(p[0]/axes[0]) - (p[1]/axes[1])*(p[1]/axes[1])
		if dd > shrinkEpsilon {
			axes[2] = math.Abs(p[2]) / math.Sqrt(dd)
		}
		if e, err = ellipsoidFrom(axes, rf, center); err != nil {
			return err
		}
		obs = strictlyInside(e, obs)
	}

	s.ellipsoid = e
	return nil
}

// findPolyhedron peels the filtered obstacle set: the supporting hyperplane
// at the ellipsoid's closest remaining obstacle becomes a face, obstacles
// on its outer side are discarded, and the loop repeats until none remain.
// Each pass removes at least the anchor point, so it terminates.
func (s *LineSegment) findPolyhedron() {
	var vs geo.Polyhedron
	remain := s.obs
	for len(remain) > 0 {
		h := s.ellipsoid.ClosestHyperplane(remain)
		vs.Add(h)
		keep := remain[:0:0]
		for _, pt := range remain {
			if h.SignedDist(pt) < 0 {
				keep = append(keep, pt)
			}
		}
		remain = keep
	}
	s.polyhedron = vs
}

// addLocalBox appends the local search box walls: two faces per axis,
// aligned to the segment frame, anchored at the box half-extents. The long
// axis walls sit beyond the endpoints; the others are centered on p1.
func (s *LineSegment) addLocalBox(p *geo.Polyhedron) {
	if s.localBox.IsZero() {
		return
	}
	dir := s.p2.Sub(s.p1)
	if dir.Norm() == 0 {
		return
	}
	dir = dir.Normalized()

	switch s.p1.Dim() {
	case 2:
		dirH := geo.Vec{-dir[1], dir[0]}
		p.Add(geo.NewHyperplane(s.p1.Add(dirH.Scale(s.localBox[1])), dirH))
		p.Add(geo.NewHyperplane(s.p1.Sub(dirH.Scale(s.localBox[1])), dirH.Scale(-1)))
		p.Add(geo.NewHyperplane(s.p2.Add(dir.Scale(s.localBox[0])), dir))
		p.Add(geo.NewHyperplane(s.p1.Sub(dir.Scale(s.localBox[0])), dir.Scale(-1)))
	case 3:
		dirH := geo.Vec{-dir[1], dir[0], 0}
		if dirH.Norm() == 0 {
			// Vertical segment: any horizontal frame works.
			dirH = geo.Vec{-1, 0, 0}
		}
		dirH = dirH.Normalized()
		dirV := geo.Cross(dir, dirH)
		p.Add(geo.NewHyperplane(s.p1.Add(dirH.Scale(s.localBox[1])), dirH))
		p.Add(geo.NewHyperplane(s.p1.Sub(dirH.Scale(s.localBox[1])), dirH.Scale(-1)))
		p.Add(geo.NewHyperplane(s.p2.Add(dir.Scale(s.localBox[0])), dir))
		p.Add(geo.NewHyperplane(s.p1.Sub(dir.Scale(s.localBox[0])), dir.Scale(-1)))
		p.Add(geo.NewHyperplane(s.p1.Add(dirV.Scale(s.localBox[2])), dirV))
		p.Add(geo.NewHyperplane(s.p1.Sub(dirV.Scale(s.localBox[2])), dirV.Scale(-1)))
	}
}

// ellipsoidFrom builds R·diag(axes)·Rᵀ around center.
func ellipsoidFrom(axes geo.Vec, r *mat.Dense, center geo.Vec) (geo.Ellipsoid, error) {
	dim := len(axes)
	c := mat.NewDense(dim, dim, nil)
	for i, a := range axes {
		c.Set(i, i, a)
	}
	var tmp, shape mat.Dense
	tmp.Mul(c, r.T())
	shape.Mul(r, &tmp)
	return geo.NewEllipsoid(&shape, center)
}

// rotateInto maps v into the frame of r, i.e. returns Rᵀ·v.
func rotateInto(r *mat.Dense, v geo.Vec) geo.Vec {
	var out mat.VecDense
	out.MulVec(r.T(), mat.NewVecDense(len(v), v))
	res := make(geo.Vec, len(v))
	copy(res, out.RawVector().Data)
	return res
}

// withoutPoint drops every point equal to pw.
func withoutPoint(pts []geo.Vec, pw geo.Vec) []geo.Vec {
	out := pts[:0:0]
	for _, pt := range pts {
		if !pt.Equal(pw) {
			out = append(out, pt)
		}
	}
	return out
}

// strictlyInside keeps the points still strictly inside e, with the same
// epsilon the shrink loops use for the boundary.
func strictlyInside(e geo.Ellipsoid, pts []geo.Vec) []geo.Vec {
	out := pts[:0:0]
	for _, pt := range pts {
		if 1-e.Dist(pt) > shrinkEpsilon {
			out = append(out, pt)
		}
	}
	return out
}
