package geo

// insideEpsilon is the tolerance used when testing whether a point lies on
// the free side of a supporting hyperplane. Points exactly on a face count
// as inside.
const insideEpsilon = 1e-10

// Hyperplane is the boundary of a halfspace: an anchor point P on the plane
// and a normal N pointing towards the excluded side. N is not required to be
// unit length.
type Hyperplane struct {
	P Vec
	N Vec
}

// NewHyperplane constructs a hyperplane through p with normal n.
func NewHyperplane(p, n Vec) Hyperplane { return Hyperplane{P: p, N: n} }

// SignedDist returns N·(pt−P): positive on the excluded side, negative on
// the free side, zero on the plane. The value is scaled by |N|.
func (h Hyperplane) SignedDist(pt Vec) float64 { return h.N.Dot(pt.Sub(h.P)) }

// Clone returns an independent copy of h.
func (h Hyperplane) Clone() Hyperplane {
	return Hyperplane{P: h.P.Clone(), N: h.N.Clone()}
}

// Polyhedron is the intersection of the free sides of a set of hyperplanes.
// An empty plane set contains every point.
type Polyhedron struct {
	Planes []Hyperplane
}

// NewPolyhedron constructs a polyhedron from the given faces.
func NewPolyhedron(planes ...Hyperplane) Polyhedron {
	return Polyhedron{Planes: planes}
}

// Add appends a face.
func (p *Polyhedron) Add(h Hyperplane) { p.Planes = append(p.Planes, h) }

// Inside reports whether pt lies on the free side of every face, with
// boundary tolerance insideEpsilon.
func (p Polyhedron) Inside(pt Vec) bool {
	for _, pl := range p.Planes {
		if pl.SignedDist(pt) > insideEpsilon {
			return false
		}
	}
	return true
}

// PointsInside filters pts to the ones inside the polyhedron, preserving
// order. The returned slice aliases the input points, not the polyhedron.
func (p Polyhedron) PointsInside(pts []Vec) []Vec {
	out := make([]Vec, 0, len(pts))
	for _, pt := range pts {
		if p.Inside(pt) {
			out = append(out, pt)
		}
	}
	return out
}

// Clone deep-copies the polyhedron.
func (p Polyhedron) Clone() Polyhedron {
	out := Polyhedron{Planes: make([]Hyperplane, len(p.Planes))}
	for i, pl := range p.Planes {
		out.Planes[i] = pl.Clone()
	}
	return out
}

// Tighten shrinks every face inward by distance, as seen from ptInside.
// For each face the stored normal is flipped if it points towards ptInside,
// normalized, and the anchor moved by distance against that outward unit
// normal. Only anchors move; stored normals keep their original value.
// Repeated calls keep shrinking.
func (p *Polyhedron) Tighten(ptInside Vec, distance float64) {
	for i := range p.Planes {
		n := p.Planes[i].N
		c := p.Planes[i].P.Dot(n)
		if n.Dot(ptInside)-c > 0 {
			n = n.Scale(-1)
		}
		n = n.Normalized()
		p.Planes[i].P = p.Planes[i].P.Sub(n.Scale(distance))
	}
}

// Tightened returns a shrunk copy, leaving p untouched.
func (p Polyhedron) Tightened(ptInside Vec, distance float64) Polyhedron {
	out := p.Clone()
	out.Tighten(ptInside, distance)
	return out
}
