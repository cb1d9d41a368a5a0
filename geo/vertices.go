package geo

import (
	"math"
	"sort"
)

// vertexEpsilon is the boundary tolerance for vertex enumeration. It is
// looser than insideEpsilon because vertices are produced by solving 2x2
// systems and sit exactly on two faces up to rounding.
const vertexEpsilon = 1e-7

// Vertices2D enumerates the corner points of a bounded 2D polyhedron:
// every pairwise intersection of face boundary lines that lies on or inside
// all faces, deduplicated and sorted counter-clockwise. An unbounded or
// empty polyhedron yields fewer (possibly zero) vertices.
func Vertices2D(p Polyhedron) []Vec {
	var verts []Vec
	planes := p.Planes
	for i := 0; i < len(planes); i++ {
		for j := i + 1; j < len(planes); j++ {
			pt, ok := intersect2D(planes[i], planes[j])
			if !ok {
				continue
			}
			inside := true
			for _, pl := range planes {
				if pl.SignedDist(pt) > vertexEpsilon {
					inside = false
					break
				}
			}
			if !inside {
				continue
			}
			dup := false
			for _, v := range verts {
				if v.Sub(pt).Norm() < vertexEpsilon {
					dup = true
					break
				}
			}
			if !dup {
				verts = append(verts, pt)
			}
		}
	}
	return SortCCW(verts)
}

// intersect2D solves for the point on both boundary lines, reporting false
// when the lines are (near) parallel.
func intersect2D(a, b Hyperplane) (Vec, bool) {
	ca := a.N.Dot(a.P)
	cb := b.N.Dot(b.P)
	det := a.N[0]*b.N[1] - a.N[1]*b.N[0]
	if math.Abs(det) < 1e-12 {
		return nil, false
	}
	return Vec{
		(ca*b.N[1] - cb*a.N[1]) / det,
		(a.N[0]*cb - b.N[0]*ca) / det,
	}, true
}

// SortCCW returns the planar points ordered counter-clockwise around their
// centroid.
func SortCCW(pts []Vec) []Vec {
	if len(pts) == 0 {
		return nil
	}
	centroid := Zero(2)
	for _, pt := range pts {
		centroid = centroid.Add(pt)
	}
	centroid = centroid.Scale(1 / float64(len(pts)))

	out := CloneVecs(pts)
	sort.Slice(out, func(i, j int) bool {
		ai := math.Atan2(out[i][1]-centroid[1], out[i][0]-centroid[0])
		aj := math.Atan2(out[j][1]-centroid[1], out[j][0]-centroid[0])
		return ai < aj
	})
	return out
}
