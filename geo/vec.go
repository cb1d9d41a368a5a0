// Package geo provides the geometric primitives used by corridor
// decomposition: points and directions (Vec), supporting hyperplanes,
// polyhedra built from them, shape-matrix ellipsoids, and the linear
// inequality systems derived from polyhedra.
//
// All types work in 2 or 3 dimensions; the dimension is carried by the
// length of the vectors involved.
package geo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vec is a point or direction with 2 or 3 components.
type Vec []float64

// Zero returns the zero vector of the given dimension.
func Zero(dim int) Vec { return make(Vec, dim) }

// Dim returns the number of components.
func (v Vec) Dim() int { return len(v) }

// Clone returns an independent copy of v.
func (v Vec) Clone() Vec {
	if v == nil {
		return nil
	}
	out := make(Vec, len(v))
	copy(out, v)
	return out
}

// Add returns v + o as a new vector.
func (v Vec) Add(o Vec) Vec {
	out := v.Clone()
	floats.Add(out, o)
	return out
}

// Sub returns v - o as a new vector.
func (v Vec) Sub(o Vec) Vec {
	out := v.Clone()
	floats.Sub(out, o)
	return out
}

// Scale returns s*v as a new vector.
func (v Vec) Scale(s float64) Vec {
	out := v.Clone()
	floats.Scale(s, out)
	return out
}

// Dot returns the inner product of v and o.
func (v Vec) Dot(o Vec) float64 { return floats.Dot(v, o) }

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec) Normalized() Vec {
	n := v.Norm()
	if n == 0 {
		return v.Clone()
	}
	return v.Scale(1 / n)
}

// IsZero reports whether every component of v is zero. A nil vector counts
// as zero; both serve as the "unset" sentinel for optional boxes.
func (v Vec) IsZero() bool {
	for _, c := range v {
		if c != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether v and o have the same dimension and components.
func (v Vec) Equal(o Vec) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// ObstacleSet is a point cloud of obstacle samples. It is shared read-only
// across all dilation workers; nothing mutates it during a decomposition.
type ObstacleSet = []Vec

// Mid returns the midpoint of a and b.
func Mid(a, b Vec) Vec { return a.Add(b).Scale(0.5) }

// Cross returns the cross product of two 3-dimensional vectors.
func Cross(a, b Vec) Vec {
	return Vec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// CloneVecs deep-copies a slice of vectors.
func CloneVecs(vs []Vec) []Vec {
	if vs == nil {
		return nil
	}
	out := make([]Vec, len(vs))
	for i := range vs {
		out[i] = vs[i].Clone()
	}
	return out
}
