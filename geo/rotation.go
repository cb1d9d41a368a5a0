package geo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// RotationFromVec returns the rotation matrix whose first column is the
// direction of v, i.e. the frame in which the x-axis is aligned with v.
//
// In 2D this is the planar rotation by atan2(vy, vx). In 3D the frame is
// built from yaw around Z then pitch around Y, with roll fixed at zero.
// A zero v yields the identity.
func RotationFromVec(v Vec) *mat.Dense {
	switch v.Dim() {
	case 2:
		yaw := math.Atan2(v[1], v[0])
		c, s := math.Cos(yaw), math.Sin(yaw)
		return mat.NewDense(2, 2, []float64{
			c, -s,
			s, c,
		})
	case 3:
		yaw := math.Atan2(v[1], v[0])
		pitch := math.Atan2(-v[2], math.Hypot(v[0], v[1]))
		cy, sy := math.Cos(yaw), math.Sin(yaw)
		cp, sp := math.Cos(pitch), math.Sin(pitch)
		// Rz(yaw) * Ry(pitch)
		return mat.NewDense(3, 3, []float64{
			cy * cp, -sy, cy * sp,
			sy * cp, cy, sy * sp,
			-sp, 0, cp,
		})
	default:
		panic(fmt.Sprintf("geo: unsupported dimension %d", v.Dim()))
	}
}

// RotationX returns the 3D rotation about the x-axis by angle radians.
func RotationX(angle float64) *mat.Dense {
	c, s := math.Cos(angle), math.Sin(angle)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}
