// Package projection turns homogeneous image coordinates into 2D device
// coordinates.
package projection

import (
	"github.com/Faultbox/fixraster/pkg/fixed"
	"github.com/Faultbox/fixraster/pkg/math"
)

// DefaultSentinel is the device coordinate magnitude used in place of
// infinity for vertices on the focal plane.
const DefaultSentinel = 10000

// Projector performs the perspective divide.
type Projector struct {
	// Sentinel bounds every device coordinate to [-Sentinel, Sentinel].
	Sentinel fixed.Fixed
}

// New returns a Projector with the given sentinel magnitude in pixels.
// Non-positive values fall back to DefaultSentinel.
func New(sentinel int) Projector {
	if sentinel <= 0 {
		sentinel = DefaultSentinel
	}
	return Projector{Sentinel: fixed.FromInt(sentinel)}
}

// Divide returns num/den bounded by the sentinel. A zero denominator maps to
// the sentinel carrying the sign of num; 0/0 maps to +Sentinel so the point
// lands off-surface instead of on the top-left pixel.
func (p Projector) Divide(num, den fixed.Fixed) fixed.Fixed {
	return num.DivSat(den).Clamp(p.Sentinel.Neg(), p.Sentinel)
}

// Homogeneous divides (ix, iy) by iw.
func (p Projector) Homogeneous(v math.Vec4) math.Vec2 {
	return math.Vec2{
		X: p.Divide(v[0], v[2]),
		Y: p.Divide(v[1], v[2]),
	}
}

// Project maps a world vertex through the camera matrix to device coordinates.
func (p Projector) Project(m math.Mat4, v math.Vec3) math.Vec2 {
	return p.Homogeneous(m.MulVec4(v.Homogeneous()))
}

// ProjectAll projects every vertex, reusing dst when it has capacity.
func (p Projector) ProjectAll(m math.Mat4, vertices []math.Vec3, dst []math.Vec2) []math.Vec2 {
	dst = dst[:0]
	for _, v := range vertices {
		dst = append(dst, p.Project(m, v))
	}
	return dst
}
