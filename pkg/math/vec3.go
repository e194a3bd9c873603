package math

import (
	"fmt"

	"github.com/Faultbox/fixraster/pkg/fixed"
)

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z fixed.Fixed
}

// NewVec3 builds a Vec3 from a length-3 slice.
func NewVec3(v []fixed.Fixed) (Vec3, error) {
	if len(v) != 3 {
		return Vec3{}, fmt.Errorf("%w: vector of length %d, want 3", ErrDimension, len(v))
	}
	return Vec3{v[0], v[1], v[2]}, nil
}

// V3 builds a Vec3 from float64 components.
func V3(x, y, z float64) Vec3 {
	return Vec3{fixed.FromFloat64(x), fixed.FromFloat64(y), fixed.FromFloat64(z)}
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X.Add(other.X), v.Y.Add(other.Y), v.Z.Add(other.Z)}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X.Sub(other.X), v.Y.Sub(other.Y), v.Z.Sub(other.Z)}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s fixed.Fixed) Vec3 {
	return Vec3{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s)}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) fixed.Fixed {
	return v.X.Mul(other.X).Add(v.Y.Mul(other.Y)).Add(v.Z.Mul(other.Z))
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y.Mul(other.Z).Sub(v.Z.Mul(other.Y)),
		v.Z.Mul(other.X).Sub(v.X.Mul(other.Z)),
		v.X.Mul(other.Y).Sub(v.Y.Mul(other.X)),
	}
}

// Homogeneous returns (x, y, z, 1).
func (v Vec3) Homogeneous() Vec4 {
	return Vec4{v.X, v.Y, v.Z, fixed.One()}
}

// Vec4 is a 4-component vector.
type Vec4 [4]fixed.Fixed

// NewVec4 builds a Vec4 from a length-4 slice.
func NewVec4(v []fixed.Fixed) (Vec4, error) {
	if len(v) != 4 {
		return Vec4{}, fmt.Errorf("%w: vector of length %d, want 4", ErrDimension, len(v))
	}
	return Vec4{v[0], v[1], v[2], v[3]}, nil
}

// XYZ drops the fourth component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
