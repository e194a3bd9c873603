// Package math provides fixed-point vectors and matrices for the camera
// and rasterizer. Matrices are row-major and multiply column vectors on
// the right; no operation promotes to floating point.
package math

import "github.com/Faultbox/fixraster/pkg/fixed"

// Vec2 is a 2D point, used for device coordinates.
type Vec2 struct {
	X, Y fixed.Fixed
}

// V2 builds a Vec2 from integers.
func V2(x, y int) Vec2 {
	return Vec2{fixed.FromInt(x), fixed.FromInt(y)}
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X.Add(other.X), v.Y.Add(other.Y)}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X.Sub(other.X), v.Y.Sub(other.Y)}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s fixed.Fixed) Vec2 {
	return Vec2{v.X.Mul(s), v.Y.Mul(s)}
}

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(other Vec2) fixed.Fixed {
	return v.X.Mul(other.Y).Sub(v.Y.Mul(other.X))
}

// Ints returns the coordinates floored to integers.
func (v Vec2) Ints() (int, int) {
	return v.X.Int(), v.Y.Int()
}
