package math

import (
	"fmt"

	"github.com/Faultbox/fixraster/pkg/fixed"
)

// Mat4 is a row-major 4x4 matrix: m[row][col].
// Translation lives in the last column.
type Mat4 [4][4]fixed.Fixed

// NewMat4 builds a Mat4 from a rectangular row-major literal.
func NewMat4(rows [][]fixed.Fixed) (Mat4, error) {
	var m Mat4
	if len(rows) != 4 {
		return m, fmt.Errorf("%w: %d rows, want 4", ErrDimension, len(rows))
	}
	for r, row := range rows {
		if len(row) != 4 {
			return m, fmt.Errorf("%w: row %d has %d columns, want 4", ErrDimension, r, len(row))
		}
		copy(m[r][:], row)
	}
	return m, nil
}

// Identity4 returns the 4x4 identity.
func Identity4() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i][i] = fixed.One()
	}
	return m
}

// Translate4 returns a translation matrix.
func Translate4(x, y, z fixed.Fixed) Mat4 {
	m := Identity4()
	m[0][3], m[1][3], m[2][3] = x, y, z
	return m
}

// RotateX4 returns a rotation about the X axis. angle is in radians.
func RotateX4(angle fixed.Fixed) Mat4 {
	c, s := fixed.Cos(angle), fixed.Sin(angle)
	m := Identity4()
	m[1][1], m[1][2] = c, s.Neg()
	m[2][1], m[2][2] = s, c
	return m
}

// RotateY4 returns a rotation about the Y axis. angle is in radians.
func RotateY4(angle fixed.Fixed) Mat4 {
	c, s := fixed.Cos(angle), fixed.Sin(angle)
	m := Identity4()
	m[0][0], m[0][2] = c, s
	m[2][0], m[2][2] = s.Neg(), c
	return m
}

// At returns the entry at row r, column c.
func (m Mat4) At(r, c int) fixed.Fixed { return m[r][c] }

// Row returns row r.
func (m Mat4) Row(r int) Vec4 { return Vec4(m[r]) }

// Col returns column c.
func (m Mat4) Col(c int) Vec4 {
	return Vec4{m[0][c], m[1][c], m[2][c], m[3][c]}
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r][c] = m[r][0].Mul(other[0][c]).
				Add(m[r][1].Mul(other[1][c])).
				Add(m[r][2].Mul(other[2][c])).
				Add(m[r][3].Mul(other[3][c]))
		}
	}
	return out
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for r := 0; r < 4; r++ {
		out[r] = m[r][0].Mul(v[0]).
			Add(m[r][1].Mul(v[1])).
			Add(m[r][2].Mul(v[2])).
			Add(m[r][3].Mul(v[3]))
	}
	return out
}

// TransformPoint returns m * (p, 1) without the w component.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return m.MulVec4(p.Homogeneous()).XYZ()
}

// Transpose returns the transpose.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c][r] = m[r][c]
		}
	}
	return out
}
