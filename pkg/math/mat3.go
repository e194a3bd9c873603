package math

import (
	"errors"
	"fmt"

	"github.com/Faultbox/fixraster/pkg/fixed"
)

// ErrDimension is returned when a literal has the wrong shape.
var ErrDimension = errors.New("math: wrong dimensions")

// Mat3 is a row-major 3x3 matrix: m[row][col].
type Mat3 [3][3]fixed.Fixed

// NewMat3 builds a Mat3 from a rectangular row-major literal.
func NewMat3(rows [][]fixed.Fixed) (Mat3, error) {
	var m Mat3
	if len(rows) != 3 {
		return m, fmt.Errorf("%w: %d rows, want 3", ErrDimension, len(rows))
	}
	for r, row := range rows {
		if len(row) != 3 {
			return m, fmt.Errorf("%w: row %d has %d columns, want 3", ErrDimension, r, len(row))
		}
		copy(m[r][:], row)
	}
	return m, nil
}

// Mat3FromInts builds a Mat3 from an integer literal.
func Mat3FromInts(rows [3][3]int) Mat3 {
	var m Mat3
	for r := range rows {
		for c := range rows[r] {
			m[r][c] = fixed.FromInt(rows[r][c])
		}
	}
	return m
}

// Identity3 returns the 3x3 identity.
func Identity3() Mat3 {
	return Diag3(fixed.One(), fixed.One(), fixed.One())
}

// Diag3 returns a diagonal matrix.
func Diag3(a, b, c fixed.Fixed) Mat3 {
	var m Mat3
	m[0][0], m[1][1], m[2][2] = a, b, c
	return m
}

// At returns the entry at row r, column c.
func (m Mat3) At(r, c int) fixed.Fixed { return m[r][c] }

// Mul returns m * other.
func (m Mat3) Mul(other Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = m[r][0].Mul(other[0][c]).
				Add(m[r][1].Mul(other[1][c])).
				Add(m[r][2].Mul(other[2][c]))
		}
	}
	return out
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0][0].Mul(v.X).Add(m[0][1].Mul(v.Y)).Add(m[0][2].Mul(v.Z)),
		m[1][0].Mul(v.X).Add(m[1][1].Mul(v.Y)).Add(m[1][2].Mul(v.Z)),
		m[2][0].Mul(v.X).Add(m[2][1].Mul(v.Y)).Add(m[2][2].Mul(v.Z)),
	}
}

// Transpose returns the transpose.
func (m Mat3) Transpose() Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[c][r] = m[r][c]
		}
	}
	return out
}

// Homogeneous embeds m into the upper-left of a 4x4 identity.
func (m Mat3) Homogeneous() Mat4 {
	out := Identity4()
	for r := 0; r < 3; r++ {
		copy(out[r][:3], m[r][:])
	}
	return out
}
