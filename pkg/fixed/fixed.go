// Package fixed provides a deterministic signed 16.16 fixed-point number type.
//
// All geometry, matrix and pixel-coordinate math in the renderer is done in
// Fixed so that frames are bit-identical across hosts regardless of the
// floating-point unit. Arithmetic wraps on overflow exactly like the 32-bit
// two's complement storage it is built on.
package fixed

import (
	"errors"
	"strconv"
)

// FracBits is the number of fractional bits.
const FracBits = 16

const (
	oneRaw  int32 = 1 << FracBits
	halfRaw int32 = oneRaw >> 1
	fracMsk int32 = oneRaw - 1
)

// ErrDivideByZero is returned by CheckedDiv when the divisor is zero.
var ErrDivideByZero = errors.New("fixed: division by zero")

// Fixed is a signed fixed-point value with 16 integer and 16 fractional bits.
// The zero value is 0.
type Fixed struct {
	raw int32
}

// FromRaw wraps an already scaled raw representation.
func FromRaw(raw int32) Fixed { return Fixed{raw} }

// FromInt converts an integer. Values outside [-32768, 32767] wrap.
func FromInt(n int) Fixed { return Fixed{int32(n) << FracBits} }

// FromFloat64 converts a float, truncating toward negative infinity at 1/65536.
// Out of range values wrap.
func FromFloat64(f float64) Fixed {
	scaled := f * float64(oneRaw)
	n := int64(scaled)
	if float64(n) > scaled {
		n--
	}
	return Fixed{int32(n)}
}

// FromFloat32 converts a float32. See FromFloat64.
func FromFloat32(f float32) Fixed { return FromFloat64(float64(f)) }

// Ratio returns num/den computed in fixed point.
func Ratio(num, den int) Fixed { return FromInt(num).Div(FromInt(den)) }

// Zero returns the additive identity.
func Zero() Fixed { return Fixed{} }

// One returns the multiplicative identity.
func One() Fixed { return Fixed{oneRaw} }

// Half returns 0.5.
func Half() Fixed { return Fixed{halfRaw} }

// Epsilon returns the smallest positive value, 1/65536.
func Epsilon() Fixed { return Fixed{1} }

// Max returns the largest representable value, 32767.99998...
func Max() Fixed { return Fixed{1<<31 - 1} }

// Min returns the smallest representable value, -32768.
func Min() Fixed { return Fixed{-1 << 31} }

// Raw returns the scaled integer representation.
func (a Fixed) Raw() int32 { return a.raw }

// Int returns the integer part, rounding toward negative infinity.
func (a Fixed) Int() int { return int(a.raw >> FracBits) }

// Float64 returns the value as a float64. Exact for every Fixed.
func (a Fixed) Float64() float64 { return float64(a.raw) / float64(oneRaw) }

// Float32 returns the value as a float32.
func (a Fixed) Float32() float32 { return float32(a.Float64()) }

// String formats the value in decimal.
func (a Fixed) String() string {
	return strconv.FormatFloat(a.Float64(), 'f', -1, 64)
}

// Add returns a+b, wrapping on overflow.
func (a Fixed) Add(b Fixed) Fixed { return Fixed{a.raw + b.raw} }

// Sub returns a-b, wrapping on overflow.
func (a Fixed) Sub(b Fixed) Fixed { return Fixed{a.raw - b.raw} }

// Neg returns -a. Neg(Min()) wraps to Min().
func (a Fixed) Neg() Fixed { return Fixed{-a.raw} }

// Abs returns |a|. Abs(Min()) wraps to Min().
func (a Fixed) Abs() Fixed {
	if a.raw < 0 {
		return Fixed{-a.raw}
	}
	return a
}

// Mul returns a*b. The 64-bit product is shifted arithmetically, so the
// result is truncated toward negative infinity, then wrapped to 32 bits.
func (a Fixed) Mul(b Fixed) Fixed {
	return Fixed{int32((int64(a.raw) * int64(b.raw)) >> FracBits)}
}

// Div returns a/b truncated toward zero, wrapping on overflow.
// Division by zero saturates: Max() for a >= 0, Min() for a < 0.
func (a Fixed) Div(b Fixed) Fixed {
	if b.raw == 0 {
		return saturate(a.raw >= 0)
	}
	return Fixed{int32((int64(a.raw) << FracBits) / int64(b.raw))}
}

// CheckedDiv is Div that reports division by zero instead of saturating.
func (a Fixed) CheckedDiv(b Fixed) (Fixed, error) {
	if b.raw == 0 {
		return Fixed{}, ErrDivideByZero
	}
	return a.Div(b), nil
}

// DivSat returns a/b clamped to [Min(), Max()]. Division by zero saturates
// like Div, with 0/0 treated as positive.
func (a Fixed) DivSat(b Fixed) Fixed {
	if b.raw == 0 {
		return saturate(a.raw >= 0)
	}
	q := (int64(a.raw) << FracBits) / int64(b.raw)
	switch {
	case q > int64(Max().raw):
		return Max()
	case q < int64(Min().raw):
		return Min()
	}
	return Fixed{int32(q)}
}

// MulDiv returns a*b/c with a 64-bit intermediate, truncated toward zero.
// Division by zero saturates by the sign of a*b.
func MulDiv(a, b, c Fixed) Fixed {
	p := int64(a.raw) * int64(b.raw)
	if c.raw == 0 {
		return saturate(p >= 0)
	}
	return Fixed{int32(p / int64(c.raw))}
}

func saturate(positive bool) Fixed {
	if positive {
		return Max()
	}
	return Min()
}

// Floor returns the largest integer value <= a.
func (a Fixed) Floor() Fixed { return Fixed{a.raw &^ fracMsk} }

// Ceil returns the smallest integer value >= a. Wraps above 32767.
func (a Fixed) Ceil() Fixed { return Fixed{(a.raw + fracMsk) &^ fracMsk} }

// Round rounds to the nearest integer, ties away from zero.
func (a Fixed) Round() Fixed {
	if a.raw < 0 {
		return Fixed{-((-a.raw + halfRaw) &^ fracMsk)}
	}
	return Fixed{(a.raw + halfRaw) &^ fracMsk}
}

// Frac returns a - a.Floor(), always in [0, 1).
func (a Fixed) Frac() Fixed { return Fixed{a.raw & fracMsk} }

// Cmp returns -1, 0 or +1 as a is less than, equal to or greater than b.
func (a Fixed) Cmp(b Fixed) int {
	switch {
	case a.raw < b.raw:
		return -1
	case a.raw > b.raw:
		return 1
	}
	return 0
}

func (a Fixed) Eq(b Fixed) bool        { return a.raw == b.raw }
func (a Fixed) Less(b Fixed) bool      { return a.raw < b.raw }
func (a Fixed) LessEq(b Fixed) bool    { return a.raw <= b.raw }
func (a Fixed) Greater(b Fixed) bool   { return a.raw > b.raw }
func (a Fixed) GreaterEq(b Fixed) bool { return a.raw >= b.raw }

// IsZero reports whether a is the zero value.
func (a Fixed) IsZero() bool { return a.raw == 0 }

// Sign returns -1, 0 or +1.
func (a Fixed) Sign() int { return a.Cmp(Fixed{}) }

// MinOf returns the smaller of a and b.
func MinOf(a, b Fixed) Fixed {
	if b.raw < a.raw {
		return b
	}
	return a
}

// MaxOf returns the larger of a and b.
func MaxOf(a, b Fixed) Fixed {
	if b.raw > a.raw {
		return b
	}
	return a
}

// Clamp limits a to [lo, hi].
func (a Fixed) Clamp(lo, hi Fixed) Fixed {
	return MinOf(MaxOf(a, lo), hi)
}
