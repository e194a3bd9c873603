package fixed

// Trigonometry is evaluated with Taylor polynomials in a 2.30 intermediate
// so rotation matrices never touch the host floating-point unit.

const (
	q30      = 30
	one30    = int64(1) << q30
	toQ30    = q30 - FracBits
	piRaw    = int32(205887) // round(pi * 65536)
	halfPi   = piRaw / 2
	twoPiRaw = 2 * int64(piRaw)
)

// Pi returns pi rounded to the nearest representable value.
func Pi() Fixed { return Fixed{piRaw} }

func mul30(a, b int64) int64 { return (a * b) >> q30 }

func fromQ30(v int64) Fixed {
	return Fixed{int32((v + 1<<(toQ30-1)) >> toQ30)}
}

// reduce maps an angle into [-pi, pi].
func reduce(a Fixed) int32 {
	r := int64(a.raw) % twoPiRaw
	if r > int64(piRaw) {
		r -= twoPiRaw
	} else if r < -int64(piRaw) {
		r += twoPiRaw
	}
	return int32(r)
}

// Sin returns the sine of an angle in radians.
func Sin(a Fixed) Fixed {
	r := reduce(a)
	neg := r < 0
	if neg {
		r = -r
	}
	if r > halfPi {
		r = piRaw - r
	}
	x := int64(r) << toQ30
	x2 := mul30(x, x)
	p := -one30 / 39916800
	p = one30/362880 + mul30(x2, p)
	p = -one30/5040 + mul30(x2, p)
	p = one30/120 + mul30(x2, p)
	p = -one30/6 + mul30(x2, p)
	p = one30 + mul30(x2, p)
	s := fromQ30(mul30(x, p))
	if neg {
		return s.Neg()
	}
	return s
}

// Cos returns the cosine of an angle in radians. Cos(Zero()) is exactly One().
func Cos(a Fixed) Fixed {
	r := reduce(a)
	if r < 0 {
		r = -r
	}
	neg := false
	if r > halfPi {
		r = piRaw - r
		neg = true
	}
	x := int64(r) << toQ30
	x2 := mul30(x, x)
	p := -one30 / 3628800
	p = one30/40320 + mul30(x2, p)
	p = -one30/720 + mul30(x2, p)
	p = one30/24 + mul30(x2, p)
	p = -one30/2 + mul30(x2, p)
	p = one30 + mul30(x2, p)
	c := fromQ30(p)
	if neg {
		return c.Neg()
	}
	return c
}
