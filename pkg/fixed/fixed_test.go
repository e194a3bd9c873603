package fixed

import (
	"errors"
	"math"
	"testing"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		in   Fixed
		raw  int32
		f    float64
	}{
		{"int", FromInt(3), 3 << 16, 3},
		{"negative int", FromInt(-2), -2 << 16, -2},
		{"half", FromFloat64(0.5), 1 << 15, 0.5},
		{"negative fraction", FromFloat64(-0.25), -(1 << 14), -0.25},
		{"ratio", Ratio(1, 4), 1 << 14, 0.25},
		{"epsilon", Epsilon(), 1, 1.0 / 65536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.in.Raw() != tt.raw {
				t.Errorf("raw: got %d, want %d", tt.in.Raw(), tt.raw)
			}
			if tt.in.Float64() != tt.f {
				t.Errorf("float: got %v, want %v", tt.in.Float64(), tt.f)
			}
		})
	}
}

func TestFromFloatTruncatesDown(t *testing.T) {
	// 0.1 is not representable; conversion must floor, never round up.
	if got := FromFloat64(0.1).Raw(); got != 6553 {
		t.Errorf("0.1: got raw %d, want 6553", got)
	}
	if got := FromFloat64(-0.1).Raw(); got != -6554 {
		t.Errorf("-0.1: got raw %d, want -6554", got)
	}
}

func TestIntFloors(t *testing.T) {
	if got := FromFloat64(2.75).Int(); got != 2 {
		t.Errorf("Int(2.75) = %d, want 2", got)
	}
	if got := FromFloat64(-2.25).Int(); got != -3 {
		t.Errorf("Int(-2.25) = %d, want -3", got)
	}
}

func TestAddSubRoundTrip(t *testing.T) {
	samples := []int32{0, 1, -1, 65536, -65536, 123456789, -987654321, 1<<31 - 1, -1 << 31, 0x7fff0000}
	for _, ra := range samples {
		for _, rb := range samples {
			a, b := FromRaw(ra), FromRaw(rb)
			if got := a.Add(b).Sub(b); got != a {
				t.Errorf("(%d+%d)-%d = %d, want %d", ra, rb, rb, got.Raw(), ra)
			}
		}
	}
}

func TestMulIdentity(t *testing.T) {
	for _, r := range []int32{0, 1, -1, 98765, -98765, 1<<31 - 1, -1 << 31} {
		a := FromRaw(r)
		if got := a.Mul(One()); got != a {
			t.Errorf("%v * 1 = %v", a, got)
		}
	}
}

func TestDivSelf(t *testing.T) {
	for _, f := range []float64{1, -1, 0.5, 3.25, -7.125, 1000, -32768, 1.0 / 65536} {
		a := FromFloat64(f)
		if got := a.Div(a); got != One() {
			t.Errorf("%v / %v = %v, want 1", a, a, got)
		}
	}
}

func TestMulDiv(t *testing.T) {
	tests := []struct {
		a, b, want float64
		op         string
	}{
		{1.5, 2, 3, "mul"},
		{-1.5, 2, -3, "mul"},
		{0.5, 0.5, 0.25, "mul"},
		{10, 4, 2.5, "div"},
		{-10, 4, -2.5, "div"},
		{1, 3, 0.333328247, "div"}, // 21845/65536, truncated
	}

	for _, tt := range tests {
		a, b := FromFloat64(tt.a), FromFloat64(tt.b)
		var got Fixed
		if tt.op == "mul" {
			got = a.Mul(b)
		} else {
			got = a.Div(b)
		}
		if math.Abs(got.Float64()-tt.want) > 1.0/65536 {
			t.Errorf("%v %s %v = %v, want %v", tt.a, tt.op, tt.b, got, tt.want)
		}
	}
}

func TestMulTruncatesTowardNegativeInfinity(t *testing.T) {
	// epsilon * 0.5 is half an ulp: positive floors to 0, negative floors to -eps.
	if got := Epsilon().Mul(Half()); !got.IsZero() {
		t.Errorf("eps*0.5 = %d raw, want 0", got.Raw())
	}
	if got := Epsilon().Neg().Mul(Half()); got.Raw() != -1 {
		t.Errorf("-eps*0.5 = %d raw, want -1", got.Raw())
	}
}

func TestOverflowWraps(t *testing.T) {
	if got := Max().Add(Epsilon()); got != Min() {
		t.Errorf("Max+eps = %v, want Min", got)
	}
	if got := Min().Sub(Epsilon()); got != Max() {
		t.Errorf("Min-eps = %v, want Max", got)
	}
	// 200 * 200 = 40000 does not fit; the low 32 bits are kept.
	got := FromInt(200).Mul(FromInt(200))
	wide := int64(40000) << 16
	want := int32(wide)
	if got.Raw() != want {
		t.Errorf("200*200 raw = %d, want wrapped %d", got.Raw(), want)
	}
}

func TestDivideByZero(t *testing.T) {
	if got := FromInt(5).Div(Zero()); got != Max() {
		t.Errorf("5/0 = %v, want Max", got)
	}
	if got := FromInt(-5).Div(Zero()); got != Min() {
		t.Errorf("-5/0 = %v, want Min", got)
	}
	if got := Zero().Div(Zero()); got != Max() {
		t.Errorf("0/0 = %v, want Max", got)
	}
	if _, err := One().CheckedDiv(Zero()); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("CheckedDiv by zero: got %v, want ErrDivideByZero", err)
	}
	if q, err := FromInt(6).CheckedDiv(FromInt(3)); err != nil || q != FromInt(2) {
		t.Errorf("CheckedDiv 6/3 = %v, %v", q, err)
	}
}

func TestDivSat(t *testing.T) {
	if got := FromInt(1000).DivSat(FromFloat64(0.001)); got != Max() {
		t.Errorf("1000/0.001 = %v, want Max", got)
	}
	if got := FromInt(-1000).DivSat(FromFloat64(0.001)); got != Min() {
		t.Errorf("-1000/0.001 = %v, want Min", got)
	}
	if got := FromInt(9).DivSat(FromInt(3)); got != FromInt(3) {
		t.Errorf("9/3 = %v, want 3", got)
	}
}

func TestMulDivIntermediate(t *testing.T) {
	// 300*300 overflows on its own, the 64-bit intermediate does not.
	got := MulDiv(FromInt(300), FromInt(300), FromInt(600))
	if got != FromInt(150) {
		t.Errorf("300*300/600 = %v, want 150", got)
	}
}

func TestRounding(t *testing.T) {
	tests := []struct {
		in                 float64
		floor, ceil, round float64
	}{
		{2.5, 2, 3, 3},
		{2.25, 2, 3, 2},
		{-2.5, -3, -2, -3},
		{-2.75, -3, -2, -3},
		{-0.25, -1, 0, 0},
		{4, 4, 4, 4},
	}

	for _, tt := range tests {
		v := FromFloat64(tt.in)
		if got := v.Floor().Float64(); got != tt.floor {
			t.Errorf("Floor(%v) = %v, want %v", tt.in, got, tt.floor)
		}
		if got := v.Ceil().Float64(); got != tt.ceil {
			t.Errorf("Ceil(%v) = %v, want %v", tt.in, got, tt.ceil)
		}
		if got := v.Round().Float64(); got != tt.round {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.round)
		}
	}
}

func TestOrdering(t *testing.T) {
	values := []Fixed{Min(), FromInt(-3), FromFloat64(-0.5), Zero(), Epsilon(), Half(), One(), Max()}
	for i := range values {
		for j := range values {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got := values[i].Cmp(values[j]); got != want {
				t.Errorf("Cmp(%v, %v) = %d, want %d", values[i], values[j], got, want)
			}
			if values[i].Less(values[j]) != (values[i].Float64() < values[j].Float64()) {
				t.Errorf("Less(%v, %v) disagrees with real ordering", values[i], values[j])
			}
		}
	}
}

func TestZeroIdentity(t *testing.T) {
	var z Fixed
	if !z.IsZero() || z != Zero() {
		t.Error("zero value should be Zero()")
	}
	if FromInt(7).Add(Zero()) != FromInt(7) {
		t.Error("7+0 should be 7")
	}
	if Epsilon().IsZero() {
		t.Error("epsilon is not zero")
	}
}

func TestClamp(t *testing.T) {
	lo, hi := FromInt(-1), FromInt(1)
	if got := FromInt(5).Clamp(lo, hi); got != hi {
		t.Errorf("Clamp(5) = %v", got)
	}
	if got := FromInt(-5).Clamp(lo, hi); got != lo {
		t.Errorf("Clamp(-5) = %v", got)
	}
	if got := Half().Clamp(lo, hi); got != Half() {
		t.Errorf("Clamp(0.5) = %v", got)
	}
}

// Three chained products of the sizes used by the camera (gain 128, 50
// world units, unit rotation terms) must stay inside the integer range.
func TestChainedProductEnvelope(t *testing.T) {
	gain := FromInt(128)
	dist := FromInt(50)
	rot := Cos(FromFloat64(0.3))
	acc := gain.Mul(rot).Mul(rot).Mul(dist.Add(dist))
	want := 128 * math.Cos(0.3) * math.Cos(0.3) * 100
	if math.Abs(acc.Float64()-want) > 0.5 {
		t.Errorf("chained product = %v, want ~%v", acc, want)
	}
	if acc.Sign() <= 0 {
		t.Errorf("chained product wrapped: %v", acc)
	}
}
