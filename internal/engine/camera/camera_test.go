package camera

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/fixraster/internal/engine/projection"
	"github.com/Faultbox/fixraster/pkg/fixed"
	"github.com/Faultbox/fixraster/pkg/math"
)

func newTestPipeline(t *testing.T, w, h int, focal float64) *Pipeline {
	t.Helper()
	p, err := NewPipeline(Intrinsics{Width: w, Height: h, FocalLength: fixed.FromFloat64(focal)})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return p
}

// divide is a plain perspective divide so these tests do not depend on the
// projection package.
func divide(v math.Vec4) (float64, float64) {
	return v[0].Div(v[2]).Float64(), v[1].Div(v[2]).Float64()
}

func TestIntrinsicMatrix(t *testing.T) {
	got := IntrinsicMatrix(Intrinsics{Width: 640, Height: 480, FocalLength: fixed.One()})
	want := math.Mat3FromInts([3][3]int{
		{320, 0, 320},
		{0, -240, 240},
		{0, 0, 1},
	})
	if got != want {
		t.Errorf("IntrinsicMatrix = %v, want %v", got, want)
	}
}

func TestIntrinsicFocalLength(t *testing.T) {
	got := IntrinsicMatrix(Intrinsics{Width: 640, Height: 480, FocalLength: fixed.FromInt(2)})
	if got.At(0, 0) != fixed.FromInt(640) || got.At(1, 1) != fixed.FromInt(-480) {
		t.Errorf("focal length 2: got diagonal (%v, %v)", got.At(0, 0), got.At(1, 1))
	}
	// The principal point column does not scale with focal length.
	if got.At(0, 2) != fixed.FromInt(320) || got.At(1, 2) != fixed.FromInt(240) {
		t.Errorf("focal length 2: got principal column (%v, %v)", got.At(0, 2), got.At(1, 2))
	}
}

func TestNewPipelineRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   Intrinsics
	}{
		{"zero width", Intrinsics{Width: 0, Height: 480, FocalLength: fixed.One()}},
		{"negative height", Intrinsics{Width: 640, Height: -1, FocalLength: fixed.One()}},
		{"huge viewport", Intrinsics{Width: 4097, Height: 480, FocalLength: fixed.One()}},
		{"zero focal", Intrinsics{Width: 640, Height: 480}},
		{"negative focal", Intrinsics{Width: 640, Height: 480, FocalLength: fixed.FromInt(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPipeline(tt.in); !errors.Is(err, ErrInvalidIntrinsics) {
				t.Errorf("got %v, want ErrInvalidIntrinsics", err)
			}
		})
	}
}

func TestFocalPlaneLandsOffSurface(t *testing.T) {
	views := []struct{ w, h int }{{640, 480}, {MaxViewport, 480}, {MaxViewport, MaxViewport}}
	proj := projection.New(projection.DefaultSentinel)

	for _, vw := range views {
		p := newTestPipeline(t, vw.w, vw.h, 1)
		m := p.Matrix(State{})
		for _, v := range []math.Vec3{math.V3(1, 0, 0), math.V3(-1, 0, 0), math.V3(0, 1, 0), math.V3(0, -1, 0)} {
			x, y := proj.Project(m, v).Ints()
			if x >= 0 && x < vw.w && y >= 0 && y < vw.h {
				t.Errorf("%dx%d: vertex %v on the focal plane projects on surface at (%d, %d)", vw.w, vw.h, v, x, y)
			}
		}
	}
}

func TestNormalizationShift(t *testing.T) {
	tests := []struct {
		w, h  int
		focal float64
		want  uint
	}{
		{256, 128, 1, 0},
		{640, 480, 1, 2},
		{640, 480, 0.5, 2},
		{640, 480, 4, 4},
		{4096, 4096, 1, 4},
	}

	for _, tt := range tests {
		p := newTestPipeline(t, tt.w, tt.h, tt.focal)
		if p.Shift() != tt.want {
			t.Errorf("%dx%d f=%v: shift %d, want %d", tt.w, tt.h, tt.focal, p.Shift(), tt.want)
		}
	}
}

func TestCenterProjection(t *testing.T) {
	p := newTestPipeline(t, 640, 480, 1)
	m := p.Matrix(State{})

	for _, d := range []int{1, 2, 5, 7, 20, 50} {
		v := m.MulVec4(math.Vec3{Z: fixed.FromInt(d)}.Homogeneous())
		x, y := divide(v)
		if x != 320 || y != 240 {
			t.Errorf("(0,0,%d) projected to (%v, %v), want (320, 240)", d, x, y)
		}
	}
}

func TestHomogeneousWIsDepth(t *testing.T) {
	p := newTestPipeline(t, 640, 480, 1)
	v := p.Matrix(State{}).MulVec4(math.V3(0, 0, 8).Homogeneous())
	// shift 2 scales w by 1/4.
	if v[2] != fixed.FromInt(2) {
		t.Errorf("w = %v, want 2", v[2])
	}
}

func TestTranslationMovesWorld(t *testing.T) {
	p := newTestPipeline(t, 640, 480, 1)
	// Camera stepped to x=1; a point at x=1 straight ahead is centred.
	s := State{X: fixed.One()}
	x, y := divide(p.Matrix(s).MulVec4(math.V3(1, 0, 4).Homogeneous()))
	if x != 320 || y != 240 {
		t.Errorf("got (%v, %v), want (320, 240)", x, y)
	}
}

func TestOrientation(t *testing.T) {
	p := newTestPipeline(t, 640, 480, 1)
	ahead := math.V3(0, 0, 5).Homogeneous()
	step := fixed.FromFloat64(0.1)

	var s State
	s.Apply(YawLeft, step)
	if x, _ := divide(p.Matrix(s).MulVec4(ahead)); x <= 320 {
		t.Errorf("yaw left: x = %v, want right of centre", x)
	}

	s = State{}
	s.Apply(PitchUp, step)
	if _, y := divide(p.Matrix(s).MulVec4(ahead)); y <= 240 {
		t.Errorf("pitch up: y = %v, want below centre", y)
	}

	// World up is screen up.
	x, y := divide(p.Matrix(State{}).MulVec4(math.V3(0, 1, 5).Homogeneous()))
	if x != 320 || y != 192 {
		t.Errorf("(0,1,5) = (%v, %v), want (320, 192)", x, y)
	}
}

func TestApplyCommands(t *testing.T) {
	step := fixed.FromFloat64(0.1)
	tests := []struct {
		cmd  Command
		want State
	}{
		{MoveForward, State{Z: step}},
		{MoveBack, State{Z: step.Neg()}},
		{StrafeRight, State{X: step}},
		{StrafeLeft, State{X: step.Neg()}},
		{YawLeft, State{Yaw: step}},
		{YawRight, State{Yaw: step.Neg()}},
		{PitchUp, State{Pitch: step}},
		{PitchDown, State{Pitch: step.Neg()}},
		{CommandNone, State{}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			var s State
			s.Apply(tt.cmd, step)
			if s != tt.want {
				t.Errorf("Apply(%v) = %+v, want %+v", tt.cmd, s, tt.want)
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	if MoveForward.String() != "move_forward" {
		t.Errorf("got %q", MoveForward.String())
	}
	if Command(99).String() != "unknown" {
		t.Errorf("got %q", Command(99).String())
	}
}

// The composed matrix must not overflow for a camera within ±50 units and
// viewports up to 4096 px. Results are compared against a float64 model of
// the same transform. A wrapped product lands thousands of pixels away, so
// the tolerance only has to absorb 16.16 rounding.
func TestMatrixEnvelope(t *testing.T) {
	type view struct{ w, h int }
	views := []view{{640, 480}, {1920, 1080}, {4096, 4096}}
	positions := [][2]float64{{0, 0}, {50, 50}, {-50, 50}, {50, -50}, {-50, -50}}
	angles := [][2]float64{{0, 0}, {0.5, 0}, {-1.2, 0.3}, {3, -0.4}}
	offsets := [][3]float64{{0, 0, 5}, {3, -2, 10}, {-20, 10, 40}, {30, 25, 45}}

	for _, vw := range views {
		p := newTestPipeline(t, vw.w, vw.h, 1)
		tol := float64(vw.w) / 256
		for _, pos := range positions {
			for _, ang := range angles {
				s := State{
					X:     fixed.FromFloat64(pos[0]),
					Z:     fixed.FromFloat64(pos[1]),
					Yaw:   fixed.FromFloat64(ang[0]),
					Pitch: fixed.FromFloat64(ang[1]),
				}
				m := p.Matrix(s)
				for _, off := range offsets {
					world := cameraToWorld(s, off)
					gotX, gotY := divide(m.MulVec4(world.Homogeneous()))
					wantX, wantY := reference(s, world, vw.w, vw.h)
					if gomath.Abs(gotX-wantX) > tol || gomath.Abs(gotY-wantY) > tol {
						t.Errorf("%dx%d cam %v ang %v off %v: got (%.2f, %.2f), want (%.2f, %.2f)",
							vw.w, vw.h, pos, ang, off, gotX, gotY, wantX, wantY)
					}
				}
			}
		}
	}
}

// cameraToWorld inverts the extrinsic transform in float64.
func cameraToWorld(s State, c [3]float64) math.Vec3 {
	yaw, pitch := s.Yaw.Float64(), s.Pitch.Float64()
	// Undo RotationX(pitch).
	y1 := gomath.Cos(pitch)*c[1] + gomath.Sin(pitch)*c[2]
	z1 := -gomath.Sin(pitch)*c[1] + gomath.Cos(pitch)*c[2]
	x1 := c[0]
	// Undo RotationY(yaw).
	x := gomath.Cos(yaw)*x1 - gomath.Sin(yaw)*z1
	z := gomath.Sin(yaw)*x1 + gomath.Cos(yaw)*z1
	return math.V3(x+s.X.Float64(), y1, z+s.Z.Float64())
}

func reference(s State, v math.Vec3, w, h int) (float64, float64) {
	yaw, pitch := s.Yaw.Float64(), s.Pitch.Float64()
	tx, ty, tz := v.X.Float64()-s.X.Float64(), v.Y.Float64(), v.Z.Float64()-s.Z.Float64()
	x1 := gomath.Cos(yaw)*tx + gomath.Sin(yaw)*tz
	z1 := -gomath.Sin(yaw)*tx + gomath.Cos(yaw)*tz
	y2 := gomath.Cos(pitch)*ty - gomath.Sin(pitch)*z1
	z2 := gomath.Sin(pitch)*ty + gomath.Cos(pitch)*z1
	return float64(w) / 2 * (x1/z2 + 1), float64(h) / 2 * (1 - y2/z2)
}
