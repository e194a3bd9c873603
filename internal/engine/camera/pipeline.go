package camera

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/fixraster/internal/logger"
	"github.com/Faultbox/fixraster/pkg/fixed"
	"github.com/Faultbox/fixraster/pkg/math"
)

// MaxIntrinsicGain bounds the largest scale the intrinsic matrix may apply
// to a camera-space coordinate. It keeps homogeneous coordinates inside the
// 16.16 integer range for a camera within ±50 units of the origin on x and z
// viewing points up to 45 units away from it on each axis.
const MaxIntrinsicGain = 128

// MaxViewport is the largest accepted viewport side in pixels. It stays
// below projection.DefaultSentinel so vertices on the focal plane land
// off-surface.
const MaxViewport = 4096

// ErrInvalidIntrinsics is returned for a non-positive viewport or focal length.
var ErrInvalidIntrinsics = errors.New("camera: invalid intrinsics")

// Intrinsics are the session-constant camera parameters.
type Intrinsics struct {
	Width       int
	Height      int
	FocalLength fixed.Fixed
}

// FocalLengthMatrix is diag(f, f, 1).
func FocalLengthMatrix(f fixed.Fixed) math.Mat3 {
	return math.Diag3(f, f, fixed.One())
}

// FlipMatrix is diag(1, -1, 1): camera Y points up, image rows point down.
func FlipMatrix() math.Mat3 {
	return math.Diag3(fixed.One(), fixed.One().Neg(), fixed.One())
}

// PrincipalPointMatrix shifts normalized image coordinates from [-1, 1]
// to [0, 2], putting the optical axis at the centre after scaling.
func PrincipalPointMatrix() math.Mat3 {
	return math.Mat3FromInts([3][3]int{
		{1, 0, 1},
		{0, 1, 1},
		{0, 0, 1},
	})
}

// ScaleMatrix is diag(W/2, H/2, 1).
func ScaleMatrix(width, height int) math.Mat3 {
	return math.Diag3(fixed.Ratio(width, 2), fixed.Ratio(height, 2), fixed.One())
}

// IntrinsicMatrix returns Scale * Translate * Flip * FocalLength.
func IntrinsicMatrix(in Intrinsics) math.Mat3 {
	return ScaleMatrix(in.Width, in.Height).
		Mul(PrincipalPointMatrix()).
		Mul(FlipMatrix()).
		Mul(FocalLengthMatrix(in.FocalLength))
}

// Pipeline composes the per-frame projection matrix.
type Pipeline struct {
	in        Intrinsics
	intrinsic math.Mat3
	shift     uint
	// normalized is 2^-shift * intrinsic lifted to 4x4.
	normalized math.Mat4
}

// NewPipeline computes the intrinsic matrix once for a session.
func NewPipeline(in Intrinsics) (*Pipeline, error) {
	if in.Width <= 0 || in.Height <= 0 || in.Width > MaxViewport || in.Height > MaxViewport {
		return nil, fmt.Errorf("%w: viewport %dx%d", ErrInvalidIntrinsics, in.Width, in.Height)
	}
	if in.FocalLength.Sign() <= 0 {
		return nil, fmt.Errorf("%w: focal length %v", ErrInvalidIntrinsics, in.FocalLength)
	}

	p := &Pipeline{
		in:        in,
		intrinsic: IntrinsicMatrix(in),
		shift:     normalizationShift(in),
	}
	// Normalize before the focal length is applied so no partial product
	// exceeds the gain limit.
	k := fixed.FromRaw(fixed.One().Raw() >> p.shift)
	p.normalized = math.Diag3(k, k, k).
		Mul(ScaleMatrix(in.Width, in.Height)).
		Mul(PrincipalPointMatrix()).
		Mul(FlipMatrix()).
		Mul(FocalLengthMatrix(in.FocalLength)).
		Homogeneous()

	logger.Debug("camera pipeline ready",
		zap.Int("width", in.Width),
		zap.Int("height", in.Height),
		zap.Stringer("focal_length", in.FocalLength),
		zap.Uint("homogeneous_shift", p.shift),
	)
	return p, nil
}

// normalizationShift returns the smallest s with gain/2^s <= MaxIntrinsicGain.
// Scaling all three homogeneous rows by 2^-s leaves ix/iw and iy/iw unchanged.
func normalizationShift(in Intrinsics) uint {
	side := in.Width
	if in.Height > side {
		side = in.Height
	}
	focal := fixed.MaxOf(in.FocalLength, fixed.One())
	gain := int64(side) * int64(focal.Raw()) / 2 // 16.16, no wrap
	limit := int64(MaxIntrinsicGain) << fixed.FracBits

	var s uint
	for gain > limit && s < fixed.FracBits {
		gain >>= 1
		s++
	}
	return s
}

// Intrinsics returns the session parameters.
func (p *Pipeline) Intrinsics() Intrinsics { return p.in }

// Intrinsic returns Scale * Translate * Flip * FocalLength, unnormalized.
// Entries wrap when W/2 * f exceeds the integer range.
func (p *Pipeline) Intrinsic() math.Mat3 { return p.intrinsic }

// Shift returns the homogeneous normalization exponent.
func (p *Pipeline) Shift() uint { return p.shift }

// Matrix returns the camera matrix for this frame:
// 2^-shift * Intrinsic * RotationX(pitch) * RotationY(yaw) * WorldTranslate.
// Row 2 of the result yields the homogeneous w of a world vertex.
func (p *Pipeline) Matrix(s State) math.Mat4 {
	return p.normalized.Mul(s.Extrinsic())
}
