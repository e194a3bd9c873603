// Package camera builds the fixed-point projection matrix that maps world
// coordinates to homogeneous device coordinates.
package camera

import (
	"github.com/Faultbox/fixraster/pkg/fixed"
	"github.com/Faultbox/fixraster/pkg/math"
)

// Command is a single discrete camera adjustment.
type Command int

const (
	CommandNone Command = iota
	MoveForward
	MoveBack
	StrafeLeft
	StrafeRight
	YawLeft
	YawRight
	PitchUp
	PitchDown
)

var commandNames = [...]string{
	CommandNone: "none",
	MoveForward: "move_forward",
	MoveBack:    "move_back",
	StrafeLeft:  "strafe_left",
	StrafeRight: "strafe_right",
	YawLeft:     "yaw_left",
	YawRight:    "yaw_right",
	PitchUp:     "pitch_up",
	PitchDown:   "pitch_down",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// State is the live camera: a position on the ground plane (height is
// fixed at zero) and a facing given by yaw about Y and pitch about X.
type State struct {
	X, Z       fixed.Fixed
	Yaw, Pitch fixed.Fixed
}

// Apply adjusts exactly one field of the state by step.
// Forward is +Z, strafe right is +X. Positive yaw turns the view left and
// positive pitch tilts it up.
func (s *State) Apply(cmd Command, step fixed.Fixed) {
	switch cmd {
	case MoveForward:
		s.Z = s.Z.Add(step)
	case MoveBack:
		s.Z = s.Z.Sub(step)
	case StrafeRight:
		s.X = s.X.Add(step)
	case StrafeLeft:
		s.X = s.X.Sub(step)
	case YawLeft:
		s.Yaw = s.Yaw.Add(step)
	case YawRight:
		s.Yaw = s.Yaw.Sub(step)
	case PitchUp:
		s.Pitch = s.Pitch.Add(step)
	case PitchDown:
		s.Pitch = s.Pitch.Sub(step)
	}
}

// WorldTranslate moves the world so the camera sits at the origin.
func (s State) WorldTranslate() math.Mat4 {
	return math.Translate4(s.X.Neg(), fixed.Zero(), s.Z.Neg())
}

// Extrinsic returns RotationX(pitch) * RotationY(yaw) * WorldTranslate.
func (s State) Extrinsic() math.Mat4 {
	return math.RotateX4(s.Pitch).
		Mul(math.RotateY4(s.Yaw)).
		Mul(s.WorldTranslate())
}
