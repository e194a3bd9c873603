// Package input drains SDL2 events into camera commands.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/fixraster/internal/engine/camera"
)

// Bindings maps key scancodes to camera commands.
var Bindings = map[sdl.Scancode]camera.Command{
	sdl.SCANCODE_W:     camera.MoveForward,
	sdl.SCANCODE_S:     camera.MoveBack,
	sdl.SCANCODE_A:     camera.StrafeLeft,
	sdl.SCANCODE_D:     camera.StrafeRight,
	sdl.SCANCODE_LEFT:  camera.YawLeft,
	sdl.SCANCODE_RIGHT: camera.YawRight,
	sdl.SCANCODE_UP:    camera.PitchUp,
	sdl.SCANCODE_DOWN:  camera.PitchDown,
}

// ScreenshotKey requests a capture of the next presented frame.
const ScreenshotKey = sdl.SCANCODE_F12

// Frame is the input gathered for one frame.
type Frame struct {
	Commands   []camera.Command
	Quit       bool
	Screenshot bool
}

// Input handles all input processing.
type Input struct {
	frame Frame
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		frame: Frame{Commands: make([]camera.Command, 0, 16)},
	}
}

// Poll drains every pending SDL event without blocking. The returned
// command slice is reused by the next call.
func (i *Input) Poll() Frame {
	i.reset()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.Handle(event)
	}
	return i.frame
}

func (i *Input) reset() {
	i.frame = Frame{Commands: i.frame.Commands[:0]}
}

// Handle folds one event into the current frame.
func (i *Input) Handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.frame.Quit = true

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return
		}
		switch sc := e.Keysym.Scancode; sc {
		case sdl.SCANCODE_ESCAPE:
			i.frame.Quit = true
		case ScreenshotKey:
			if e.Repeat == 0 {
				i.frame.Screenshot = true
			}
		default:
			if cmd, ok := Bindings[sc]; ok {
				i.frame.Commands = append(i.frame.Commands, cmd)
			}
		}
	}
}
