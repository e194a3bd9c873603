// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/Faultbox/fixraster/internal/engine/camera"
)

// Config holds all renderer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Camera     CameraConfig     `yaml:"camera"`
	Projection ProjectionConfig `yaml:"projection"`
	Render     RenderConfig     `yaml:"render"`
	Scene      SceneConfig      `yaml:"scene"`
	Capture    CaptureConfig    `yaml:"capture"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"` // frame sleep target; 0 disables the sleep
}

// CameraConfig holds the initial camera state and intrinsics. Values are
// converted to fixed point when the session starts.
type CameraConfig struct {
	FocalLength float64 `yaml:"focal_length"`
	X           float64 `yaml:"x"`
	Z           float64 `yaml:"z"`
	Yaw         float64 `yaml:"yaw"`
	Pitch       float64 `yaml:"pitch"`
	MoveStep    float64 `yaml:"move_step"` // per key press, units or radians
}

// ProjectionConfig holds the perspective divide policy.
type ProjectionConfig struct {
	Sentinel int `yaml:"sentinel"` // device coordinate bound for focal-plane vertices
}

// RenderConfig selects passes and colours.
type RenderConfig struct {
	Fill       bool    `yaml:"fill"`
	Wireframe  bool    `yaml:"wireframe"`
	Points     bool    `yaml:"points"`
	Background Color   `yaml:"background"`
	WireColor  Color   `yaml:"wire_color"`
	PointColor Color   `yaml:"point_color"`
	Palette    []Color `yaml:"palette"` // triangle fill colours; empty uses the built-in palette
}

// SceneConfig selects the mesh.
type SceneConfig struct {
	Mesh string `yaml:"mesh"` // OBJ path; empty renders the built-in cube
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Output string `yaml:"output"` // headless screenshot path; set to render without a window
	Frames int    `yaml:"frames"` // frames rendered before a headless capture
	Dir    string `yaml:"dir"`    // directory for F12 screenshots
	Format string `yaml:"format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MaxSentinel is the largest accepted projection sentinel.
const MaxSentinel = 16000

// Headless reports whether the session renders offscreen only.
func (c *Config) Headless() bool { return c.Capture.Output != "" }

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:      "fixraster",
			Width:      640,
			Height:     480,
			Fullscreen: false,
			VSync:      false,
			FPSLimit:   60,
		},
		Camera: CameraConfig{
			FocalLength: 1,
			MoveStep:    0.1,
		},
		Projection: ProjectionConfig{
			Sentinel: 10000,
		},
		Render: RenderConfig{
			Fill:       true,
			Wireframe:  true,
			Points:     true,
			Background: Color{A: 0xff},
			WireColor:  Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			PointColor: Color{R: 0xff, G: 0x30, B: 0x30, A: 0xff},
		},
		Capture: CaptureConfig{
			Frames: 1,
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	w, h := c.Graphics.Width, c.Graphics.Height
	if w <= 0 || h <= 0 || w > camera.MaxViewport || h > camera.MaxViewport {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d, each side must be in (0, %d]", w, h, camera.MaxViewport))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("graphics: negative fps_limit %d", c.Graphics.FPSLimit))
	}
	if c.Camera.FocalLength <= 0 {
		errs = append(errs, fmt.Errorf("camera: focal_length must be positive, got %v", c.Camera.FocalLength))
	}
	if c.Camera.MoveStep <= 0 {
		errs = append(errs, fmt.Errorf("camera: move_step must be positive, got %v", c.Camera.MoveStep))
	}
	// Edge deltas span twice the sentinel and must stay inside the 16.16 range.
	if c.Projection.Sentinel <= 0 || c.Projection.Sentinel > MaxSentinel {
		errs = append(errs, fmt.Errorf("projection: sentinel %d outside (0, %d]", c.Projection.Sentinel, MaxSentinel))
	} else if side := max(w, h); c.Projection.Sentinel <= side {
		// Focal-plane vertices must land off-surface.
		errs = append(errs, fmt.Errorf("projection: sentinel %d must exceed the viewport side %d", c.Projection.Sentinel, side))
	}
	switch strings.ToLower(c.Capture.Format) {
	case "png", "bmp":
	default:
		errs = append(errs, fmt.Errorf("capture: unknown format %q", c.Capture.Format))
	}
	if c.Headless() && c.Capture.Frames < 1 {
		errs = append(errs, fmt.Errorf("capture: frames must be at least 1, got %d", c.Capture.Frames))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// PaletteRGBA returns the configured fill palette, or nil for the default.
func (r RenderConfig) PaletteRGBA() []color.RGBA {
	if len(r.Palette) == 0 {
		return nil
	}
	out := make([]color.RGBA, len(r.Palette))
	for i, c := range r.Palette {
		out[i] = c.RGBA()
	}
	return out
}
