// Package game implements the frame loop.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/fixraster/internal/config"
	"github.com/Faultbox/fixraster/internal/engine/debug"
	"github.com/Faultbox/fixraster/internal/engine/framebuffer"
	"github.com/Faultbox/fixraster/internal/engine/input"
	"github.com/Faultbox/fixraster/internal/engine/mesh"
	"github.com/Faultbox/fixraster/internal/engine/renderer"
	"github.com/Faultbox/fixraster/internal/engine/window"
	"github.com/Faultbox/fixraster/internal/logger"
)

// Game is the interactive instance: an SDL window driven by a fixed-rate loop.
type Game struct {
	config   *config.Config
	session  *Session
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	shots    *debug.ScreenshotCapture
}

// New opens the window and prepares the session for m.
func New(cfg *config.Config, m *mesh.Mesh) (*Game, error) {
	logger.Info("initializing renderer",
		zap.String("title", cfg.Graphics.Title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	session, err := NewSession(cfg, m)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	format, err := debug.ParseFormat(cfg.Capture.Format)
	if err != nil {
		return nil, err
	}

	g := &Game{
		config:  cfg,
		session: session,
		input:   input.New(),
		shots:   debug.NewScreenshotCapture(cfg.Capture.Dir, "fixraster", format),
	}

	g.window, err = window.New(window.Config{
		Title:      cfg.Graphics.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	g.renderer, err = renderer.New(g.window.SDL(), renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return g, nil
}

// Run drives the loop until quit or Escape. Each frame drains input,
// updates the camera, renders all passes, presents, then sleeps a fixed
// frame duration without correcting for drift.
func (g *Game) Run() error {
	g.running = true

	var frameDuration time.Duration
	if g.config.Graphics.FPSLimit > 0 {
		frameDuration = time.Second / time.Duration(g.config.Graphics.FPSLimit)
	}
	fps := debug.NewFrameCounter(time.Second, time.Now())

	logger.Info("starting frame loop", zap.Duration("frame_duration", frameDuration))

	for g.running {
		// 1. Input
		in := g.input.Poll()
		if in.Quit {
			g.running = false
			break
		}

		// 2. Camera
		g.session.Apply(in.Commands)

		// 3. Matrix, passes and present
		st, err := g.session.Render(g.renderer)
		if err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if in.Screenshot {
			g.screenshot()
		}

		if rate, ok := fps.Tick(time.Now()); ok {
			g.window.SetTitle(FrameTitle(g.config.Graphics.Title, rate))
			logger.Debug("fps",
				zap.Float64("fps", rate),
				zap.Int("triangles", st.Triangles),
				zap.Int("pixels", st.Pixels),
			)
		}

		// 4. Fixed sleep
		if frameDuration > 0 {
			time.Sleep(frameDuration)
		}
	}

	logger.Info("frame loop stopped")
	return nil
}

// screenshot re-renders the current frame offscreen and saves it. The
// rasterizer is deterministic, so the capture matches the window.
func (g *Game) screenshot() {
	fb := framebuffer.New(g.config.Graphics.Width, g.config.Graphics.Height)
	if _, err := g.session.Render(fb); err != nil {
		logger.Warn("screenshot render failed", zap.Error(err))
		return
	}
	path, err := g.shots.CaptureFromImage(fb.Image())
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// FrameTitle is the window title shown while the loop runs.
func FrameTitle(title string, fps float64) string {
	return fmt.Sprintf("%s - %.0f fps", title, fps)
}

// Close cleans up resources.
func (g *Game) Close() {
	logger.Info("closing")

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
