// Package renderer presents frames through the SDL2 2D renderer.
package renderer

import (
	"fmt"
	"image/color"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/fixraster/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	VSync  bool
}

// Renderer is a pixel sink backed by an sdl.Renderer. The logical size is
// fixed to Width x Height; SDL scales it to the window.
type Renderer struct {
	config Config
	sdl    *sdl.Renderer

	// draw calls rejected by SDL since the last Present
	dropped int
}

// New creates a renderer for win.
func New(win *sdl.Window, cfg Config) (*Renderer, error) {
	flags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}

	r, err := sdl.CreateRenderer(win, -1, flags)
	if err != nil {
		logger.Warn("accelerated renderer unavailable, using software", zap.Error(err))
		r, err = sdl.CreateRenderer(win, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
		}
	}

	if err := r.SetLogicalSize(int32(cfg.Width), int32(cfg.Height)); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("setting logical size: %w", err)
	}

	if info, err := r.GetInfo(); err == nil {
		logger.Info("renderer initialized",
			zap.String("name", info.Name),
			zap.Int("width", cfg.Width),
			zap.Int("height", cfg.Height),
			zap.Bool("vsync", cfg.VSync),
		)
	}

	return &Renderer{config: cfg, sdl: r}, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.sdl != nil {
		r.sdl.Destroy()
	}
}

// Clear fills the surface with c.
func (r *Renderer) Clear(c color.RGBA) {
	r.SetColor(c)
	r.note(r.sdl.Clear())
}

// SetColor sets the draw colour.
func (r *Renderer) SetColor(c color.RGBA) {
	r.note(r.sdl.SetDrawColor(c.R, c.G, c.B, c.A))
}

// DrawPoint draws one pixel.
func (r *Renderer) DrawPoint(x, y int) {
	r.note(r.sdl.DrawPoint(int32(x), int32(y)))
}

// DrawLine draws a line including both endpoints.
func (r *Renderer) DrawLine(x0, y0, x1, y1 int) {
	r.note(r.sdl.DrawLine(int32(x0), int32(y0), int32(x1), int32(y1)))
}

// DrawSpan draws pixels [x0, x1) of row y as one line.
func (r *Renderer) DrawSpan(y, x0, x1 int) {
	if x1 <= x0 {
		return
	}
	r.note(r.sdl.DrawLine(int32(x0), int32(y), int32(x1-1), int32(y)))
}

// Present shows the frame. Rejected draw calls are best effort and only
// logged.
func (r *Renderer) Present() error {
	if r.dropped > 0 {
		logger.Debug("draw calls rejected", zap.Int("count", r.dropped))
		r.dropped = 0
	}
	r.sdl.Present()
	return nil
}

func (r *Renderer) note(err error) {
	if err != nil {
		r.dropped++
	}
}
