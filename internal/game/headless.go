package game

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/fixraster/internal/config"
	"github.com/Faultbox/fixraster/internal/engine/camera"
	"github.com/Faultbox/fixraster/internal/engine/debug"
	"github.com/Faultbox/fixraster/internal/engine/framebuffer"
	"github.com/Faultbox/fixraster/internal/engine/mesh"
	"github.com/Faultbox/fixraster/internal/logger"
)

// RunHeadless renders cfg.Capture.Frames frames into memory, applying one
// command slice per frame from script when present, and writes the last
// frame to cfg.Capture.Output.
func RunHeadless(cfg *config.Config, m *mesh.Mesh, script [][]camera.Command) (*framebuffer.Framebuffer, error) {
	session, err := NewSession(cfg, m)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	format, err := debug.ParseFormat(cfg.Capture.Format)
	if err != nil {
		return nil, err
	}

	fb := framebuffer.New(cfg.Graphics.Width, cfg.Graphics.Height)
	frames := max(cfg.Capture.Frames, 1)
	for i := 0; i < frames; i++ {
		if i < len(script) {
			session.Apply(script[i])
		}
		st, err := session.Render(fb)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		logger.Debug("headless frame",
			zap.Int("frame", i),
			zap.Int("triangles", st.Triangles),
			zap.Int("pixels", st.Pixels),
		)
	}

	if dir := filepath.Dir(cfg.Capture.Output); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := debug.SaveImage(cfg.Capture.Output, fb.Image(), format); err != nil {
		return nil, fmt.Errorf("saving %s: %w", cfg.Capture.Output, err)
	}
	logger.Info("headless capture saved",
		zap.String("path", cfg.Capture.Output),
		zap.Int("frames", frames),
	)
	return fb, nil
}
