package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/fixraster/internal/config"
	"github.com/Faultbox/fixraster/internal/engine/camera"
	"github.com/Faultbox/fixraster/internal/engine/mesh"
	"github.com/Faultbox/fixraster/internal/engine/scene"
	"github.com/Faultbox/fixraster/internal/logger"
	"github.com/Faultbox/fixraster/pkg/fixed"
	"github.com/Faultbox/fixraster/pkg/math"
)

// Session is the render state of one run: the session-constant pipeline
// and scene, and the camera state owned by the frame loop.
type Session struct {
	pipeline *camera.Pipeline
	scene    *scene.Scene
	state    camera.State
	step     fixed.Fixed
}

// LoadMesh loads the configured OBJ file, or the built-in cube when none is
// set. A load failure is returned to the caller, which treats it as fatal.
func LoadMesh(cfg *config.Config) (*mesh.Mesh, error) {
	palette := cfg.Render.PaletteRGBA()
	if cfg.Scene.Mesh == "" {
		logger.Info("no mesh configured, using built-in cube")
		return mesh.Cube(math.V3(0, 0, 5), fixed.One(), palette), nil
	}

	m, err := mesh.Load(cfg.Scene.Mesh, palette)
	if err != nil {
		return nil, fmt.Errorf("loading mesh: %w", err)
	}
	logger.Info("mesh loaded",
		zap.String("path", cfg.Scene.Mesh),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("objects", len(m.Objects)),
		zap.Int("triangles", len(m.Triangles)),
	)
	return m, nil
}

// NewSession builds the camera pipeline and scene for m.
func NewSession(cfg *config.Config, m *mesh.Mesh) (*Session, error) {
	pipeline, err := camera.NewPipeline(camera.Intrinsics{
		Width:       cfg.Graphics.Width,
		Height:      cfg.Graphics.Height,
		FocalLength: fixed.FromFloat64(cfg.Camera.FocalLength),
	})
	if err != nil {
		return nil, err
	}

	sc := scene.New(scene.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Sentinel:   cfg.Projection.Sentinel,
		Fill:       cfg.Render.Fill,
		Wireframe:  cfg.Render.Wireframe,
		Points:     cfg.Render.Points,
		Background: cfg.Render.Background.RGBA(),
		WireColor:  cfg.Render.WireColor.RGBA(),
		PointColor: cfg.Render.PointColor.RGBA(),
	}, m)

	return &Session{
		pipeline: pipeline,
		scene:    sc,
		state: camera.State{
			X:     fixed.FromFloat64(cfg.Camera.X),
			Z:     fixed.FromFloat64(cfg.Camera.Z),
			Yaw:   fixed.FromFloat64(cfg.Camera.Yaw),
			Pitch: fixed.FromFloat64(cfg.Camera.Pitch),
		},
		step: fixed.FromFloat64(cfg.Camera.MoveStep),
	}, nil
}

// State returns the current camera state.
func (s *Session) State() camera.State { return s.state }

// Apply mutates the camera state with each command in order.
func (s *Session) Apply(cmds []camera.Command) {
	for _, cmd := range cmds {
		s.state.Apply(cmd, s.step)
	}
	if len(cmds) > 0 {
		logger.Debug("camera moved",
			zap.Stringer("x", s.state.X),
			zap.Stringer("z", s.state.Z),
			zap.Stringer("yaw", s.state.Yaw),
			zap.Stringer("pitch", s.state.Pitch),
		)
	}
}

// Render recomputes the camera matrix and draws and presents one frame.
func (s *Session) Render(sink scene.Sink) (scene.Stats, error) {
	return s.scene.Render(sink, s.pipeline.Matrix(s.state))
}
