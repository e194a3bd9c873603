// Package scene renders a mesh through the camera matrix onto a pixel sink.
// Each frame runs a fill pass, a wireframe pass and a vertex-point pass.
package scene

import (
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/fixraster/internal/engine/mesh"
	"github.com/Faultbox/fixraster/internal/engine/projection"
	"github.com/Faultbox/fixraster/internal/engine/raster"
	"github.com/Faultbox/fixraster/internal/logger"
	"github.com/Faultbox/fixraster/pkg/math"
)

// Sink is a fixed-size surface addressed in device pixels. Draw calls use
// the colour from the last SetColor and drop off-surface pixels.
type Sink interface {
	Clear(c color.RGBA)
	SetColor(c color.RGBA)
	DrawPoint(x, y int)
	DrawLine(x0, y0, x1, y1 int)
	Present() error
}

// Config contains scene configuration options.
type Config struct {
	Width  int
	Height int

	// Sentinel bounds projected coordinates; see projection.New.
	Sentinel int

	Fill      bool
	Wireframe bool
	Points    bool

	Background color.RGBA
	WireColor  color.RGBA
	PointColor color.RGBA
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:      640,
		Height:     480,
		Sentinel:   projection.DefaultSentinel,
		Fill:       true,
		Wireframe:  true,
		Points:     true,
		Background: color.RGBA{A: 0xff},
		WireColor:  color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		PointColor: color.RGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xff},
	}
}

// Stats counts the work done by one Render call.
type Stats struct {
	Triangles int
	Pixels    int
	Lines     int
	Points    int
}

// Scene holds the per-session render state. The mesh is never modified.
type Scene struct {
	config    Config
	mesh      *mesh.Mesh
	projector projection.Projector
	raster    *raster.Rasterizer

	// projected vertices, rebuilt every frame
	screen []math.Vec2
}

// New creates a scene for m.
func New(cfg Config, m *mesh.Mesh) *Scene {
	s := &Scene{
		config:    cfg,
		mesh:      m,
		projector: projection.New(cfg.Sentinel),
		raster:    raster.New(cfg.Width, cfg.Height),
		screen:    make([]math.Vec2, 0, len(m.Vertices)),
	}
	logger.Debug("scene created",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("polygons", m.PolygonCount()),
		zap.Int("triangles", len(m.Triangles)),
		zap.Stringer("sentinel", s.projector.Sentinel),
	)
	return s
}

// Config returns the scene configuration.
func (s *Scene) Config() Config { return s.config }

// Mesh returns the rendered mesh.
func (s *Scene) Mesh() *mesh.Mesh { return s.mesh }

// Render draws one frame with the composed camera matrix and presents it.
func (s *Scene) Render(sink Sink, camera math.Mat4) (Stats, error) {
	var st Stats
	sink.Clear(s.config.Background)

	s.screen = s.projector.ProjectAll(camera, s.mesh.Vertices, s.screen)

	if s.config.Fill {
		s.fillPass(sink, &st)
	}
	if s.config.Wireframe {
		s.wireframePass(sink, &st)
	}
	if s.config.Points {
		s.pointPass(sink, &st)
	}

	if err := sink.Present(); err != nil {
		return st, fmt.Errorf("presenting frame: %w", err)
	}
	return st, nil
}

func (s *Scene) fillPass(sink Sink, st *Stats) {
	for _, tri := range s.mesh.Triangles {
		sink.SetColor(tri.Color)
		i := tri.Indices
		st.Pixels += s.raster.Fill(s.screen[i[0]], s.screen[i[1]], s.screen[i[2]], sink)
		st.Triangles++
	}
}

// wireframePass outlines every polygon as a closed loop. Edges that touch a
// missing vertex are skipped.
func (s *Scene) wireframePass(sink Sink, st *Stats) {
	sink.SetColor(s.config.WireColor)
	s.mesh.EachPolygon(func(p mesh.Polygon) {
		n := len(p)
		if n < 2 {
			return
		}
		edges := n
		if n == 2 {
			edges = 1
		}
		for k := 0; k < edges; k++ {
			a, b := p[k], p[(k+1)%n]
			if !s.valid(a) || !s.valid(b) {
				continue
			}
			x0, y0 := s.screen[a].Ints()
			x1, y1 := s.screen[b].Ints()
			sink.DrawLine(x0, y0, x1, y1)
			st.Lines++
		}
	})
}

func (s *Scene) pointPass(sink Sink, st *Stats) {
	sink.SetColor(s.config.PointColor)
	for _, v := range s.screen {
		sink.DrawPoint(v.Ints())
		st.Points++
	}
}

func (s *Scene) valid(i int) bool { return i >= 0 && i < len(s.screen) }
