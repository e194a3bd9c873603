// Package mesh holds the read-only scene geometry: a shared vertex array and
// an object > group > polygon hierarchy of vertex indices.
package mesh

import (
	"errors"
	"fmt"
	"image/color"
	gomath "math"

	"github.com/Faultbox/fixraster/pkg/fixed"
	"github.com/Faultbox/fixraster/pkg/formats"
	"github.com/Faultbox/fixraster/pkg/math"
)

// ErrCoordinateRange is returned when a source coordinate does not fit the
// 16.16 range.
var ErrCoordinateRange = errors.New("vertex coordinate outside fixed-point range")

// Polygon is an ordered list of indices into Mesh.Vertices. It may hold
// fewer than three indices; such polygons produce no triangles.
type Polygon []int

// Group is a named list of polygons.
type Group struct {
	Name     string
	Polygons []Polygon
}

// Object is a named list of groups.
type Object struct {
	Name   string
	Groups []Group
}

// Triangle is one fan triangle of a polygon with its flat fill colour.
type Triangle struct {
	Indices [3]int
	Color   color.RGBA
}

// Bounds is the axis-aligned box around all vertices.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Mesh is the geometry of one render session. It is not modified after
// construction.
type Mesh struct {
	Vertices  []math.Vec3
	Objects   []Object
	Triangles []Triangle
	Bounds    Bounds
}

// DefaultPalette cycles through the triangles of a mesh.
var DefaultPalette = []color.RGBA{
	{R: 0xe6, G: 0x39, B: 0x46, A: 0xff},
	{R: 0xf4, G: 0xa2, B: 0x61, A: 0xff},
	{R: 0xe9, G: 0xc4, B: 0x6a, A: 0xff},
	{R: 0x2a, G: 0x9d, B: 0x8f, A: 0xff},
	{R: 0x45, G: 0x7b, B: 0x9d, A: 0xff},
	{R: 0x8e, G: 0x6c, B: 0xc4, A: 0xff},
}

// New builds a mesh, fanning every polygon into triangles and assigning each
// triangle a palette colour in order. Triangles that reference a vertex
// outside the array are dropped.
func New(vertices []math.Vec3, objects []Object, palette []color.RGBA) *Mesh {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	m := &Mesh{Vertices: vertices, Objects: objects}
	m.Bounds = computeBounds(vertices)

	m.EachPolygon(func(p Polygon) {
		for _, tri := range Fan(p) {
			if !m.valid(tri[0]) || !m.valid(tri[1]) || !m.valid(tri[2]) {
				continue
			}
			m.Triangles = append(m.Triangles, Triangle{
				Indices: tri,
				Color:   palette[len(m.Triangles)%len(palette)],
			})
		}
	})
	return m
}

func (m *Mesh) valid(i int) bool { return i >= 0 && i < len(m.Vertices) }

// EachPolygon calls fn for every polygon in object, group, polygon order.
func (m *Mesh) EachPolygon(fn func(Polygon)) {
	for _, o := range m.Objects {
		for _, g := range o.Groups {
			for _, p := range g.Polygons {
				fn(p)
			}
		}
	}
}

// PolygonCount returns the number of polygons in the hierarchy.
func (m *Mesh) PolygonCount() int {
	n := 0
	m.EachPolygon(func(Polygon) { n++ })
	return n
}

// Fan splits a polygon into triangles (p0, pi, pi+1).
func Fan(p Polygon) [][3]int {
	if len(p) < 3 {
		return nil
	}
	tris := make([][3]int, 0, len(p)-2)
	for i := 1; i+1 < len(p); i++ {
		tris = append(tris, [3]int{p[0], p[i], p[i+1]})
	}
	return tris
}

func computeBounds(vertices []math.Vec3) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		b.Min = math.Vec3{X: fixed.MinOf(b.Min.X, v.X), Y: fixed.MinOf(b.Min.Y, v.Y), Z: fixed.MinOf(b.Min.Z, v.Z)}
		b.Max = math.Vec3{X: fixed.MaxOf(b.Max.X, v.X), Y: fixed.MaxOf(b.Max.Y, v.Y), Z: fixed.MaxOf(b.Max.Z, v.Z)}
	}
	return b
}

// maxCoordinate is the largest magnitude accepted at ingestion.
const maxCoordinate = 32767

// FromOBJ converts parsed OBJ geometry, converting coordinates to fixed point.
func FromOBJ(obj *formats.OBJ, palette []color.RGBA) (*Mesh, error) {
	vertices := make([]math.Vec3, len(obj.Vertices))
	for i, v := range obj.Vertices {
		for _, c := range v {
			if gomath.IsNaN(float64(c)) || gomath.Abs(float64(c)) > maxCoordinate {
				return nil, fmt.Errorf("%w: vertex %d = %v", ErrCoordinateRange, i, v)
			}
		}
		vertices[i] = math.Vec3{
			X: fixed.FromFloat32(v[0]),
			Y: fixed.FromFloat32(v[1]),
			Z: fixed.FromFloat32(v[2]),
		}
	}

	objects := make([]Object, len(obj.Objects))
	for i, o := range obj.Objects {
		objects[i].Name = o.Name
		objects[i].Groups = make([]Group, len(o.Groups))
		for j, g := range o.Groups {
			objects[i].Groups[j].Name = g.Name
			polys := make([]Polygon, len(g.Faces))
			for k, f := range g.Faces {
				polys[k] = Polygon(f.Indices)
			}
			objects[i].Groups[j].Polygons = polys
		}
	}
	return New(vertices, objects, palette), nil
}

// Load reads an OBJ file into a mesh.
func Load(path string, palette []color.RGBA) (*Mesh, error) {
	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, err
	}
	m, err := FromOBJ(obj, palette)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}
	return m, nil
}
