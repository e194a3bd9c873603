package mesh

import (
	"image/color"

	"github.com/Faultbox/fixraster/pkg/fixed"
	"github.com/Faultbox/fixraster/pkg/math"
)

// Cube returns an axis-aligned cube with the given half extent centred at c.
// Each face is one quad polygon in its own group.
func Cube(c math.Vec3, half fixed.Fixed, palette []color.RGBA) *Mesh {
	vertices := make([]math.Vec3, 0, 8)
	for i := 0; i < 8; i++ {
		d := math.Vec3{X: half.Neg(), Y: half.Neg(), Z: half.Neg()}
		if i&1 != 0 {
			d.X = half
		}
		if i&2 != 0 {
			d.Y = half
		}
		if i&4 != 0 {
			d.Z = half
		}
		vertices = append(vertices, c.Add(d))
	}

	faces := []struct {
		name string
		poly Polygon
	}{
		{"front", Polygon{0, 1, 3, 2}},
		{"back", Polygon{4, 6, 7, 5}},
		{"left", Polygon{0, 2, 6, 4}},
		{"right", Polygon{1, 5, 7, 3}},
		{"bottom", Polygon{0, 4, 5, 1}},
		{"top", Polygon{2, 3, 7, 6}},
	}
	groups := make([]Group, len(faces))
	for i, f := range faces {
		groups[i] = Group{Name: f.name, Polygons: []Polygon{f.poly}}
	}
	return New(vertices, []Object{{Name: "cube", Groups: groups}}, palette)
}

// SingleTriangle returns a one-polygon mesh over three vertices.
func SingleTriangle(a, b, c math.Vec3, col color.RGBA) *Mesh {
	return New(
		[]math.Vec3{a, b, c},
		[]Object{{Name: "triangle", Groups: []Group{{Polygons: []Polygon{{0, 1, 2}}}}}},
		[]color.RGBA{col},
	)
}
