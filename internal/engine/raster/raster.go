package raster

import (
	"image"

	"github.com/Faultbox/fixraster/pkg/fixed"
	"github.com/Faultbox/fixraster/pkg/math"
)

// Plotter receives the sampled pixels of a fill.
type Plotter interface {
	DrawPoint(x, y int)
}

// SpanPlotter is implemented by plotters that can take a whole row span
// [x0, x1) at once. Fill prefers it over per-pixel calls.
type SpanPlotter interface {
	Plotter
	DrawSpan(y, x0, x1 int)
}

// edge is a triangle edge stored from its smaller-y endpoint, so an edge
// shared by two triangles yields bit-identical intercepts in both.
type edge struct {
	origin math.Vec2
	// inverse slope dx/dy
	step fixed.Fixed
}

func newEdge(a, b math.Vec2) edge {
	if b.Y.Less(a.Y) || (b.Y == a.Y && b.X.Less(a.X)) {
		a, b = b, a
	}
	return edge{
		origin: a,
		step:   b.X.Sub(a.X).DivSat(b.Y.Sub(a.Y)),
	}
}

// xAt returns the edge's x-intercept at row coordinate y.
func (e edge) xAt(y fixed.Fixed) fixed.Fixed {
	return e.origin.X.Add(e.step.Mul(y.Sub(e.origin.Y)))
}

// sample returns the first pixel index whose centre is at or beyond v:
// ceil(v - 0.5).
func sample(v fixed.Fixed) int {
	return v.Sub(fixed.Half()).Ceil().Int()
}

// centre returns the coordinate of the centre of pixel i.
func centre(i int) fixed.Fixed {
	return fixed.FromInt(i).Add(fixed.Half())
}

// Rasterizer fills triangles inside a clip rectangle.
type Rasterizer struct {
	Bounds image.Rectangle
}

// New returns a rasterizer clipped to a width x height surface.
func New(width, height int) *Rasterizer {
	return &Rasterizer{Bounds: image.Rect(0, 0, width, height)}
}

// Fill rasterizes the triangle abc and returns the number of pixels
// emitted. Degenerate triangles emit nothing.
func (r *Rasterizer) Fill(a, b, c math.Vec2, p Plotter) int {
	cl := Classify(a, b, c)
	switch cl.Kind {
	case FlatTop, FlatBottom:
		return r.fillFlat(cl, newEdge(cl.Odd, cl.Left), newEdge(cl.Odd, cl.Right), p)
	case NonFlat:
		upper, lower, ok := cl.Decompose()
		if !ok {
			return 0
		}
		// Both halves walk the full Top-Bottom edge instead of the
		// synthetic Split vertex, keeping the long side identical to the
		// neighbour that shares it.
		long := newEdge(cl.Top, cl.Bottom)
		n := r.fillFlat(upper, r.side(upper.Odd, upper.Left, cl.Split, long), r.side(upper.Odd, upper.Right, cl.Split, long), p)
		n += r.fillFlat(lower, r.side(lower.Odd, lower.Left, cl.Split, long), r.side(lower.Odd, lower.Right, cl.Split, long), p)
		return n
	}
	return 0
}

func (r *Rasterizer) side(odd, end, split math.Vec2, long edge) edge {
	if end == split {
		return long
	}
	return newEdge(odd, end)
}

// fillFlat emits every pixel centre between the apex row and the flat
// edge's row, from the left intercept up to but excluding the right one.
func (r *Rasterizer) fillFlat(cl Classification, left, right edge, p Plotter) int {
	y0, y1 := cl.Odd.Y, cl.Left.Y
	if y1.Less(y0) {
		y0, y1 = y1, y0
	}

	rowStart := max(sample(y0), r.Bounds.Min.Y)
	rowEnd := min(sample(y1), r.Bounds.Max.Y)

	spans, _ := p.(SpanPlotter)
	n := 0
	for row := rowStart; row < rowEnd; row++ {
		yc := centre(row)
		x0 := max(sample(left.xAt(yc)), r.Bounds.Min.X)
		x1 := min(sample(right.xAt(yc)), r.Bounds.Max.X)
		if x1 <= x0 {
			continue
		}
		n += x1 - x0
		if spans != nil {
			spans.DrawSpan(row, x0, x1)
			continue
		}
		for x := x0; x < x1; x++ {
			p.DrawPoint(x, row)
		}
	}
	return n
}
