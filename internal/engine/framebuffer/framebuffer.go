// Package framebuffer provides an in-memory pixel surface for offscreen rendering.
package framebuffer

import (
	"image"
	"image/color"
)

// Framebuffer is a fixed-size RGBA surface with a current draw colour.
// Drawing outside the surface is silently dropped.
type Framebuffer struct {
	img    *image.RGBA
	color  color.RGBA
	frames int
}

// New creates a framebuffer with the specified dimensions.
func New(width, height int) *Framebuffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Framebuffer{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		color: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (int, int) {
	b := fb.img.Bounds()
	return b.Dx(), b.Dy()
}

// Bounds returns the drawable rectangle.
func (fb *Framebuffer) Bounds() image.Rectangle { return fb.img.Bounds() }

// Image returns the backing image. It is overwritten by later draws.
func (fb *Framebuffer) Image() *image.RGBA { return fb.img }

// At returns the pixel colour at (x, y).
func (fb *Framebuffer) At(x, y int) color.RGBA { return fb.img.RGBAAt(x, y) }

// Frames returns the number of presented frames.
func (fb *Framebuffer) Frames() int { return fb.frames }

// Clear fills the whole surface with c.
func (fb *Framebuffer) Clear(c color.RGBA) {
	pix := fb.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// SetColor sets the colour used by the draw calls.
func (fb *Framebuffer) SetColor(c color.RGBA) { fb.color = c }

// DrawPoint sets one pixel.
func (fb *Framebuffer) DrawPoint(x, y int) {
	if !image.Pt(x, y).In(fb.img.Rect) {
		return
	}
	fb.img.SetRGBA(x, y, fb.color)
}

// DrawSpan sets the pixels [x0, x1) of row y.
func (fb *Framebuffer) DrawSpan(y, x0, x1 int) {
	r := fb.img.Rect
	if y < r.Min.Y || y >= r.Max.Y {
		return
	}
	x0, x1 = max(x0, r.Min.X), min(x1, r.Max.X)
	if x1 <= x0 {
		return
	}
	row := fb.img.Pix[fb.img.PixOffset(x0, y):fb.img.PixOffset(x1, y)]
	c := fb.color
	for i := 0; i < len(row); i += 4 {
		row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
	}
}

// DrawLine draws a line including both endpoints with Bresenham's algorithm.
// Lines entirely on one side of the surface are rejected without walking.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int) {
	r := fb.img.Rect
	if (x0 < r.Min.X && x1 < r.Min.X) || (x0 >= r.Max.X && x1 >= r.Max.X) ||
		(y0 < r.Min.Y && y1 < r.Min.Y) || (y0 >= r.Max.Y && y1 >= r.Max.Y) {
		return
	}

	dx, sx := abs(x1-x0), sign(x1-x0)
	dy, sy := -abs(y1-y0), sign(y1-y0)
	e := dx + dy
	for {
		fb.DrawPoint(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Present marks the end of a frame.
func (fb *Framebuffer) Present() error {
	fb.frames++
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
