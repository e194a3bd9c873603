// Package raster fills screen-space triangles with a scanline algorithm.
//
// Vertical naming follows the y-up convention of the classifier: "top" is
// the vertex with the largest y. On a row-down surface that is the lowest
// vertex on screen; the fill itself does not care.
package raster

import (
	"github.com/Faultbox/fixraster/pkg/math"
)

// Kind is the shape class of a triangle.
type Kind int

const (
	// Degenerate triangles cover no area and are skipped.
	Degenerate Kind = iota
	// FlatTop has its horizontal edge at the largest y.
	FlatTop
	// FlatBottom has its horizontal edge at the smallest y.
	FlatBottom
	// NonFlat has no horizontal edge and is split at the middle vertex.
	NonFlat
)

func (k Kind) String() string {
	switch k {
	case Degenerate:
		return "degenerate"
	case FlatTop:
		return "flat_top"
	case FlatBottom:
		return "flat_bottom"
	case NonFlat:
		return "non_flat"
	}
	return "unknown"
}

// Classification holds a triangle's vertices reordered by role.
type Classification struct {
	Kind Kind

	// Flat kinds: Odd is the apex, Left and Right end the horizontal edge
	// with Left.X < Right.X.
	Odd, Left, Right math.Vec2

	// NonFlat: vertices by descending y, and Split, the point on the
	// Top-Bottom edge at Mid.Y.
	Top, Mid, Bottom, Split math.Vec2
}

// Classify sorts and classifies a triangle.
func Classify(a, b, c math.Vec2) Classification {
	if a == b || b == c || a == c {
		return Classification{Kind: Degenerate}
	}
	if a.Y == b.Y && b.Y == c.Y {
		return Classification{Kind: Degenerate}
	}

	v := sortDescending(a, b, c)
	switch {
	case v[0].Y == v[1].Y:
		return Classification{Kind: FlatTop, Odd: v[2], Left: v[0], Right: v[1]}
	case v[1].Y == v[2].Y:
		return Classification{Kind: FlatBottom, Odd: v[0], Left: v[1], Right: v[2]}
	}

	long := newEdge(v[0], v[2])
	return Classification{
		Kind:   NonFlat,
		Top:    v[0],
		Mid:    v[1],
		Bottom: v[2],
		Split:  math.Vec2{X: long.xAt(v[1].Y), Y: v[1].Y},
	}
}

// sortDescending orders by y descending, then x ascending, so equal-y
// vertices come out left to right.
func sortDescending(a, b, c math.Vec2) [3]math.Vec2 {
	v := [3]math.Vec2{a, b, c}
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && above(v[j], v[j-1]); j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
	return v
}

func above(p, q math.Vec2) bool {
	if p.Y != q.Y {
		return p.Y.Greater(q.Y)
	}
	return p.X.Less(q.X)
}

// Decompose splits a NonFlat triangle into a FlatBottom (Top, Mid, Split)
// and a FlatTop (Split, Mid, Bottom). ok is false when Mid lies on the
// Top-Bottom edge and both halves are empty.
func (c Classification) Decompose() (upper, lower Classification, ok bool) {
	if c.Kind != NonFlat || c.Split.X == c.Mid.X {
		return Classification{}, Classification{}, false
	}
	left, right := c.Mid, c.Split
	if c.Split.X.Less(c.Mid.X) {
		left, right = c.Split, c.Mid
	}
	upper = Classification{Kind: FlatBottom, Odd: c.Top, Left: left, Right: right}
	lower = Classification{Kind: FlatTop, Odd: c.Bottom, Left: left, Right: right}
	return upper, lower, true
}
