// Package viewport owns the pan/zoom transform applied to a rendered layout.
//
// A [Controller] is the only writer of its [Transform]. Pointer input drives
// a two-state machine (Idle, Dragging); zoom input scales around a focal
// point with the scale clamped per axis. Every change is reported to the
// controller's observer.
package viewport

import (
	"math"
	"strconv"
	"strings"
)

// Point is a position in screen or layout coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Transform is a 2D affine transform.
type Transform struct {
	ScaleX     float64 `json:"scale_x"`
	ScaleY     float64 `json:"scale_y"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
	SkewX      float64 `json:"skew_x"`
	SkewY      float64 `json:"skew_y"`
}

// Identity returns the transform that maps every point to itself.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Apply maps a layout point to screen coordinates.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.ScaleX*p.X + t.SkewX*p.Y + t.TranslateX,
		Y: t.SkewY*p.X + t.ScaleY*p.Y + t.TranslateY,
	}
}

// Invert maps a screen point back to layout coordinates.
// A singular transform returns p unchanged.
func (t Transform) Invert(p Point) Point {
	det := t.ScaleX*t.ScaleY - t.SkewX*t.SkewY
	if det == 0 || math.IsNaN(det) {
		return p
	}
	x, y := p.X-t.TranslateX, p.Y-t.TranslateY
	return Point{
		X: (t.ScaleY*x - t.SkewX*y) / det,
		Y: (t.ScaleX*y - t.SkewY*x) / det,
	}
}

// String formats t as an SVG transform attribute value.
func (t Transform) String() string {
	var b strings.Builder
	b.WriteString("matrix(")
	for i, v := range []float64{t.ScaleX, t.SkewY, t.SkewX, t.ScaleY, t.TranslateX, t.TranslateY} {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	b.WriteByte(')')
	return b.String()
}
