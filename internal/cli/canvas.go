package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/atomtree/pkg/core/layout"
	"github.com/matzehuels/atomtree/pkg/core/viewport"
	"github.com/matzehuels/atomtree/pkg/render/scene"
)

// Size of one terminal cell in layout units.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// cubicSamples is the number of points sampled on each cubic segment.
const cubicSamples = 12

// ink selects the style of a canvas cell.
type ink byte

const (
	inkNone ink = iota
	inkLink
	inkNode
	inkRoot
	inkCollapsed
	inkHover
)

var inkStyles = map[ink]lipgloss.Style{
	inkLink:      StyleDim,
	inkNode:      styleNode,
	inkRoot:      styleRootNode,
	inkCollapsed: styleMarker,
	inkHover:     StyleTitle.Reverse(true),
}

// canvas is a grid of terminal cells a scene is rasterized onto.
// A zero rune marks the trailing half of a wide character.
type canvas struct {
	cols, rows int
	cells      []rune
	inks       []ink
}

func newCanvas(cols, rows int) *canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	c := &canvas{cols: cols, rows: rows, cells: make([]rune, cols*rows), inks: make([]ink, cols*rows)}
	for i := range c.cells {
		c.cells[i] = ' '
	}
	return c
}

// cellOf maps a screen point to its cell.
func cellOf(p viewport.Point) (col, row int) {
	return int(math.Floor(p.X / cellWidth)), int(math.Floor(p.Y / cellHeight))
}

// pointOf returns the screen point at the center of a cell.
func pointOf(col, row int) viewport.Point {
	return viewport.Point{X: (float64(col) + 0.5) * cellWidth, Y: (float64(row) + 0.5) * cellHeight}
}

func (c *canvas) set(col, row int, r rune, k ink) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	i := row*c.cols + col
	c.cells[i], c.inks[i] = r, k
}

func (c *canvas) at(col, row int) (rune, ink) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return ' ', inkNone
	}
	i := row*c.cols + col
	return c.cells[i], c.inks[i]
}

// text writes s starting at (col, row), clipping at the edges.
func (c *canvas) text(col, row int, s string, k ink) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.set(col, row, r, k)
		if w == 2 {
			c.set(col+1, row, 0, k)
		}
		col += w
	}
}

// line draws a straight run of cells between two cells.
func (c *canvas) line(c0, r0, c1, r1 int) {
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	glyph := lineGlyph(c1-c0, r1-r0)
	e := dc + dr
	for {
		if _, k := c.at(c0, r0); k == inkNone || k == inkLink {
			c.set(c0, r0, glyph, inkLink)
		}
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// lineGlyph picks a box-drawing character for a direction, in cells.
// Cells are twice as tall as they are wide.
func lineGlyph(dc, dr int) rune {
	x, y := math.Abs(float64(dc)), 2*math.Abs(float64(dr))
	switch {
	case y == 0 || x > 2*y:
		return '─'
	case x == 0 || y > 2*x:
		return '│'
	case (dc > 0) == (dr > 0):
		return '╲'
	default:
		return '╱'
	}
}

// draw rasterizes sc as seen through the viewport transform t.
// Links are drawn first so labels stay readable where they cross.
func (c *canvas) draw(sc *scene.Scene, t viewport.Transform, hover string) {
	if sc.Empty() {
		return
	}
	off := sc.Offset()
	project := func(p layout.Point) (int, int) {
		return cellOf(t.Apply(viewport.Point{X: p.X + off.X, Y: p.Y + off.Y}))
	}

	for _, l := range sc.Links {
		for _, poly := range flatten(l.D) {
			for i := 1; i < len(poly); i++ {
				c0, r0 := project(poly[i-1])
				c1, r1 := project(poly[i])
				c.line(c0, r0, c1, r1)
			}
		}
	}

	for i, s := range sc.Shapes {
		col, row := project(layout.Point{X: s.X, Y: s.Y})
		k := inkNode
		switch {
		case i == 0:
			k = inkRoot
		case s.Collapsed:
			k = inkCollapsed
		}
		if hover != "" && string(s.Path) == hover {
			k = inkHover
		}

		label := shapeLabel(s)
		if s.Kind == scene.Rect {
			c.text(col-runewidth.StringWidth(label)/2, row, label, k)
			continue
		}
		c.set(col, row, '●', k)
		c.text(col+2, row, label, k)
	}
}

// shapeLabel is the text drawn for a shape.
func shapeLabel(s scene.Shape) string {
	label := s.Label
	if s.Cycle {
		label += " ↻"
	}
	if s.Collapsed {
		label += " +"
	}
	if s.Kind == scene.Rect {
		label = "[" + label + "]"
	}
	return label
}

// String renders the canvas, one styled run per ink change.
func (c *canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		cur := inkNone
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if st, ok := inkStyles[cur]; ok {
				b.WriteString(st.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for col := 0; col < c.cols; col++ {
			r, k := c.at(col, row)
			if r == 0 {
				continue
			}
			if k != cur {
				flush()
				cur = k
			}
			run.WriteRune(r)
		}
		flush()
	}
	return b.String()
}

// flatten turns a path into polylines. Cubics are sampled at fixed steps
// and arcs at roughly one point per cell of arc length.
func flatten(p scene.Path) [][]layout.Point {
	var (
		out  [][]layout.Point
		poly []layout.Point
	)
	for _, seg := range p {
		switch seg.Op {
		case scene.MoveTo:
			if len(poly) > 1 {
				out = append(out, poly)
			}
			poly = []layout.Point{seg.To}
		case scene.LineTo:
			poly = append(poly, seg.To)
		case scene.CubicTo:
			p0 := seg.To
			if len(poly) > 0 {
				p0 = poly[len(poly)-1]
			}
			for i := 1; i <= cubicSamples; i++ {
				poly = append(poly, bezier(p0, seg.C1, seg.C2, seg.To, float64(i)/cubicSamples))
			}
		case scene.ArcTo:
			a := seg.Arc
			if a == nil {
				poly = append(poly, seg.To)
				continue
			}
			n := max(2, int(math.Ceil(math.Abs(a.End-a.Start)*a.Radius/cellWidth)))
			for i := 1; i <= n; i++ {
				ang := a.Start + (a.End-a.Start)*float64(i)/float64(n)
				poly = append(poly, layout.Point{
					X: a.Center.X + a.Radius*math.Cos(ang),
					Y: a.Center.Y + a.Radius*math.Sin(ang),
				})
			}
		}
	}
	if len(poly) > 1 {
		out = append(out, poly)
	}
	return out
}

// bezier evaluates a cubic Bézier curve at t.
func bezier(p0, p1, p2, p3 layout.Point, t float64) layout.Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return layout.Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
