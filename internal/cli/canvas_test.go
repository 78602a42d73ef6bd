package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/atomtree/pkg/core/layout"
	"github.com/matzehuels/atomtree/pkg/core/viewport"
	"github.com/matzehuels/atomtree/pkg/render/scene"
)

// plain returns the canvas text without styling.
func plain(c *canvas) string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			if r, _ := c.at(col, row); r != 0 {
				b.WriteRune(r)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestLineGlyph(t *testing.T) {
	tests := []struct {
		dc, dr int
		want   rune
	}{
		{5, 0, '─'},
		{0, 3, '│'},
		{10, 1, '─'},
		{1, 4, '│'},
		{2, 1, '╲'},
		{-2, -1, '╲'},
		{2, -1, '╱'},
		{-2, 1, '╱'},
	}
	for _, tt := range tests {
		if got := lineGlyph(tt.dc, tt.dr); got != tt.want {
			t.Errorf("lineGlyph(%d, %d) = %q, want %q", tt.dc, tt.dr, got, tt.want)
		}
	}
}

func TestCellMapping(t *testing.T) {
	col, row := cellOf(pointOf(7, 3))
	if col != 7 || row != 3 {
		t.Errorf("cellOf(pointOf(7, 3)) = %d, %d", col, row)
	}
	col, row = cellOf(viewport.Point{X: -1, Y: -1})
	if col != -1 || row != -1 {
		t.Errorf("cellOf(-1, -1) = %d, %d, want -1, -1", col, row)
	}
}

func TestFlatten(t *testing.T) {
	pt := func(x, y float64) layout.Point { return layout.Point{X: x, Y: y} }

	t.Run("line", func(t *testing.T) {
		p := scene.Path{{Op: scene.MoveTo, To: pt(0, 0)}, {Op: scene.LineTo, To: pt(10, 0)}}
		polys := flatten(p)
		if len(polys) != 1 || len(polys[0]) != 2 {
			t.Fatalf("flatten() = %v, want one 2-point polyline", polys)
		}
	})

	t.Run("cubic ends at target", func(t *testing.T) {
		p := scene.Path{
			{Op: scene.MoveTo, To: pt(0, 0)},
			{Op: scene.CubicTo, C1: pt(0, 50), C2: pt(100, 50), To: pt(100, 100)},
		}
		poly := flatten(p)[0]
		if len(poly) != cubicSamples+1 {
			t.Errorf("len = %d, want %d", len(poly), cubicSamples+1)
		}
		if end := poly[len(poly)-1]; end != pt(100, 100) {
			t.Errorf("end = %v, want (100, 100)", end)
		}
	})

	t.Run("arc stays on circle", func(t *testing.T) {
		arc := &scene.Arc{Center: pt(0, 0), Radius: 80, Start: 0, End: math.Pi / 2}
		p := scene.Path{
			{Op: scene.MoveTo, To: pt(80, 0)},
			{Op: scene.ArcTo, To: pt(0, 80), Arc: arc},
		}
		poly := flatten(p)[0]
		for _, q := range poly {
			if r := math.Hypot(q.X, q.Y); math.Abs(r-80) > 1e-9 {
				t.Fatalf("point %v at radius %g, want 80", q, r)
			}
		}
		if end := poly[len(poly)-1]; math.Abs(end.X) > 1e-9 || math.Abs(end.Y-80) > 1e-9 {
			t.Errorf("end = %v, want (0, 80)", end)
		}
	})

	t.Run("lone move is dropped", func(t *testing.T) {
		if polys := flatten(scene.Path{{Op: scene.MoveTo, To: pt(1, 1)}}); len(polys) != 0 {
			t.Errorf("flatten() = %v, want none", polys)
		}
	})
}

func TestCanvasText(t *testing.T) {
	c := newCanvas(6, 1)
	c.text(1, 0, "a世b", inkNode)
	c.text(5, 0, "overflow", inkNode)
	if got, want := plain(c), " a世bo\n"; got != want {
		t.Errorf("plain() = %q, want %q", got, want)
	}
}

func TestCanvasLine(t *testing.T) {
	c := newCanvas(5, 3)
	c.line(0, 1, 4, 1)
	if got, want := plain(c), "     \n─────\n     \n"; got != want {
		t.Errorf("plain() = %q, want %q", got, want)
	}

	c = newCanvas(3, 3)
	c.set(1, 1, 'x', inkNode)
	c.line(0, 0, 2, 2)
	if r, _ := c.at(1, 1); r != 'x' {
		t.Errorf("line overwrote a label: %q", r)
	}
}

func TestCanvasDraw(t *testing.T) {
	sc := &scene.Scene{
		Margin: layout.Margin{Top: 16, Left: 8},
		Shapes: []scene.Shape{
			{Kind: scene.Rect, X: 40, Y: 8, Label: "App", Path: "App"},
			{Kind: scene.Circle, X: 40, Y: 72, Label: "todo", Path: "App/todo", Collapsed: true},
		},
		Links: []scene.Link{{
			Source: "App", Target: "App/todo",
			D: scene.Path{
				{Op: scene.MoveTo, To: layout.Point{X: 40, Y: 8}},
				{Op: scene.LineTo, To: layout.Point{X: 40, Y: 72}},
			},
		}},
	}

	c := newCanvas(20, 6)
	c.draw(sc, viewport.Identity(), "App/todo")
	out := plain(c)
	for _, want := range []string{"[App]", "● todo +", "│"} {
		if !strings.Contains(out, want) {
			t.Errorf("canvas missing %q:\n%s", want, out)
		}
	}
	if _, k := c.at(6, 5); k != inkHover {
		t.Errorf("hovered node ink = %v, want %v", k, inkHover)
	}
	if !strings.Contains(c.String(), "App") {
		t.Errorf("String() lost the labels")
	}
}
