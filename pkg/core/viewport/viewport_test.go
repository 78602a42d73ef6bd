package viewport

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNewDefaults(t *testing.T) {
	c := New(Options{})
	want := Transform{ScaleX: 0.9, ScaleY: 0.9, TranslateX: 20, TranslateY: 10}
	if got := c.Transform(); got != want {
		t.Errorf("Transform() = %+v, want %+v", got, want)
	}
	if c.State() != Idle {
		t.Errorf("State() = %v, want idle", c.State())
	}
	if got, want := c.Transform().String(), "matrix(0.9, 0, 0, 0.9, 20, 10)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestOptionsNormalize(t *testing.T) {
	c := New(Options{ScaleMin: 8, ScaleMax: 2, Initial: Identity()})
	opts := c.Options()
	if opts.ScaleMin != 2 || opts.ScaleMax != 8 {
		t.Errorf("bounds = [%v, %v], want [2, 8]", opts.ScaleMin, opts.ScaleMax)
	}
	if got := c.Transform().ScaleX; got != 2 {
		t.Errorf("initial scale = %v, want clamped to 2", got)
	}
}

func TestZoomClamp(t *testing.T) {
	tests := []struct {
		name   string
		sx, sy float64
		wantX  float64
		wantY  float64
	}{
		{"within bounds", 2, 3, 2, 3},
		{"above max", 10, 10, 4, 4},
		{"below min", 0.1, 0.2, 0.5, 0.5},
		{"per axis", 10, 0.1, 4, 0.5},
		{"at bounds", 4, 0.5, 4, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(DefaultOptions())
			c.ZoomTo(tt.sx, tt.sy, Point{})
			got := c.Transform()
			if got.ScaleX != tt.wantX || got.ScaleY != tt.wantY {
				t.Errorf("scale = (%v, %v), want (%v, %v)", got.ScaleX, got.ScaleY, tt.wantX, tt.wantY)
			}
			if c.State() != Idle {
				t.Errorf("State() = %v, want idle", c.State())
			}
		})
	}
}

func TestZoomKeepsFocalPoint(t *testing.T) {
	c := New(DefaultOptions())
	focal := Point{X: 300, Y: 200}
	before := c.Transform().Invert(focal)

	c.ZoomBy(1.5, focal)
	c.ZoomBy(100, focal)
	c.ZoomBy(0.01, focal)

	after := c.Transform().Invert(focal)
	if !near(before.X, after.X) || !near(before.Y, after.Y) {
		t.Errorf("layout point under focal moved from %v to %v", before, after)
	}
}

func TestZoomByIgnoresBadFactor(t *testing.T) {
	c := New(DefaultOptions())
	want := c.Transform()
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		c.ZoomBy(f, Point{X: 5, Y: 5})
	}
	if got := c.Transform(); got != want {
		t.Errorf("Transform() = %+v, want %+v", got, want)
	}
}

func TestDrag(t *testing.T) {
	c := New(DefaultOptions())
	start := c.Transform()

	c.DragMove(Point{X: 50, Y: 50})
	if c.Transform() != start {
		t.Fatalf("DragMove while idle changed the transform")
	}

	c.DragStart(Point{X: 100, Y: 100})
	if !c.Dragging() {
		t.Fatalf("Dragging() = false after DragStart")
	}
	c.DragMove(Point{X: 130, Y: 90})
	c.DragMove(Point{X: 140, Y: 120})

	got := c.Transform()
	if got.TranslateX != start.TranslateX+40 || got.TranslateY != start.TranslateY+20 {
		t.Errorf("translate = (%v, %v), want (%v, %v)", got.TranslateX, got.TranslateY, start.TranslateX+40, start.TranslateY+20)
	}
	if got.ScaleX != start.ScaleX {
		t.Errorf("drag changed scale to %v", got.ScaleX)
	}

	c.DragEnd()
	if c.State() != Idle {
		t.Errorf("State() = %v after DragEnd, want idle", c.State())
	}
	if c.Transform() != got {
		t.Errorf("DragEnd changed the transform")
	}
}

func TestPointerLeaveEndsDrag(t *testing.T) {
	var states []State
	c := New(DefaultOptions())
	c.Observe(func(_ Transform, s State) { states = append(states, s) })

	c.DragStart(Point{})
	c.PointerLeave()
	if c.Dragging() {
		t.Fatalf("Dragging() = true after PointerLeave")
	}
	moved := c.Transform()
	c.DragMove(Point{X: 99, Y: 99})
	if c.Transform() != moved {
		t.Errorf("DragMove after PointerLeave changed the transform")
	}

	c.PointerLeave()
	if want := []State{Dragging, Idle}; len(states) != len(want) || states[0] != want[0] || states[1] != want[1] {
		t.Errorf("observed states = %v, want %v", states, want)
	}
}

func TestObserverSeesEveryChange(t *testing.T) {
	c := New(DefaultOptions())
	var last Transform
	calls := 0
	c.Observe(func(tr Transform, _ State) {
		calls++
		last = tr
	})

	c.ZoomBy(2, Point{})
	c.Pan(5, 5)
	c.DragStart(Point{})
	c.DragMove(Point{X: 1})
	c.DragEnd()
	c.Reset()

	if calls != 6 {
		t.Errorf("observer called %d times, want 6", calls)
	}
	if last != c.Transform() {
		t.Errorf("last observed = %+v, want %+v", last, c.Transform())
	}
	if c.Transform() != DefaultOptions().Initial {
		t.Errorf("Reset() left %+v", c.Transform())
	}
}

func TestTransformApplyInvert(t *testing.T) {
	transforms := []Transform{
		Identity(),
		{ScaleX: 2, ScaleY: 0.5, TranslateX: 10, TranslateY: -4},
		{ScaleX: 1.5, ScaleY: 1.5, SkewX: 0.3, SkewY: -0.2, TranslateX: 3, TranslateY: 7},
	}
	points := []Point{{0, 0}, {10, 20}, {-3.5, 8}}

	for _, tr := range transforms {
		for _, p := range points {
			back := tr.Invert(tr.Apply(p))
			if !near(back.X, p.X) || !near(back.Y, p.Y) {
				t.Errorf("%v: Invert(Apply(%v)) = %v", tr, p, back)
			}
		}
	}

	singular := Transform{}
	if got := singular.Invert(Point{X: 1, Y: 2}); got != (Point{X: 1, Y: 2}) {
		t.Errorf("singular Invert = %v, want input", got)
	}
}

func TestTransformString(t *testing.T) {
	tr := Transform{ScaleX: 1.25, ScaleY: 2, SkewX: 0.5, SkewY: -1, TranslateX: 12.5, TranslateY: -3}
	if got, want := tr.String(), "matrix(1.25, -1, 0.5, 2, 12.5, -3)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
