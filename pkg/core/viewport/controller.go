package viewport

import "math"

// State is the pointer state of a controller.
type State int

// Controller states.
const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Defaults for a new controller.
const (
	DefaultScale      = 0.9
	DefaultTranslateX = 20.0
	DefaultTranslateY = 10.0
	DefaultScaleMin   = 0.5
	DefaultScaleMax   = 4.0
)

// Options configure a controller.
type Options struct {
	ScaleMin float64
	ScaleMax float64
	Initial  Transform
}

// DefaultOptions returns the stock zoom bounds and initial transform.
func DefaultOptions() Options {
	return Options{
		ScaleMin: DefaultScaleMin,
		ScaleMax: DefaultScaleMax,
		Initial: Transform{
			ScaleX:     DefaultScale,
			ScaleY:     DefaultScale,
			TranslateX: DefaultTranslateX,
			TranslateY: DefaultTranslateY,
		},
	}
}

// normalize fills zero fields from the defaults and orders the bounds.
func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.ScaleMin <= 0 {
		o.ScaleMin = d.ScaleMin
	}
	if o.ScaleMax <= 0 {
		o.ScaleMax = d.ScaleMax
	}
	if o.ScaleMin > o.ScaleMax {
		o.ScaleMin, o.ScaleMax = o.ScaleMax, o.ScaleMin
	}
	if o.Initial == (Transform{}) {
		o.Initial = d.Initial
	}
	return o
}

// Observer is called after every transform or state change.
type Observer func(t Transform, s State)

// Controller tracks the viewport transform and drag state.
// It is not safe for concurrent use.
type Controller struct {
	opts      Options
	t         Transform
	state     State
	dragStart Point
	dragFrom  Transform
	observer  Observer
}

// New returns a controller at its initial transform.
func New(opts Options) *Controller {
	opts = opts.normalize()
	c := &Controller{opts: opts}
	c.t = c.clamp(opts.Initial)
	return c
}

// Observe registers fn as the controller's observer, replacing any previous one.
func (c *Controller) Observe(fn Observer) { c.observer = fn }

// Transform returns the current transform.
func (c *Controller) Transform() Transform { return c.t }

// State returns the current pointer state.
func (c *Controller) State() State { return c.state }

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.state == Dragging }

// Options returns the controller's normalized options.
func (c *Controller) Options() Options { return c.opts }

// DragStart begins a drag at screen point p.
func (c *Controller) DragStart(p Point) {
	c.state = Dragging
	c.dragStart = p
	c.dragFrom = c.t
	c.notify()
}

// DragMove translates the view by the distance from the drag start to p.
// It is ignored when no drag is in progress.
func (c *Controller) DragMove(p Point) {
	if c.state != Dragging {
		return
	}
	t := c.t
	t.TranslateX = c.dragFrom.TranslateX + p.X - c.dragStart.X
	t.TranslateY = c.dragFrom.TranslateY + p.Y - c.dragStart.Y
	c.t = t
	c.notify()
}

// DragEnd finishes a drag, keeping the current translation.
func (c *Controller) DragEnd() {
	if c.state != Dragging {
		return
	}
	c.state = Idle
	c.notify()
}

// PointerLeave ends an active drag when the pointer leaves the surface.
func (c *Controller) PointerLeave() { c.DragEnd() }

// ZoomBy multiplies the scale by factor around focal.
func (c *Controller) ZoomBy(factor float64, focal Point) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	c.ZoomTo(c.t.ScaleX*factor, c.t.ScaleY*factor, focal)
}

// ZoomTo sets the scale around focal, clamping each axis to the bounds.
// The layout point under focal stays under focal.
func (c *Controller) ZoomTo(sx, sy float64, focal Point) {
	if math.IsNaN(sx) || math.IsNaN(sy) {
		return
	}
	t := c.t
	nx, ny := c.bound(sx), c.bound(sy)
	if t.ScaleX != 0 {
		t.TranslateX = focal.X - (focal.X-t.TranslateX)*(nx/t.ScaleX)
	}
	if t.ScaleY != 0 {
		t.TranslateY = focal.Y - (focal.Y-t.TranslateY)*(ny/t.ScaleY)
	}
	t.ScaleX, t.ScaleY = nx, ny
	c.t = t
	c.notify()
}

// Pan translates the view by (dx, dy) screen units.
func (c *Controller) Pan(dx, dy float64) {
	c.t.TranslateX += dx
	c.t.TranslateY += dy
	c.notify()
}

// Reset restores the initial transform and ends any drag.
func (c *Controller) Reset() {
	c.t = c.clamp(c.opts.Initial)
	c.state = Idle
	c.notify()
}

func (c *Controller) bound(s float64) float64 {
	return math.Max(c.opts.ScaleMin, math.Min(c.opts.ScaleMax, s))
}

func (c *Controller) clamp(t Transform) Transform {
	t.ScaleX = c.bound(t.ScaleX)
	t.ScaleY = c.bound(t.ScaleY)
	return t
}

func (c *Controller) notify() {
	if c.observer != nil {
		c.observer(c.t, c.state)
	}
}
