package scene

import (
	"strings"

	"github.com/matzehuels/atomtree/pkg/core/layout"
	"github.com/matzehuels/atomtree/pkg/core/tree"
	"github.com/matzehuels/atomtree/pkg/core/viewport"
)

// ShapeKind is the outline of a node.
type ShapeKind string

// Shape kinds.
const (
	Circle ShapeKind = "circle"
	Rect   ShapeKind = "rect"
)

// BoxCornerRadius rounds the corners of rect shapes.
const BoxCornerRadius = 4.0

// Shape is a drawn node. X and Y are the center, relative to the scene origin.
type Shape struct {
	Kind      ShapeKind `json:"kind"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Radius    float64   `json:"radius,omitempty"`
	Width     float64   `json:"width,omitempty"`
	Height    float64   `json:"height,omitempty"`
	Fill      string    `json:"fill"`
	Gradient  string    `json:"gradient,omitempty"`
	Stroke    string    `json:"stroke,omitempty"`
	TextColor string    `json:"text_color"`
	FontSize  float64   `json:"font_size"`
	Bold      bool      `json:"bold,omitempty"`
	Label     string    `json:"label"`
	Path      tree.Path `json:"path"`
	Depth     int       `json:"depth"`
	Tooltip   string    `json:"tooltip,omitempty"`
	Collapsed bool      `json:"collapsed,omitempty"`
	Cycle     bool      `json:"cycle,omitempty"`
}

// Contains reports whether the point (x, y), relative to the scene origin,
// falls inside the shape.
func (s Shape) Contains(x, y float64) bool {
	dx, dy := x-s.X, y-s.Y
	if s.Kind == Circle {
		return dx*dx+dy*dy <= s.Radius*s.Radius
	}
	return dx >= -s.Width/2 && dx <= s.Width/2 && dy >= -s.Height/2 && dy <= s.Height/2
}

// Link is a drawn edge between two shapes.
type Link struct {
	Source tree.Path `json:"source"`
	Target tree.Path `json:"target"`
	D      Path      `json:"d"`
	Stroke string    `json:"stroke"`
}

// Scene is a fully resolved drawing.
type Scene struct {
	Title      string             `json:"title,omitempty"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Margin     layout.Margin      `json:"margin"`
	Origin     layout.Point       `json:"origin"`
	Transform  viewport.Transform `json:"transform"`
	Mode       layout.Mode        `json:"mode"`
	LinkStyle  LinkStyle          `json:"link_style"`
	Flavor     Flavor             `json:"flavor"`
	Background Background         `json:"background"`
	Gradients  []Gradient         `json:"gradients"`
	Links      []Link             `json:"links"`
	Shapes     []Shape            `json:"shapes"`
}

// Empty reports whether the scene has nothing to draw besides its frame.
func (s *Scene) Empty() bool { return s == nil || len(s.Shapes) == 0 }

// Offset returns the translation from scene coordinates to frame
// coordinates before the viewport transform.
func (s *Scene) Offset() layout.Point {
	return layout.Point{X: s.Margin.Left + s.Origin.X, Y: s.Margin.Top + s.Origin.Y}
}

// Hit returns the topmost shape under the frame point (x, y), given before
// the viewport transform.
func (s *Scene) Hit(x, y float64) (Shape, bool) {
	off := s.Offset()
	for i := len(s.Shapes) - 1; i >= 0; i-- {
		if s.Shapes[i].Contains(x-off.X, y-off.Y) {
			return s.Shapes[i], true
		}
	}
	return Shape{}, false
}

// Options configure [Build].
type Options struct {
	Title       string
	Width       float64
	Height      float64
	Margin      layout.Margin
	LinkStyle   LinkStyle
	StepPercent float64
	Flavor      Flavor
	Transform   viewport.Transform
}

// Build resolves a layout into a scene. An empty layout yields a scene with
// only its background.
func Build(res layout.Result, opts Options) *Scene {
	if opts.LinkStyle == "" {
		opts.LinkStyle = Line
	}
	if opts.Flavor == "" {
		opts.Flavor = AtomNetwork
	}
	if opts.Transform == (viewport.Transform{}) {
		opts.Transform = viewport.Identity()
	}
	sc := &Scene{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Margin:     opts.Margin,
		Origin:     res.Origin,
		Transform:  opts.Transform,
		Mode:       res.Mode,
		LinkStyle:  opts.LinkStyle,
		Flavor:     opts.Flavor,
		Background: Background{Fill: ColorBackground, Radius: 14},
		Gradients:  gradients(opts.Flavor),
	}
	if res.Empty() {
		return sc
	}

	pathFn, ok := LinkPath(res.Mode, opts.LinkStyle)
	if !ok {
		pathFn = straight
	}
	sc.Links = make([]Link, 0, len(res.Links))
	for _, l := range res.Links {
		sc.Links = append(sc.Links, Link{
			Source: l.Source.Path(),
			Target: l.Target.Path(),
			D:      pathFn(l.Source, l.Target, opts.StepPercent),
			Stroke: ColorLink,
		})
	}

	sc.Shapes = make([]Shape, 0, len(res.Nodes))
	for _, n := range res.Nodes {
		sc.Shapes = append(sc.Shapes, shapeFor(n, res.Mode, opts.Flavor))
	}
	return sc
}

func shapeFor(n *layout.Node, mode layout.Mode, f Flavor) Shape {
	st := paint(f, n.Tree, n.Depth)
	s := Shape{
		X:         n.X,
		Y:         n.Y,
		Fill:      st.fill,
		Gradient:  st.gradient,
		Stroke:    st.stroke,
		TextColor: st.text,
		FontSize:  st.fontSize,
		Bold:      st.bold,
		Label:     n.Tree.Name,
		Path:      n.Tree.Path,
		Depth:     n.Depth,
		Collapsed: n.Tree.Collapsible,
		Cycle:     n.Tree.Cycle,
	}
	if !n.IsRoot() {
		s.Tooltip = Tooltip(n.Tree)
	}
	// Collapsed shapes get an outline so sinks can dash it.
	if s.Collapsed && s.Stroke == "" {
		s.Stroke = ColorLink
	}
	if mode.IsRadial() {
		s.Kind = Circle
		s.Radius = n.Size
	} else {
		s.Kind = Rect
		s.Width = n.Size
		s.Height = n.Height
	}
	return s
}

// Tooltip returns the hover text for a node: its name, then the atoms it
// reads when there are any.
func Tooltip(n *tree.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.Name)
	if len(n.Tags) > 0 {
		b.WriteString("\nAtoms: ")
		b.WriteString(n.TagString())
	}
	return b.String()
}
