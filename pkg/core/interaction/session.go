package interaction

import (
	"github.com/matzehuels/atomtree/pkg/core/history"
	"github.com/matzehuels/atomtree/pkg/core/layout"
	"github.com/matzehuels/atomtree/pkg/core/tree"
	"github.com/matzehuels/atomtree/pkg/core/viewport"
	"github.com/matzehuels/atomtree/pkg/render/scene"
)

// Options configure a session's view.
type Options struct {
	Width       float64
	Height      float64
	Margin      layout.Margin
	Kind        layout.Kind
	Orientation layout.Orientation
	LinkStyle   scene.LinkStyle
	StepPercent float64
	Flavor      scene.Flavor
	Viewport    viewport.Options
	Tree        tree.Options
}

// Tooltip is the hover popup. X and Y are in layout coordinates relative
// to the frame, before the viewport transform.
type Tooltip struct {
	Open bool
	Path tree.Path
	Text string
	X    float64
	Y    float64
}

// Frame is a consistent view of the session after an event.
type Frame struct {
	Revision  int
	Snapshot  int
	Root      string
	Tree      *tree.Node
	Layout    layout.Result
	Scene     *scene.Scene
	Tooltip   Tooltip
	Transform viewport.Transform
	Dragging  bool
}

// Session is the interactive state of one view.
type Session struct {
	opts     Options
	hist     *history.History
	explicit *tree.Node
	index    int
	root     string
	state    *tree.ExpandState
	tooltip  Tooltip
	vp       *viewport.Controller
	frame    *Frame
	subs     []func(*Frame)
	revision int
}

// New returns a session over a snapshot history, showing the latest
// snapshot rooted at root.
func New(h *history.History, root string, opts Options) *Session {
	if h == nil {
		h = history.New()
	}
	s := newSession(opts)
	s.hist = h
	s.root = root
	s.index = h.Clamp(h.Len() - 1)
	s.rebuild()
	return s
}

// NewTree returns a session over a fixed component tree.
func NewTree(root *tree.Node, opts Options) *Session {
	s := newSession(opts)
	s.explicit = root
	if root != nil {
		s.root = root.Name
	}
	s.index = -1
	s.rebuild()
	return s
}

func newSession(opts Options) *Session {
	if opts.Kind == "" {
		opts.Kind = layout.Radial
	}
	s := &Session{
		opts:  opts,
		state: tree.NewExpandState(),
		vp:    viewport.New(opts.Viewport),
	}
	s.vp.Observe(func(viewport.Transform, viewport.State) { s.refresh() })
	return s
}

// Frame returns the current frame.
func (s *Session) Frame() *Frame { return s.frame }

// State returns the session's expand state.
func (s *Session) State() *tree.ExpandState { return s.state }

// Viewport returns the session's viewport controller. Changes made through
// it are reflected in the next frame and reported to observers.
func (s *Session) Viewport() *viewport.Controller { return s.vp }

// History returns the session's snapshot history, nil for tree sessions.
func (s *Session) History() *history.History { return s.hist }

// Options returns the session's view options.
func (s *Session) Options() Options { return s.opts }

// Subscribe registers fn to be called with every new frame.
func (s *Session) Subscribe(fn func(*Frame)) {
	if fn != nil {
		s.subs = append(s.subs, fn)
	}
}

// Click toggles the expand flag of the node at p and rebuilds.
// Clicking a path that is not in the current tree changes nothing.
func (s *Session) Click(p tree.Path) {
	if s.frame == nil || s.frame.Tree.Find(p) == nil {
		return
	}
	s.state.Toggle(p)
	s.rebuild()
}

// Hover opens the tooltip for the node at p. The screen point is mapped
// through the inverse viewport transform. The root never gets a tooltip.
func (s *Session) Hover(p tree.Path, screen viewport.Point) {
	if s.frame == nil {
		return
	}
	n := s.frame.Tree.Find(p)
	if n == nil || n == s.frame.Tree {
		s.Unhover()
		return
	}
	local := s.vp.Transform().Invert(screen)
	s.tooltip = Tooltip{
		Open: true,
		Path: p,
		Text: scene.Tooltip(n),
		X:    local.X,
		Y:    local.Y,
	}
	s.refresh()
}

// Unhover closes the tooltip.
func (s *Session) Unhover() {
	if !s.tooltip.Open {
		return
	}
	s.tooltip = Tooltip{}
	s.refresh()
}

// Collapse marks the given paths collapsed and rebuilds once.
func (s *Session) Collapse(paths ...tree.Path) {
	if len(paths) == 0 {
		return
	}
	for _, p := range paths {
		s.state.Set(p, false)
	}
	s.rebuild()
}

// SelectSnapshot switches to snapshot i. Out-of-range indexes clamp to the
// nearest snapshot.
func (s *Session) SelectSnapshot(i int) {
	if s.hist == nil {
		return
	}
	s.index = s.hist.Clamp(i)
	s.rebuild()
}

// SelectRoot re-roots the view at name.
func (s *Session) SelectRoot(name string) {
	if s.explicit != nil {
		return
	}
	s.root = name
	s.rebuild()
}

// SetHistory replaces the history, keeping the snapshot index when it is
// still valid.
func (s *Session) SetHistory(h *history.History) {
	if h == nil || s.explicit != nil {
		return
	}
	s.hist = h
	s.index = h.Clamp(s.index)
	s.rebuild()
}

// Resize changes the frame size and rebuilds.
func (s *Session) Resize(width, height float64) {
	s.opts.Width, s.opts.Height = width, height
	s.rebuild()
}

// SetView changes the layout kind, orientation and link style.
func (s *Session) SetView(kind layout.Kind, o layout.Orientation, style scene.LinkStyle) {
	s.opts.Kind, s.opts.Orientation, s.opts.LinkStyle = kind, o, style
	s.rebuild()
}

// HitTest returns the path of the node under the screen point.
func (s *Session) HitTest(screen viewport.Point) (tree.Path, bool) {
	if s.frame == nil || s.frame.Scene.Empty() {
		return "", false
	}
	local := s.vp.Transform().Invert(screen)
	shape, ok := s.frame.Scene.Hit(local.X, local.Y)
	return shape.Path, ok
}

func (s *Session) buildTree() *tree.Node {
	if s.explicit != nil {
		return tree.Apply(s.explicit, s.state)
	}
	snap, err := s.hist.Get(s.index)
	if err != nil {
		snap = nil
	}
	return tree.Build(snap, s.root, s.state, s.opts.Tree)
}

// rebuild recomputes the tree, layout and scene.
func (s *Session) rebuild() {
	root := s.buildTree()
	if root == nil {
		root = &tree.Node{Name: s.root, Path: tree.RootPath(s.root), Expanded: true}
	}
	if s.tooltip.Open && root.Find(s.tooltip.Path) == nil {
		s.tooltip = Tooltip{}
	}

	var res layout.Result
	if mode, ok := layout.Frame(s.opts.Kind, s.opts.Orientation, s.opts.Width, s.opts.Height, s.opts.Margin); ok {
		res = layout.Compute(root, mode)
	}

	s.frame = &Frame{
		Snapshot: s.index,
		Root:     root.Name,
		Tree:     root,
		Layout:   res,
	}
	s.refresh()
}

// refresh rebuilds the scene for the current layout and notifies observers.
func (s *Session) refresh() {
	if s.frame == nil {
		return
	}
	s.revision++
	f := *s.frame
	f.Revision = s.revision
	f.Tooltip = s.tooltip
	f.Transform = s.vp.Transform()
	f.Dragging = s.vp.Dragging()
	f.Scene = scene.Build(f.Layout, scene.Options{
		Width:       s.opts.Width,
		Height:      s.opts.Height,
		Margin:      s.opts.Margin,
		LinkStyle:   s.opts.LinkStyle,
		StepPercent: s.opts.StepPercent,
		Flavor:      s.opts.Flavor,
		Transform:   f.Transform,
	})
	s.frame = &f
	for _, fn := range s.subs {
		fn(s.frame)
	}
}
