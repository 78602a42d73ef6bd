package layout

import (
	"math"

	"github.com/matzehuels/atomtree/pkg/core/sizing"
	"github.com/matzehuels/atomtree/pkg/core/tree"
)

// Point is a 2D position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a positioned tree node.
type Node struct {
	Tree   *tree.Node `json:"-"`
	Parent *Node      `json:"-"`
	Depth  int        `json:"depth"`

	// Breadth is the sibling-axis coordinate (an angle in radial mode).
	Breadth float64 `json:"breadth"`
	// Radius is the depth-axis coordinate.
	Radius float64 `json:"radius"`

	// X and Y are relative to the result's origin.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Size is the circle radius (radial) or box width (cartesian).
	Size float64 `json:"size"`
	// Height is the box height of a cartesian node, zero in radial mode.
	Height float64 `json:"height,omitempty"`
}

// Name returns the node's label.
func (n *Node) Name() string { return n.Tree.Name }

// Path returns the node's identity.
func (n *Node) Path() tree.Path { return n.Tree.Path }

// IsRoot reports whether n is the layout root.
func (n *Node) IsRoot() bool { return n.Parent == nil }

// Link connects a parent to one of its children.
type Link struct {
	Source *Node
	Target *Node
}

// Result is a computed layout.
type Result struct {
	Mode Mode `json:"mode"`
	// Origin is the offset of X/Y inside the inner frame.
	Origin Point `json:"origin"`
	// Scale maps separation units to breadth units.
	Scale float64 `json:"scale"`
	// Nodes in pre-order; Nodes[0] is the root.
	Nodes []*Node `json:"nodes"`
	Links []Link  `json:"-"`
}

// Empty reports whether nothing was laid out.
func (r Result) Empty() bool { return len(r.Nodes) == 0 }

// Root returns the root node, or nil for an empty result.
func (r Result) Root() *Node {
	if r.Empty() {
		return nil
	}
	return r.Nodes[0]
}

// Find returns the node at path p, or nil.
func (r Result) Find(p tree.Path) *Node {
	for _, n := range r.Nodes {
		if n.Tree.Path == p {
			return n
		}
	}
	return nil
}

// Bounds returns the extent of node centers relative to the origin.
func (r Result) Bounds() (min, max Point) {
	if r.Empty() {
		return Point{}, Point{}
	}
	min = Point{X: math.Inf(1), Y: math.Inf(1)}
	max = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, n := range r.Nodes {
		min.X, max.X = math.Min(min.X, n.X), math.Max(max.X, n.X)
		min.Y, max.Y = math.Min(min.Y, n.Y), math.Max(max.Y, n.Y)
	}
	return min, max
}

// Compute lays out the tree rooted at root for mode.
// A nil root or an invalid mode yields an empty result.
func Compute(root *tree.Node, mode Mode) Result {
	res := Result{Mode: mode}
	if root == nil || !mode.Valid() {
		return res
	}

	w, virtual := wrap(root)
	tidy(w, virtual)

	span, extent := mode.span()
	left, right, bottom := extremes(w)
	s := 1.0
	if left != right {
		s = separation(left, right) / 2
	}
	tx := s - left.x
	kx := span / (right.x + s + tx)
	ky := extent / float64(max(bottom.depth, 1))

	res.Origin = mode.origin()
	res.Scale = kx
	res.Nodes = make([]*Node, 0, root.Len())
	place(w, nil, &res, mode, func(v *wnode) (float64, float64) {
		return (v.x + tx) * kx, float64(v.depth) * ky
	})
	return res
}

func place(v *wnode, parent *Node, res *Result, mode Mode, norm func(*wnode) (float64, float64)) {
	n := &Node{Tree: v.src, Parent: parent, Depth: v.depth}
	n.Breadth, n.Radius = norm(v)
	n.X, n.Y = project(mode, n.Breadth, n.Radius)
	if mode.IsRadial() {
		n.Size = sizing.Radius(n.Tree.Name)
	} else {
		n.Size = sizing.Width(n.Tree.Name)
		n.Height = sizing.Height(n.Depth)
	}
	res.Nodes = append(res.Nodes, n)
	if parent != nil {
		res.Links = append(res.Links, Link{Source: parent, Target: n})
	}
	for _, c := range v.children {
		place(c, n, res, mode, norm)
	}
}

// project maps raw coordinates to X/Y for mode.
func project(mode Mode, breadth, radius float64) (x, y float64) {
	switch {
	case mode.IsRadial():
		return PointRadial(breadth, radius)
	case mode.IsHorizontal():
		return radius, breadth
	default:
		return breadth, radius
	}
}

// PointRadial converts polar coordinates to cartesian ones with angle zero
// pointing up and angles growing clockwise.
func PointRadial(angle, radius float64) (x, y float64) {
	a := angle - math.Pi/2
	return radius * math.Cos(a), radius * math.Sin(a)
}
