package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/atomtree/pkg/core/sizing"
	"github.com/matzehuels/atomtree/pkg/core/tree"
)

const eps = 1e-9

// sketch is a compact tree description: name followed by children.
type sketch struct {
	name     string
	children []sketch
}

func n(name string, children ...sketch) sketch { return sketch{name, children} }

func build(s sketch) *tree.Node {
	return buildAt(s, tree.RootPath(s.name))
}

func buildAt(s sketch, p tree.Path) *tree.Node {
	node := &tree.Node{Name: s.name, Path: p, Expanded: true}
	for _, c := range s.children {
		node.Children = append(node.Children, buildAt(c, p.Child(c.name)))
	}
	return node
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func unbalanced() *tree.Node {
	return build(n("root",
		n("a", n("a1", n("a11"), n("a12"), n("a13"))),
		n("b"),
		n("c", n("c1"), n("c2", n("c21"), n("c22"), n("c23"), n("c24"))),
	))
}

func TestComputeCartesian(t *testing.T) {
	root := build(n("root", n("left"), n("right")))

	tests := []struct {
		name  string
		mode  Mode
		wantX []float64
		wantY []float64
	}{
		{
			name:  "vertical",
			mode:  CartesianMode(Vertical, 100, 60),
			wantX: []float64{50, 25, 75},
			wantY: []float64{0, 60, 60},
		},
		{
			name:  "horizontal",
			mode:  CartesianMode(Horizontal, 60, 100),
			wantX: []float64{0, 60, 60},
			wantY: []float64{50, 25, 75},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(root, tt.mode)
			if len(res.Nodes) != 3 {
				t.Fatalf("len(Nodes) = %d, want 3", len(res.Nodes))
			}
			for i, node := range res.Nodes {
				if !near(node.X, tt.wantX[i]) || !near(node.Y, tt.wantY[i]) {
					t.Errorf("%s = (%v, %v), want (%v, %v)", node.Name(), node.X, node.Y, tt.wantX[i], tt.wantY[i])
				}
			}
			if res.Origin != (Point{}) {
				t.Errorf("Origin = %v, want zero", res.Origin)
			}
		})
	}
}

func TestComputeRadial(t *testing.T) {
	root := build(n("root", n("left"), n("right")))
	res := Compute(root, RadialMode(200, 200))

	if res.Origin != (Point{X: 100, Y: 100}) {
		t.Errorf("Origin = %v, want (100, 100)", res.Origin)
	}
	wantBreadth := []float64{math.Pi, math.Pi / 2, 3 * math.Pi / 2}
	wantRadius := []float64{0, 100, 100}
	for i, node := range res.Nodes {
		if !near(node.Breadth, wantBreadth[i]) || !near(node.Radius, wantRadius[i]) {
			t.Errorf("%s polar = (%v, %v), want (%v, %v)", node.Name(), node.Breadth, node.Radius, wantBreadth[i], wantRadius[i])
		}
	}

	left, right := res.Nodes[1], res.Nodes[2]
	if !near(left.X, 100) || !near(left.Y, 0) {
		t.Errorf("left = (%v, %v), want (100, 0)", left.X, left.Y)
	}
	if !near(right.X, -100) || !near(right.Y, 0) {
		t.Errorf("right = (%v, %v), want (-100, 0)", right.X, right.Y)
	}
}

func TestComputeSingleNode(t *testing.T) {
	res := Compute(build(n("solo")), CartesianMode(Vertical, 100, 50))
	if len(res.Nodes) != 1 || len(res.Links) != 0 {
		t.Fatalf("got %d nodes, %d links, want 1, 0", len(res.Nodes), len(res.Links))
	}
	if root := res.Root(); !near(root.X, 50) || !near(root.Y, 0) {
		t.Errorf("root = (%v, %v), want (50, 0)", root.X, root.Y)
	}
}

func TestComputeDegenerate(t *testing.T) {
	root := unbalanced()

	tests := []struct {
		name string
		mode Mode
	}{
		{"zero", Mode{Kind: Radial}},
		{"negative width", CartesianMode(Vertical, -5, 100)},
		{"negative height", RadialMode(100, -1)},
		{"nan", RadialMode(math.NaN(), 100)},
		{"inf", CartesianMode(Horizontal, math.Inf(1), 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(root, tt.mode)
			if !res.Empty() {
				t.Errorf("Empty() = false, want true")
			}
			if res.Root() != nil {
				t.Errorf("Root() = %v, want nil", res.Root())
			}
		})
	}

	if res := Compute(nil, RadialMode(100, 100)); !res.Empty() {
		t.Errorf("Compute(nil).Empty() = false, want true")
	}
}

func TestFrame(t *testing.T) {
	m := Margin{Top: 30, Right: 30, Bottom: 70, Left: 30}

	tests := []struct {
		name   string
		width  float64
		height float64
		wantOK bool
		wantW  float64
		wantH  float64
	}{
		{"normal", 800, 600, true, 740, 500},
		{"below minimum", 9, 600, false, 0, 0},
		{"margins eat width", 50, 600, false, -10, 500},
		{"margins eat height", 800, 90, false, 740, -10},
		{"at minimum", MinTotalWidth, 600, false, -50, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, ok := Frame(Radial, Vertical, tt.width, tt.height, m)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if mode.InnerWidth != tt.wantW || mode.InnerHeight != tt.wantH {
				t.Errorf("inner = %vx%v, want %vx%v", mode.InnerWidth, mode.InnerHeight, tt.wantW, tt.wantH)
			}
			if ok && mode.Orientation != "" {
				t.Errorf("radial Orientation = %q, want empty", mode.Orientation)
			}
			if !ok {
				if res := Compute(unbalanced(), mode); !res.Empty() {
					t.Errorf("Compute on rejected frame is not empty")
				}
			}
		})
	}
}

func TestComputeNoNaN(t *testing.T) {
	modes := []Mode{
		RadialMode(1, 1),
		CartesianMode(Vertical, 0.5, 1000),
		CartesianMode(Horizontal, 1000, 0.5),
	}
	for _, mode := range modes {
		for _, node := range Compute(unbalanced(), mode).Nodes {
			for _, v := range []float64{node.X, node.Y, node.Breadth, node.Radius} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("%v: %s has non-finite coordinate %v", mode, node.Name(), v)
				}
			}
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	root := unbalanced()
	for _, mode := range []Mode{RadialMode(640, 480), CartesianMode(Vertical, 640, 480), CartesianMode(Horizontal, 640, 480)} {
		first := Compute(root, mode)
		for i := 0; i < 5; i++ {
			again := Compute(root, mode)
			if len(again.Nodes) != len(first.Nodes) {
				t.Fatalf("run %d: %d nodes, want %d", i, len(again.Nodes), len(first.Nodes))
			}
			for j := range first.Nodes {
				a, b := first.Nodes[j], again.Nodes[j]
				if a.Path() != b.Path() || a.X != b.X || a.Y != b.Y || a.Size != b.Size {
					t.Fatalf("run %d node %d = %+v, want %+v", i, j, *b, *a)
				}
			}
		}
	}
}

func TestComputeLinks(t *testing.T) {
	res := Compute(unbalanced(), CartesianMode(Vertical, 400, 300))
	if got, want := len(res.Links), len(res.Nodes)-1; got != want {
		t.Fatalf("len(Links) = %d, want %d", got, want)
	}
	seen := make(map[*Node]bool)
	for _, l := range res.Links {
		if l.Target.Parent != l.Source {
			t.Errorf("link %s→%s does not follow parent", l.Source.Name(), l.Target.Name())
		}
		if seen[l.Target] {
			t.Errorf("%s has more than one incoming link", l.Target.Name())
		}
		seen[l.Target] = true
	}
	if seen[res.Root()] {
		t.Errorf("root has an incoming link")
	}
}

func TestComputeDepthAxis(t *testing.T) {
	res := Compute(unbalanced(), CartesianMode(Vertical, 400, 300))
	// Deepest level is 3, so each level is 100 apart.
	for _, node := range res.Nodes {
		if want := float64(node.Depth) * 100; !near(node.Y, want) {
			t.Errorf("%s.Y = %v, want %v", node.Name(), node.Y, want)
		}
		if node.X < -eps || node.X > 400+eps {
			t.Errorf("%s.X = %v outside [0, 400]", node.Name(), node.X)
		}
	}
}

func TestSeparation(t *testing.T) {
	for depth := 0; depth <= 8; depth++ {
		sib, cousin := Separation(true, depth), Separation(false, depth)
		if sib < cousin {
			t.Errorf("depth %d: sibling separation %v < cousin separation %v", depth, sib, cousin)
		}
		if depth > 1 && Separation(true, depth) >= Separation(true, depth-1) {
			t.Errorf("depth %d: separation does not shrink with depth", depth)
		}
	}
	if Separation(true, 0) != Separation(true, 1) {
		t.Errorf("depth 0 should be treated as depth 1")
	}
}

func TestComputeRespectsSeparation(t *testing.T) {
	for _, mode := range []Mode{RadialMode(500, 500), CartesianMode(Vertical, 500, 400)} {
		res := Compute(unbalanced(), mode)

		// Pre-order visits each level left to right.
		levels := make(map[int][]*Node)
		for _, node := range res.Nodes {
			levels[node.Depth] = append(levels[node.Depth], node)
		}
		for depth, nodes := range levels {
			for i := 1; i < len(nodes); i++ {
				a, b := nodes[i-1], nodes[i]
				gap := b.Breadth - a.Breadth
				want := Separation(a.Parent == b.Parent, depth) * res.Scale
				if gap < want-eps {
					t.Errorf("%v: gap %s→%s = %v, want >= %v", mode.Kind, a.Name(), b.Name(), gap, want)
				}
			}
		}
	}
}

func TestComputeChildOrder(t *testing.T) {
	res := Compute(unbalanced(), CartesianMode(Horizontal, 400, 300))
	for _, node := range res.Nodes {
		var prev *Node
		for _, l := range res.Links {
			if l.Source != node {
				continue
			}
			if prev != nil && l.Target.Y <= prev.Y {
				t.Errorf("children of %s out of order: %s before %s", node.Name(), prev.Name(), l.Target.Name())
			}
			prev = l.Target
		}
	}
}

func TestComputeSizing(t *testing.T) {
	root := build(n("filteredTodoListState", n("a"), n("todoListFilterState")))

	radial := Compute(root, RadialMode(400, 400))
	for _, node := range radial.Nodes {
		if want := sizing.Radius(node.Name()); node.Size != want {
			t.Errorf("radial %s.Size = %v, want %v", node.Name(), node.Size, want)
		}
		if node.Height != 0 {
			t.Errorf("radial %s.Height = %v, want 0", node.Name(), node.Height)
		}
	}

	cart := Compute(root, CartesianMode(Vertical, 400, 400))
	for _, node := range cart.Nodes {
		if want := sizing.Width(node.Name()); node.Size != want {
			t.Errorf("cartesian %s.Size = %v, want %v", node.Name(), node.Size, want)
		}
		if want := sizing.Height(node.Depth); node.Height != want {
			t.Errorf("cartesian %s.Height = %v, want %v", node.Name(), node.Height, want)
		}
	}
}

func TestResultFind(t *testing.T) {
	root := unbalanced()
	res := Compute(root, RadialMode(300, 300))
	p := tree.RootPath("root").Child("c").Child("c2")
	if got := res.Find(p); got == nil || got.Name() != "c2" {
		t.Errorf("Find(%q) = %v, want c2", p, got)
	}
	if got := res.Find("nope"); got != nil {
		t.Errorf("Find(nope) = %v, want nil", got)
	}
	lo, hi := res.Bounds()
	if lo.X > hi.X || lo.Y > hi.Y {
		t.Errorf("Bounds() = %v, %v", lo, hi)
	}
}

func TestPointRadial(t *testing.T) {
	tests := []struct {
		angle, radius float64
		x, y          float64
	}{
		{0, 10, 0, -10},
		{math.Pi / 2, 10, 10, 0},
		{math.Pi, 10, 0, 10},
		{3 * math.Pi / 2, 10, -10, 0},
		{1, 0, 0, 0},
	}
	for _, tt := range tests {
		x, y := PointRadial(tt.angle, tt.radius)
		if !near(x, tt.x) || !near(y, tt.y) {
			t.Errorf("PointRadial(%v, %v) = (%v, %v), want (%v, %v)", tt.angle, tt.radius, x, y, tt.x, tt.y)
		}
	}
}
