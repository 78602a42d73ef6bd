package layout

import "github.com/matzehuels/atomtree/pkg/core/tree"

// Separation returns the minimum breadth gap between two adjacent nodes at
// depth, in layout units.
func Separation(sameParent bool, depth int) float64 {
	if depth < 1 {
		depth = 1
	}
	if sameParent {
		return 0.55 / float64(depth)
	}
	return 0.5 / float64(depth)
}

// wnode carries the per-node state of the Buchheim–Walker walk.
type wnode struct {
	src      *tree.Node
	parent   *wnode
	children []*wnode
	depth    int
	index    int

	ancestor *wnode // a
	defAnc   *wnode // default ancestor for apportion
	thread   *wnode // t
	prelim   float64
	mod      float64
	change   float64
	shift    float64
	x        float64
}

func separation(a, b *wnode) float64 {
	return Separation(a.parent == b.parent, a.depth)
}

// wrap mirrors the tree under a virtual parent.
func wrap(root *tree.Node) (*wnode, *wnode) {
	virtual := &wnode{}
	w := wrapNode(root, virtual, 0, 0)
	virtual.children = []*wnode{w}
	return w, virtual
}

func wrapNode(n *tree.Node, parent *wnode, depth, index int) *wnode {
	w := &wnode{src: n, parent: parent, depth: depth, index: index}
	w.ancestor = w
	if len(n.Children) > 0 {
		w.children = make([]*wnode, len(n.Children))
		for i, c := range n.Children {
			w.children[i] = wrapNode(c, w, depth+1, i)
		}
	}
	return w
}

// tidy runs both walks and leaves raw positions in x.
func tidy(root, virtual *wnode) {
	eachAfter(root, firstWalk)
	virtual.mod = -root.prelim
	eachBefore(root, secondWalk)
}

func eachAfter(v *wnode, fn func(*wnode)) {
	for _, c := range v.children {
		eachAfter(c, fn)
	}
	fn(v)
}

func eachBefore(v *wnode, fn func(*wnode)) {
	fn(v)
	for _, c := range v.children {
		eachBefore(c, fn)
	}
}

// firstWalk computes the preliminary position of v, shifting the subtrees
// of its children so that they do not overlap.
func firstWalk(v *wnode) {
	siblings := v.parent.children
	var w *wnode
	if v.index > 0 {
		w = siblings[v.index-1]
	}
	if n := len(v.children); n > 0 {
		executeShifts(v)
		mid := (v.children[0].prelim + v.children[n-1].prelim) / 2
		if w != nil {
			v.prelim = w.prelim + separation(v, w)
			v.mod = v.prelim - mid
		} else {
			v.prelim = mid
		}
	} else if w != nil {
		v.prelim = w.prelim + separation(v, w)
	}
	anc := v.parent.defAnc
	if anc == nil {
		anc = siblings[0]
	}
	v.parent.defAnc = apportion(v, w, anc)
}

// secondWalk computes absolute positions by summing modifiers.
func secondWalk(v *wnode) {
	v.x = v.prelim + v.parent.mod
	v.mod += v.parent.mod
}

// apportion threads the contour of v's subtree against the subtrees of its
// left siblings and shifts v right until they no longer overlap.
func apportion(v, w, ancestor *wnode) *wnode {
	if w == nil {
		return ancestor
	}
	vip, vop := v, v
	vim := w
	vom := vip.parent.children[0]
	sip, sop := vip.mod, vop.mod
	sim, som := vim.mod, vom.mod
	for {
		vim = nextRight(vim)
		vip = nextLeft(vip)
		if vim == nil || vip == nil {
			break
		}
		vom = nextLeft(vom)
		vop = nextRight(vop)
		vop.ancestor = v
		shift := vim.prelim + sim - vip.prelim - sip + separation(vim, vip)
		if shift > 0 {
			moveSubtree(nextAncestor(vim, v, ancestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += vim.mod
		sip += vip.mod
		som += vom.mod
		sop += vop.mod
	}
	if vim != nil && nextRight(vop) == nil {
		vop.thread = vim
		vop.mod += sim - sop
	}
	if vip != nil && nextLeft(vom) == nil {
		vom.thread = vip
		vom.mod += sip - som
		ancestor = v
	}
	return ancestor
}

func nextLeft(v *wnode) *wnode {
	if len(v.children) > 0 {
		return v.children[0]
	}
	return v.thread
}

func nextRight(v *wnode) *wnode {
	if n := len(v.children); n > 0 {
		return v.children[n-1]
	}
	return v.thread
}

func nextAncestor(vim, v, ancestor *wnode) *wnode {
	if vim.ancestor.parent == v.parent {
		return vim.ancestor
	}
	return ancestor
}

func moveSubtree(wm, wp *wnode, shift float64) {
	change := shift / float64(wp.index-wm.index)
	wp.change -= change
	wp.shift += shift
	wm.change += change
	wp.prelim += shift
	wp.mod += shift
}

func executeShifts(v *wnode) {
	var shift, change float64
	for i := len(v.children) - 1; i >= 0; i-- {
		w := v.children[i]
		w.prelim += shift
		w.mod += shift
		change += w.change
		shift += w.shift + change
	}
}

// extremes returns the leftmost, rightmost and deepest nodes.
func extremes(root *wnode) (left, right, bottom *wnode) {
	left, right, bottom = root, root, root
	eachBefore(root, func(v *wnode) {
		if v.x < left.x {
			left = v
		}
		if v.x > right.x {
			right = v
		}
		if v.depth > bottom.depth {
			bottom = v
		}
	})
	return left, right, bottom
}
