package tree

import (
	"strings"
)

// Node is one node of a built tree.
type Node struct {
	Name     string   `json:"name"`
	Path     Path     `json:"path"`
	Children []*Node  `json:"children,omitempty"`
	Expanded bool     `json:"expanded"`
	Tags     []string `json:"tags,omitempty"`

	// Collapsible is set on a collapsed node that hides children.
	Collapsible bool `json:"collapsible,omitempty"`

	// Cycle is set on a stub that would have repeated an ancestor.
	Cycle bool `json:"cycle,omitempty"`

	// Truncated is set when the depth or node budget stopped expansion here.
	Truncated bool `json:"truncated,omitempty"`
}

// IsLeaf reports whether the node has no rendered children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Depth returns the node's distance from the root.
func (n *Node) Depth() int { return n.Path.Depth() }

// TagString joins the node's tags for display.
func (n *Node) TagString() string { return strings.Join(n.Tags, ", ") }

// Walk visits n and its descendants in pre-order, children in order.
// Returning false from fn skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Len returns the number of nodes in the tree rooted at n.
func (n *Node) Len() int {
	count := 0
	n.Walk(func(*Node) bool { count++; return true })
	return count
}

// Find returns the node at path p, or nil.
func (n *Node) Find(p Path) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Path == p {
			found = c
			return false
		}
		// Only descend into ancestors of p.
		return strings.HasPrefix(string(p), string(c.Path)+"/")
	})
	return found
}

// Shape returns a compact, comparable rendering of the tree structure,
// e.g. "a(b,c(d))". Collapsed nodes are marked with "+", cycle stubs with "@".
func (n *Node) Shape() string {
	var b strings.Builder
	n.shape(&b)
	return b.String()
}

func (n *Node) shape(b *strings.Builder) {
	if n == nil {
		return
	}
	b.WriteString(n.Name)
	switch {
	case n.Collapsible:
		b.WriteByte('+')
	case n.Cycle:
		b.WriteByte('@')
	}
	if len(n.Children) == 0 {
		return
	}
	b.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		c.shape(b)
	}
	b.WriteByte(')')
}
