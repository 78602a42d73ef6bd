package tree

import (
	"slices"
	"strconv"
)

// Graph is the read-only view of a snapshot the builder needs.
// [history.Snapshot] implements it.
type Graph interface {
	// First returns the first node name in the snapshot's stable order.
	First() (string, bool)

	// Node returns the dependencies and tags of name.
	Node(name string) (deps, tags []string, ok bool)
}

// Options bounds the size of a built tree. Zero values mean unlimited.
type Options struct {
	// MaxDepth stops expansion below this depth.
	MaxDepth int

	// MaxNodes stops adding children once the tree holds this many nodes.
	MaxNodes int
}

// Build unfolds g into a tree rooted at root.
//
// Build never fails: a missing root falls back to g.First(), and an empty
// graph yields a single node named root. Repeated dependency names within one
// record are listed once.
func Build(g Graph, root string, state *ExpandState, opts Options) *Node {
	name := root
	if g == nil {
		return &Node{Name: root, Path: RootPath(root), Expanded: true}
	}
	if _, _, ok := g.Node(name); !ok {
		first, ok := g.First()
		if !ok {
			return &Node{Name: root, Path: RootPath(root), Expanded: true}
		}
		name = first
	}

	b := &builder{
		graph:  g,
		state:  state,
		opts:   opts,
		onPath: make(map[string]bool),
	}
	return b.build(name, RootPath(name), 0)
}

type builder struct {
	graph  Graph
	state  *ExpandState
	opts   Options
	onPath map[string]bool
	count  int
}

func (b *builder) full() bool {
	return b.opts.MaxNodes > 0 && b.count >= b.opts.MaxNodes
}

func (b *builder) build(name string, p Path, depth int) *Node {
	b.count++
	deps, tags, _ := b.graph.Node(name)
	n := &Node{
		Name:     name,
		Path:     p,
		Expanded: b.state.Expanded(p),
		Tags:     slices.Clone(tags),
	}
	if len(deps) == 0 {
		return n
	}
	if !n.Expanded {
		n.Collapsible = true
		return n
	}
	if b.opts.MaxDepth > 0 && depth >= b.opts.MaxDepth {
		n.Truncated = true
		return n
	}

	b.onPath[name] = true
	defer delete(b.onPath, name)

	seen := make(map[string]bool, len(deps))
	for _, dep := range deps {
		if seen[dep] {
			continue
		}
		seen[dep] = true

		if b.full() {
			n.Truncated = true
			break
		}
		cp := p.Child(dep)
		if b.onPath[dep] {
			b.count++
			_, depTags, _ := b.graph.Node(dep)
			n.Children = append(n.Children, &Node{
				Name:     dep,
				Path:     cp,
				Expanded: true,
				Tags:     slices.Clone(depTags),
				Cycle:    true,
			})
			continue
		}
		n.Children = append(n.Children, b.build(dep, cp, depth+1))
	}
	return n
}

// Apply projects an explicit tree through state and returns a fresh copy.
//
// Paths are recomputed from names. Siblings sharing a name get an ordinal
// suffix ("Item", "Item#2", ...) so each keeps its own expand flag. Unlike
// [Build], repeated names along a path are legal here (a component may
// render another instance of itself).
func Apply(root *Node, state *ExpandState) *Node {
	if root == nil {
		return nil
	}
	return apply(root, RootPath(root.Name), state)
}

func apply(src *Node, p Path, state *ExpandState) *Node {
	n := &Node{
		Name:        src.Name,
		Path:        p,
		Expanded:    state.Expanded(p),
		Tags:        slices.Clone(src.Tags),
		Collapsible: src.Collapsible,
		Cycle:       src.Cycle,
		Truncated:   src.Truncated,
	}
	if len(src.Children) == 0 {
		return n
	}
	if !n.Expanded {
		n.Collapsible = true
		return n
	}

	n.Children = make([]*Node, 0, len(src.Children))
	seen := make(map[string]int, len(src.Children))
	for _, c := range src.Children {
		seen[c.Name]++
		cp := p.Child(c.Name)
		if k := seen[c.Name]; k > 1 {
			cp += Path("#" + strconv.Itoa(k))
		}
		n.Children = append(n.Children, apply(c, cp, state))
	}
	return n
}
