// Package tree turns a snapshot graph into an explicit rooted tree.
//
// The dependency graph of a snapshot is an arbitrary directed graph: nodes are
// shared between dependents and may form cycles. [Build] unfolds it from a
// chosen root into a fresh [Node] tree every time it is called. The only state
// carried between builds is the user's expand/collapse choice, held in an
// [ExpandState] keyed by [Path] (the node's root-to-node name sequence), so
// the same node reached through two different parents is toggled
// independently.
//
// # Rules
//
//   - A root name missing from the snapshot falls back to the snapshot's first
//     entry; an empty snapshot yields a single childless node.
//   - A collapsed node is a leaf: its dependencies exist in the record but
//     produce no children. [Node.Collapsible] marks it so renderers can show
//     the hidden subtree.
//   - A name already on the current root-to-node path is not expanded again.
//     The repeat becomes a leaf stub with [Node.Cycle] set. The shallowest
//     occurrence keeps its subtree.
//   - Names referenced as dependencies but absent from the snapshot become
//     plain leaves.
//
// # Usage
//
//	state := tree.NewExpandState()
//	root := tree.Build(snapshot, "todoListState", state, tree.Options{})
//
//	state.Toggle(root.Children[0].Path)
//	root = tree.Build(snapshot, "todoListState", state, tree.Options{})
package tree
