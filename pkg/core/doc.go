// Package core contains the domain logic of atomtree, free of any I/O
// beyond decoding its own inputs.
//
//   - [history]: ordered snapshots of a reactive-state graph
//   - [tree]: unfolding a snapshot into a tree from a root, with collapse state
//   - [layout]: tidy-tree positions in radial or cartesian frames
//   - [sizing]: node radii from subtree weight
//   - [viewport]: pan and zoom transforms
//   - [interaction]: a session tying the above to user events
//
// [history]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/core/history
// [tree]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/core/tree
// [layout]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/core/layout
// [sizing]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/core/sizing
// [viewport]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/core/viewport
// [interaction]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/core/interaction
package core
