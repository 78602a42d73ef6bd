// Package interaction holds the state of one interactive view.
//
// A [Session] owns everything that changes in response to user input: the
// selected snapshot and root, the [tree.ExpandState], the tooltip, and the
// viewport controller. Every event rebuilds the tree, layout and scene
// synchronously, so [Session.Frame] always reflects the latest input, and
// registered observers are notified with the new frame.
//
// Nodes are identified by their [tree.Path]. Flags live in the session's
// expand state, never on tree nodes, so a rebuild (or a switch to another
// snapshot) cannot lose or leak them.
//
// A Session is not safe for concurrent use; confine it to one goroutine,
// typically the UI event loop.
package interaction
