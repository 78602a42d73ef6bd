// Package pkg provides the core libraries for atomtree.
//
// # Overview
//
// Atomtree draws the dependency graph of a reactive-state application, as
// captured snapshot by snapshot, as a hierarchical tree. Each snapshot maps
// node names (atoms or components) to the nodes they feed; atomtree unfolds
// one snapshot from a root into a tree, lays it out radially or on a
// cartesian grid, and renders or explores the result. The pkg directory is
// organized into four areas:
//
//  1. [core] - Domain logic (histories, trees, layout, viewport, interaction)
//  2. [render] - Scene construction and output sinks
//  3. [pipeline] - Orchestration (load → build → layout → render)
//  4. [cache], [config], [errors] and [observability] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through atomtree:
//
//	Snapshot history (JSON/YAML)
//	         ↓
//	    [core/history] package (ordered snapshots)
//	         ↓
//	    [core/tree] package (unfold from a root, honoring collapsed paths)
//	         ↓
//	    [core/layout] package (radial or cartesian positions)
//	         ↓
//	    [render/scene] package (shapes, links, colors)
//	         ↓
//	    SVG/PNG/JSON/DOT output, or the interactive explorer
//
// Each stage is its own package: [core/history], [core/tree], [core/layout]
// and [render/scene].
//
// # Quick Start
//
//	h, _ := history.Load("atoms.json")
//	snap := h.Latest()
//
//	root := tree.Build(snap, "textState", tree.NewExpandState(), tree.Options{})
//	mode, _ := layout.Frame(layout.Radial, layout.Vertical, 800, 600, layout.Margin{})
//	res := layout.Compute(root, mode)
//
//	sc := scene.Build(res, scene.Options{Width: 800, Height: 600})
//	svg := sink.RenderSVG(sc)
//
// For an interactive view, [core/interaction] wraps the same steps in a
// session that reacts to clicks, hovers, drags and zooms.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/core/...     # Domain logic only
//	go test -run Example       # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/core
// [core/history]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/core/history
// [core/tree]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/core/tree
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/core/layout
// [core/interaction]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/core/interaction
// [render]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/render
// [render/scene]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/render/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/observability
package pkg
