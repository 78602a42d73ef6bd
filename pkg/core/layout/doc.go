// Package layout positions a built tree for rendering.
//
// [Compute] runs a tidy-tree layout (the Buchheim–Walker linear-time variant
// of Reingold–Tilford) over a [tree.Node] and returns positioned nodes plus
// one parent→child link per non-root node.
//
// # Coordinates
//
// Every node gets two raw coordinates: Breadth, its position along the
// sibling axis, and Radius, its position along the depth axis. How they map to
// the screen depends on the [Mode]:
//
//   - Radial: Breadth is an angle in [0, 2π] and Radius a distance in
//     [0, min(w, h)/2]. X and Y are the polar point converted with angle zero
//     pointing up, relative to an origin at the center of the inner frame.
//   - Cartesian vertical: Breadth spans the inner width, Radius the inner
//     height; X = Breadth, Y = Radius, origin (0, 0).
//   - Cartesian horizontal: the axes swap; Breadth spans the inner height and
//     Radius the inner width; X = Radius, Y = Breadth.
//
// # Separation
//
// Adjacent nodes are kept at least [Separation] apart (in layout units,
// before scaling to the frame). Siblings get 0.55/depth and nodes with
// different parents 0.5/depth, so sibling clusters read as groups while
// deep levels pack tighter.
//
// # Degenerate frames
//
// A frame narrower than [MinTotalWidth], or with no room left inside the
// margins, produces an empty [Result] instead of NaN geometry. Use [Frame] to
// derive a [Mode] from a total size and margins.
package layout
