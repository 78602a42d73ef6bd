// Package scene turns a computed layout into a renderer-neutral description.
//
// A [Scene] lists every shape, link and gradient with its final color and
// geometry, so output sinks only replay it. Link geometry comes from a
// dispatch table keyed by layout kind, link style and orientation (see
// [LinkPath]); each entry is a pure function returning a [Path] of
// move/line/cubic/arc segments. [Path.String] produces SVG path data and
// raster sinks walk the segments directly.
//
// # Palettes
//
// Two flavors share the geometry but differ in color:
//
//   - [AtomNetwork]: gradient circles, a pink root and green dependents.
//   - [ComponentTree]: a pink root, purple components that read atoms and
//     cyan components that read none.
package scene
