// Package render groups the stages that turn a computed layout into output.
//
// # Overview
//
// Rendering is split in two so every output agrees on geometry and color:
//
//   - [scene] resolves a layout into shapes, link paths, gradients and a
//     background. All styling decisions happen here.
//   - [sink] replays a scene as SVG, PNG, JSON, DOT or Graphviz-drawn SVG.
//
// The interactive explorer draws the same scene onto terminal cells, so a
// node hovered in the terminal is the node hovered in the SVG.
//
//	sc := scene.Build(res, scene.Options{Width: 800, Height: 600, LinkStyle: scene.Step})
//	svg := sink.RenderSVG(sc)
//	png, err := sink.RenderPNG(sc, sink.WithScale(2))
//
// [scene]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/render/scene
// [sink]: https://pkg.go.dev/github.com/matzehuels/atomtree/pkg/render/sink
package render
