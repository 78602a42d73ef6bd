// Package sink writes a [scene.Scene] to output formats.
//
// Sinks never lay anything out: they replay the shapes, links and colors the
// scene already resolved. Supported formats:
//
//   - SVG via github.com/ajstarks/svgo, with the viewport transform as a
//     matrix() group and hover tooltips as <title> elements
//   - PNG via git.sr.ht/~sbinet/gg, drawing the same geometry on a raster
//   - JSON, the scene itself
//   - DOT with pinned node positions, and SVG rendered from it in-process by
//     github.com/goccy/go-graphviz (neato)
//
// Basic usage:
//
//	svg := sink.RenderSVG(sc)
//	png, err := sink.RenderPNG(sc, sink.WithScale(2))
//	dot := sink.RenderDOT(sc)
//	gsvg, err := sink.RenderGraphviz(ctx, dot)
package sink

// Format names an output format.
type Format string

// Output formats.
const (
	FormatSVG      Format = "svg"
	FormatPNG      Format = "png"
	FormatJSON     Format = "json"
	FormatDOT      Format = "dot"
	FormatGraphviz Format = "graphviz"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatSVG, FormatPNG, FormatJSON, FormatDOT, FormatGraphviz}
}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, bool) {
	for _, f := range Formats() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Ext returns the file extension for artifacts of format f.
func (f Format) Ext() string {
	if f == FormatGraphviz {
		return ".gv.svg"
	}
	return "." + string(f)
}
