package sink

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/atomtree/pkg/render/scene"
)

// pointsPerInch converts scene units to Graphviz inches.
const pointsPerInch = 72.0

// RenderDOT converts the scene to Graphviz DOT with every node pinned at its
// scene position. Graphviz's y axis points up, so y is negated.
func RenderDOT(sc *scene.Scene) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", sc.Background.Fill)
	fmt.Fprintf(&buf, "  node [style=filled, fontname=%q, fixedsize=true];\n", "Arial")
	buf.WriteString("  edge [arrowhead=none];\n")

	for _, s := range sc.Shapes {
		attrs := []string{
			"label=" + strconv.Quote(s.Label),
			fmt.Sprintf("pos=\"%s,%s!\"", num(s.X), num(-s.Y)),
			"fillcolor=" + strconv.Quote(s.Fill),
			"fontcolor=" + strconv.Quote(s.TextColor),
			"fontsize=" + num(s.FontSize),
		}
		if s.Kind == scene.Circle {
			d := 2 * s.Radius / pointsPerInch
			attrs = append(attrs, "shape=circle", "width="+num(d), "height="+num(d))
		} else {
			attrs = append(attrs, "shape=box", `style="rounded,filled"`,
				"width="+num(s.Width/pointsPerInch), "height="+num(s.Height/pointsPerInch))
		}
		if s.Stroke != "" {
			attrs = append(attrs, "color="+strconv.Quote(s.Stroke))
		} else {
			attrs = append(attrs, "penwidth=0")
		}
		if s.Tooltip != "" {
			attrs = append(attrs, "tooltip="+strconv.Quote(s.Tooltip))
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", strconv.Quote(string(s.Path)), strings.Join(attrs, ", "))
	}
	for _, l := range sc.Links {
		fmt.Fprintf(&buf, "  %s -> %s [color=%q];\n", strconv.Quote(string(l.Source)), strconv.Quote(string(l.Target)), l.Stroke)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderGraphviz renders DOT source to SVG in-process.
func RenderGraphviz(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
