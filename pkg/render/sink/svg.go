package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/atomtree/pkg/core/viewport"
	"github.com/matzehuels/atomtree/pkg/fonts"
	"github.com/matzehuels/atomtree/pkg/render/scene"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	static   bool
	tooltips bool
}

// WithStatic drops the viewport transform, rendering the scene unzoomed.
func WithStatic() SVGOption { return func(r *svgRenderer) { r.static = true } }

// WithoutTooltips omits <title> elements.
func WithoutTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = false } }

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(sc *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{tooltips: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	w, h := px(sc.Width), px(sc.Height)
	canvas.Start(w, h)
	if sc.Title != "" {
		canvas.Title(sc.Title)
	}

	canvas.Def()
	for _, g := range sc.Gradients {
		canvas.LinearGradient(g.ID, 0, 0, 100, 0, []svg.Offcolor{
			{Offset: 0, Color: g.From, Opacity: 1},
			{Offset: 100, Color: g.To, Opacity: 1},
		})
	}
	canvas.DefEnd()

	canvas.Roundrect(0, 0, w, h, px(sc.Background.Radius), px(sc.Background.Radius), "fill:"+sc.Background.Fill)

	transform := sc.Transform
	if r.static {
		transform = viewport.Identity()
	}
	off := sc.Offset()
	canvas.Gtransform(transform.String())
	canvas.Gtransform(translate(off.X, off.Y))

	for _, l := range sc.Links {
		canvas.Path(l.D.String(), fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", l.Stroke))
	}
	for _, s := range sc.Shapes {
		r.shape(canvas, s)
	}

	canvas.Gend()
	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}

func (r svgRenderer) shape(canvas *svg.SVG, s scene.Shape) {
	canvas.Gtransform(translate(s.X, s.Y))
	if r.tooltips && s.Tooltip != "" {
		canvas.Title(s.Tooltip)
	}

	fill := s.Fill
	if s.Gradient != "" {
		fill = "url(#" + s.Gradient + ")"
	}
	style := "fill:" + fill
	if s.Stroke != "" {
		style += ";stroke:" + s.Stroke + ";stroke-width:1"
	}
	if s.Collapsed {
		style += ";stroke-dasharray:3,2"
	}

	switch s.Kind {
	case scene.Circle:
		canvas.Circle(0, 0, px(s.Radius), style)
	default:
		w, h := px(s.Width), px(s.Height)
		rx := px(scene.BoxCornerRadius)
		canvas.Roundrect(-w/2, -h/2, w, h, rx, rx, style)
	}

	text := fmt.Sprintf("fill:%s;font-size:%gpx;font-family:%s;text-anchor:middle;pointer-events:none", s.TextColor, s.FontSize, fonts.Family)
	if s.Bold {
		text += ";font-weight:bold"
	}
	canvas.Text(0, 0, s.Label, text, `dy=".33em"`)
	canvas.Gend()
}

func px(v float64) int { return int(math.Round(v)) }

func translate(x, y float64) string {
	return "translate(" + strconv.FormatFloat(x, 'f', 2, 64) + "," + strconv.FormatFloat(y, 'f', 2, 64) + ")"
}
