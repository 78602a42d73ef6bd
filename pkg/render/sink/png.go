package sink

import (
	"bytes"
	"fmt"

	"git.sr.ht/~sbinet/gg"

	"github.com/matzehuels/atomtree/pkg/core/viewport"
	"github.com/matzehuels/atomtree/pkg/fonts"
	"github.com/matzehuels/atomtree/pkg/render/scene"
)

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale  float64
	static bool
}

// WithScale sets the pixel density (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGStatic drops the viewport transform.
func WithPNGStatic() PNGOption { return func(r *pngRenderer) { r.static = true } }

// RenderPNG rasterizes the scene.
func RenderPNG(sc *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := px(sc.Width*r.scale), px(sc.Height*r.scale)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: empty canvas %dx%d", w, h)
	}
	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)

	dc.SetColor(parseColor(sc.Background.Fill))
	dc.DrawRoundedRectangle(0, 0, sc.Width, sc.Height, sc.Background.Radius)
	dc.Fill()

	t := sc.Transform
	if r.static {
		t = viewport.Identity()
	}
	off := sc.Offset()
	dc.Push()
	dc.Translate(t.TranslateX, t.TranslateY)
	dc.Scale(t.ScaleX, t.ScaleY)
	dc.Translate(off.X, off.Y)

	dc.SetLineWidth(1)
	for _, l := range sc.Links {
		tracePath(dc, l.D)
		dc.SetColor(parseColor(l.Stroke))
		dc.Stroke()
	}

	gradients := make(map[string]scene.Gradient, len(sc.Gradients))
	for _, g := range sc.Gradients {
		gradients[g.ID] = g
	}
	for _, s := range sc.Shapes {
		if err := drawShape(dc, s, gradients); err != nil {
			return nil, err
		}
	}
	dc.Pop()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// tracePath replays path segments on the context.
func tracePath(dc *gg.Context, p scene.Path) {
	dc.NewSubPath()
	for _, seg := range p {
		switch seg.Op {
		case scene.MoveTo:
			dc.MoveTo(seg.To.X, seg.To.Y)
		case scene.LineTo:
			dc.LineTo(seg.To.X, seg.To.Y)
		case scene.CubicTo:
			dc.CubicTo(seg.C1.X, seg.C1.Y, seg.C2.X, seg.C2.Y, seg.To.X, seg.To.Y)
		case scene.ArcTo:
			if a := seg.Arc; a != nil {
				dc.DrawArc(a.Center.X, a.Center.Y, a.Radius, a.Start, a.End)
			} else {
				dc.LineTo(seg.To.X, seg.To.Y)
			}
		}
	}
}

func drawShape(dc *gg.Context, s scene.Shape, gradients map[string]scene.Gradient) error {
	var left, right float64
	switch s.Kind {
	case scene.Circle:
		dc.DrawCircle(s.X, s.Y, s.Radius)
		left, right = s.X-s.Radius, s.X+s.Radius
	default:
		dc.DrawRoundedRectangle(s.X-s.Width/2, s.Y-s.Height/2, s.Width, s.Height, scene.BoxCornerRadius)
		left, right = s.X-s.Width/2, s.X+s.Width/2
	}

	if g, ok := gradients[s.Gradient]; ok {
		// Gradients are resolved in device space.
		x0, y0 := dc.TransformPoint(left, s.Y)
		x1, y1 := dc.TransformPoint(right, s.Y)
		grad := gg.NewLinearGradient(x0, y0, x1, y1)
		grad.AddColorStop(0, parseColor(g.From))
		grad.AddColorStop(1, parseColor(g.To))
		dc.SetFillStyle(grad)
	} else {
		dc.SetColor(parseColor(s.Fill))
	}
	if s.Stroke != "" {
		dc.FillPreserve()
		dc.SetColor(parseColor(s.Stroke))
		if s.Collapsed {
			dc.SetDash(3, 2)
		}
		dc.Stroke()
		dc.SetDash()
	} else {
		dc.Fill()
	}

	face, err := fonts.Face(s.FontSize, s.Bold)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	dc.SetFontFace(face)
	dc.SetColor(parseColor(s.TextColor))
	dc.DrawStringAnchored(s.Label, s.X, s.Y, 0.5, 0.35)
	return nil
}
