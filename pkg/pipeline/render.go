package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/atomtree/pkg/render/scene"
	"github.com/matzehuels/atomtree/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, sc *scene.Scene, opts Options) (map[string][]byte, error) {
	return renderFormats(ctx, sc, opts, opts.Formats)
}

func renderFormats(ctx context.Context, sc *scene.Scene, opts Options, formats []string) (map[string][]byte, error) {
	out := make([][]byte, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			data, err := renderFormat(ctx, sc, opts, format)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			out[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))
	for i, format := range formats {
		artifacts[format] = out[i]
	}
	return artifacts, nil
}

// renderFormat renders a single format.
func renderFormat(ctx context.Context, sc *scene.Scene, opts Options, format string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch sink.Format(format) {
	case sink.FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.Static {
			svgOpts = append(svgOpts, sink.WithStatic())
		}
		return sink.RenderSVG(sc, svgOpts...), nil
	case sink.FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
		if opts.Static {
			pngOpts = append(pngOpts, sink.WithPNGStatic())
		}
		return sink.RenderPNG(sc, pngOpts...)
	case sink.FormatJSON:
		return sink.RenderJSON(sc)
	case sink.FormatDOT:
		return []byte(sink.RenderDOT(sc)), nil
	case sink.FormatGraphviz:
		return sink.RenderGraphviz(ctx, sink.RenderDOT(sc))
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
