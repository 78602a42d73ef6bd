// Package fonts provides the font faces used for raster rendering.
//
// Faces come from the Go font family bundled with golang.org/x/image, so
// PNG output needs no system fonts. Parsed fonts are cached; faces are cheap
// to create per size.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Family is the font family written into SVG output.
const Family = "Arial"

var (
	parseOnce sync.Once
	regular   *opentype.Font
	bold      *opentype.Font
	parseErr  error
)

func parse() {
	regular, parseErr = opentype.Parse(goregular.TTF)
	if parseErr != nil {
		return
	}
	bold, parseErr = opentype.Parse(gobold.TTF)
}

// Face returns a face of the given size in points at 72 DPI.
func Face(size float64, isBold bool) (font.Face, error) {
	parseOnce.Do(parse)
	if parseErr != nil {
		return nil, parseErr
	}
	f := regular
	if isBold {
		f = bold
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
