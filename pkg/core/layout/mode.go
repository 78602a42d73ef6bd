package layout

import "math"

// Kind selects the layout geometry.
type Kind string

// Layout kinds.
const (
	Radial    Kind = "radial"
	Cartesian Kind = "cartesian"
)

// Orientation selects the depth axis of a cartesian layout.
type Orientation string

// Orientations.
const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// MinTotalWidth is the smallest total frame width that is laid out.
const MinTotalWidth = 10.0

// Mode describes the geometry and the inner frame size of a layout.
type Mode struct {
	Kind        Kind        `json:"kind"`
	Orientation Orientation `json:"orientation,omitempty"`
	InnerWidth  float64     `json:"inner_width"`
	InnerHeight float64     `json:"inner_height"`
}

// RadialMode returns a radial mode for the given inner frame.
func RadialMode(innerWidth, innerHeight float64) Mode {
	return Mode{Kind: Radial, InnerWidth: innerWidth, InnerHeight: innerHeight}
}

// CartesianMode returns a cartesian mode for the given inner frame.
func CartesianMode(o Orientation, innerWidth, innerHeight float64) Mode {
	return Mode{Kind: Cartesian, Orientation: o, InnerWidth: innerWidth, InnerHeight: innerHeight}
}

// Valid reports whether the mode can be laid out without degenerate geometry.
func (m Mode) Valid() bool {
	return positive(m.InnerWidth) && positive(m.InnerHeight)
}

// IsRadial reports whether m is a radial layout.
func (m Mode) IsRadial() bool { return m.Kind == Radial }

// IsHorizontal reports whether m is a horizontal cartesian layout.
func (m Mode) IsHorizontal() bool { return m.Kind != Radial && m.Orientation == Horizontal }

// span returns the breadth span and the reach extent of the mode.
func (m Mode) span() (breadth, reach float64) {
	switch {
	case m.IsRadial():
		return 2 * math.Pi, math.Min(m.InnerWidth, m.InnerHeight) / 2
	case m.IsHorizontal():
		return m.InnerHeight, m.InnerWidth
	default:
		return m.InnerWidth, m.InnerHeight
	}
}

// origin returns the offset of layout coordinates inside the inner frame.
func (m Mode) origin() Point {
	if m.IsRadial() {
		return Point{X: m.InnerWidth / 2, Y: m.InnerHeight / 2}
	}
	return Point{}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Margin is the space between the frame border and the inner frame.
type Margin struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// Frame derives a mode for a total frame size with margins.
// It reports false when the frame is too small to lay out; callers render
// nothing in that case.
func Frame(kind Kind, o Orientation, totalWidth, totalHeight float64, m Margin) (Mode, bool) {
	if !(totalWidth >= MinTotalWidth) {
		return Mode{}, false
	}
	mode := Mode{
		Kind:        kind,
		Orientation: o,
		InnerWidth:  totalWidth - m.Left - m.Right,
		InnerHeight: totalHeight - m.Top - m.Bottom,
	}
	if kind == Radial {
		mode.Orientation = ""
	}
	return mode, mode.Valid()
}
