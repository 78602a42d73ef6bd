// Package sizing derives node sizes from label length.
//
// Both strategies are step functions of the label's display width: a base
// offset that grows with the length bracket plus the length itself. Radial
// layouts draw circles, so [Radius] uses smaller offsets than the box
// [Width] used by cartesian layouts.
package sizing

import "github.com/mattn/go-runewidth"

// Box heights for cartesian nodes.
const (
	BoxHeight     = 20.0
	RootBoxHeight = 22.0
)

// Func maps a label to a size.
type Func func(label string) float64

type step struct {
	below  int // exclusive upper bound on length; 0 marks the last step
	offset float64
}

var (
	radiusSteps = []step{{5, 20}, {10, 25}, {15, 40}, {20, 50}, {0, 70}}
	widthSteps  = []step{{5, 30}, {10, 40}, {0, 70}}
)

// Length returns the display width of label in terminal cells.
// Wide runes count twice, so CJK labels get room for their glyphs.
func Length(label string) int {
	return runewidth.StringWidth(label)
}

// Radius returns the circle radius for a node in a radial layout.
func Radius(label string) float64 {
	return apply(radiusSteps, Length(label))
}

// Width returns the box width for a node in a cartesian layout.
func Width(label string) float64 {
	return apply(widthSteps, Length(label))
}

// Height returns the box height for a cartesian node at depth.
func Height(depth int) float64 {
	if depth == 0 {
		return RootBoxHeight
	}
	return BoxHeight
}

func apply(steps []step, n int) float64 {
	for _, s := range steps {
		if s.below == 0 || n < s.below {
			return float64(n) + s.offset
		}
	}
	return float64(n)
}
