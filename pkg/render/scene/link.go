package scene

import (
	"math"

	"github.com/matzehuels/atomtree/pkg/core/layout"
)

// LinkStyle selects the link geometry.
type LinkStyle string

// Link styles.
const (
	Diagonal LinkStyle = "diagonal"
	Step     LinkStyle = "step"
	Curve    LinkStyle = "curve"
	Line     LinkStyle = "line"
)

// DefaultStepPercent is the bend position of step and curve links.
const DefaultStepPercent = 0.5

// Styles lists every link style.
func Styles() []LinkStyle { return []LinkStyle{Diagonal, Step, Curve, Line} }

// ParseLinkStyle returns the style named s.
func ParseLinkStyle(s string) (LinkStyle, bool) {
	for _, st := range Styles() {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// PathFunc computes the path of a link from source to target.
// percent positions the bend of step and curve links.
type PathFunc func(s, t *layout.Node, percent float64) Path

type linkKey struct {
	kind        layout.Kind
	style       LinkStyle
	orientation layout.Orientation
}

var linkTable = map[linkKey]PathFunc{
	{layout.Radial, Diagonal, ""}: radialDiagonal,
	{layout.Radial, Step, ""}:     radialStep,
	{layout.Radial, Curve, ""}:    curve,
	{layout.Radial, Line, ""}:     straight,

	{layout.Cartesian, Diagonal, layout.Vertical}: verticalDiagonal,
	{layout.Cartesian, Step, layout.Vertical}:     verticalStep,
	{layout.Cartesian, Curve, layout.Vertical}:    curve,
	{layout.Cartesian, Line, layout.Vertical}:     straight,

	{layout.Cartesian, Diagonal, layout.Horizontal}: horizontalDiagonal,
	{layout.Cartesian, Step, layout.Horizontal}:     horizontalStep,
	{layout.Cartesian, Curve, layout.Horizontal}:    curve,
	{layout.Cartesian, Line, layout.Horizontal}:     straight,
}

// LinkPath returns the path function for a mode and style.
// Radial modes ignore the orientation; unknown combinations report false.
func LinkPath(mode layout.Mode, style LinkStyle) (PathFunc, bool) {
	key := linkKey{kind: mode.Kind, style: style, orientation: mode.Orientation}
	if mode.IsRadial() {
		key.orientation = ""
	} else if key.orientation == "" {
		key.orientation = layout.Vertical
	}
	fn, ok := linkTable[key]
	return fn, ok
}

func straight(s, t *layout.Node, _ float64) Path {
	return Path{move(s.X, s.Y), line(t.X, t.Y)}
}

func verticalDiagonal(s, t *layout.Node, _ float64) Path {
	my := (s.Y + t.Y) / 2
	return Path{move(s.X, s.Y), cubic(s.X, my, t.X, my, t.X, t.Y)}
}

func horizontalDiagonal(s, t *layout.Node, _ float64) Path {
	mx := (s.X + t.X) / 2
	return Path{move(s.X, s.Y), cubic(mx, s.Y, mx, t.Y, t.X, t.Y)}
}

func radialDiagonal(s, t *layout.Node, _ float64) Path {
	mr := (s.Radius + t.Radius) / 2
	x0, y0 := layout.PointRadial(s.Breadth, s.Radius)
	x1, y1 := layout.PointRadial(s.Breadth, mr)
	x2, y2 := layout.PointRadial(t.Breadth, mr)
	x3, y3 := layout.PointRadial(t.Breadth, t.Radius)
	return Path{move(x0, y0), cubic(x1, y1, x2, y2, x3, y3)}
}

func verticalStep(s, t *layout.Node, percent float64) Path {
	my := s.Y + (t.Y-s.Y)*percent
	return Path{move(s.X, s.Y), line(s.X, my), line(t.X, my), line(t.X, t.Y)}
}

func horizontalStep(s, t *layout.Node, percent float64) Path {
	mx := s.X + (t.X-s.X)*percent
	return Path{move(s.X, s.Y), line(mx, s.Y), line(mx, t.Y), line(t.X, t.Y)}
}

// radialStep follows the source ring to the target angle, then runs out
// along the target's ray.
func radialStep(s, t *layout.Node, _ float64) Path {
	sa, ta := s.Breadth-math.Pi/2, t.Breadth-math.Pi/2
	sr, tr := s.Radius, t.Radius
	sweep := ta > sa
	if math.Abs(ta-sa) > math.Pi {
		sweep = ta <= sa
	}
	end := ta
	switch {
	case sweep && end < sa:
		end += 2 * math.Pi
	case !sweep && end > sa:
		end -= 2 * math.Pi
	}
	sc, ss := math.Cos(sa), math.Sin(sa)
	tc, ts := math.Cos(ta), math.Sin(ta)
	return Path{
		move(sr*sc, sr*ss),
		{Op: ArcTo, To: layout.Point{X: sr * tc, Y: sr * ts}, Arc: &Arc{Radius: sr, Start: sa, End: end}},
		line(tr*tc, tr*ts),
	}
}

func curve(s, t *layout.Node, percent float64) Path {
	dx, dy := t.X-s.X, t.Y-s.Y
	ix := percent * (dx + dy)
	iy := percent * (dy - dx)
	return Path{move(s.X, s.Y), cubic(s.X+ix, s.Y+iy, t.X+iy, t.Y-ix, t.X, t.Y)}
}
