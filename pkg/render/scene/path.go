package scene

import (
	"strconv"
	"strings"

	"github.com/matzehuels/atomtree/pkg/core/layout"
)

// Op is a path command.
type Op byte

// Path commands.
const (
	MoveTo  Op = 'M'
	LineTo  Op = 'L'
	CubicTo Op = 'C'
	ArcTo   Op = 'A'
)

// Arc describes a circular arc around a center, in radians.
// Angles follow screen orientation: growing angles turn clockwise.
type Arc struct {
	Center layout.Point `json:"center"`
	Radius float64      `json:"radius"`
	Start  float64      `json:"start"`
	End    float64      `json:"end"`
}

// Sweep reports whether the arc turns clockwise.
func (a Arc) Sweep() bool { return a.End > a.Start }

// Segment is one path command. To is the end point of every command;
// C1 and C2 are the cubic control points.
type Segment struct {
	Op  Op           `json:"op"`
	To  layout.Point `json:"to"`
	C1  layout.Point `json:"c1,omitzero"`
	C2  layout.Point `json:"c2,omitzero"`
	Arc *Arc         `json:"arc,omitempty"`
}

// Path is a sequence of segments starting with a MoveTo.
type Path []Segment

// Start returns the first point of the path.
func (p Path) Start() layout.Point {
	if len(p) == 0 {
		return layout.Point{}
	}
	return p[0].To
}

// End returns the last point of the path.
func (p Path) End() layout.Point {
	if len(p) == 0 {
		return layout.Point{}
	}
	return p[len(p)-1].To
}

// String returns the path as SVG path data.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(s.Op))
		switch s.Op {
		case CubicTo:
			writePoints(&b, s.C1, s.C2, s.To)
		case ArcTo:
			r, sweep := 0.0, 0
			if s.Arc != nil {
				r = s.Arc.Radius
				if s.Arc.Sweep() {
					sweep = 1
				}
			}
			b.WriteString(num(r) + "," + num(r) + ",0,0," + strconv.Itoa(sweep) + ",")
			writePoints(&b, s.To)
		default:
			writePoints(&b, s.To)
		}
	}
	return b.String()
}

func writePoints(b *strings.Builder, pts ...layout.Point) {
	for i, pt := range pts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(num(pt.X))
		b.WriteByte(',')
		b.WriteString(num(pt.Y))
	}
}

// num formats v with at most three decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func move(x, y float64) Segment { return Segment{Op: MoveTo, To: layout.Point{X: x, Y: y}} }
func line(x, y float64) Segment { return Segment{Op: LineTo, To: layout.Point{X: x, Y: y}} }

func cubic(x1, y1, x2, y2, x, y float64) Segment {
	return Segment{
		Op: CubicTo,
		C1: layout.Point{X: x1, Y: y1},
		C2: layout.Point{X: x2, Y: y2},
		To: layout.Point{X: x, Y: y},
	}
}
