package scene

import "github.com/matzehuels/atomtree/pkg/core/tree"

// Flavor selects the palette of a scene.
type Flavor string

// Flavors.
const (
	AtomNetwork   Flavor = "atoms"
	ComponentTree Flavor = "components"
)

// Colors used by the built-in palette.
const (
	ColorBackground    = "#202020"
	ColorLink          = "#7c7c7c"
	ColorText          = "#e6e6e6"
	ColorRootFrom      = "#de638a"
	ColorRootTo        = "#d13164"
	ColorDependentFrom = "#41b69c"
	ColorDependentTo   = "#2d806d"
	ColorWithAtoms     = "#7f5dc0"
	ColorWithoutAtoms  = "#1cb5c9"
	ColorBoxStroke     = "black"
)

// Gradient IDs.
const (
	GradientRoot      = "root-gradient"
	GradientDependent = "dependent-gradient"
)

// Gradient is a linear gradient referenced by shapes.
type Gradient struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Background is the rounded frame behind the scene.
type Background struct {
	Fill   string  `json:"fill"`
	Radius float64 `json:"radius"`
}

// Font sizes.
const (
	FontNetwork  = 13.0
	FontRootBox  = 12.0
	FontChildBox = 11.0
)

// style is the per-node paint.
type style struct {
	fill     string
	gradient string
	stroke   string
	text     string
	fontSize float64
	bold     bool
}

func gradients(f Flavor) []Gradient {
	gs := []Gradient{{ID: GradientRoot, From: ColorRootFrom, To: ColorRootTo}}
	if f != ComponentTree {
		gs = append(gs, Gradient{ID: GradientDependent, From: ColorDependentFrom, To: ColorDependentTo})
	}
	return gs
}

func paint(f Flavor, n *tree.Node, depth int) style {
	if f == ComponentTree {
		switch {
		case depth == 0:
			return style{fill: ColorRootFrom, gradient: GradientRoot, text: "white", fontSize: FontRootBox}
		case len(n.Tags) > 0:
			return style{fill: ColorWithAtoms, stroke: ColorBoxStroke, text: "white", fontSize: FontChildBox}
		default:
			return style{fill: ColorWithoutAtoms, stroke: ColorBoxStroke, text: "black", fontSize: FontChildBox}
		}
	}
	s := style{fill: ColorDependentFrom, gradient: GradientDependent, text: ColorText, fontSize: FontNetwork, bold: true}
	if depth == 0 {
		s.fill, s.gradient = ColorRootFrom, GradientRoot
	}
	return s
}
