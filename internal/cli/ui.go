package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/atomtree/pkg/pipeline"
)

// Terminal colors. Node colors follow the scene palette: pink roots, teal
// dependents, purple components that read atoms.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorRoot   = lipgloss.Color("168")
	colorNode   = lipgloss.Color("42")
	colorAtoms  = lipgloss.Color("98")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleLabel       = lipgloss.NewStyle().Foreground(colorMuted).Width(10)

	styleRootNode  = lipgloss.NewStyle().Bold(true).Foreground(colorRoot)
	styleNode      = lipgloss.NewStyle().Foreground(colorNode)
	styleAtomsNode = lipgloss.NewStyle().Foreground(colorAtoms)
	styleMarker    = lipgloss.NewStyle().Foreground(colorWarn)

	styleTableHead  = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	styleTableFrame = lipgloss.NewStyle().Foreground(colorFaint)
)

// status line prefixes
var (
	markOK   = lipgloss.NewStyle().Foreground(colorOK).Render("✓")
	markFail = lipgloss.NewStyle().Foreground(colorFail).Render("✗")
	markWarn = lipgloss.NewStyle().Foreground(colorWarn).Render("!")
	markInfo = lipgloss.NewStyle().Foreground(colorMuted).Render("›")
)

// report writes the human-readable output of a command.
type report struct {
	w io.Writer
}

func newReport(w io.Writer) report { return report{w: w} }

func (r report) line(mark, format string, args ...any) {
	fmt.Fprintln(r.w, mark+" "+fmt.Sprintf(format, args...))
}

func (r report) success(format string, args ...any) { r.line(markOK, format, args...) }

func (r report) failure(format string, args ...any) { r.line(markFail, format, args...) }

func (r report) info(format string, args ...any) { r.line(markInfo, format, args...) }

func (r report) warn(format string, args ...any) {
	r.line(markWarn, "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// detail writes an indented secondary line.
func (r report) detail(format string, args ...any) {
	fmt.Fprintln(r.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file lists a written artifact.
func (r report) file(path string) {
	fmt.Fprintln(r.w, "  "+StyleDim.Render("→")+" "+path)
}

// field writes a labeled value.
func (r report) field(label, value string) {
	fmt.Fprintln(r.w, styleLabel.Render(label)+" "+value)
}

// summary writes the tree size and where the artifacts came from.
func (r report) summary(res *pipeline.Result) {
	parts := []string{
		fmt.Sprintf("%d nodes", res.Stats.NodeCount),
		fmt.Sprintf("%d links", res.Stats.LinkCount),
		fmt.Sprintf("depth %d", res.Stats.Depth),
	}
	switch ci := res.CacheInfo; {
	case ci.RenderHit:
		parts = append(parts, "cached")
	case ci.Hits > 0:
		parts = append(parts, fmt.Sprintf("%d cached, %d rendered", ci.Hits, ci.Misses))
	default:
		parts = append(parts, "rendered")
	}
	fmt.Fprintln(r.w, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// hint suggests a follow-up command.
func (r report) hint(description, command string) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, StyleDim.Render(description+":")+" "+StyleHighlight.Render(command))
}
