package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/atomtree/pkg/core/history"
	"github.com/matzehuels/atomtree/pkg/core/interaction"
	"github.com/matzehuels/atomtree/pkg/core/layout"
	"github.com/matzehuels/atomtree/pkg/core/viewport"
	"github.com/matzehuels/atomtree/pkg/observability"
	"github.com/matzehuels/atomtree/pkg/render/scene"
)

// Explore styles
var (
	exploreBarStyle = lipgloss.NewStyle().Foreground(colorMuted)
	exploreTipStyle = lipgloss.NewStyle().Foreground(colorAccent)
)

// Rows taken by the header and footer around the canvas.
const (
	exploreHeaderRows = 1
	exploreFooterRows = 2
)

const (
	zoomStep  = 1.2
	wheelZoom = 1.1
	panCells  = 4
)

// =============================================================================
// Key Bindings
// =============================================================================

type exploreKeyMap struct {
	Prev, Next, First, Last key.Binding
	ZoomIn, ZoomOut, Reset  key.Binding
	Up, Down, Left, Right   key.Binding
	Toggle, Yank            key.Binding
	Layout, Orient, Links   key.Binding
	Quit                    key.Binding
}

func defaultExploreKeys() exploreKeyMap {
	return exploreKeyMap{
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		First:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Last:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		Reset:   key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pan up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan down")),
		Left:    key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "pan left")),
		Right:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "pan right")),
		Toggle:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎", "collapse")),
		Yank:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
		Layout:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "radial")),
		Orient:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "orient")),
		Links:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "links")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k exploreKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Toggle, k.ZoomIn, k.ZoomOut, k.Reset, k.Layout, k.Links, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k exploreKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.ZoomIn, k.ZoomOut, k.Reset},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Yank, k.Layout, k.Orient, k.Links, k.Quit},
	}
}

// =============================================================================
// ExploreModel - Interactive tree browser
// =============================================================================

// reloadMsg carries a history reloaded from disk.
type reloadMsg struct{ h *history.History }

// watchErrMsg reports a failed reload.
type watchErrMsg struct{ err error }

// ExploreModel is the bubbletea model that drives an interaction session
// from keyboard and mouse input.
type ExploreModel struct {
	Session *interaction.Session
	Source  string
	Width   int
	Height  int

	ctx     context.Context
	keys    exploreKeyMap
	help    help.Model
	copy    func(string) error
	reloads <-chan *history.History
	errs    <-chan error
	status  string
}

// NewExploreModel creates an explore model over s. Source is shown in the
// header and passed to watch hooks.
func NewExploreModel(ctx context.Context, s *interaction.Session, source string) ExploreModel {
	return ExploreModel{
		Session: s,
		Source:  source,
		ctx:     ctx,
		keys:    defaultExploreKeys(),
		help:    help.New(),
		copy:    clipboard.WriteAll,
	}
}

// WithReloads makes the model apply every history received on ch and
// report every error received on errs.
func (m ExploreModel) WithReloads(ch <-chan *history.History, errs <-chan error) ExploreModel {
	m.reloads, m.errs = ch, errs
	return m
}

func (m ExploreModel) Init() tea.Cmd {
	return m.waitForReload()
}

// waitForReload blocks on the next reloaded history or watch error.
func (m ExploreModel) waitForReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	reloads, errs := m.reloads, m.errs
	return func() tea.Msg {
		select {
		case h, ok := <-reloads:
			if !ok {
				return nil
			}
			return reloadMsg{h: h}
		case err := <-errs:
			return watchErrMsg{err: err}
		}
	}
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.help.Width = msg.Width
		cols, rows := m.canvasSize()
		m.Session.Resize(float64(cols)*cellWidth, float64(rows)*cellHeight)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.BlurMsg:
		m.Session.Viewport().PointerLeave()
	case reloadMsg:
		m.Session.SetHistory(msg.h)
		m.status = fmt.Sprintf("reloaded %d snapshots", msg.h.Len())
		observability.Watch().OnReload(m.context(), m.Source, msg.h.Len())
		return m, m.waitForReload()
	case watchErrMsg:
		m.status = "reload failed: " + msg.err.Error()
		observability.Watch().OnWatchError(m.context(), m.Source, msg.err)
		return m, m.waitForReload()
	}
	return m, nil
}

func (m ExploreModel) context() context.Context {
	if m.ctx == nil {
		return context.Background()
	}
	return m.ctx
}

func (m ExploreModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.Session
	f := s.Frame()
	vp := s.Viewport()
	cols, rows := m.canvasSize()
	center := viewport.Point{X: float64(cols) * cellWidth / 2, Y: float64(rows) * cellHeight / 2}
	opts := s.Options()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Prev):
		s.SelectSnapshot(f.Snapshot - 1)
	case key.Matches(msg, m.keys.Next):
		s.SelectSnapshot(f.Snapshot + 1)
	case key.Matches(msg, m.keys.First):
		s.SelectSnapshot(0)
	case key.Matches(msg, m.keys.Last):
		if h := s.History(); h != nil {
			s.SelectSnapshot(h.Len() - 1)
		}
	case key.Matches(msg, m.keys.ZoomIn):
		vp.ZoomBy(zoomStep, center)
	case key.Matches(msg, m.keys.ZoomOut):
		vp.ZoomBy(1/zoomStep, center)
	case key.Matches(msg, m.keys.Reset):
		vp.Reset()
	case key.Matches(msg, m.keys.Up):
		vp.Pan(0, panCells*cellHeight)
	case key.Matches(msg, m.keys.Down):
		vp.Pan(0, -panCells*cellHeight)
	case key.Matches(msg, m.keys.Left):
		vp.Pan(panCells*cellWidth, 0)
	case key.Matches(msg, m.keys.Right):
		vp.Pan(-panCells*cellWidth, 0)
	case key.Matches(msg, m.keys.Toggle):
		if f.Tooltip.Open {
			s.Click(f.Tooltip.Path)
		}
	case key.Matches(msg, m.keys.Yank):
		m.status = m.yank(f)
	case key.Matches(msg, m.keys.Layout):
		s.SetView(toggleKind(opts.Kind), opts.Orientation, opts.LinkStyle)
	case key.Matches(msg, m.keys.Orient):
		s.SetView(opts.Kind, toggleOrientation(opts.Orientation), opts.LinkStyle)
	case key.Matches(msg, m.keys.Links):
		s.SetView(opts.Kind, opts.Orientation, nextLinkStyle(opts.LinkStyle))
	}
	return m, nil
}

// yank copies the hovered node's path, or the root's when nothing is hovered.
func (m ExploreModel) yank(f *interaction.Frame) string {
	if f == nil || f.Tree == nil {
		return ""
	}
	p := f.Tree.Path
	if f.Tooltip.Open {
		p = f.Tooltip.Path
	}
	if m.copy == nil {
		return "clipboard unavailable"
	}
	if err := m.copy(string(p)); err != nil {
		return "copy failed: " + err.Error()
	}
	return "copied " + string(p)
}

// handleMouse maps terminal cells to screen points: a press on a node
// toggles it, a press elsewhere starts a drag, and plain motion hovers.
// Moving off the canvas ends a drag.
func (m ExploreModel) handleMouse(msg tea.MouseMsg) {
	s := m.Session
	vp := s.Viewport()
	p := pointOf(msg.X, msg.Y-exploreHeaderRows)

	switch {
	case vp.Dragging() && !m.onCanvas(msg.X, msg.Y):
		vp.PointerLeave()
	case msg.Button == tea.MouseButtonWheelUp:
		vp.ZoomBy(wheelZoom, p)
	case msg.Button == tea.MouseButtonWheelDown:
		vp.ZoomBy(1/wheelZoom, p)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if path, ok := s.HitTest(p); ok {
			s.Click(path)
			return
		}
		vp.DragStart(p)
	case msg.Action == tea.MouseActionRelease:
		vp.DragEnd()
	case msg.Action == tea.MouseActionMotion && vp.Dragging():
		vp.DragMove(p)
	case msg.Action == tea.MouseActionMotion:
		if path, ok := s.HitTest(p); ok {
			s.Hover(path, p)
		} else {
			s.Unhover()
		}
	}
}

// onCanvas reports whether the terminal cell (x, y) lies on the canvas.
func (m ExploreModel) onCanvas(x, y int) bool {
	cols, rows := m.canvasSize()
	return x >= 0 && x < cols && y >= exploreHeaderRows && y < exploreHeaderRows+rows
}

func (m ExploreModel) canvasSize() (cols, rows int) {
	return max(m.Width, 0), max(m.Height-exploreHeaderRows-exploreFooterRows, 0)
}

func (m ExploreModel) View() string {
	f := m.Session.Frame()
	cols, rows := m.canvasSize()

	var b strings.Builder
	b.WriteString(m.header(f))
	b.WriteString("\n")

	cv := newCanvas(cols, rows)
	if f != nil {
		hover := ""
		if f.Tooltip.Open {
			hover = string(f.Tooltip.Path)
		}
		cv.draw(f.Scene, f.Transform, hover)
	}
	b.WriteString(cv.String())
	b.WriteString("\n")

	b.WriteString(m.footer(f))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m ExploreModel) header(f *interaction.Frame) string {
	title := StyleTitle.Render(m.Source)
	if f == nil {
		return title
	}
	parts := []string{title}
	if h := m.Session.History(); h != nil {
		parts = append(parts, fmt.Sprintf("snapshot %s/%d", StyleNumber.Render(fmt.Sprint(f.Snapshot+1)), h.Len()))
	}
	opts := m.Session.Options()
	view := string(opts.Kind)
	if opts.Kind == layout.Cartesian {
		view += " " + string(opts.Orientation)
	}
	parts = append(parts,
		fmt.Sprintf("%d nodes", len(f.Layout.Nodes)),
		view,
		string(opts.LinkStyle),
		fmt.Sprintf("%.0f%%", f.Transform.ScaleX*100),
	)
	return strings.Join(parts, exploreBarStyle.Render(" · "))
}

func (m ExploreModel) footer(f *interaction.Frame) string {
	switch {
	case f != nil && f.Tooltip.Open:
		return exploreTipStyle.Render(strings.ReplaceAll(f.Tooltip.Text, "\n", "  "))
	case f != nil && f.Scene.Empty():
		return StyleWarning.Render("nothing to draw: window too small or tree empty")
	case m.status != "":
		return exploreBarStyle.Render(m.status)
	}
	return ""
}

// =============================================================================
// Helpers
// =============================================================================

func toggleKind(k layout.Kind) layout.Kind {
	if k == layout.Radial {
		return layout.Cartesian
	}
	return layout.Radial
}

func toggleOrientation(o layout.Orientation) layout.Orientation {
	if o == layout.Horizontal {
		return layout.Vertical
	}
	return layout.Horizontal
}

func nextLinkStyle(cur scene.LinkStyle) scene.LinkStyle {
	styles := scene.Styles()
	for i, s := range styles {
		if s == cur {
			return styles[(i+1)%len(styles)]
		}
	}
	return styles[0]
}
