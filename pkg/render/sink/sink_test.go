package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/atomtree/pkg/core/layout"
	"github.com/matzehuels/atomtree/pkg/core/tree"
	"github.com/matzehuels/atomtree/pkg/core/viewport"
	"github.com/matzehuels/atomtree/pkg/render/scene"
)

func testTree() *tree.Node {
	root := tree.RootPath("App")
	list := root.Child("TodoList")
	return &tree.Node{
		Name: "App", Path: root, Expanded: true,
		Children: []*tree.Node{
			{Name: "Header", Path: root.Child("Header"), Expanded: true},
			{Name: "TodoList", Path: list, Expanded: true, Tags: []string{"todoListState"},
				Children: []*tree.Node{{Name: "Item <1>", Path: list.Child("Item <1>"), Expanded: true}}},
		},
	}
}

func testScene(t *testing.T, kind layout.Kind, style scene.LinkStyle, flavor scene.Flavor) *scene.Scene {
	t.Helper()
	margin := layout.Margin{Top: 30, Right: 30, Bottom: 70, Left: 30}
	mode, ok := layout.Frame(kind, layout.Vertical, 400, 300, margin)
	if !ok {
		t.Fatalf("Frame rejected test size")
	}
	return scene.Build(layout.Compute(testTree(), mode), scene.Options{
		Title:       "test",
		Width:       400,
		Height:      300,
		Margin:      margin,
		LinkStyle:   style,
		StepPercent: 0.5,
		Flavor:      flavor,
		Transform:   viewport.DefaultOptions().Initial,
	})
}

func TestRenderSVG(t *testing.T) {
	sc := testScene(t, layout.Radial, scene.Step, scene.AtomNetwork)
	out := string(RenderSVG(sc))

	for _, want := range []string{
		`<svg`,
		`width="400"`,
		`id="root-gradient"`,
		`id="dependent-gradient"`,
		`matrix(0.9, 0, 0, 0.9, 20, 10)`,
		`fill:url(#root-gradient)`,
		`<circle`,
		` A`,
		`<title>TodoList`,
		`Item &lt;1&gt;`,
		`font-weight:bold`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Count(out, "<path") != len(sc.Links) {
		t.Errorf("SVG has %d paths, want %d", strings.Count(out, "<path"), len(sc.Links))
	}
}

func TestRenderSVGOptions(t *testing.T) {
	sc := testScene(t, layout.Cartesian, scene.Diagonal, scene.ComponentTree)

	out := string(RenderSVG(sc, WithStatic(), WithoutTooltips()))
	if !strings.Contains(out, "matrix(1, 0, 0, 1, 0, 0)") {
		t.Errorf("WithStatic should render the identity transform")
	}
	if strings.Contains(out, "<title>TodoList") {
		t.Errorf("WithoutTooltips still rendered node tooltips")
	}
	if !strings.Contains(out, "<rect") || strings.Contains(out, "<circle") {
		t.Errorf("component tree should draw boxes only")
	}
}

func TestRenderSVGEmptyScene(t *testing.T) {
	sc := scene.Build(layout.Result{}, scene.Options{Width: 8, Height: 8})
	out := string(RenderSVG(sc))
	if !strings.Contains(out, "<svg") || strings.Contains(out, "<circle") {
		t.Errorf("empty scene should render only its frame")
	}
}

func TestRenderPNG(t *testing.T) {
	for _, kind := range []layout.Kind{layout.Radial, layout.Cartesian} {
		t.Run(string(kind), func(t *testing.T) {
			sc := testScene(t, kind, scene.Step, scene.ComponentTree)
			data, err := RenderPNG(sc, WithScale(1.5))
			if err != nil {
				t.Fatalf("RenderPNG: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 600 || b.Dy() != 450 {
				t.Errorf("image size = %dx%d, want 600x450", b.Dx(), b.Dy())
			}
		})
	}
}

func TestRenderPNGEmptyCanvas(t *testing.T) {
	if _, err := RenderPNG(&scene.Scene{}); err == nil {
		t.Errorf("RenderPNG of a zero-size scene should fail")
	}
}

func TestRenderJSON(t *testing.T) {
	sc := testScene(t, layout.Cartesian, scene.Curve, scene.ComponentTree)
	data, err := RenderJSON(sc)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out scene.Scene
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if len(out.Shapes) != len(sc.Shapes) || len(out.Links) != len(sc.Links) {
		t.Errorf("round trip lost elements: %d/%d shapes, %d/%d links", len(out.Shapes), len(sc.Shapes), len(out.Links), len(sc.Links))
	}
	if out.Links[0].D.String() != sc.Links[0].D.String() {
		t.Errorf("link path = %q, want %q", out.Links[0].D.String(), sc.Links[0].D.String())
	}
	if out.Transform != sc.Transform {
		t.Errorf("Transform = %+v, want %+v", out.Transform, sc.Transform)
	}
}

func TestRenderDOT(t *testing.T) {
	sc := testScene(t, layout.Cartesian, scene.Line, scene.ComponentTree)
	dot := RenderDOT(sc)

	for _, want := range []string{
		"layout=neato",
		`"App" [label="App"`,
		`"App/TodoList" -> "App/TodoList/Item%20%3C1%3E"`,
		`shape=box`,
		`tooltip="TodoList\nAtoms: todoListState"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, "!\""); got != len(sc.Shapes) {
		t.Errorf("%d pinned nodes, want %d", got, len(sc.Shapes))
	}
}

func TestRenderGraphviz(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	sc := testScene(t, layout.Radial, scene.Line, scene.AtomNetwork)
	out, err := RenderGraphviz(context.Background(), RenderDOT(sc))
	if err != nil {
		t.Fatalf("RenderGraphviz: %v", err)
	}
	if !bytes.Contains(out, []byte("<svg")) {
		t.Errorf("output is not SVG")
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		if got, ok := ParseFormat(string(f)); !ok || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, got, ok)
		}
	}
	if _, ok := ParseFormat("pdf"); ok {
		t.Errorf("ParseFormat(pdf) reported ok")
	}
	if FormatGraphviz.Ext() != ".gv.svg" || FormatPNG.Ext() != ".png" {
		t.Errorf("unexpected extensions")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
	}{
		{"#202020", 0x20, 0x20, 0x20},
		{"#fff", 0xff, 0xff, 0xff},
		{"white", 0xff, 0xff, 0xff},
		{"BLACK", 0, 0, 0},
		{"#zzzzzz", 0, 0, 0},
		{"nonsense", 0, 0, 0},
	}
	for _, tt := range tests {
		c := parseColor(tt.in)
		if c.R != tt.r || c.G != tt.g || c.B != tt.b {
			t.Errorf("parseColor(%q) = %v, want #%02x%02x%02x", tt.in, c, tt.r, tt.g, tt.b)
		}
	}
}
