package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/atomtree/pkg/pipeline"
)

const testHistoryJSON = `[
  {"textState": {"d": ["charCountState"]}, "charCountState": {"d": []}},
  {
    "textState": {"d": ["charCountState", "upperTextState"]},
    "charCountState": {"d": ["summaryState"]},
    "upperTextState": {"d": []},
    "summaryState": {"d": [], "atom": ["textState"]}
  }
]`

// writeHistory writes the test history to a temporary file.
func writeHistory(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte(testHistoryJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png,dot", []string{"svg", "png", "dot"}},
		{"spaces and blanks", " svg , ,json ", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid all", []string{"svg", "png", "json", "dot", "graphviz"}, false},
		{"invalid format", []string{"pdf"}, true},
		{"mixed valid invalid", []string{"svg", "invalid"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name   string
		format string
		count  int
		input  string
		output string
		want   string
	}{
		{"next to input", "svg", 1, "data/history.json", "", "data/history.svg"},
		{"single output names the file", "png", 1, "history.json", "out/tree.image", "out/tree.image"},
		{"multiple formats use base", "png", 2, "history.json", "out/tree.svg", "out/tree.png"},
		{"graphviz extension", "graphviz", 2, "app.yaml", "", "app.gv.svg"},
		{"dot extension", "dot", 1, "app.yaml", "", "app.dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifactPath(tt.format, tt.count, tt.input, tt.output)
			if got != filepath.FromSlash(tt.want) && got != tt.want {
				t.Errorf("artifactPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "nested", "tree")
	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}"),
	}

	paths, err := writeArtifacts(artifacts, []string{"svg", "json"}, "history.json", output)
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("writeArtifacts() wrote %d files, want 2", len(paths))
	}
	for i, ext := range []string{".svg", ".json"} {
		if paths[i] != output+ext {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], output+ext)
		}
	}

	data, err := os.ReadFile(output + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("svg content = %q, want %q", data, "<svg/>")
	}
}

func TestFormatList(t *testing.T) {
	list := formatList()
	for _, f := range []string{"svg", "png", "json", "dot", "graphviz"} {
		if !strings.Contains(list, f) {
			t.Errorf("formatList() = %q, missing %q", list, f)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeHistory(t)
	output := filepath.Join(t.TempDir(), "tree.json")

	c := New(os.Stderr, LogInfo)
	cmd := c.RootCommand()
	cmd.SetArgs([]string{"render", input, "-f", "json", "-o", output, "--no-cache"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("render error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"label":"summaryState"`) && !strings.Contains(string(data), `"label": "summaryState"`) {
		t.Errorf("scene JSON does not contain summaryState")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := writeHistory(t)
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "none.json")}},
		{"bad format", []string{"render", input, "-f", "pdf"}},
		{"bad snapshot", []string{"render", input, "-s", "9", "--no-cache"}},
		{"bad layout", []string{"render", input, "-l", "spiral"}},
		{"bad extension", []string{"render", "history.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(os.Stderr, LogInfo)
			cmd := c.RootCommand()
			cmd.SetArgs(tt.args)
			cmd.SilenceErrors = true
			if err := cmd.Execute(); err == nil {
				t.Errorf("Execute(%v) succeeded, want error", tt.args)
			}
		})
	}
}
