package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/atomtree/pkg/pipeline"
)

func TestReportSummary(t *testing.T) {
	stats := pipeline.Stats{NodeCount: 4, LinkCount: 3, Depth: 2}
	tests := []struct {
		name string
		info pipeline.CacheInfo
		want string
	}{
		{"fresh", pipeline.CacheInfo{Misses: 2}, "4 nodes · 3 links · depth 2 · rendered"},
		{"all cached", pipeline.CacheInfo{Hits: 2, RenderHit: true}, "4 nodes · 3 links · depth 2 · cached"},
		{"partial", pipeline.CacheInfo{Hits: 1, Misses: 1}, "4 nodes · 3 links · depth 2 · 1 cached, 1 rendered"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newReport(&buf).summary(&pipeline.Result{Stats: stats, CacheInfo: tt.info})
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("summary = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestReportLines(t *testing.T) {
	var buf bytes.Buffer
	out := newReport(&buf)
	out.success("Rendered %s", "textState")
	out.file("out/tree.svg")
	out.field("Entries", "3")
	out.hint("Explore all snapshots", "atomtree explore history.json")

	got := buf.String()
	for _, want := range []string{"✓ Rendered textState", "out/tree.svg", "Entries", "atomtree explore history.json"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q is missing %q", got, want)
		}
	}
	if n := strings.Count(got, "\n"); n != 5 {
		t.Errorf("output has %d lines, want 5", n)
	}
}
