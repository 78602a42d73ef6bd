package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/atomtree/pkg/config"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOpenCache(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)

	if _, ok, err := openCache(); err != nil || ok {
		t.Fatalf("openCache() on a missing dir = %v, %v, want false, nil", ok, err)
	}

	if err := os.MkdirAll(filepath.Join(home, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	fc, ok, err := openCache()
	if err != nil || !ok {
		t.Fatalf("openCache() = %v, %v, want true, nil", ok, err)
	}
	if err := fc.Set(context.Background(), "scene:abc", []byte("{}"), time.Hour); err != nil {
		t.Fatal(err)
	}

	cmd := New(os.Stderr, LogInfo).RootCommand()
	cmd.SetArgs([]string{"cache", "clear"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if u, _ := fc.Usage(); u.Entries != 0 {
		t.Errorf("Usage().Entries = %d after clear, want 0", u.Entries)
	}
}

func TestConfigCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default preset", []string{"config"}, `preset = "atoms"`},
		{"named preset", []string{"config", "components"}, `layout = "cartesian"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := New(os.Stderr, LogInfo).RootCommand()
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute(%v) error: %v", tt.args, err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
			if _, err := config.Decode(&out); err != nil {
				t.Errorf("printed config does not decode: %v", err)
			}
		})
	}

	cmd := New(os.Stderr, LogInfo).RootCommand()
	cmd.SetArgs([]string{"config", "widgets"})
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err == nil {
		t.Errorf("config widgets succeeded, want error")
	}
}

func TestConfigCommandCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.toml")
	if err := os.WriteFile(path, []byte("preset = \"components\"\nlink = \"step\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	cmd := New(os.Stderr, LogInfo).RootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "--check", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config --check error: %v", err)
	}
	if !strings.Contains(out.String(), "is valid (preset components, cartesian layout)") {
		t.Errorf("output = %q", out.String())
	}
}
