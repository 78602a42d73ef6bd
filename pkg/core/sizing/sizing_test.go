package sizing

import (
	"strings"
	"testing"
)

func TestRadius(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"", 20},
		{"abcd", 24},
		{"abcde", 30},
		{"abcdefghi", 34},
		{"abcdefghij", 50},
		{strings.Repeat("x", 14), 54},
		{strings.Repeat("x", 15), 65},
		{strings.Repeat("x", 19), 69},
		{strings.Repeat("x", 20), 90},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := Radius(tt.label); got != tt.want {
				t.Errorf("Radius(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"App", 33},
		{"Header", 46},
		{"TodoListStats", 83},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := Width(tt.label); got != tt.want {
				t.Errorf("Width(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestHeight(t *testing.T) {
	if Height(0) != RootBoxHeight {
		t.Errorf("Height(0) = %v, want %v", Height(0), RootBoxHeight)
	}
	if Height(3) != BoxHeight {
		t.Errorf("Height(3) = %v, want %v", Height(3), BoxHeight)
	}
}

func TestMonotonic(t *testing.T) {
	for name, fn := range map[string]Func{"radius": Radius, "width": Width} {
		t.Run(name, func(t *testing.T) {
			prev := fn("")
			for n := 1; n <= 40; n++ {
				got := fn(strings.Repeat("a", n))
				if got <= prev {
					t.Errorf("size(len %d) = %v, not above size(len %d) = %v", n, got, n-1, prev)
				}
				prev = got
			}
		})
	}
}

func TestEqualLengthsEqualSizes(t *testing.T) {
	pairs := [][2]string{
		{"atomA", "atomB"},
		{"textState", "countSel_"},
		{"", ""},
	}
	for _, p := range pairs {
		if Radius(p[0]) != Radius(p[1]) {
			t.Errorf("Radius(%q) != Radius(%q)", p[0], p[1])
		}
		if Width(p[0]) != Width(p[1]) {
			t.Errorf("Width(%q) != Width(%q)", p[0], p[1])
		}
	}
}

func TestLengthWideRunes(t *testing.T) {
	if got := Length("状态"); got != 4 {
		t.Errorf("Length(状态) = %d, want 4", got)
	}
	if Radius("状态") != Radius("abcd") {
		t.Error("wide runes should size like their display width")
	}
}
