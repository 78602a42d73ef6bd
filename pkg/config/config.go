// Package config loads view configuration from TOML files.
//
// A configuration starts from a preset ("atoms" or "components") and
// overrides any field the file sets:
//
//	preset = "components"
//	width = 1200
//	link = "step"
//	step_percent = 0.3
//
//	[margin]
//	top = 20
//
//	[zoom]
//	scale_max = 8
//
// Unknown keys are rejected so typos do not pass silently.
package config

import (
	"bytes"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/atomtree/pkg/core/interaction"
	"github.com/matzehuels/atomtree/pkg/core/layout"
	"github.com/matzehuels/atomtree/pkg/core/tree"
	"github.com/matzehuels/atomtree/pkg/core/viewport"
	"github.com/matzehuels/atomtree/pkg/errors"
	"github.com/matzehuels/atomtree/pkg/render/scene"
)

// Preset names.
const (
	PresetAtoms      = "atoms"
	PresetComponents = "components"
)

// Frame defaults.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Zoom bounds the viewport scale.
type Zoom struct {
	ScaleMin float64 `toml:"scale_min" json:"scale_min"`
	ScaleMax float64 `toml:"scale_max" json:"scale_max"`
	Initial  float64 `toml:"initial" json:"initial"`
}

// Config is a complete view configuration.
type Config struct {
	Preset      string        `toml:"preset" json:"preset"`
	Width       float64       `toml:"width" json:"width"`
	Height      float64       `toml:"height" json:"height"`
	Margin      layout.Margin `toml:"margin" json:"margin"`
	Layout      string        `toml:"layout" json:"layout"`
	Orientation string        `toml:"orientation" json:"orientation"`
	Link        string        `toml:"link" json:"link"`
	StepPercent float64       `toml:"step_percent" json:"step_percent"`
	Zoom        Zoom          `toml:"zoom" json:"zoom"`
	MaxDepth    int           `toml:"max_depth" json:"max_depth"`
	MaxNodes    int           `toml:"max_nodes" json:"max_nodes"`
}

var presets = map[string]Config{
	PresetAtoms: {
		Preset:      PresetAtoms,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Margin:      layout.Margin{Top: 30, Right: 30, Bottom: 70, Left: 30},
		Layout:      string(layout.Radial),
		Orientation: string(layout.Vertical),
		Link:        string(scene.Line),
		StepPercent: scene.DefaultStepPercent,
		Zoom:        defaultZoom(),
	},
	PresetComponents: {
		Preset:      PresetComponents,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Margin:      layout.Margin{Top: 15, Right: 40, Bottom: 40, Left: 40},
		Layout:      string(layout.Cartesian),
		Orientation: string(layout.Vertical),
		Link:        string(scene.Diagonal),
		StepPercent: scene.DefaultStepPercent,
		Zoom:        defaultZoom(),
	},
}

func defaultZoom() Zoom {
	return Zoom{
		ScaleMin: viewport.DefaultScaleMin,
		ScaleMax: viewport.DefaultScaleMax,
		Initial:  viewport.DefaultScale,
	}
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a copy of the named preset.
func Preset(name string) (Config, bool) {
	c, ok := presets[name]
	return c, ok
}

// Default returns the atoms preset.
func Default() Config {
	c, _ := Preset(PresetAtoms)
	return c
}

// Load reads a TOML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Decode(bytes.NewReader(data))
}

// Decode reads a TOML configuration and validates it.
func Decode(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}

	var head struct {
		Preset string `toml:"preset"`
	}
	if _, err := toml.Decode(string(data), &head); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	name := head.Preset
	if name == "" {
		name = PresetAtoms
	}
	c, ok := Preset(name)
	if !ok {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown preset %q (want one of %s)", name, strings.Join(Presets(), ", "))
	}

	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return c, c.Validate()
}

// Encode writes c as TOML.
func Encode(w io.Writer, c Config) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks every field.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "width and height must be positive, got %vx%v", c.Width, c.Height)
	case c.Margin.Top < 0 || c.Margin.Right < 0 || c.Margin.Bottom < 0 || c.Margin.Left < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "margins must not be negative")
	case !slices.Contains([]string{string(layout.Radial), string(layout.Cartesian)}, c.Layout):
		return errors.New(errors.ErrCodeInvalidConfig, "invalid layout %q (want radial or cartesian)", c.Layout)
	case !slices.Contains([]string{string(layout.Vertical), string(layout.Horizontal)}, c.Orientation):
		return errors.New(errors.ErrCodeInvalidConfig, "invalid orientation %q (want vertical or horizontal)", c.Orientation)
	case c.StepPercent < 0 || c.StepPercent > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "step_percent must be within [0, 1], got %v", c.StepPercent)
	case c.Zoom.ScaleMin <= 0 || c.Zoom.ScaleMax < c.Zoom.ScaleMin:
		return errors.New(errors.ErrCodeInvalidConfig, "zoom bounds [%v, %v] are invalid", c.Zoom.ScaleMin, c.Zoom.ScaleMax)
	case c.Zoom.Initial < c.Zoom.ScaleMin || c.Zoom.Initial > c.Zoom.ScaleMax:
		return errors.New(errors.ErrCodeInvalidConfig, "zoom.initial %v is outside [%v, %v]", c.Zoom.Initial, c.Zoom.ScaleMin, c.Zoom.ScaleMax)
	case c.MaxDepth < 0 || c.MaxNodes < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "max_depth and max_nodes must not be negative")
	}
	if _, ok := scene.ParseLinkStyle(c.Link); !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid link %q (want diagonal, step, curve or line)", c.Link)
	}
	return nil
}

// Kind returns the layout kind.
func (c Config) Kind() layout.Kind { return layout.Kind(c.Layout) }

// LayoutOrientation returns the cartesian orientation.
func (c Config) LayoutOrientation() layout.Orientation { return layout.Orientation(c.Orientation) }

// LinkStyle returns the link style.
func (c Config) LinkStyle() scene.LinkStyle { return scene.LinkStyle(c.Link) }

// Flavor returns the palette for the preset: component colors for the
// components preset, atom network colors otherwise.
func (c Config) Flavor() scene.Flavor {
	if c.Preset == PresetComponents {
		return scene.ComponentTree
	}
	return scene.AtomNetwork
}

// ViewportOptions returns the zoom bounds and initial transform.
func (c Config) ViewportOptions() viewport.Options {
	opts := viewport.DefaultOptions()
	opts.ScaleMin, opts.ScaleMax = c.Zoom.ScaleMin, c.Zoom.ScaleMax
	opts.Initial.ScaleX, opts.Initial.ScaleY = c.Zoom.Initial, c.Zoom.Initial
	return opts
}

// TreeOptions returns the tree size limits.
func (c Config) TreeOptions() tree.Options {
	return tree.Options{MaxDepth: c.MaxDepth, MaxNodes: c.MaxNodes}
}

// LayoutMode returns the layout mode for the configured frame and reports
// whether the frame is large enough to lay out.
func (c Config) LayoutMode() (layout.Mode, bool) {
	return layout.Frame(c.Kind(), c.LayoutOrientation(), c.Width, c.Height, c.Margin)
}

// SessionOptions returns the options of an interactive session showing this
// configuration.
func (c Config) SessionOptions() interaction.Options {
	return interaction.Options{
		Width:       c.Width,
		Height:      c.Height,
		Margin:      c.Margin,
		Kind:        c.Kind(),
		Orientation: c.LayoutOrientation(),
		LinkStyle:   c.LinkStyle(),
		StepPercent: c.StepPercent,
		Flavor:      c.Flavor(),
		Viewport:    c.ViewportOptions(),
		Tree:        c.TreeOptions(),
	}
}
