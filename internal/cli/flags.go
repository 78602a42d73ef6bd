package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/atomtree/pkg/config"
	"github.com/matzehuels/atomtree/pkg/errors"
	"github.com/matzehuels/atomtree/pkg/pipeline"
)

// inputFlags select what to draw from an input file.
type inputFlags struct {
	tree      bool     // input is a nested component tree, not a history
	snapshot  int      // snapshot index, negative for the latest
	root      string   // root node name
	collapsed []string // tree paths drawn without children
	maxDepth  int
	maxNodes  int
}

func (f *inputFlags) register(cmd *cobra.Command) {
	f.snapshot = pipeline.LatestSnapshot
	cmd.Flags().BoolVar(&f.tree, "tree", false, "read the input as a nested component tree instead of a snapshot history")
	cmd.Flags().IntVarP(&f.snapshot, "snapshot", "s", f.snapshot, "snapshot index (default: latest)")
	cmd.Flags().StringVarP(&f.root, "root", "r", "", "root node (default: first node of the snapshot)")
	cmd.Flags().StringSliceVar(&f.collapsed, "collapse", nil, "tree paths to collapse, e.g. App/TodoList (repeatable)")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "stop expanding below this depth (0: unlimited)")
	cmd.Flags().IntVar(&f.maxNodes, "max-nodes", 0, "stop adding nodes past this count (0: unlimited)")
}

// options returns pipeline options for the input file at path.
func (f *inputFlags) options(path string, cfg config.Config) pipeline.Options {
	opts := pipeline.Options{
		Snapshot:  f.snapshot,
		Root:      f.root,
		Collapsed: f.collapsed,
		MaxDepth:  f.maxDepth,
		MaxNodes:  f.maxNodes,
		Config:    cfg,
	}
	if f.tree {
		opts.TreePath = path
	} else {
		opts.HistoryPath = path
	}
	return opts
}

// viewFlags configure the frame and layout. Explicit flags override the
// configuration file, which overrides the preset.
type viewFlags struct {
	configPath  string
	preset      string
	width       float64
	height      float64
	layout      string
	orientation string
	link        string
	stepPercent float64
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringVar(&f.preset, "preset", "", "configuration preset: "+strings.Join(config.Presets(), ", "))
	cmd.Flags().Float64Var(&f.width, "width", config.DefaultWidth, "frame width")
	cmd.Flags().Float64Var(&f.height, "height", config.DefaultHeight, "frame height")
	cmd.Flags().StringVarP(&f.layout, "layout", "l", "", "layout: radial, cartesian")
	cmd.Flags().StringVar(&f.orientation, "orientation", "", "cartesian orientation: vertical, horizontal")
	cmd.Flags().StringVar(&f.link, "link", "", "link style: diagonal, step, curve, line")
	cmd.Flags().Float64Var(&f.stepPercent, "step-percent", 0.5, "bend position of step and curve links, in [0, 1]")
}

// config resolves the view configuration. Component trees default to the
// components preset.
func (f *viewFlags) config(cmd *cobra.Command, tree bool) (config.Config, error) {
	var (
		c   config.Config
		err error
	)
	switch {
	case f.configPath != "":
		if c, err = config.Load(f.configPath); err != nil {
			return config.Config{}, err
		}
	case f.preset != "":
		var ok bool
		if c, ok = config.Preset(f.preset); !ok {
			return config.Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown preset %q (want one of %s)", f.preset, strings.Join(config.Presets(), ", "))
		}
	case tree:
		c, _ = config.Preset(config.PresetComponents)
	default:
		c = config.Default()
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		c.Width = f.width
	}
	if flags.Changed("height") {
		c.Height = f.height
	}
	if flags.Changed("layout") {
		c.Layout = f.layout
	}
	if flags.Changed("orientation") {
		c.Orientation = f.orientation
	}
	if flags.Changed("link") {
		c.Link = f.link
	}
	if flags.Changed("step-percent") {
		c.StepPercent = f.stepPercent
	}
	return c, c.Validate()
}
