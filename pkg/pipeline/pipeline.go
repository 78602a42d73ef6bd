// Package pipeline provides the batch render pipeline for atomtree.
//
// This package implements the complete load → build → layout → scene →
// render pipeline used by the CLI's render, layout and tree commands. The
// interactive explorer drives the same core packages through
// [interaction.Session] instead.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read a snapshot history (or a fixed component tree) from disk
//  2. Build: Unfold the selected snapshot into a tree, applying collapsed paths
//  3. Layout: Compute positions and resolve them into a drawable scene
//  4. Render: Write the scene in the requested formats (SVG, PNG, JSON, DOT)
//
// Formats render concurrently. Rendered artifacts are cached by a key derived
// from the input's content hash and every option that shapes the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    HistoryPath: "history.json",
//	    Root:        "App",
//	    Snapshot:    -1,
//	    Formats:     []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	src, err := pipeline.Load(opts)
//	root, index, err := pipeline.BuildTree(src, opts)
//	res, sc := pipeline.Layout(root, opts)
//	artifacts, err := pipeline.Render(ctx, sc, opts)
//
// [interaction.Session]: github.com/matzehuels/atomtree/pkg/core/interaction.Session
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/atomtree/pkg/cache"
	"github.com/matzehuels/atomtree/pkg/config"
	"github.com/matzehuels/atomtree/pkg/core/layout"
	"github.com/matzehuels/atomtree/pkg/core/tree"
	"github.com/matzehuels/atomtree/pkg/errors"
	"github.com/matzehuels/atomtree/pkg/render/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale is the PNG pixel density.
	DefaultScale = 2.0

	// LatestSnapshot selects the newest snapshot of a history.
	LatestSnapshot = -1
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = string(sink.FormatSVG)

// ValidFormats is the set of supported output formats.
var ValidFormats = func() map[string]bool {
	m := make(map[string]bool)
	for _, f := range sink.Formats() {
		m[string(f)] = true
	}
	return m
}()

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
// This struct supports JSON serialization so a run can be recorded.
type Options struct {
	// Input options. Exactly one of HistoryPath and TreePath is set.
	HistoryPath string   `json:"history_path,omitempty"`
	TreePath    string   `json:"tree_path,omitempty"`
	Snapshot    int      `json:"snapshot"` // index into the history, negative for the latest
	Root        string   `json:"root,omitempty"`
	Collapsed   []string `json:"collapsed,omitempty"` // tree paths shown without children
	MaxDepth    int      `json:"max_depth,omitempty"` // overrides Config.MaxDepth when set
	MaxNodes    int      `json:"max_nodes,omitempty"` // overrides Config.MaxNodes when set

	// View options
	Config config.Config `json:"config"`
	Title  string        `json:"title,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`  // PNG pixel density
	Static  bool     `json:"static,omitempty"` // drop the initial viewport transform
	Refresh bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Source is the loaded input.
	Source *Source

	// Snapshot is the index of the rendered snapshot, -1 for component trees.
	Snapshot int

	// Tree is the built tree with collapsed paths applied.
	Tree *tree.Node

	// Layout is the computed layout of Tree.
	Layout layout.Result

	// SceneKey identifies the scene in the cache.
	SceneKey string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Snapshots  int
	NodeCount  int
	LinkCount  int
	Depth      int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	Hits      int  // Artifacts served from the cache
	Misses    int  // Artifacts rendered
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		names := make([]string, 0, len(ValidFormats))
		for _, f := range sink.Formats() {
			names = append(names, string(f))
		}
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(names, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the input fields.
func (o *Options) ValidateForLoad() error {
	switch {
	case o.HistoryPath == "" && o.TreePath == "":
		return errors.New(errors.ErrCodeInvalidInput, "a history or tree file is required")
	case o.HistoryPath != "" && o.TreePath != "":
		return errors.New(errors.ErrCodeInvalidInput, "history and tree files are mutually exclusive")
	}
	if _, err := errors.ValidateHistoryFilename(o.InputPath()); err != nil {
		return err
	}
	if o.Root != "" {
		if err := errors.ValidateNodeName(o.Root); err != nil {
			return err
		}
	}
	for _, p := range o.Collapsed {
		if p == "" {
			return errors.New(errors.ErrCodeInvalidInput, "collapsed path cannot be empty")
		}
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults fills in the view configuration. Component trees default
// to the components preset, histories to the atoms preset.
func (o *Options) SetLayoutDefaults() {
	if o.Config.Preset == "" {
		name := config.PresetAtoms
		if o.TreePath != "" {
			name = config.PresetComponents
		}
		o.Config, _ = config.Preset(name)
	}
	if o.MaxDepth > 0 {
		o.Config.MaxDepth = o.MaxDepth
	}
	if o.MaxNodes > 0 {
		o.Config.MaxNodes = o.MaxNodes
	}
	if o.Title == "" {
		o.Title = strings.TrimSuffix(filepath.Base(o.InputPath()), filepath.Ext(o.InputPath()))
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.MaxDepth < 0 || o.MaxNodes < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max depth and max nodes must not be negative")
	}
	return o.Config.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// InputPath returns the history or tree file path.
func (o *Options) InputPath() string {
	if o.TreePath != "" {
		return o.TreePath
	}
	return o.HistoryPath
}

// IsTree reports whether the input is a fixed component tree.
func (o *Options) IsTree() bool {
	return o.TreePath != ""
}

// ExpandState returns the expand state holding the collapsed paths.
func (o *Options) ExpandState() *tree.ExpandState {
	state := tree.NewExpandState()
	for _, p := range o.Collapsed {
		state.Set(tree.Path(p), false)
	}
	return state
}

// SceneKeyOpts returns cache key options for the scene of snapshot index.
func (o *Options) SceneKeyOpts(index int) cache.SceneKeyOpts {
	c := o.Config
	return cache.SceneKeyOpts{
		Snapshot:    index,
		Root:        o.Root,
		Tree:        o.IsTree(),
		Collapsed:   o.Collapsed,
		Layout:      c.Layout,
		Orientation: c.Orientation,
		Link:        c.Link,
		StepPercent: c.StepPercent,
		Flavor:      string(c.Flavor()),
		Width:       c.Width,
		Height:      c.Height,
		Margin:      []float64{c.Margin.Top, c.Margin.Right, c.Margin.Bottom, c.Margin.Left},
		MaxDepth:    c.MaxDepth,
		MaxNodes:    c.MaxNodes,
		Zoom:        c.Zoom.Initial,
		Title:       o.Title,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Static: o.Static}
	if format == string(sink.FormatPNG) {
		opts.Scale = o.Scale
	}
	return opts
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// describe is used in log lines.
func (o *Options) describe() string {
	return fmt.Sprintf("%s (%s)", filepath.Base(o.InputPath()), o.Config.Preset)
}
