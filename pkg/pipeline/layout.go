package pipeline

import (
	"github.com/matzehuels/atomtree/pkg/core/layout"
	"github.com/matzehuels/atomtree/pkg/core/tree"
	"github.com/matzehuels/atomtree/pkg/core/viewport"
	"github.com/matzehuels/atomtree/pkg/errors"
	"github.com/matzehuels/atomtree/pkg/render/scene"
)

// =============================================================================
// Tree Building
// =============================================================================

// BuildTree unfolds the selected snapshot of src into a tree with the
// collapsed paths of opts applied. It returns the tree and the resolved
// snapshot index (-1 for component trees).
//
// Unlike the interactive session, which clamps, an explicit snapshot index
// outside the history is an error here.
func BuildTree(src *Source, opts Options) (*tree.Node, int, error) {
	state := opts.ExpandState()
	if src.Tree != nil {
		return tree.Apply(src.Tree, state), -1, nil
	}

	h := src.History
	if h.Len() == 0 {
		return nil, -1, errors.New(errors.ErrCodeInvalidHistory, "%s has no snapshots", src.Path)
	}
	index := opts.Snapshot
	if index < 0 {
		index = h.Len() - 1
	}
	snap, err := h.Get(index)
	if err != nil {
		return nil, -1, err
	}
	return tree.Build(snap, opts.Root, state, opts.Config.TreeOptions()), index, nil
}

// =============================================================================
// Layout and Scene
// =============================================================================

// Layout computes the layout of root for the configured frame and resolves
// it into a scene. A frame too small to lay out yields an empty layout and a
// scene with only its background.
func Layout(root *tree.Node, opts Options) (layout.Result, *scene.Scene) {
	c := opts.Config

	var res layout.Result
	if mode, ok := c.LayoutMode(); ok {
		res = layout.Compute(root, mode)
	}

	t := viewport.New(c.ViewportOptions()).Transform()
	if opts.Static {
		t = viewport.Identity()
	}
	sc := scene.Build(res, scene.Options{
		Title:       opts.Title,
		Width:       c.Width,
		Height:      c.Height,
		Margin:      c.Margin,
		LinkStyle:   c.LinkStyle(),
		StepPercent: c.StepPercent,
		Flavor:      c.Flavor(),
		Transform:   t,
	})
	return res, sc
}
