package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	ltree "github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/atomtree/pkg/config"
	"github.com/matzehuels/atomtree/pkg/core/history"
	"github.com/matzehuels/atomtree/pkg/core/tree"
	"github.com/matzehuels/atomtree/pkg/pipeline"
)

// treeCommand creates the tree command, which prints the unfolded tree.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		input   inputFlags
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "tree [history.json|history.yaml]",
		Short: "Print the dependency tree of one snapshot",
		Long: `Print the dependency tree of one snapshot.

Markers: [+] collapsed, ↻ dependency cycle, … expansion stopped by
--max-depth or --max-nodes. Atoms of components are listed in brackets.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadTree(args[0], input)
			if err != nil {
				return err
			}
			if compact {
				fmt.Println(root.Shape())
				return nil
			}
			fmt.Println(renderTree(root))
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().BoolVar(&compact, "compact", false, "print the tree on one line, e.g. a(b,c(d))")

	return cmd
}

// loadTree loads the input and builds the selected tree.
func loadTree(path string, f inputFlags) (*tree.Node, error) {
	opts := f.options(path, config.Config{})
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	opts.SetLayoutDefaults()
	src, err := pipeline.Load(opts)
	if err != nil {
		return nil, err
	}
	root, _, err := pipeline.BuildTree(src, opts)
	return root, err
}

// renderTree draws root with box-drawing branches.
func renderTree(root *tree.Node) string {
	t := ltree.Root(nodeLabel(root, true)).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	addChildren(t, root)
	return t.String()
}

func addChildren(t *ltree.Tree, n *tree.Node) {
	for _, c := range n.Children {
		if c.IsLeaf() {
			t.Child(nodeLabel(c, false))
			continue
		}
		sub := ltree.Root(nodeLabel(c, false))
		addChildren(sub, c)
		t.Child(sub)
	}
}

// nodeLabel styles a node name with its markers and atoms.
func nodeLabel(n *tree.Node, isRoot bool) string {
	style := styleNode
	switch {
	case isRoot:
		style = styleRootNode
	case len(n.Tags) > 0:
		style = styleAtomsNode
	}

	var b strings.Builder
	b.WriteString(style.Render(n.Name))
	switch {
	case n.Collapsible:
		b.WriteString(" " + styleMarker.Render("[+]"))
	case n.Cycle:
		b.WriteString(" " + styleMarker.Render("↻"))
	case n.Truncated:
		b.WriteString(" " + styleMarker.Render("…"))
	}
	if len(n.Tags) > 0 {
		b.WriteString(" " + StyleDim.Render("["+n.TagString()+"]"))
	}
	return b.String()
}

// =============================================================================
// Snapshots
// =============================================================================

// snapshotsCommand creates the snapshots command, which lists a history.
func (c *CLI) snapshotsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots [history.json|history.yaml]",
		Short: "List the snapshots of a history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := history.Load(args[0])
			if err != nil {
				return err
			}
			if h.Len() == 0 {
				newReport(cmd.OutOrStdout()).info("History is empty")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), snapshotTable(h))
			return nil
		},
	}
}

// snapshotRows summarizes each snapshot and what changed since the previous one.
func snapshotRows(h *history.History) [][]string {
	rows := make([][]string, 0, h.Len())
	var prev *history.Snapshot
	for i := range h.Len() {
		snap, _ := h.Get(i)
		links := 0
		for _, e := range snap.Entries() {
			links += len(e.Record.Dependencies)
		}
		first, _ := snap.First()
		added, removed := diffNames(prev, snap)
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(snap.Len()),
			strconv.Itoa(links),
			first,
			formatChanges(added, removed),
		})
		prev = snap
	}
	return rows
}

// diffNames returns the node names added and removed between two snapshots.
func diffNames(prev, cur *history.Snapshot) (added, removed []string) {
	for _, name := range cur.Names() {
		if _, ok := prev.Record(name); !ok {
			added = append(added, name)
		}
	}
	for _, name := range prev.Names() {
		if _, ok := cur.Record(name); !ok {
			removed = append(removed, name)
		}
	}
	slices.Sort(added)
	slices.Sort(removed)
	return added, removed
}

func formatChanges(added, removed []string) string {
	var parts []string
	for _, n := range added {
		parts = append(parts, "+"+n)
	}
	for _, n := range removed {
		parts = append(parts, "-"+n)
	}
	return strings.Join(parts, " ")
}

func snapshotTable(h *history.History) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableFrame).
		Headers("#", "Nodes", "Links", "First", "Changes").
		Rows(snapshotRows(h)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHead
			}
			if col == 4 {
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
