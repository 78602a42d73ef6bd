package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/atomtree/pkg/core/layout"
	"github.com/matzehuels/atomtree/pkg/pipeline"
)

// layoutRow is one positioned node as printed by the layout command.
type layoutRow struct {
	Path    string  `json:"path"`
	Name    string  `json:"name"`
	Depth   int     `json:"depth"`
	Breadth float64 `json:"breadth"`
	Radius  float64 `json:"radius"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size"`
}

// layoutCommand creates the layout command for inspecting node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		input  inputFlags
		view   viewFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layout [history.json|history.yaml]",
		Short: "Print the computed node positions of one snapshot",
		Long: `Print the computed node positions of one snapshot.

Breadth is the sibling-axis coordinate (an angle in radians for radial
layouts), radius the distance from the root along the depth axis. X and Y
are relative to the layout origin: the frame center for radial layouts, the
top-left corner of the inner frame for cartesian ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := view.config(cmd, input.tree)
			if err != nil {
				return err
			}
			opts := input.options(args[0], cfg)
			opts.Logger = c.Logger
			if err := opts.ValidateForLoad(); err != nil {
				return err
			}
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			src, err := pipeline.Load(opts)
			if err != nil {
				return err
			}
			root, _, err := pipeline.BuildTree(src, opts)
			if err != nil {
				return err
			}
			res, _ := pipeline.Layout(root, opts)
			prog.done(fmt.Sprintf("Laid out %d nodes", len(res.Nodes)))

			rows := layoutRows(res)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			if len(rows) == 0 {
				newReport(cmd.OutOrStdout()).warn("frame %gx%g is too small to lay out", cfg.Width, cfg.Height)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), layoutTable(rows, res.Mode))
			newReport(cmd.OutOrStdout()).detail("%s layout, scale %.3f, origin (%.1f, %.1f)", res.Mode.Kind, res.Scale, res.Origin.X, res.Origin.Y)
			return nil
		},
	}

	input.register(cmd)
	view.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print positions as JSON")

	return cmd
}

// layoutRows flattens a layout into printable rows, rounded to 0.01.
func layoutRows(res layout.Result) []layoutRow {
	rows := make([]layoutRow, 0, len(res.Nodes))
	for _, n := range res.Nodes {
		rows = append(rows, layoutRow{
			Path:    string(n.Path()),
			Name:    n.Name(),
			Depth:   n.Depth,
			Breadth: round2(n.Breadth),
			Radius:  round2(n.Radius),
			X:       round2(n.X),
			Y:       round2(n.Y),
			Size:    round2(n.Size),
		})
	}
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func layoutTable(rows []layoutRow, mode layout.Mode) string {
	breadth := "Breadth"
	if mode.IsRadial() {
		breadth = "Angle"
	}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			r.Path,
			strconv.Itoa(r.Depth),
			strconv.FormatFloat(r.Breadth, 'f', 2, 64),
			strconv.FormatFloat(r.Radius, 'f', 2, 64),
			strconv.FormatFloat(r.X, 'f', 2, 64),
			strconv.FormatFloat(r.Y, 'f', 2, 64),
			strconv.FormatFloat(r.Size, 'f', 2, 64),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableFrame).
		Headers("Path", "Depth", breadth, "Radius", "X", "Y", "Size").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleTableHead
			case col == 0 && row == 0:
				return styleRootNode
			case col == 0:
				return styleNode
			default:
				return lipgloss.NewStyle().Align(lipgloss.Right)
			}
		}).
		Render()
}
