package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/atomtree/pkg/errors"
	"github.com/matzehuels/atomtree/pkg/pipeline"
	"github.com/matzehuels/atomtree/pkg/render/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input   inputFlags
	view    viewFlags
	output  string  // output file (single format) or base path (multiple)
	formats string  // comma-separated output formats
	title   string  // document title
	scale   float64 // PNG pixel density
	static  bool    // drop the initial zoom transform
	noCache bool
	refresh bool
}

// renderCommand creates the render command for writing visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [history.json|history.yaml]",
		Short: "Render one snapshot as SVG, PNG, JSON, DOT or Graphviz",
		Long: `Render one snapshot of a history as a dependency tree.

The snapshot (latest by default) is unfolded from the root node, laid out as a
radial or cartesian tree, and written in each requested format:

  svg       vector image with hover tooltips
  png       raster image (--scale sets the pixel density)
  json      the resolved scene: shapes, links and colors
  dot       Graphviz source with pinned node positions
  graphviz  SVG drawn by Graphviz from the DOT source

Results are cached locally for faster subsequent runs.`,
		Example: `  atomtree render history.json
  atomtree render history.json -s 3 -r textState -f svg,png
  atomtree render app.yaml --tree -l cartesian --link step`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	opts.input.register(cmd)
	opts.view.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+formatList()+" (comma-separated, default svg)")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title (default: input file name)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&opts.static, "static", false, "draw without the initial zoom")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(cmd *cobra.Command, input string, ro renderOpts) error {
	ctx := runContext(cmd)
	cfg, err := ro.view.config(cmd, ro.input.tree)
	if err != nil {
		return err
	}

	opts := ro.input.options(input, cfg)
	opts.Title = ro.title
	opts.Formats = parseFormats(ro.formats)
	opts.Scale = ro.scale
	opts.Static = ro.static
	opts.Refresh = ro.refresh
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if ro.output != "" {
		if err := errors.ValidateOutputPath(ro.output); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, ro.output)
	if err != nil {
		return err
	}

	out := newReport(cmd.OutOrStdout())
	out.success("Rendered %s", describeResult(result))
	for _, p := range paths {
		out.file(p)
	}
	out.summary(result)
	if result.Stats.NodeCount == 0 {
		out.warn("frame %gx%g is too small to lay out", opts.Config.Width, opts.Config.Height)
	}
	if !ro.input.tree && result.Stats.Snapshots > 1 {
		out.hint("Explore all snapshots", appName+" explore "+input)
	}
	return nil
}

// describeResult names the rendered root and snapshot.
func describeResult(r *pipeline.Result) string {
	name := StyleHighlight.Render(r.Tree.Name)
	if r.Snapshot < 0 {
		return name
	}
	return fmt.Sprintf("%s at snapshot %s/%s", name,
		StyleNumber.Render(fmt.Sprint(r.Snapshot)),
		StyleNumber.Render(fmt.Sprint(r.Stats.Snapshots-1)))
}

// =============================================================================
// Output
// =============================================================================

// writeArtifacts writes each artifact and returns the written paths.
//
// With one format, output names the file. With several, output is a base
// path that gets each format's extension. Without output, files are placed
// next to the input.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := artifactPath(format, len(formats), input, output)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath returns the file path for one format.
func artifactPath(format string, count int, input, output string) string {
	ext := sink.Format(format).Ext()
	if output != "" && count == 1 {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base + ext
}

// formatList names the supported formats.
func formatList() string {
	names := make([]string, 0, len(sink.Formats()))
	for _, f := range sink.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// runContext returns the command context, or a background context in tests.
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
