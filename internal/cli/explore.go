package cli

import (
	"bytes"
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/atomtree/pkg/core/history"
	"github.com/matzehuels/atomtree/pkg/core/interaction"
	"github.com/matzehuels/atomtree/pkg/core/tree"
	"github.com/matzehuels/atomtree/pkg/errors"
)

// exploreOpts holds the command-line flags for the explore command.
type exploreOpts struct {
	input inputFlags
	view  viewFlags
	watch bool // reload the history when the file changes
}

// exploreCommand creates the explore command, an interactive terminal view.
func (c *CLI) exploreCommand() *cobra.Command {
	var opts exploreOpts

	cmd := &cobra.Command{
		Use:   "explore [history.json|history.yaml]",
		Short: "Browse snapshots interactively in the terminal",
		Long: `Browse a history interactively in the terminal.

Step through snapshots with the arrow keys, click a node to collapse or
expand it, hover for its tooltip, drag to pan and scroll to zoom. With
--watch the view follows the history file as it is rewritten.`,
		Example: `  atomtree explore history.json
  atomtree explore history.json --watch -l cartesian
  atomtree explore app.yaml --tree`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd, args[0], opts)
		},
	}

	opts.input.register(cmd)
	opts.view.register(cmd)
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the history when the file changes")

	return cmd
}

func (c *CLI) runExplore(cmd *cobra.Command, input string, eo exploreOpts) error {
	ctx, cancel := context.WithCancel(runContext(cmd))
	defer cancel()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrCodeUnsupported, "explore needs a terminal; use render or layout for files and pipes")
	}
	if eo.watch && eo.input.tree {
		return errors.New(errors.ErrCodeInvalidInput, "--watch follows snapshot histories, not component trees")
	}

	cfg, err := eo.view.config(cmd, eo.input.tree)
	if err != nil {
		return err
	}
	if eo.input.maxDepth > 0 {
		cfg.MaxDepth = eo.input.maxDepth
	}
	if eo.input.maxNodes > 0 {
		cfg.MaxNodes = eo.input.maxNodes
	}

	s, err := newExploreSession(input, eo.input, cfg.SessionOptions())
	if err != nil {
		return err
	}
	m := NewExploreModel(ctx, s, input)

	// The alternate screen owns the terminal; log lines are held back and
	// printed once it is released.
	var logs bytes.Buffer
	c.Logger.SetOutput(&logs)
	defer func() {
		c.Logger.SetOutput(os.Stderr)
		io.Copy(os.Stderr, &logs)
	}()

	if eo.watch {
		errs := make(chan error, 1)
		ch, err := history.Watch(ctx, input, func(err error) {
			select {
			case errs <- err:
			default:
			}
		})
		if err != nil {
			return err
		}
		m = m.WithReloads(ch, errs)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// newExploreSession loads the input and opens a session on it.
func newExploreSession(input string, f inputFlags, opts interaction.Options) (*interaction.Session, error) {
	var s *interaction.Session
	if f.tree {
		root, err := tree.Load(input)
		if err != nil {
			return nil, err
		}
		s = interaction.NewTree(root, opts)
	} else {
		h, err := history.Load(input)
		if err != nil {
			return nil, err
		}
		if h.Len() == 0 {
			return nil, errors.New(errors.ErrCodeInvalidHistory, "%s has no snapshots", input)
		}
		s = interaction.New(h, f.root, opts)
		if f.snapshot >= 0 {
			s.SelectSnapshot(f.snapshot)
		}
	}

	paths := make([]tree.Path, len(f.collapsed))
	for i, p := range f.collapsed {
		paths[i] = tree.Path(p)
	}
	s.Collapse(paths...)
	return s, nil
}
