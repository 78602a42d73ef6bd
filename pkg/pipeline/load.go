package pipeline

import (
	"bytes"
	"os"

	"github.com/matzehuels/atomtree/pkg/cache"
	"github.com/matzehuels/atomtree/pkg/core/history"
	"github.com/matzehuels/atomtree/pkg/core/tree"
	"github.com/matzehuels/atomtree/pkg/errors"
)

// Source is a loaded input file.
type Source struct {
	// Path is the file the source was read from.
	Path string

	// Hash is the content hash of the file.
	Hash string

	// History is set for snapshot histories.
	History *history.History

	// Tree is set for fixed component trees.
	Tree *tree.Node
}

// Snapshots returns the number of snapshots, 0 for component trees.
func (s *Source) Snapshots() int {
	if s == nil {
		return 0
	}
	return s.History.Len()
}

// Load reads the input file named by opts.
func Load(opts Options) (*Source, error) {
	path := opts.InputPath()
	format, err := errors.ValidateHistoryFilename(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}

	src := &Source{Path: path, Hash: cache.Hash(data)}
	if opts.IsTree() {
		src.Tree, err = tree.Decode(bytes.NewReader(data), format)
	} else {
		src.History, err = history.Decode(bytes.NewReader(data), format)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}
