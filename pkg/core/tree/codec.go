package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/atomtree/pkg/errors"
)

// rawNode is the nested component-tree document:
// {"name": "App", "atom": [...], "children": [...]}.
type rawNode struct {
	Name     string     `json:"name" yaml:"name"`
	Atom     []string   `json:"atom" yaml:"atom"`
	Atoms    []string   `json:"atoms" yaml:"atoms"`
	Children []*rawNode `json:"children" yaml:"children"`
}

func (r *rawNode) node() *Node {
	n := &Node{Name: r.Name, Tags: r.Atoms}
	if n.Tags == nil {
		n.Tags = r.Atom
	}
	for _, c := range r.Children {
		if c != nil {
			n.Children = append(n.Children, c.node())
		}
	}
	return n
}

// Decode reads a nested component tree and returns it with paths assigned
// and every node expanded.
func Decode(r io.Reader, format errors.HistoryFormat) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw rawNode
	switch format {
	case errors.HistoryJSON:
		err = json.Unmarshal(data, &raw)
	case errors.HistoryYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, errors.New(errors.ErrCodeInvalidHistory, "unsupported tree format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidHistory, err, "decode %s tree", format)
	}
	if raw.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidHistory, "tree root has no name")
	}
	return Apply(raw.node(), nil), nil
}

// Load reads a component tree file. The format is chosen by file extension.
func Load(path string) (*Node, error) {
	format, err := errors.ValidateHistoryFilename(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "tree %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f, format)
}
