package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/atomtree/pkg/errors"
)

// rawRecord accepts both the compact capture format ({"d": [...]}) and the
// long form written by this package.
type rawRecord struct {
	D            []string `json:"d" yaml:"d"`
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
	Atom         []string `json:"atom" yaml:"atom"`
	Atoms        []string `json:"atoms" yaml:"atoms"`
}

func (r rawRecord) record() Record {
	rec := Record{Dependencies: r.Dependencies, Atoms: r.Atoms}
	if rec.Dependencies == nil {
		rec.Dependencies = r.D
	}
	if rec.Atoms == nil {
		rec.Atoms = r.Atom
	}
	return rec
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the document.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("snapshot must be a JSON object, got %v", tok)
	}

	*s = Snapshot{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var raw rawRecord
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("node %q: %w", name, err)
		}
		s.add(name, raw.record())
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the snapshot as a JSON object in insertion order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Record)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping, keeping the key order of the document.
func (s *Snapshot) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: snapshot must be a mapping", value.Line)
	}

	*s = Snapshot{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var raw rawRecord
		if err := val.Decode(&raw); err != nil {
			return fmt.Errorf("node %q: %w", key.Value, err)
		}
		s.add(key.Value, raw.record())
	}
	return nil
}

// MarshalYAML encodes the snapshot as a YAML mapping in insertion order.
func (s *Snapshot) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s.Entries() {
		var val yaml.Node
		if err := val.Encode(e.Record); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Name},
			&val,
		)
	}
	return node, nil
}

// Decode reads a history (a sequence of snapshots) in the given format.
func Decode(r io.Reader, format errors.HistoryFormat) (*History, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var snaps []*Snapshot
	switch format {
	case errors.HistoryJSON:
		err = json.Unmarshal(data, &snaps)
	case errors.HistoryYAML:
		err = yaml.Unmarshal(data, &snaps)
	default:
		return nil, errors.New(errors.ErrCodeInvalidHistory, "unsupported history format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidHistory, err, "decode %s history", format)
	}
	return New(snaps...), nil
}

// Encode writes h in the given format.
func Encode(w io.Writer, h *History, format errors.HistoryFormat) error {
	snaps := make([]*Snapshot, h.Len())
	for i := range snaps {
		snaps[i], _ = h.Get(i)
	}

	switch format {
	case errors.HistoryJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snaps)
	case errors.HistoryYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snaps); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidHistory, "unsupported history format %q", format)
	}
}

// Load reads a history file. The format is chosen by file extension.
func Load(path string) (*History, error) {
	format, err := errors.ValidateHistoryFilename(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "history %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f, format)
}
