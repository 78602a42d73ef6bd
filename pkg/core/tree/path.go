package tree

import (
	"net/url"
	"strings"
)

// Path identifies a node by the names on its root-to-node path.
// Each name is path-escaped, so names containing "/" stay unambiguous.
type Path string

// RootPath returns the path of a tree root named name.
func RootPath(name string) Path {
	return Path(url.PathEscape(name))
}

// Child returns the path of a child named name.
func (p Path) Child(name string) Path {
	return p + "/" + Path(url.PathEscape(name))
}

// Names returns the unescaped names along the path.
func (p Path) Names() []string {
	if p == "" {
		return nil
	}
	parts := strings.Split(string(p), "/")
	for i, s := range parts {
		if name, err := url.PathUnescape(s); err == nil {
			parts[i] = name
		}
	}
	return parts
}

// Depth returns the number of edges from the root (the root has depth 0).
func (p Path) Depth() int {
	if p == "" {
		return 0
	}
	return strings.Count(string(p), "/")
}

// Parent returns the path of the parent node, or "" for a root.
func (p Path) Parent() Path {
	i := strings.LastIndexByte(string(p), '/')
	if i < 0 {
		return ""
	}
	return p[:i]
}
