package location

import (
	"fmt"
	"slices"
	"strings"
)

// FileNode names a file by its partition and its path components, root
// first. It is a location, not a handle: the file need not exist.
type FileNode struct {
	Path      []string  `json:"path" yaml:"path"`
	Partition Partition `json:"partition" yaml:"partition"`
}

// NewFileNode builds a FileNode after checking the path is usable
func NewFileNode(partition Partition, components ...string) (FileNode, error) {
	node := FileNode{
		Path:      slices.Clone(components),
		Partition: partition,
	}
	if err := node.Validate(); err != nil {
		return FileNode{}, err
	}
	return node, nil
}

// ParsePath splits a slash separated path into components. Repeated and
// surrounding slashes are ignored.
func ParsePath(path string) []string {
	var components []string
	for _, c := range strings.Split(path, "/") {
		if c != "" {
			components = append(components, c)
		}
	}
	return components
}

// Validate checks the path is non-empty and every component has a name
func (n FileNode) Validate() error {
	if len(n.Path) == 0 {
		return ErrEmptyPath
	}
	for i, c := range n.Path {
		if c == "" {
			return fmt.Errorf("%w: index %d", ErrEmptyComponent, i)
		}
	}
	return nil
}

// Name returns the final path component
func (n FileNode) Name() string {
	if len(n.Path) == 0 {
		return ""
	}
	return n.Path[len(n.Path)-1]
}

// Parent returns the location of the containing directory
func (n FileNode) Parent() (FileNode, bool) {
	if len(n.Path) < 2 {
		return FileNode{}, false
	}
	return FileNode{Path: slices.Clone(n.Path[:len(n.Path)-1]), Partition: n.Partition}, true
}

// Clone returns a copy that shares no memory with n
func (n FileNode) Clone() FileNode {
	return FileNode{Path: slices.Clone(n.Path), Partition: n.Partition}
}

// Equal compares partition and path component by component
func (n FileNode) Equal(other FileNode) bool {
	return n.Partition.Equal(other.Partition) && slices.Equal(n.Path, other.Path)
}

// JoinedPath returns the path as an absolute slash separated string
func (n FileNode) JoinedPath() string {
	return "/" + strings.Join(n.Path, "/")
}

// String renders the node as "<partition>:/<path>"
func (n FileNode) String() string {
	return n.Partition.String() + ":" + n.JoinedPath()
}
