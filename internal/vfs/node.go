// Package vfs holds the read-only virtual file tree the shell browses and the
// pure path functions that operate over it.
package vfs

import "strings"

// Kind distinguishes files from directories.
type Kind int

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

const (
	// Root is the path token of the tree root.
	Root = "~"
	// Home is the landing directory; `cd` with no argument goes here.
	Home = "~/portfolio"
)

// Metadata carries the optional attributes of a file node.
type Metadata struct {
	Extension string
	URL       string
	AudioURL  string
	Tags      []string
	BPM       *int
}

// Node is an element of the tree. Nodes are built once and must not be
// modified afterwards.
type Node struct {
	Name     string
	Kind     Kind
	Path     string
	Content  string
	Meta     Metadata
	Children []*Node
}

// IsDir reports whether n is a directory.
func (n *Node) IsDir() bool {
	return n != nil && n.Kind == Directory
}

// Child returns the direct child named name, or nil. Names match exactly.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// NewFile returns an unmounted file node. The extension defaults to the
// suffix of name when meta does not set one.
func NewFile(name, content string, meta Metadata) *Node {
	if meta.Extension == "" {
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			meta.Extension = name[i+1:]
		}
	}
	return &Node{Name: name, Kind: File, Content: content, Meta: meta}
}

// NewDir returns an unmounted directory node.
func NewDir(name string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Name: name, Kind: Directory, Children: children}
}

// NewTree makes a root directory out of children and assigns every node its
// canonical path.
func NewTree(name string, children ...*Node) *Node {
	root := NewDir(name, children...)
	mount(root, Root)
	return root
}

func mount(n *Node, path string) {
	n.Path = path
	for _, c := range n.Children {
		mount(c, Join(path, c.Name))
	}
}

// Join appends a single segment to a canonical path.
func Join(parent, name string) string {
	return parent + "/" + name
}
