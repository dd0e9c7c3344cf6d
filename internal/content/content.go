// Package content declares the static tree served by the shell. The tree is
// described in an embedded YAML document and built once.
package content

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/portfolio-shell/psh/internal/vfs"
)

//go:embed tree.yaml
var treeYAML []byte

type decl struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"`
	Ext       string   `yaml:"ext"`
	URL       string   `yaml:"url"`
	Content   string   `yaml:"content"`
	Children  []decl   `yaml:"children"`
	Tracks    []string `yaml:"tracks"`
	TracksURL string   `yaml:"tracks_url"`
}

func (d decl) isDir() bool {
	return d.Type == "directory" || len(d.Children) > 0 || len(d.Tracks) > 0
}

// Load builds a tree from a YAML declaration. Any directory may list audio
// track filenames under `tracks`; each becomes a derived mp3 node appended
// after the declared children.
func Load(data []byte) (*vfs.Node, error) {
	var root decl
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	if root.Name == "" {
		return nil, fmt.Errorf("content: root has no name")
	}
	children, err := build(root)
	if err != nil {
		return nil, err
	}
	return vfs.NewTree(root.Name, children...), nil
}

func build(d decl) ([]*vfs.Node, error) {
	nodes := make([]*vfs.Node, 0, len(d.Children)+len(d.Tracks))
	seen := make(map[string]bool)
	for _, c := range d.Children {
		if c.Name == "" {
			return nil, fmt.Errorf("content: unnamed entry under %q", d.Name)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("content: duplicate entry %q under %q", c.Name, d.Name)
		}
		seen[c.Name] = true

		if !c.isDir() {
			nodes = append(nodes, vfs.NewFile(c.Name, fileContent(c), vfs.Metadata{Extension: c.Ext, URL: c.URL}))
			continue
		}
		sub, err := build(c)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, vfs.NewDir(c.Name, sub...))
	}
	for _, f := range d.Tracks {
		nodes = append(nodes, vfs.ParseTrack(f, d.TracksURL))
	}
	return nodes, nil
}

// Link files show their target when printed.
func fileContent(d decl) string {
	if d.Content == "" && d.URL != "" {
		return d.URL
	}
	return d.Content
}

var (
	defaultOnce sync.Once
	defaultTree *vfs.Node
)

// Default returns the process-wide tree built from the embedded declaration.
// It panics if the embedded document is malformed.
func Default() *vfs.Node {
	defaultOnce.Do(func() {
		root, err := Load(treeYAML)
		if err != nil {
			panic(err)
		}
		defaultTree = root
	})
	return defaultTree
}
