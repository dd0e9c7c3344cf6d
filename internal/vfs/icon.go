package vfs

import (
	"slices"
	"strings"
)

// Icon returns the ASCII marker shown in front of a node in listings.
func Icon(n *Node) string {
	if n.IsDir() {
		return "[/]"
	}
	switch n.Meta.Extension {
	case "mp3", "wav", "ogg":
		return "[~]"
	case "pdf":
		return "[#]"
	case "url":
		return "[@]"
	case "jpg", "jpeg", "png", "gif", "webp":
		return "[=]"
	case "md":
		return "[*]"
	default:
		return "[-]"
	}
}

// Sorted returns a copy of nodes with directories first, each group ordered
// by name.
func Sorted(nodes []*Node) []*Node {
	out := slices.Clone(nodes)
	slices.SortStableFunc(out, func(a, b *Node) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
