package vfs

import "strings"

// Parent returns the parent of a canonical path. The root and the home
// directory both have the root as parent, so `..` never climbs above home in
// a way the user can see.
func Parent(path string) string {
	if path == Root || path == Home {
		return Root
	}
	parts := segments(path)
	if len(parts) <= 1 {
		return Root
	}
	return strings.Join(parts[:len(parts)-1], "/")
}

// Resolve turns target, interpreted relative to current, into a canonical
// path. It does not check that the path exists.
func Resolve(current, target string) string {
	switch {
	case target == "" || target == Root:
		return Root
	case strings.HasPrefix(target, Root+"/"):
		return target
	case target == "..":
		return Parent(current)
	case strings.HasPrefix(target, "../"):
		return Resolve(Parent(current), target[3:])
	}
	target = strings.TrimPrefix(target, "./")
	return Join(current, target)
}

// Lookup walks root along path and returns the node it names, or nil when
// any segment is missing or crosses a file.
func Lookup(path string, root *Node) *Node {
	path = strings.TrimRight(path, "/")
	if path == Root || path == "" {
		return root
	}
	cur := root
	for _, seg := range segments(path) {
		if seg == Root {
			continue
		}
		if !cur.IsDir() || len(cur.Children) == 0 {
			return nil
		}
		cur = cur.Child(seg)
	}
	return cur
}

func segments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
}
