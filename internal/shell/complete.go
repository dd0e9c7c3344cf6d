package shell

import (
	"strings"

	"github.com/portfolio-shell/psh/internal/vfs"
)

// completionCommands are the command names offered for completion.
var completionCommands = []string{"ls", "cd", "open", "cat", "help", "clear", "pwd", "history"}

// Complete proposes completions for partial. While the first word is still
// being typed it offers command names; afterwards it completes the last
// argument as a path relative to currentPath. Directory candidates end in
// "/". Matching on paths ignores case.
func Complete(partial, currentPath string, root *vfs.Node) []string {
	parsed := Parse(partial)

	if len(parsed.Args) == 0 && !strings.Contains(partial, " ") {
		var out []string
		for _, name := range completionCommands {
			if strings.HasPrefix(name, parsed.Command) {
				out = append(out, name)
			}
		}
		return out
	}

	var fragment string
	if len(parsed.Args) > 0 {
		fragment = parsed.Args[len(parsed.Args)-1]
	}

	prefix, term, dir := "", fragment, currentPath
	if i := strings.LastIndexByte(fragment, '/'); i >= 0 {
		prefix, term = fragment[:i+1], fragment[i+1:]
		dir = vfs.Resolve(currentPath, prefix)
	}

	node := vfs.Lookup(dir, root)
	if !node.IsDir() {
		return nil
	}

	term = strings.ToLower(term)
	var out []string
	for _, child := range node.Children {
		if !strings.HasPrefix(strings.ToLower(child.Name), term) {
			continue
		}
		candidate := prefix + child.Name
		if child.IsDir() {
			candidate += "/"
		}
		out = append(out, candidate)
	}
	return out
}
