package session

import (
	"fmt"
	"strings"

	"github.com/portfolio-shell/psh/internal/vfs"
)

const logo = ` _
| |_   _  __ _ _ __
| | | | |/ _` + "`" + ` | '_ \
| | |_| | (_| | | | |
|_|\__,_|\__,_|_| |_|`

var bootMessages = []string{
	"filesystem mounted",
	"shell initialized",
	"",
	logo,
	"portfolio shell v1.0\ntype 'help' for commands",
}

// Boot seeds the scrollback with the startup banner and returns it.
func (s *Session) Boot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Entry, 0, len(bootMessages))
	for _, msg := range bootMessages {
		e := s.entry("", msg, vfs.Root)
		s.history.Append(e)
		entries = append(entries, e)
	}
	return entries
}

// Hint suggests something to type in the current directory.
func (s *Session) Hint() string {
	node := vfs.Lookup(s.Path(), s.root)
	if !node.IsDir() || len(node.Children) == 0 {
		if node.IsDir() {
			return "type help for commands"
		}
		return "type a command..."
	}

	var dirs, files []string
	for _, c := range node.Children {
		if c.IsDir() {
			dirs = append(dirs, c.Name)
		} else {
			files = append(files, c.Name)
		}
	}
	switch {
	case len(dirs) > 0 && len(files) > 0:
		return fmt.Sprintf("try: cd %s  or  open %s", dirs[0], files[0])
	case len(dirs) > 0:
		return "try: cd " + strings.Join(dirs[:min(2, len(dirs))], " | ")
	default:
		return "try: open " + strings.Join(files[:min(2, len(files))], " | ")
	}
}
