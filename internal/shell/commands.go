package shell

import (
	"fmt"
	"strings"
	"time"

	"github.com/portfolio-shell/psh/internal/vfs"
)

// Env is what a command sees of the world for one invocation.
type Env struct {
	Path string
	Root *vfs.Node
	Now  time.Time
}

// Command is a shell command.
type Command interface {
	Name() string
	Run(cmd ParsedCommand, env Env) Result
}

// lookupArg resolves the first argument, or the current path when there is
// none. label is what error messages call the target.
func lookupArg(cmd ParsedCommand, env Env) (node *vfs.Node, label string) {
	target, label := env.Path, env.Path
	if len(cmd.Args) > 0 {
		target, label = vfs.Resolve(env.Path, cmd.Args[0]), cmd.Args[0]
	}
	return vfs.Lookup(target, env.Root), label
}

// LsCommand implements ls.
type LsCommand struct{}

func (c *LsCommand) Name() string { return "ls" }

func (c *LsCommand) Run(cmd ParsedCommand, env Env) Result {
	node, label := lookupArg(cmd, env)
	if node == nil {
		return text(fmt.Sprintf("ls: cannot access '%s': No such file or directory", label))
	}
	if !node.IsDir() {
		return text(vfs.Icon(node) + " " + node.Name)
	}
	if len(node.Children) == 0 {
		return text("(empty directory)")
	}

	items := make([]string, 0, len(node.Children))
	for _, child := range vfs.Sorted(node.Children) {
		item := vfs.Icon(child) + child.Name
		if child.IsDir() {
			item += "/"
		}
		items = append(items, item)
	}

	sep := "    "
	if cmd.Has("l") {
		sep = "\n"
	}
	return text(strings.Join(items, sep))
}

// CdCommand implements cd. Without an argument it goes to the home
// directory, which sits one level below the tree root.
type CdCommand struct{}

func (c *CdCommand) Name() string { return "cd" }

func (c *CdCommand) Run(cmd ParsedCommand, env Env) Result {
	if len(cmd.Args) == 0 || cmd.Args[0] == vfs.Root {
		return Result{NewPath: vfs.Home}
	}

	node := vfs.Lookup(vfs.Resolve(env.Path, cmd.Args[0]), env.Root)
	if node == nil {
		return text(fmt.Sprintf("cd: %s: No such file or directory", cmd.Args[0]))
	}
	if !node.IsDir() {
		return text(fmt.Sprintf("cd: %s: Not a directory", cmd.Args[0]))
	}
	return Result{NewPath: node.Path}
}

// OpenCommand implements open and its alias cat. Directories are entered,
// files are handed to a viewer picked by extension.
type OpenCommand struct {
	name string
}

func (c *OpenCommand) Name() string { return c.name }

func (c *OpenCommand) Run(cmd ParsedCommand, env Env) Result {
	if len(cmd.Args) == 0 {
		return text("Usage: open <file>")
	}

	node := vfs.Lookup(vfs.Resolve(env.Path, cmd.Args[0]), env.Root)
	if node == nil {
		return text(fmt.Sprintf("open: %s: No such file or directory", cmd.Args[0]))
	}
	if node.IsDir() {
		return Result{NewPath: node.Path}
	}

	switch ext := node.Meta.Extension; {
	case ext == "url" && node.Meta.URL != "":
		return Result{
			Output: fmt.Sprintf("Opening %s...", node.Meta.URL),
			Action: OpenURL{URL: node.Meta.URL},
		}
	case ext == "pdf":
		return Result{
			Output: fmt.Sprintf("Opening %s...", node.Name),
			Action: OpenFile{Viewer: PDFViewer, File: node},
		}
	case ext == "mp3" || ext == "wav" || ext == "ogg":
		return Result{
			Output: fmt.Sprintf("Loading audio player for %s...", node.Name),
			Action: OpenFile{Viewer: AudioViewer, File: node},
		}
	case ext == "txt" || ext == "md":
		return Result{Action: OpenFile{Viewer: TextViewer, File: node}}
	case isImage(ext):
		return Result{
			Output: fmt.Sprintf("Opening image %s...", node.Name),
			Action: OpenFile{Viewer: ImageViewer, File: node},
		}
	}
	return text(fmt.Sprintf("Cannot open %s: Unknown file type", node.Name))
}

func isImage(ext string) bool {
	switch ext {
	case "jpg", "jpeg", "png", "gif", "webp":
		return true
	}
	return false
}

// TreeCommand implements tree.
type TreeCommand struct{}

func (c *TreeCommand) Name() string { return "tree" }

func (c *TreeCommand) Run(cmd ParsedCommand, env Env) Result {
	node, label := lookupArg(cmd, env)
	if node == nil {
		return text(fmt.Sprintf("tree: %s: No such directory", label))
	}
	if !node.IsDir() {
		return text(fmt.Sprintf("tree: %s: Not a directory", node.Name))
	}

	lines := []string{node.Name}
	var walk func(n *vfs.Node, prefix string)
	walk = func(n *vfs.Node, prefix string) {
		children := vfs.Sorted(n.Children)
		for i, child := range children {
			last := i == len(children)-1
			connector, indent := "├── ", "│   "
			if last {
				connector, indent = "└── ", "    "
			}
			lines = append(lines, prefix+connector+vfs.Icon(child)+child.Name)
			if child.IsDir() {
				walk(child, prefix+indent)
			}
		}
	}
	walk(node, "")
	return text(strings.Join(lines, "\n"))
}

// TextCommand answers with fixed text.
type TextCommand struct {
	name string
	text string
}

func (c *TextCommand) Name() string { return c.name }

func (c *TextCommand) Run(ParsedCommand, Env) Result { return text(c.text) }

// ActionCommand requests an action and prints nothing.
type ActionCommand struct {
	name   string
	action Action
}

func (c *ActionCommand) Name() string { return c.name }

func (c *ActionCommand) Run(ParsedCommand, Env) Result { return Result{Action: c.action} }

// PwdCommand implements pwd.
type PwdCommand struct{}

func (c *PwdCommand) Name() string { return "pwd" }

func (c *PwdCommand) Run(_ ParsedCommand, env Env) Result { return text(env.Path) }

// NeofetchCommand prints a short system summary.
type NeofetchCommand struct{}

func (c *NeofetchCommand) Name() string { return "neofetch" }

func (c *NeofetchCommand) Run(_ ParsedCommand, env Env) Result {
	return text(fmt.Sprintf("guest@portfolio\nos: shell v1.0\nuptime: %ds", env.Now.Unix()%86400))
}

const helpText = `usage:
  ls [dir]     list directory
  cd <dir>     change directory
  open <file>  open file
  cat <file>   print file
  tree [dir]   show tree view
  pwd          print path
  clear        clear screen
  styling      site credits
  help         this message

navigation:
  ↑/↓          history
  tab          autocomplete

paths:
  ~/portfolio/about
  ~/portfolio/music
  ~/portfolio/skills
  ~/portfolio/contact`

const stylingText = "styled using the amazing website www.sacred.computer!"

func builtinCommands() []Command {
	return []Command{
		&LsCommand{},
		&CdCommand{},
		&OpenCommand{name: "open"},
		&OpenCommand{name: "cat"},
		&TreeCommand{},
		&PwdCommand{},
		&NeofetchCommand{},
		&ActionCommand{name: "clear", action: Clear{}},
		&ActionCommand{name: "matrix", action: ShowMatrix{}},
		&TextCommand{name: "help", text: helpText},
		&TextCommand{name: "whoami", text: "guest\ndeveloper / producer"},
		&TextCommand{name: "history", text: "Use ↑/↓ arrow keys to navigate command history."},
		&TextCommand{name: "sudo", text: "[!] Permission denied. Nice try though."},
		&TextCommand{name: "hack", text: "access denied"},
		&TextCommand{name: "coffee", text: "[*] coffee.exe loaded. energy +100%"},
		&TextCommand{name: "starwars", text: "a long time ago..."},
		&TextCommand{name: "styling", text: stylingText},
		&TextCommand{name: "srcl", text: stylingText},
	}
}
