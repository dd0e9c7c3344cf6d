package shell

import (
	"fmt"
	"sort"
	"time"

	"github.com/portfolio-shell/psh/internal/vfs"
)

// Executor dispatches input lines to commands. It holds no per-session state
// and is safe to share.
type Executor struct {
	commands map[string]Command
	now      func() time.Time
}

// Option configures an Executor.
type Option func(*Executor)

// WithClock sets the clock used by commands that print the time.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

// NewExecutor creates an Executor with all builtin commands registered.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		commands: make(map[string]Command),
		now:      time.Now,
	}
	for _, cmd := range builtinCommands() {
		e.register(cmd)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) register(cmd Command) {
	e.commands[cmd.Name()] = cmd
}

// Names returns the registered command names in sorted order.
func (e *Executor) Names() []string {
	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute parses input and runs it against the tree at currentPath. It never
// fails: unknown commands and bad paths come back as text.
func (e *Executor) Execute(input, currentPath string, root *vfs.Node) Result {
	parsed := Parse(input)
	if parsed.Command == "" {
		return Result{}
	}

	cmd, ok := e.commands[parsed.Command]
	if !ok {
		return text(fmt.Sprintf("Command not found: %s. Type 'help' for available commands.", parsed.Command))
	}
	return cmd.Run(parsed, Env{Path: currentPath, Root: root, Now: e.now()})
}

var defaultExecutor = NewExecutor()

// Execute runs input with the default executor.
func Execute(input, currentPath string, root *vfs.Node) Result {
	return defaultExecutor.Execute(input, currentPath, root)
}
