package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/portfolio-shell/psh/internal/session"
)

// screen is the part of *readline.Instance the completer draws on.
type screen interface {
	io.Writer
	Refresh()
}

// tabCompleter adapts session tab completion to readline's AutoCompleter.
// readline only inserts suffixes, so a completion that changes what was
// typed (a different case) is listed instead, as are several candidates.
type tabCompleter struct {
	session *session.Session
	screen  screen
}

// Do handles tab completion logic
func (c *tabCompleter) Do(line []rune, pos int) ([][]rune, int) {
	if c.session == nil {
		c.ring()
		return nil, 0
	}

	typed := string(line[:pos])
	word := lastWord(typed)
	next, suggestions := c.session.Tab(typed)

	switch {
	case len(suggestions) > 0:
		c.list(suggestions)
		return nil, 0
	case next == typed:
		c.ring()
		return nil, 0
	case !strings.HasPrefix(next, typed):
		c.list([]string{lastWord(strings.TrimSuffix(next, " "))})
		return nil, 0
	}
	return [][]rune{[]rune(next[len(typed):])}, len([]rune(word))
}

func (c *tabCompleter) ring() {
	if c.screen != nil {
		fmt.Fprint(c.screen, "\x07")
	}
}

func (c *tabCompleter) list(items []string) {
	if c.screen == nil {
		return
	}
	items = append([]string(nil), items...)
	sort.Strings(items)
	fmt.Fprintf(c.screen, "\n%s\n", strings.Join(items, "  "))
	c.screen.Refresh()
}

func lastWord(s string) string {
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		return s[i+1:]
	}
	return s
}
