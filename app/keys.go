package main

import (
	"github.com/chzyer/readline"

	"github.com/portfolio-shell/psh/internal/session"
	"github.com/portfolio-shell/psh/internal/viewer"
)

const (
	keyTogglePopup = 15 // Ctrl+O
	keyToggleTheme = 24 // Ctrl+X
)

// keyHandler routes arrow-key recall through the session history and binds
// the preference toggles.
type keyHandler struct {
	session *session.Session
	term    *viewer.Terminal
	// last recalled line, kept when recall hits the oldest input
	recalled []rune
}

// filter swallows the toggle keys.
func (k *keyHandler) filter(r rune) (rune, bool) {
	if k.session == nil {
		return r, true
	}
	switch r {
	case keyTogglePopup:
		k.session.TogglePopup()
		return r, false
	case keyToggleTheme:
		k.term.SetDark(k.session.ToggleTheme())
		return r, false
	}
	return r, true
}

// OnChange replaces the line readline recalled with the session's own.
func (k *keyHandler) OnChange(line []rune, pos int, key rune) ([]rune, int, bool) {
	if k.session == nil {
		return nil, 0, false
	}
	switch key {
	case readline.CharPrev:
		if s, ok := k.session.Prev(); ok {
			k.recalled = []rune(s)
		}
		if k.recalled == nil {
			return nil, 0, false
		}
		return k.recalled, len(k.recalled), true
	case readline.CharNext:
		s, ok := k.session.Next()
		if !ok {
			return nil, 0, false
		}
		k.recalled = []rune(s)
		return k.recalled, len(k.recalled), true
	case readline.CharEnter, readline.CharInterrupt:
		k.recalled = nil
	}
	return nil, 0, false
}
