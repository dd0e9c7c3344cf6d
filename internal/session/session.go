// Package session drives the shell: it owns the current path and history,
// feeds input to the executor and carries out the results.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/portfolio-shell/psh/internal/prefs"
	"github.com/portfolio-shell/psh/internal/shell"
	"github.com/portfolio-shell/psh/internal/vfs"
)

// Viewer renders files.
type Viewer interface {
	// Inline returns the file rendered for the scrollback.
	Inline(kind shell.ViewerKind, file *vfs.Node) string
	// Overlay shows the file on top of the scrollback.
	Overlay(kind shell.ViewerKind, file *vfs.Node)
}

// Host carries out effects outside the scrollback.
type Host interface {
	OpenURL(url string)
	Clear()
	ShowMatrix()
	HideMatrix()
}

// Timer is the part of *time.Timer the session uses.
type Timer interface {
	Stop() bool
}

// DefaultMatrixDuration is how long the matrix effect stays up.
const DefaultMatrixDuration = 5 * time.Second

// Session is one interactive shell. It is safe for concurrent use; the
// matrix timer fires on its own goroutine.
type Session struct {
	mu sync.Mutex

	root    *vfs.Node
	exec    *shell.Executor
	viewer  Viewer
	host    Host
	store   prefs.Store
	log     *zap.Logger
	now     func() time.Time
	after   func(time.Duration, func()) Timer
	newID   func() string
	matrixD time.Duration

	path     string
	history  *History
	noPopup  bool
	darkMode bool

	matrixOn    bool
	matrixTimer Timer
}

// Option configures a Session.
type Option func(*Session)

// WithExecutor sets the executor.
func WithExecutor(e *shell.Executor) Option { return func(s *Session) { s.exec = e } }

// WithViewer sets the file viewer.
func WithViewer(v Viewer) Option { return func(s *Session) { s.viewer = v } }

// WithHost sets the host.
func WithHost(h Host) Option { return func(s *Session) { s.host = h } }

// WithPrefs sets the preference store. Preferences are read once here.
func WithPrefs(p prefs.Store) Option { return func(s *Session) { s.store = p } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(s *Session) { s.log = l } }

// WithClock sets the clock used for entry timestamps.
func WithClock(now func() time.Time) Option { return func(s *Session) { s.now = now } }

// WithAfterFunc replaces time.AfterFunc for the matrix revert.
func WithAfterFunc(f func(time.Duration, func()) Timer) Option {
	return func(s *Session) { s.after = f }
}

// WithMatrixDuration sets how long the matrix effect lasts.
func WithMatrixDuration(d time.Duration) Option { return func(s *Session) { s.matrixD = d } }

// New starts a session at the home directory of root.
func New(root *vfs.Node, opts ...Option) *Session {
	s := &Session{
		root:    root,
		exec:    shell.NewExecutor(),
		viewer:  nopViewer{},
		host:    nopHost{},
		store:   prefs.NewMemStore(),
		log:     zap.NewNop(),
		now:     time.Now,
		after:   func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) },
		newID:   uuid.NewString,
		matrixD: DefaultMatrixDuration,
		path:    vfs.Home,
		history: NewHistory(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.noPopup = prefs.GetOr(s.store, prefs.NoPopup, false)
	s.darkMode = prefs.GetOr(s.store, prefs.DarkMode, true)
	return s
}

// Path returns the current directory.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// History returns a copy of the scrollback.
func (s *Session) History() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entries()
}

func (s *Session) entry(input, output, path string) Entry {
	return Entry{ID: s.newID(), Input: input, Output: output, Path: path, Time: s.now()}
}

// Execute runs one line and returns the entries it added to the scrollback,
// in order. Blank lines are ignored.
func (s *Session) Execute(input string) []Entry {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.history.ResetCursor()

	res := s.exec.Execute(input, s.path, s.root)
	s.log.Debug("execute",
		zap.String("input", input),
		zap.String("path", s.path),
		zap.String("new_path", res.NewPath),
		zap.String("action", actionName(res.Action)))

	var added []Entry
	if _, ok := res.Action.(shell.Clear); ok {
		s.history.Clear()
		s.host.Clear()
	} else {
		e := s.entry(input, res.Output, s.path)
		s.history.Append(e)
		added = append(added, e)
	}

	if res.NewPath != "" {
		s.path = res.NewPath
		ls := s.exec.Execute("ls", s.path, s.root)
		e := s.entry("ls", ls.Output, s.path)
		s.history.Append(e)
		added = append(added, e)
	}

	switch a := res.Action.(type) {
	case shell.OpenFile:
		if e, ok := s.open(a); ok {
			added = append(added, e)
		}
	case shell.OpenURL:
		s.host.OpenURL(a.URL)
	case shell.ShowMatrix:
		s.showMatrix()
	}
	return added
}

// open routes a file to a viewer. PDFs always get an overlay; text and audio
// go inline when popups are off.
func (s *Session) open(a shell.OpenFile) (Entry, bool) {
	inline := s.noPopup && (a.Viewer == shell.TextViewer || a.Viewer == shell.AudioViewer)
	if !inline {
		s.viewer.Overlay(a.Viewer, a.File)
		return Entry{}, false
	}
	e := s.entry("", s.viewer.Inline(a.Viewer, a.File), s.path)
	s.history.Append(e)
	return e, true
}

func (s *Session) showMatrix() {
	if s.matrixTimer != nil {
		s.matrixTimer.Stop()
	}
	s.matrixOn = true
	s.host.ShowMatrix()
	s.matrixTimer = s.after(s.matrixD, s.hideMatrix)
}

func (s *Session) hideMatrix() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.matrixOn {
		return
	}
	s.matrixOn = false
	s.matrixTimer = nil
	s.host.HideMatrix()
}

// MatrixActive reports whether the matrix effect is showing.
func (s *Session) MatrixActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matrixOn
}

// Complete returns completions for partial at the current path.
func (s *Session) Complete(partial string) []string {
	return shell.Complete(partial, s.Path(), s.root)
}

// Tab applies tab completion to line. A single candidate replaces the last
// word (or, while typing the command, the whole line plus a space). Several
// candidates are returned as suggestions and the line is left alone.
func (s *Session) Tab(line string) (string, []string) {
	completions := s.Complete(line)
	switch len(completions) {
	case 0:
		return line, nil
	case 1:
		parts := strings.Split(line, " ")
		if len(parts) > 1 {
			parts[len(parts)-1] = completions[0]
			return strings.Join(parts, " "), nil
		}
		return completions[0] + " ", nil
	}
	return line, completions
}

// Prev recalls the previous input.
func (s *Session) Prev() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Prev()
}

// Next recalls the next input.
func (s *Session) Next() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Next()
}

// NoPopup reports whether text and audio open inline.
func (s *Session) NoPopup() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.noPopup
}

// DarkMode reports whether the dark theme is on.
func (s *Session) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// TogglePopup flips the inline/overlay preference and persists it.
func (s *Session) TogglePopup() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noPopup = !s.noPopup
	s.persist(prefs.NoPopup, s.noPopup)
	return s.noPopup
}

// ToggleTheme flips the theme preference and persists it.
func (s *Session) ToggleTheme() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = !s.darkMode
	s.persist(prefs.DarkMode, s.darkMode)
	return s.darkMode
}

func (s *Session) persist(key string, v bool) {
	if err := s.store.Set(key, v); err != nil {
		s.log.Warn("saving preference", zap.String("key", key), zap.Error(err))
	}
}

func actionName(a shell.Action) string {
	switch a := a.(type) {
	case shell.OpenFile:
		return "open-file:" + a.Viewer.String()
	case shell.OpenURL:
		return "open-url"
	case shell.Clear:
		return "clear"
	case shell.ShowMatrix:
		return "show-matrix"
	}
	return ""
}

type nopViewer struct{}

func (nopViewer) Inline(shell.ViewerKind, *vfs.Node) string { return "" }
func (nopViewer) Overlay(shell.ViewerKind, *vfs.Node)       {}

type nopHost struct{}

func (nopHost) OpenURL(string) {}
func (nopHost) Clear()         {}
func (nopHost) ShowMatrix()    {}
func (nopHost) HideMatrix()    {}
