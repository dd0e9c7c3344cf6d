// Package viewer renders files and effects for a terminal.
package viewer

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/portfolio-shell/psh/internal/shell"
	"github.com/portfolio-shell/psh/internal/vfs"
)

// Terminal writes viewers, links and effects to an output stream.
type Terminal struct {
	mu    sync.Mutex
	dark  bool
	stop  chan struct{}
	done  chan struct{}
	frame time.Duration

	writeMu sync.Mutex
	out     io.Writer
	wrap    int
	plain   bool
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithWrap sets the text width.
func WithWrap(n int) Option { return func(t *Terminal) { t.wrap = n } }

// WithPlain disables colors, markdown styling and screen control codes.
func WithPlain() Option { return func(t *Terminal) { t.plain = true } }

// WithDark selects the initial theme.
func WithDark(dark bool) Option { return func(t *Terminal) { t.dark = dark } }

// WithFrame sets the delay between matrix lines.
func WithFrame(d time.Duration) Option { return func(t *Terminal) { t.frame = d } }

// New returns a Terminal writing to out.
func New(out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{out: out, wrap: 80, dark: true, frame: 60 * time.Millisecond}
	for _, opt := range opts {
		opt(t)
	}
	if t.wrap <= 0 {
		t.wrap = 80
	}
	return t
}

// SetDark switches the theme.
func (t *Terminal) SetDark(dark bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dark = dark
}

func (t *Terminal) isDark() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dark
}

func (t *Terminal) accent() lipgloss.Style {
	if t.plain {
		return lipgloss.NewStyle()
	}
	if t.isDark() {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
}

func (t *Terminal) dim() lipgloss.Style {
	if t.plain {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Faint(true)
}

func (t *Terminal) write(s string) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	io.WriteString(t.out, s)
}

// Inline renders file for the scrollback.
func (t *Terminal) Inline(kind shell.ViewerKind, file *vfs.Node) string {
	switch kind {
	case shell.TextViewer:
		return t.renderText(file)
	case shell.AudioViewer:
		return t.renderAudio(file)
	default:
		return t.renderLink(file)
	}
}

// Overlay prints file inside a titled frame.
func (t *Terminal) Overlay(kind shell.ViewerKind, file *vfs.Node) {
	title := t.accent().Bold(!t.plain).Render(vfs.Icon(file) + " " + file.Name)
	hint := t.dim().Render(kind.String() + " viewer")
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if !t.plain {
		frame = frame.BorderForeground(t.accent().GetForeground())
	}
	body := title + "  " + hint + "\n\n" + t.Inline(kind, file)
	t.write(frame.Render(body) + "\n")
}

func (t *Terminal) renderText(file *vfs.Node) string {
	style := "light"
	switch {
	case t.plain:
		style = "notty"
	case t.isDark():
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(t.wrap),
	)
	if err != nil {
		return file.Content
	}
	out, err := r.Render(file.Content)
	if err != nil {
		return file.Content
	}
	return strings.Trim(out, "\n")
}

func (t *Terminal) renderAudio(file *vfs.Node) string {
	lines := []string{t.accent().Render("[~] " + file.Name)}

	var info []string
	if file.Meta.BPM != nil {
		info = append(info, fmt.Sprintf("%d bpm", *file.Meta.BPM))
	}
	if len(file.Meta.Tags) > 0 {
		info = append(info, strings.ToLower(strings.Join(file.Meta.Tags, " / ")))
	}
	if len(info) > 0 {
		lines = append(lines, "    "+strings.Join(info, " · "))
	}

	lines = append(lines, "    |> 0:00 "+strings.Repeat("─", 24))
	if file.Meta.AudioURL != "" {
		lines = append(lines, t.dim().Render("    src: "+file.Meta.AudioURL))
	}
	return strings.Join(lines, "\n")
}

func (t *Terminal) renderLink(file *vfs.Node) string {
	src := file.Meta.URL
	if src == "" {
		src = file.Content
	}
	if src == "" {
		src = file.Path
	}
	return vfs.Icon(file) + " " + file.Name + "\n    " + t.dim().Render(src)
}

// OpenURL prints the link.
func (t *Terminal) OpenURL(url string) {
	style := t.accent()
	if !t.plain {
		style = style.Underline(true)
	}
	t.write("  " + style.Render(url) + "\n")
}

// Clear wipes the screen.
func (t *Terminal) Clear() {
	if t.plain {
		return
	}
	t.write("\x1b[H\x1b[2J")
}

const matrixGlyphs = "ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄ0123456789"

// ShowMatrix starts the matrix rain. It keeps printing until HideMatrix.
func (t *Terminal) ShowMatrix() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	t.stop, t.done = make(chan struct{}), make(chan struct{})
	go t.rain(t.stop, t.done)
}

// HideMatrix stops the rain and waits for the last line to be written.
func (t *Terminal) HideMatrix() {
	t.mu.Lock()
	stop, done := t.stop, t.done
	t.stop, t.done = nil, nil
	t.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (t *Terminal) rain(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(t.frame)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.write(t.accent().Render(matrixLine(t.wrap)) + "\n")
		}
	}
}

func matrixLine(width int) string {
	glyphs := []rune(matrixGlyphs)
	line := make([]rune, width)
	for i := range line {
		if rand.Intn(3) == 0 {
			line[i] = glyphs[rand.Intn(len(glyphs))]
		} else {
			line[i] = ' '
		}
	}
	return string(line)
}
