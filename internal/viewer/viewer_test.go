package viewer

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/portfolio-shell/psh/internal/shell"
	"github.com/portfolio-shell/psh/internal/vfs"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testTree() *vfs.Node {
	return vfs.NewTree("home",
		vfs.NewDir("portfolio",
			vfs.NewFile("bio.txt", "# About Me\n\nhello world", vfs.Metadata{}),
			vfs.NewFile("resume.pdf", "PDF Resume", vfs.Metadata{URL: "/pdfs/resume.pdf"}),
			vfs.ParseTrack("BEAMER 140 LUSKII COHBATT.mp3", "/mp3s"),
			vfs.ParseTrack("Solo.mp3", "/mp3s"),
		),
	)
}

func TestInlineText(t *testing.T) {
	term := New(&syncBuffer{}, WithPlain())
	bio := vfs.Lookup("~/portfolio/bio.txt", testTree())
	got := term.Inline(shell.TextViewer, bio)
	for _, want := range []string{"About Me", "hello world"} {
		if !strings.Contains(got, want) {
			t.Errorf("text viewer output missing %q:\n%s", want, got)
		}
	}
}

func TestInlineAudio(t *testing.T) {
	term := New(&syncBuffer{}, WithPlain())
	root := testTree()

	got := term.Inline(shell.AudioViewer, vfs.Lookup("~/portfolio/beamer.mp3", root))
	for _, want := range []string{"[~] beamer.mp3", "140 bpm · luskii cohbatt", "src: /mp3s/BEAMER 140 LUSKII COHBATT.mp3"} {
		if !strings.Contains(got, want) {
			t.Errorf("audio viewer output missing %q:\n%s", want, got)
		}
	}

	got = term.Inline(shell.AudioViewer, vfs.Lookup("~/portfolio/solo.mp3", root))
	if strings.Contains(got, "bpm") || !strings.Contains(got, "instrumental") {
		t.Errorf("audio viewer without bpm:\n%s", got)
	}
}

func TestOverlay(t *testing.T) {
	out := &syncBuffer{}
	term := New(out, WithPlain())
	term.Overlay(shell.PDFViewer, vfs.Lookup("~/portfolio/resume.pdf", testTree()))
	got := out.String()
	for _, want := range []string{"╭", "╯", "[#] resume.pdf", "pdf viewer", "/pdfs/resume.pdf"} {
		if !strings.Contains(got, want) {
			t.Errorf("overlay missing %q:\n%s", want, got)
		}
	}
}

func TestOpenURLAndClear(t *testing.T) {
	out := &syncBuffer{}
	term := New(out, WithPlain())
	term.OpenURL("https://example.com")
	term.Clear()
	if got := out.String(); got != "  https://example.com\n" {
		t.Errorf("got %q", got)
	}

	out = &syncBuffer{}
	New(out).Clear()
	if got := out.String(); got != "\x1b[H\x1b[2J" {
		t.Errorf("Clear wrote %q", got)
	}
}

func TestMatrix(t *testing.T) {
	out := &syncBuffer{}
	term := New(out, WithPlain(), WithWrap(20), WithFrame(time.Millisecond))

	term.HideMatrix()
	term.ShowMatrix()
	term.ShowMatrix()

	deadline := time.Now().Add(2 * time.Second)
	for strings.Count(out.String(), "\n") < 3 {
		if time.Now().After(deadline) {
			t.Fatal("matrix wrote nothing")
		}
		time.Sleep(time.Millisecond)
	}

	term.HideMatrix()
	n := len(out.String())
	time.Sleep(10 * time.Millisecond)
	if len(out.String()) != n {
		t.Error("matrix kept writing after HideMatrix")
	}

	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if got := len([]rune(line)); got > 20 {
			t.Errorf("line is %d runes wide, want at most 20", got)
		}
	}
}

func TestMatrixLine(t *testing.T) {
	if got := len([]rune(matrixLine(33))); got != 33 {
		t.Errorf("matrixLine(33) has %d runes", got)
	}
}
