package shell

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/portfolio-shell/psh/internal/vfs"
)

func testTree() *vfs.Node {
	return vfs.NewTree("home",
		vfs.NewDir("portfolio",
			vfs.NewDir("about",
				vfs.NewFile("bio.txt", "# About", vfs.Metadata{}),
				vfs.NewFile("notes.md", "notes", vfs.Metadata{}),
				vfs.NewFile("site.url", "", vfs.Metadata{URL: "https://example.com"}),
				vfs.NewFile("broken.url", "", vfs.Metadata{}),
				vfs.NewFile("photo.png", "", vfs.Metadata{}),
				vfs.NewFile("data.bin", "", vfs.Metadata{}),
			),
			vfs.NewDir("music",
				vfs.NewDir("tracks",
					vfs.ParseTrack("BEAMER 140 LUSKII COHBATT.mp3", "/mp3s"),
				),
				vfs.NewFile("discography.txt", "", vfs.Metadata{}),
			),
			vfs.NewDir("empty"),
			vfs.NewFile("zeta", "", vfs.Metadata{}),
			vfs.NewFile("resume.pdf", "PDF Resume", vfs.Metadata{}),
		),
	)
}

func TestExecuteLs(t *testing.T) {
	root := testTree()
	tests := []struct {
		input, path, want string
	}{
		{"ls", "~/portfolio", "[/]about/    [/]empty/    [/]music/    [#]resume.pdf    [-]zeta"},
		{"ls -l", "~/portfolio", "[/]about/\n[/]empty/\n[/]music/\n[#]resume.pdf\n[-]zeta"},
		{"ls music", "~/portfolio", "[/]tracks/    [-]discography.txt"},
		{"ls ..", "~/portfolio/music", "[/]about/    [/]empty/    [/]music/    [#]resume.pdf    [-]zeta"},
		{"ls resume.pdf", "~/portfolio", "[#] resume.pdf"},
		{"ls empty", "~/portfolio", "(empty directory)"},
		{"ls nope", "~/portfolio", "ls: cannot access 'nope': No such file or directory"},
		{"ls", "~/portfolio/gone", "ls: cannot access '~/portfolio/gone': No such file or directory"},
		{"ls ~", "~/portfolio/about", "[/]portfolio/"},
	}
	for _, tt := range tests {
		got := Execute(tt.input, tt.path, root)
		if got.Output != tt.want {
			t.Errorf("%q at %s: got %q, want %q", tt.input, tt.path, got.Output, tt.want)
		}
		if got.Actionable() {
			t.Errorf("%q at %s: unexpected side effect %+v", tt.input, tt.path, got)
		}
	}
}

func TestExecuteCd(t *testing.T) {
	root := testTree()
	tests := []struct {
		input, path string
		want        Result
	}{
		{"cd", "~/portfolio/about", Result{NewPath: "~/portfolio"}},
		{"cd ~", "~/portfolio/about", Result{NewPath: "~/portfolio"}},
		{"cd about", "~/portfolio", Result{NewPath: "~/portfolio/about"}},
		{"cd about/", "~/portfolio", Result{NewPath: "~/portfolio/about"}},
		{"cd ../music/tracks", "~/portfolio/about", Result{NewPath: "~/portfolio/music/tracks"}},
		{"cd ~/portfolio/music", "~/portfolio", Result{NewPath: "~/portfolio/music"}},
		{"cd ..", "~/portfolio", Result{NewPath: "~"}},
		{"cd nonexistent", "~/portfolio", Result{Output: "cd: nonexistent: No such file or directory"}},
		{"cd zeta", "~/portfolio", Result{Output: "cd: zeta: Not a directory"}},
	}
	for _, tt := range tests {
		got := Execute(tt.input, tt.path, root)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q at %s (-want +got):\n%s", tt.input, tt.path, diff)
		}
	}
}

func TestExecuteOpen(t *testing.T) {
	root := testTree()
	about := vfs.Lookup("~/portfolio/about", root)
	track := vfs.Lookup("~/portfolio/music/tracks/beamer.mp3", root)
	pdf := vfs.Lookup("~/portfolio/resume.pdf", root)

	tests := []struct {
		input, path string
		want        Result
	}{
		{"open", "~/portfolio", Result{Output: "Usage: open <file>"}},
		{"cat", "~/portfolio", Result{Output: "Usage: open <file>"}},
		{"open nope", "~/portfolio", Result{Output: "open: nope: No such file or directory"}},
		{"open about", "~/portfolio", Result{NewPath: "~/portfolio/about"}},
		{"open resume.pdf", "~/portfolio", Result{
			Output: "Opening resume.pdf...",
			Action: OpenFile{Viewer: PDFViewer, File: pdf},
		}},
		{"cat music/tracks/beamer.mp3", "~/portfolio", Result{
			Output: "Loading audio player for beamer.mp3...",
			Action: OpenFile{Viewer: AudioViewer, File: track},
		}},
		{"cat bio.txt", "~/portfolio/about", Result{
			Action: OpenFile{Viewer: TextViewer, File: about.Child("bio.txt")},
		}},
		{"open notes.md", "~/portfolio/about", Result{
			Action: OpenFile{Viewer: TextViewer, File: about.Child("notes.md")},
		}},
		{"open site.url", "~/portfolio/about", Result{
			Output: "Opening https://example.com...",
			Action: OpenURL{URL: "https://example.com"},
		}},
		{"open photo.png", "~/portfolio/about", Result{
			Output: "Opening image photo.png...",
			Action: OpenFile{Viewer: ImageViewer, File: about.Child("photo.png")},
		}},
		{"open broken.url", "~/portfolio/about", Result{Output: "Cannot open broken.url: Unknown file type"}},
		{"open data.bin", "~/portfolio/about", Result{Output: "Cannot open data.bin: Unknown file type"}},
	}
	for _, tt := range tests {
		got := Execute(tt.input, tt.path, root)
		if got.Output != tt.want.Output || got.NewPath != tt.want.NewPath {
			t.Errorf("%q: got {%q %q}, want {%q %q}", tt.input, got.Output, got.NewPath, tt.want.Output, tt.want.NewPath)
		}
		if got.Action != tt.want.Action {
			t.Errorf("%q: action = %#v, want %#v", tt.input, got.Action, tt.want.Action)
		}
	}
}

func TestExecuteTree(t *testing.T) {
	root := testTree()
	want := strings.Join([]string{
		"portfolio",
		"├── [/]about",
		"│   ├── [-]bio.txt",
		"│   ├── [@]broken.url",
		"│   ├── [-]data.bin",
		"│   ├── [*]notes.md",
		"│   ├── [=]photo.png",
		"│   └── [@]site.url",
		"├── [/]empty",
		"├── [/]music",
		"│   ├── [/]tracks",
		"│   │   └── [~]beamer.mp3",
		"│   └── [-]discography.txt",
		"├── [#]resume.pdf",
		"└── [-]zeta",
	}, "\n")
	if got := Execute("tree", "~/portfolio", root).Output; got != want {
		t.Errorf("tree:\n%s\nwant:\n%s", got, want)
	}

	want = "music\n├── [/]tracks\n│   └── [~]beamer.mp3\n└── [-]discography.txt"
	if got := Execute("tree ../music", "~/portfolio/about", root).Output; got != want {
		t.Errorf("tree ../music:\n%s\nwant:\n%s", got, want)
	}

	for input, want := range map[string]string{
		"tree nope":  "tree: nope: No such directory",
		"tree zeta":  "tree: zeta: Not a directory",
		"tree empty": "empty",
	} {
		if got := Execute(input, "~/portfolio", root).Output; got != want {
			t.Errorf("%q: got %q, want %q", input, got, want)
		}
	}
}

func TestExecuteFixedResponses(t *testing.T) {
	root := testTree()
	for _, path := range []string{"~", "~/portfolio", "~/portfolio/about", "~/nowhere"} {
		got := Execute("pwd", path, root)
		if diff := cmp.Diff(Result{Output: path}, got); diff != "" {
			t.Errorf("pwd at %s (-want +got):\n%s", path, diff)
		}
	}

	tests := []struct {
		input string
		want  Result
	}{
		{"", Result{}},
		{"   ", Result{}},
		{"clear", Result{Action: Clear{}}},
		{"matrix", Result{Action: ShowMatrix{}}},
		{"sudo rm -rf /", Result{Output: "[!] Permission denied. Nice try though."}},
		{"SUDO", Result{Output: "[!] Permission denied. Nice try though."}},
		{"styling", Result{Output: stylingText}},
		{"srcl", Result{Output: stylingText}},
		{"help", Result{Output: helpText}},
		{"foo", Result{Output: "Command not found: foo. Type 'help' for available commands."}},
		{"FOO bar", Result{Output: "Command not found: foo. Type 'help' for available commands."}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Execute(tt.input, "~/portfolio", root)); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestExecuteNeofetchUsesClock(t *testing.T) {
	now := time.Unix(86400*3+125, 0)
	e := NewExecutor(WithClock(func() time.Time { return now }))
	got := e.Execute("neofetch", "~/portfolio", testTree()).Output
	if !strings.HasSuffix(got, "uptime: 125s") {
		t.Errorf("neofetch: got %q, want uptime 125s", got)
	}
}

func TestExecutorNames(t *testing.T) {
	names := NewExecutor().Names()
	for _, want := range []string{"cat", "cd", "clear", "coffee", "hack", "help", "history", "ls", "matrix",
		"neofetch", "open", "pwd", "srcl", "starwars", "styling", "sudo", "tree", "whoami"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("command %q not registered", want)
		}
	}
}
