package shell

import "github.com/portfolio-shell/psh/internal/vfs"

// ViewerKind selects the renderer a file is opened with.
type ViewerKind int

const (
	TextViewer ViewerKind = iota
	AudioViewer
	PDFViewer
	ImageViewer
)

func (k ViewerKind) String() string {
	switch k {
	case TextViewer:
		return "text"
	case AudioViewer:
		return "audio"
	case PDFViewer:
		return "pdf"
	case ImageViewer:
		return "image"
	}
	return "unknown"
}

// Action is a side effect requested by a command. It is one of OpenFile,
// OpenURL, Clear or ShowMatrix.
type Action interface {
	action()
}

// OpenFile asks the session to show File in the viewer of the given kind.
type OpenFile struct {
	Viewer ViewerKind
	File   *vfs.Node
}

// OpenURL asks the session to open an external link.
type OpenURL struct {
	URL string
}

// Clear asks the session to discard its history.
type Clear struct{}

// ShowMatrix asks the session to show the matrix effect for a while.
type ShowMatrix struct{}

func (OpenFile) action()   {}
func (OpenURL) action()    {}
func (Clear) action()      {}
func (ShowMatrix) action() {}

// Result is what executing one line produces. Failures are ordinary results
// whose Output describes the problem.
type Result struct {
	// Output is the text to print; empty means nothing to print.
	Output string
	// NewPath is set when the command changes the current directory.
	NewPath string
	// Action is nil unless the command has a side effect.
	Action Action
}

// Actionable reports whether the result asks the caller to do more than print.
func (r Result) Actionable() bool {
	return r.NewPath != "" || r.Action != nil
}

func text(s string) Result {
	return Result{Output: s}
}
