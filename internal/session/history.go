package session

import (
	"slices"
	"time"
)

// Entry is one block of scrollback: an echoed input and what it printed.
// Boot messages and inline viewers have an empty Input.
type Entry struct {
	ID     string
	Input  string
	Output string
	Path   string
	Time   time.Time
}

// History is the session scrollback plus the up/down recall cursor. The
// cursor indexes non-empty inputs from the newest; -1 means not recalling.
type History struct {
	entries []Entry
	cursor  int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{cursor: -1}
}

// Append adds e to the end of the scrollback.
func (h *History) Append(e Entry) {
	h.entries = append(h.entries, e)
}

// Entries returns a copy of the scrollback.
func (h *History) Entries() []Entry {
	return slices.Clone(h.entries)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Clear discards every entry and resets the cursor.
func (h *History) Clear() {
	h.entries = nil
	h.cursor = -1
}

// Cursor returns the recall position.
func (h *History) Cursor() int {
	return h.cursor
}

// ResetCursor leaves recall mode.
func (h *History) ResetCursor() {
	h.cursor = -1
}

func (h *History) inputs() []string {
	var out []string
	for _, e := range h.entries {
		if e.Input != "" {
			out = append(out, e.Input)
		}
	}
	return out
}

// Prev moves one input back in time and returns it. ok is false when already
// at the oldest input, in which case the line should stay as it is.
func (h *History) Prev() (line string, ok bool) {
	inputs := h.inputs()
	if h.cursor >= len(inputs)-1 {
		return "", false
	}
	h.cursor++
	return inputs[len(inputs)-1-h.cursor], true
}

// Next moves one input forward. Moving past the newest input leaves recall
// mode and yields an empty line.
func (h *History) Next() (line string, ok bool) {
	switch {
	case h.cursor > 0:
		h.cursor--
		inputs := h.inputs()
		return inputs[len(inputs)-1-h.cursor], true
	case h.cursor == 0:
		h.cursor = -1
		return "", true
	}
	return "", false
}
