package vfs

import (
	"strconv"
	"strings"
)

// DefaultTag is used when a track filename names no artist.
const DefaultTag = "INSTRUMENTAL"

// ParseTrack builds an audio file node from a filename of the form
// "<name> <bpm> <artist...>.mp3". The name is lowercased, the first all-digit
// token after it becomes the BPM, and what follows the BPM is upper-cased
// into a single tag. baseURL is where the original file is served from.
func ParseTrack(filename, baseURL string) *Node {
	parts := strings.Split(strings.Replace(filename, ".mp3", "", 1), " ")
	name := strings.ToLower(parts[0]) + ".mp3"

	meta := Metadata{
		Extension: "mp3",
		AudioURL:  strings.TrimRight(baseURL, "/") + "/" + filename,
	}

	rest := parts[1:]
	for i, p := range parts[1:] {
		if !isDigits(p) {
			continue
		}
		if bpm, err := strconv.Atoi(p); err == nil {
			meta.BPM = &bpm
		}
		rest = parts[i+2:]
		break
	}

	if artists := strings.Join(rest, " "); artists != "" {
		meta.Tags = []string{strings.ToUpper(artists)}
	} else {
		meta.Tags = []string{DefaultTag}
	}

	return &Node{
		Name:    name,
		Kind:    File,
		Content: "Audio file: " + name,
		Meta:    meta,
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
