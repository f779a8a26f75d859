package library

import (
	"cmp"
	"strings"
	"time"
)

// Unknown is used for artist and album names missing from the tags.
const Unknown = "Unknown"

// Track is one playable audio file and the metadata read from it.
// Zero values mean "not known" for Title, Year and Number.
type Track struct {
	Title  string
	Artist string
	Album  string
	Year   int
	Number int
	Length time.Duration
	Path   string
}

// DisplayTitle returns the title, or the file path when the file has none.
func (t Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Path
}

// Compare orders tracks by artist, album, track number, then title.
func Compare(a, b Track) int {
	if c := strings.Compare(a.Artist, b.Artist); c != 0 {
		return c
	}
	if c := strings.Compare(a.Album, b.Album); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Number, b.Number); c != 0 {
		return c
	}
	return strings.Compare(
		strings.ToLower(a.DisplayTitle()),
		strings.ToLower(b.DisplayTitle()),
	)
}
