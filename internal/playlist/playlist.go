// Package playlist stores named track lists as extended M3U8 files.
package playlist

import (
	"slices"

	"github.com/llehouerou/cadence/internal/library"
)

// DefaultName is used for playlists saved without a name.
const DefaultName = "Untitled"

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	Name   string
	Tracks []library.Track
	// Path is the file the playlist was loaded from or saved to.
	Path string
}

// New creates an empty playlist.
func New(name string) *Playlist {
	if name == "" {
		name = DefaultName
	}
	return &Playlist{Name: name}
}

// Add appends tracks to the playlist.
func (p *Playlist) Add(tracks ...library.Track) {
	p.Tracks = append(p.Tracks, tracks...)
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.Tracks)
}

// Contains reports whether a track with path is in the playlist.
func (p *Playlist) Contains(path string) bool {
	return slices.ContainsFunc(p.Tracks, func(t library.Track) bool { return t.Path == path })
}

// Group returns the artist and album hierarchy of the playlist tracks.
func (p *Playlist) Group() ([]library.Artist, []library.Album) {
	return library.Group(p.Tracks)
}
