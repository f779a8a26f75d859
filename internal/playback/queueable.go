package playback

import (
	"github.com/llehouerou/cadence/internal/library"
)

// Kind identifies what a Queueable holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindArtist
	KindAlbum
	KindPlaylist
	KindTrackList
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindArtist:
		return "Artist"
	case KindAlbum:
		return "Album"
	case KindPlaylist:
		return "Playlist"
	case KindTrackList:
		return "TrackList"
	default:
		return "Unknown"
	}
}

// Queueable is a unit that can be placed in the queue. Only the field
// matching Kind is read.
type Queueable struct {
	Kind     Kind
	Artist   library.Artist
	Album    library.Album
	Playlist []library.Track
	List     []library.Track
}

// ArtistOf wraps an artist.
func ArtistOf(a library.Artist) Queueable {
	return Queueable{Kind: KindArtist, Artist: a}
}

// AlbumOf wraps an album.
func AlbumOf(a library.Album) Queueable {
	return Queueable{Kind: KindAlbum, Album: a}
}

// PlaylistOf wraps the tracks of a playlist.
func PlaylistOf(tracks []library.Track) Queueable {
	return Queueable{Kind: KindPlaylist, Playlist: tracks}
}

// TrackListOf wraps an explicit track list.
func TrackListOf(tracks []library.Track) Queueable {
	return Queueable{Kind: KindTrackList, List: tracks}
}

// Tracks expands q to its ordered tracks. An artist yields its
// aggregate album, an album its stored order. The result is a fresh
// slice the caller may modify.
func (q Queueable) Tracks() []library.Track {
	var src []library.Track
	switch q.Kind {
	case KindArtist:
		src = q.Artist.Tracks()
	case KindAlbum:
		src = q.Album.Tracks
	case KindPlaylist:
		src = q.Playlist
	case KindTrackList:
		src = q.List
	case KindEmpty:
	}
	out := make([]library.Track, len(src))
	copy(out, src)
	return out
}
