package library

import (
	"cmp"
	"slices"
	"strings"

	"github.com/samber/lo"
)

const (
	// AllAlbums names the aggregate album placed first in every album list.
	AllAlbums = "All Albums"
	// AllArtists names the pseudo-artist placed first in the artist list.
	AllArtists = "All Artists"
)

// Album groups the tracks sharing an album name.
type Album struct {
	Name   string
	Year   int
	Tracks []Track
}

// Artist groups albums by artist name. Albums[0] is always the
// AllAlbums aggregate of every track of the artist.
type Artist struct {
	Name   string
	Albums []Album
}

// Tracks returns the tracks of the aggregate album.
func (a Artist) Tracks() []Track {
	if len(a.Albums) == 0 {
		return nil
	}
	return a.Albums[0].Tracks
}

// Group builds the artist and album hierarchies from tracks.
// Tracks are sorted with Compare first; input order is irrelevant.
func Group(tracks []Track) ([]Artist, []Album) {
	sorted := slices.Clone(tracks)
	slices.SortStableFunc(sorted, Compare)

	albums := groupAlbums(sorted)

	byArtist := lo.GroupBy(sorted, func(t Track) string { return t.Artist })
	names := lo.Keys(byArtist)
	slices.SortFunc(names, compareFold)

	artists := make([]Artist, 0, len(names)+1)
	artists = append(artists, Artist{Name: AllArtists, Albums: albums})
	for _, name := range names {
		artists = append(artists, Artist{
			Name:   name,
			Albums: groupAlbums(byArtist[name]),
		})
	}
	return artists, albums
}

// groupAlbums expects sorted tracks and returns the AllAlbums aggregate
// followed by one album per name, alphabetically.
func groupAlbums(sorted []Track) []Album {
	byAlbum := lo.GroupBy(sorted, func(t Track) string { return t.Album })
	names := lo.Keys(byAlbum)
	slices.SortFunc(names, compareFold)

	albums := make([]Album, 0, len(names)+1)
	albums = append(albums, Album{Name: AllAlbums, Tracks: sorted})
	for _, name := range names {
		tracks := byAlbum[name]
		year := lo.MaxBy(tracks, func(a, b Track) bool { return a.Year > b.Year }).Year
		albums = append(albums, Album{Name: name, Year: year, Tracks: tracks})
	}
	return albums
}

func compareFold(a, b string) int {
	return cmp.Or(
		strings.Compare(strings.ToLower(a), strings.ToLower(b)),
		strings.Compare(a, b),
	)
}
