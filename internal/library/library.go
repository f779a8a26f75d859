package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// Library is a sorted set of tracks keyed by absolute path.
// It is not safe for concurrent use; callers scan a Clone and swap.
type Library struct {
	tracks []Track
	known  map[string]struct{}

	artists []Artist
	albums  []Album
}

// New returns a library holding tracks.
func New(tracks ...Track) *Library {
	l := &Library{known: make(map[string]struct{}, len(tracks))}
	for _, t := range tracks {
		l.add(t)
	}
	l.rebuild()
	return l
}

// Clone returns an independent copy of the library.
func (l *Library) Clone() *Library {
	return New(l.tracks...)
}

// Tracks returns the tracks in sort order.
func (l *Library) Tracks() []Track {
	return slices.Clone(l.tracks)
}

// Len returns the number of tracks.
func (l *Library) Len() int {
	return len(l.tracks)
}

// Contains reports whether a track with the given absolute path is known.
func (l *Library) Contains(path string) bool {
	_, ok := l.known[path]
	return ok
}

// Artists returns the browse hierarchy, AllArtists first.
func (l *Library) Artists() []Artist {
	return l.artists
}

// Albums returns every album, AllAlbums first.
func (l *Library) Albums() []Album {
	return l.albums
}

// Add inserts a track unless its path is already known.
func (l *Library) Add(t Track) bool {
	if !l.add(t) {
		return false
	}
	l.rebuild()
	return true
}

// AddPath adds the audio file at path, or every audio file below it when
// path is a directory. Files that cannot be resolved are skipped.
// It returns the number of tracks added.
func (l *Library) AddPath(path string) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, errors.Wrapf(err, "add %s", path)
	}
	if _, err := os.Stat(abs); err != nil {
		return 0, errors.Wrapf(err, "add %s", path)
	}

	added := 0
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			zlog.Warn().Err(err).Str("path", p).Msg("library: skipping unreadable entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsAudioFile(p) || l.Contains(p) {
			return nil
		}
		t, err := Resolve(p)
		if err != nil {
			zlog.Debug().Err(err).Str("path", p).Msg("library: skipping file")
			return nil
		}
		if l.add(t) {
			added++
		}
		return nil
	})
	if err != nil {
		return added, errors.Wrapf(err, "add %s", path)
	}

	if added > 0 {
		l.rebuild()
	}
	zlog.Info().Str("path", abs).Int("added", added).Msg("library: path added")
	return added, nil
}

func (l *Library) add(t Track) bool {
	if _, ok := l.known[t.Path]; ok {
		return false
	}
	l.known[t.Path] = struct{}{}
	l.tracks = append(l.tracks, t)
	return true
}

func (l *Library) rebuild() {
	slices.SortStableFunc(l.tracks, Compare)
	l.artists, l.albums = Group(l.tracks)
}
