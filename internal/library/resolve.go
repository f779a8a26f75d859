package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"

	"github.com/llehouerou/cadence/internal/player"
)

var (
	// ErrNotFile is returned when a path does not name a regular file.
	ErrNotFile = errors.New("not a regular file")
	// ErrUnsupported is returned for files without an audio extension.
	ErrUnsupported = errors.New("unsupported file type")
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".aiff": true,
	".m4a":  true,
	".ogg":  true,
	".opus": true,
	".aac":  true,
	".wav":  true,
}

// IsAudioFile reports whether the path has a known audio extension.
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// Resolve reads the tags and duration of the audio file at path.
// Missing artist and album tags become Unknown.
func Resolve(path string) (Track, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Track{}, errors.Wrapf(err, "resolve %s", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Track{}, errors.Wrapf(err, "resolve %s", path)
	}
	if !info.Mode().IsRegular() {
		return Track{}, errors.Wrapf(ErrNotFile, "resolve %s", path)
	}
	if !IsAudioFile(abs) {
		return Track{}, errors.Wrapf(ErrUnsupported, "resolve %s", path)
	}

	length, err := player.Probe(abs)
	if err != nil {
		return Track{}, errors.Wrapf(err, "resolve %s", path)
	}

	t := Track{
		Artist: Unknown,
		Album:  Unknown,
		Length: length,
		Path:   abs,
	}
	readTags(abs, &t)
	return t, nil
}

// readTags fills t from the file tags. Files without tags keep the defaults.
func readTags(path string, t *Track) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return
	}

	t.Title = strings.TrimSpace(m.Title())
	if artist := strings.TrimSpace(m.Artist()); artist != "" {
		t.Artist = artist
	} else if artist := strings.TrimSpace(m.AlbumArtist()); artist != "" {
		t.Artist = artist
	}
	if album := strings.TrimSpace(m.Album()); album != "" {
		t.Album = album
	}
	t.Year = m.Year()
	t.Number, _ = m.Track()
}
