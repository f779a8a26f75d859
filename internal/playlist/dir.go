package playlist

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	zlog "github.com/rs/zerolog/log"
)

const (
	extM3U  = ".m3u"
	extM3U8 = ".m3u8"

	reloadDelay = 200 * time.Millisecond
)

// IsPlaylistFile reports whether path has a playlist extension.
func IsPlaylistFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extM3U, extM3U8:
		return true
	}
	return false
}

// LoadDir loads every playlist file in dir, sorted by name.
// Files that fail to parse are logged and skipped.
func LoadDir(dir string) ([]*Playlist, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "read playlist directory")
	}

	var out []*Playlist
	for _, e := range entries {
		if e.IsDir() || !IsPlaylistFile(e.Name()) {
			continue
		}
		p, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			zlog.Warn().Err(err).Str("file", e.Name()).Msg("playlist: skipping file")
			continue
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *Playlist) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out, nil
}

var unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// FileName returns the file name a playlist called name is saved under.
func FileName(name string) string {
	base := strings.Trim(unsafeChars.ReplaceAllString(name, "_"), "_.")
	if base == "" {
		base = strings.ToLower(DefaultName)
	}
	return base + extM3U8
}

// Create saves a new empty playlist in dir. It fails when a playlist
// with the same file name exists.
func Create(dir, name string) (*Playlist, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create playlist directory")
	}
	p := New(name)
	path := filepath.Join(dir, FileName(p.Name))
	if _, err := os.Stat(path); err == nil {
		return nil, errors.Newf("playlist file %s already exists", filepath.Base(path))
	}
	if err := p.Save(path); err != nil {
		return nil, err
	}
	return p, nil
}

// Watch calls onChange with the reloaded playlists whenever a playlist
// file in dir is created, written, removed or renamed. Bursts of events
// are coalesced. Watch blocks until ctx is done.
func Watch(ctx context.Context, dir string, onChange func([]*Playlist)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return errors.Wrapf(err, "watch %s", dir)
	}

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !IsPlaylistFile(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				timer.Reset(reloadDelay)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			zlog.Warn().Err(err).Str("dir", dir).Msg("playlist: watcher error")
		case <-timer.C:
			playlists, err := LoadDir(dir)
			if err != nil {
				zlog.Warn().Err(err).Str("dir", dir).Msg("playlist: reload failed")
				continue
			}
			onChange(playlists)
		}
	}
}
