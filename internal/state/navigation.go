package state

import (
	"database/sql"

	"github.com/cockroachdb/errors"
)

// Navigation is the browser position restored on startup. Entries are
// matched by name since indexes shift when the library changes.
type Navigation struct {
	View      string // "main" or "playlists"
	Artist    string
	Album     string
	TrackPath string
	Playlist  string
}

func getNavigation(db *sql.DB) (*Navigation, error) {
	row := db.QueryRow(`
		SELECT view, artist, album, track_path, playlist
		FROM navigation_state WHERE id = 1
	`)

	var nav Navigation
	var artist, album, trackPath, playlist sql.NullString
	err := row.Scan(&nav.View, &artist, &album, &trackPath, &playlist)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, errors.Wrap(err, "read navigation")
	}

	nav.Artist = artist.String
	nav.Album = album.String
	nav.TrackPath = trackPath.String
	nav.Playlist = playlist.String
	return &nav, nil
}

func saveNavigation(db *sql.DB, nav Navigation) error {
	if nav.View == "" {
		nav.View = "main"
	}
	_, err := db.Exec(`
		INSERT INTO navigation_state (id, view, artist, album, track_path, playlist)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			view = excluded.view,
			artist = excluded.artist,
			album = excluded.album,
			track_path = excluded.track_path,
			playlist = excluded.playlist
	`, nav.View, nullString(nav.Artist), nullString(nav.Album), nullString(nav.TrackPath), nullString(nav.Playlist))
	return errors.Wrap(err, "save navigation")
}
