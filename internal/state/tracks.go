package state

import (
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/cadence/internal/library"
)

func loadTracks(db *sql.DB) ([]library.Track, error) {
	rows, err := db.Query(`
		SELECT path, title, artist, album, year, track_number, length_ms
		FROM library_tracks
		ORDER BY id
	`)
	if err != nil {
		return nil, errors.Wrap(err, "query library")
	}
	defer rows.Close()

	var tracks []library.Track
	for rows.Next() {
		var t library.Track
		var year, number sql.NullInt64
		var lengthMS int64
		if err := rows.Scan(&t.Path, &t.Title, &t.Artist, &t.Album, &year, &number, &lengthMS); err != nil {
			return nil, errors.Wrap(err, "scan track")
		}
		t.Year = int(year.Int64)
		t.Number = int(number.Int64)
		t.Length = time.Duration(lengthMS) * time.Millisecond
		tracks = append(tracks, t)
	}
	return tracks, errors.Wrap(rows.Err(), "iterate library")
}

// saveTracks replaces the stored index with tracks. Rows of paths that
// survive keep their added_at.
func saveTracks(db *sql.DB, tracks []library.Track, now time.Time) error {
	return withTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`CREATE TEMP TABLE IF NOT EXISTS keep_paths (path TEXT PRIMARY KEY)`); err != nil {
			return errors.Wrap(err, "create temp table")
		}
		if _, err := tx.Exec(`DELETE FROM keep_paths`); err != nil {
			return errors.Wrap(err, "reset temp table")
		}

		upsert, err := tx.Prepare(`
			INSERT INTO library_tracks (path, title, artist, album, year, track_number, length_ms, added_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				title = excluded.title,
				artist = excluded.artist,
				album = excluded.album,
				year = excluded.year,
				track_number = excluded.track_number,
				length_ms = excluded.length_ms
		`)
		if err != nil {
			return errors.Wrap(err, "prepare upsert")
		}
		defer upsert.Close()

		keep, err := tx.Prepare(`INSERT OR IGNORE INTO keep_paths (path) VALUES (?)`)
		if err != nil {
			return errors.Wrap(err, "prepare keep")
		}
		defer keep.Close()

		for _, t := range tracks {
			_, err := upsert.Exec(t.Path, t.Title, t.Artist, t.Album,
				nullInt(t.Year), nullInt(t.Number), t.Length.Milliseconds(), now.Unix())
			if err != nil {
				return errors.Wrapf(err, "save %s", t.Path)
			}
			if _, err := keep.Exec(t.Path); err != nil {
				return errors.Wrapf(err, "mark %s", t.Path)
			}
		}

		_, err = tx.Exec(`DELETE FROM library_tracks WHERE path NOT IN (SELECT path FROM keep_paths)`)
		return errors.Wrap(err, "prune library")
	})
}
