package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS navigation_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			view TEXT NOT NULL DEFAULT 'main',
			artist TEXT,
			album TEXT,
			track_path TEXT,
			playlist TEXT
		);

		CREATE TABLE IF NOT EXISTS library_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT NOT NULL,
			year INTEGER,
			track_number INTEGER,
			length_ms INTEGER NOT NULL DEFAULT 0,
			added_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tracks_artist_album ON library_tracks(artist, album);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
