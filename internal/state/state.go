// Package state persists the library index and the browser position in
// a SQLite database.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/cadence/internal/library"
)

const saveDebounce = 500 * time.Millisecond

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Navigation
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create database directory")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	// Serialize writers.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "init schema of %s", path)
	}

	return &Manager{db: db}, nil
}

// Close flushes a pending navigation save and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		if err := saveNavigation(m.db, *pending); err != nil {
			zlog.Warn().Err(err).Msg("state: flush navigation")
		}
	}

	return m.db.Close()
}

func (m *Manager) LoadLibrary() ([]library.Track, error) {
	return loadTracks(m.db)
}

func (m *Manager) SaveLibrary(tracks []library.Track) error {
	return saveTracks(m.db, tracks, time.Now())
}

func (m *Manager) GetNavigation() (*Navigation, error) {
	return getNavigation(m.db)
}

// SaveNavigation stores nav after a short quiet period; only the last
// value of a burst is written.
func (m *Manager) SaveNavigation(nav Navigation) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &nav

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			if err := saveNavigation(m.db, *pending); err != nil {
				zlog.Warn().Err(err).Msg("state: save navigation")
			}
		}
	})
}
