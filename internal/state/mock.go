package state

import (
	"slices"
	"sync"

	"github.com/llehouerou/cadence/internal/library"
)

// Mock is an in-memory Interface for tests.
type Mock struct {
	mu      sync.Mutex
	tracks  []library.Track
	nav     *Navigation
	saveErr error
	saves   int
	closed  bool
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) LoadLibrary() ([]library.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.tracks), nil
}

func (m *Mock) SaveLibrary(tracks []library.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tracks = slices.Clone(tracks)
	m.saves++
	return nil
}

func (m *Mock) SaveNavigation(nav Navigation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nav = &nav
}

func (m *Mock) GetNavigation() (*Navigation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nav, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetTracks(tracks []library.Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracks = tracks
}

func (m *Mock) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Mock) Navigation() *Navigation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nav
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

var _ Interface = (*Mock)(nil)
