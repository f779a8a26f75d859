package state

import "github.com/llehouerou/cadence/internal/library"

// Interface is the persistence contract the UI depends on.
type Interface interface {
	LoadLibrary() ([]library.Track, error)
	SaveLibrary(tracks []library.Track) error
	SaveNavigation(nav Navigation)
	GetNavigation() (*Navigation, error)
	Close() error
}

var _ Interface = (*Manager)(nil)
