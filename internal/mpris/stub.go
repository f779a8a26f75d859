//go:build !linux

package mpris

import (
	"github.com/llehouerou/cadence/internal/command"
	"github.com/llehouerou/cadence/internal/playback"
)

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(*playback.Shared, *command.Queue, *playback.Subscription) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
